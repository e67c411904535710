package embedder

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModel = `3 3
cat 1 0 0
dog 0.9 0.1 0
bicycle 0 0 1
`

func TestReadTextModel(t *testing.T) {
	m, err := ReadTextModel(strings.NewReader(sampleModel), "sample")
	require.NoError(t, err)

	assert.Equal(t, "sample", m.Model())
	assert.Equal(t, 3, m.Dimension())
	assert.Equal(t, 3, m.Len())

	v, ok := m.Lookup("dog")
	require.True(t, ok)
	assert.Equal(t, []float32{0.9, 0.1, 0}, v)

	_, ok = m.Lookup("Dog")
	assert.False(t, ok, "model lookup is exact")
}

func TestReadTextModel_NoHeader(t *testing.T) {
	m, err := ReadTextModel(strings.NewReader("a 1 2\n\nb 3 4\n"), "plain")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, 2, m.Len())
}

func TestReadTextModel_FirstOccurrenceWins(t *testing.T) {
	m, err := ReadTextModel(strings.NewReader("a 1 2\na 3 4\n"), "dup")
	require.NoError(t, err)
	v, ok := m.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2}, v)
}

func TestReadTextModel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyModel,
		},
		{
			name:    "header only",
			input:   "0 300\n",
			wantErr: ErrEmptyModel,
		},
		{
			name:    "row shorter than header dimension",
			input:   "2 3\na 1 2 3\nb 1 2\n",
			wantErr: ErrDimensionMismatch,
			wantMsg: "line 3",
		},
		{
			name:    "rows disagree without header",
			input:   "a 1 2\nb 1 2 3\n",
			wantErr: ErrDimensionMismatch,
			wantMsg: "line 2",
		},
		{
			name:    "token without values",
			input:   "a 1 2\nlonely\n",
			wantErr: ErrMalformedLine,
		},
		{
			name:    "bad number",
			input:   "a 1 x\n",
			wantErr: ErrMalformedLine,
			wantMsg: "line 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTextModel(strings.NewReader(tt.input), "bad")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadTextModel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.vec")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0644))

	m, err := LoadTextModel(path)
	require.NoError(t, err)
	assert.Equal(t, "words.vec", m.Model())
	assert.Equal(t, 3, m.Len())
}

func TestLoadTextModel_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.vec.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(sampleModel))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	m, err := LoadTextModel(path)
	require.NoError(t, err)
	assert.Equal(t, "words.vec", m.Model())
	_, ok := m.Lookup("bicycle")
	assert.True(t, ok)
}

func TestLoadTextModel_Missing(t *testing.T) {
	_, err := LoadTextModel(filepath.Join(t.TempDir(), "nope.vec"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewModel(t *testing.T) {
	m, err := NewModel("inline", map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Dimension())

	_, err = NewModel("empty", nil)
	assert.ErrorIs(t, err, ErrEmptyModel)

	_, err = NewModel("ragged", map[string][]float32{
		"a": {1, 0},
		"b": {1},
	})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
