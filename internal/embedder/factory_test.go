package embedder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.vec")
	require.NoError(t, os.WriteFile(path, []byte(sampleModel), 0644))

	emb, err := New(Config{ModelPath: path, CacheSize: 8})
	require.NoError(t, err)
	defer emb.Close()

	_, ok := emb.(*Resolver)
	assert.True(t, ok)
	assert.Equal(t, 3, emb.Dimension())

	_, ok = emb.Lookup("Cat.png")
	assert.True(t, ok)
}

func TestNew_NoModel(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrNoModelConfigured)

	_, err = New(Config{ModelPath: "   "})
	assert.ErrorIs(t, err, ErrNoModelConfigured)
}

func TestNew_PathUsedAsGiven(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "m.vec"), []byte(sampleModel), 0644))

	_, err := New(Config{ModelPath: "~/m.vec"})
	assert.ErrorIs(t, err, os.ErrNotExist)

	emb, err := New(Config{ModelPath: filepath.Join(home, "m.vec")})
	require.NoError(t, err)
	defer emb.Close()
	assert.Equal(t, "m.vec", emb.Model())
}
