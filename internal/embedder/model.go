package embedder

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single model line (token plus all components)
const maxLineBytes = 4 * 1024 * 1024

// Model is an in-memory token to vector table
type Model struct {
	name      string
	dimension int
	vectors   map[string][]float32
}

// NewModel builds a model from a prepared table. All vectors must share one
// non-zero length.
func NewModel(name string, vectors map[string][]float32) (*Model, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyModel
	}
	dim := -1
	for token, v := range vectors {
		if dim == -1 {
			dim = len(v)
		}
		if len(v) != dim || len(v) == 0 {
			return nil, fmt.Errorf("%w: token %q has %d values, want %d", ErrDimensionMismatch, token, len(v), dim)
		}
	}
	return &Model{name: name, dimension: dim, vectors: vectors}, nil
}

// LoadTextModel reads a word2vec/fastText text model from path.
// Paths ending in .gz are decompressed.
func LoadTextModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip model %s: %w", path, err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	name := strings.TrimSuffix(filepath.Base(path), ".gz")
	m, err := ReadTextModel(r, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return m, nil
}

// ReadTextModel parses the text format: an optional "<count> <dim>" header,
// then one "token v1 ... vD" line per token. Blank lines are ignored and the
// first occurrence of a repeated token wins.
func ReadTextModel(r io.Reader, name string) (*Model, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	vectors := make(map[string][]float32)
	dim := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if lineNo == 1 {
			if d, ok := parseHeader(fields); ok {
				dim = d
				continue
			}
		}

		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d has no values", ErrMalformedLine, lineNo)
		}
		values := fields[1:]
		if dim == 0 {
			dim = len(values)
		}
		if len(values) != dim {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrDimensionMismatch, lineNo, len(values), dim)
		}

		token := fields[0]
		if _, seen := vectors[token]; seen {
			continue
		}
		vec := make([]float32, dim)
		for i, s := range values {
			f, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
			}
			vec[i] = float32(f)
		}
		vectors[token] = vec
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	if len(vectors) == 0 {
		return nil, ErrEmptyModel
	}
	return &Model{name: name, dimension: dim, vectors: vectors}, nil
}

// parseHeader recognises a "<count> <dim>" line
func parseHeader(fields []string) (int, bool) {
	if len(fields) != 2 {
		return 0, false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return 0, false
	}
	dim, err := strconv.Atoi(fields[1])
	if err != nil || dim <= 0 {
		return 0, false
	}
	return dim, true
}

// Lookup returns the vector stored for token
func (m *Model) Lookup(token string) ([]float32, bool) {
	v, ok := m.vectors[token]
	return v, ok
}

// Dimension returns the vector length
func (m *Model) Dimension() int {
	return m.dimension
}

// Model returns the model name
func (m *Model) Model() string {
	return m.name
}

// Len returns the vocabulary size
func (m *Model) Len() int {
	return len(m.vectors)
}

// Close drops the vector table
func (m *Model) Close() error {
	m.vectors = nil
	return nil
}
