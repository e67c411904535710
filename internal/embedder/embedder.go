package embedder

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/findex/internal/vector"
)

// Common errors
var (
	ErrEmptyModel        = errors.New("model contains no vectors")
	ErrMalformedLine     = errors.New("malformed model line")
	ErrNoModelConfigured = errors.New("no embedding model configured")

	// ErrDimensionMismatch is shared with the vector package so callers can
	// match either with errors.Is.
	ErrDimensionMismatch = vector.ErrDimensionMismatch
)

// Embedder maps a token to its vector
type Embedder interface {
	// Lookup returns the vector for token, or false when the model has none.
	// The returned slice must not be modified.
	Lookup(token string) ([]float32, bool)

	// Dimension returns the length of every vector
	Dimension() int

	// Model returns the model name
	Model() string

	// Close releases any resources held by the embedder
	Close() error
}

// cacheEntry memoises a lookup, including a miss
type cacheEntry struct {
	vector []float32
	found  bool
}

// Cache provides in-memory LRU caching of name lookups
type Cache struct {
	cache *lru.Cache[string, cacheEntry]
}

// NewCache creates a new lookup cache with LRU eviction
func NewCache(maxLen int) *Cache {
	if maxLen <= 0 {
		maxLen = 10000 // Default: cache 10k names
	}
	cache, err := lru.New[string, cacheEntry](maxLen)
	if err != nil {
		// Should never happen with positive size, but fallback to default
		cache, _ = lru.New[string, cacheEntry](10000)
	}
	return &Cache{
		cache: cache,
	}
}

// Get returns a memoised lookup. ok is false when name has not been seen.
func (c *Cache) Get(name string) (vec []float32, found bool, ok bool) {
	e, ok := c.cache.Get(name)
	if !ok {
		return nil, false, false
	}
	return e.vector, e.found, true
}

// Set stores a lookup result with automatic LRU eviction
func (c *Cache) Set(name string, vec []float32, found bool) {
	c.cache.Add(name, cacheEntry{vector: vec, found: found})
}

// Clear empties the cache
func (c *Cache) Clear() {
	c.cache.Purge()
}

// Resolver looks up entry names in a model, falling back from the exact
// name to its lowercase form, then to the name without its extension.
// Results (hits and misses) are memoised.
type Resolver struct {
	model Embedder
	cache *Cache
}

// NewResolver wraps model with name fallbacks. A nil cache disables memoisation.
func NewResolver(model Embedder, cache *Cache) *Resolver {
	return &Resolver{model: model, cache: cache}
}

// Candidates lists the tokens tried for name, in order, without duplicates
func Candidates(name string) []string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	out := make([]string, 0, 4)
	for _, c := range []string{name, strings.ToLower(name), stem, strings.ToLower(stem)} {
		if c == "" || slices.Contains(out, c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lookup resolves name through the fallback chain
func (r *Resolver) Lookup(name string) ([]float32, bool) {
	if r.cache != nil {
		if vec, found, ok := r.cache.Get(name); ok {
			return vec, found
		}
	}

	var vec []float32
	found := false
	for _, token := range Candidates(name) {
		if v, ok := r.model.Lookup(token); ok {
			vec, found = v, true
			break
		}
	}

	if r.cache != nil {
		r.cache.Set(name, vec, found)
	}
	return vec, found
}

// Dimension returns the model dimension
func (r *Resolver) Dimension() int {
	return r.model.Dimension()
}

// Model returns the model name
func (r *Resolver) Model() string {
	return r.model.Model()
}

// Close clears the cache and closes the model
func (r *Resolver) Close() error {
	if r.cache != nil {
		r.cache.Clear()
	}
	return r.model.Close()
}
