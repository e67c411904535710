package embedder

import "strings"

// Config holds embedder configuration
type Config struct {
	ModelPath string
	CacheSize int
}

// New loads the configured model and wraps it in a caching Resolver.
// ModelPath is opened as given; callers expand ~ beforehand.
func New(cfg Config) (Embedder, error) {
	path := strings.TrimSpace(cfg.ModelPath)
	if path == "" {
		return nil, ErrNoModelConfigured
	}

	model, err := LoadTextModel(path)
	if err != nil {
		return nil, err
	}

	return NewResolver(model, NewCache(cfg.CacheSize)), nil
}

