package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dshills/findex/internal/config"
	"github.com/dshills/findex/internal/embedder"
	"github.com/dshills/findex/internal/storage"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	dbPath     string
	modelPath  string
	logLevel   string
	noColor    bool
}

// loadConfig reads configuration and applies flag overrides on top
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.modelPath != "" {
		cfg.ModelPath = o.modelPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.noColor {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the text logger used by every command
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// openStore opens the catalog named by cfg
func openStore(cfg *config.Config) (*storage.SQLiteStorage, error) {
	path, err := cfg.ResolvedDBPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return store, nil
}

// loadEmbedder loads the model named by cfg
func loadEmbedder(cfg *config.Config) (embedder.Embedder, error) {
	path, err := cfg.ResolvedModelPath()
	if err != nil {
		return nil, err
	}
	emb, err := embedder.New(embedder.Config{ModelPath: path, CacheSize: cfg.CacheSize})
	if err != nil {
		if errors.Is(err, embedder.ErrNoModelConfigured) {
			return nil, fmt.Errorf("%w: pass --model or set %s", err, config.EnvModelPath)
		}
		return nil, err
	}
	return emb, nil
}
