package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load
const (
	EnvDBPath    = "FINDEX_DB_PATH"
	EnvModelPath = "FINDEX_MODEL_PATH"
	EnvLogLevel  = "FINDEX_LOG_LEVEL"
	EnvTopK      = "FINDEX_TOP_K"
	EnvWorkers   = "FINDEX_WORKERS"
	EnvCacheSize = "FINDEX_CACHE_SIZE"
	EnvNoColor   = "NO_COLOR"
)

// MaxTopK bounds the number of ranked results a caller may ask for
const MaxTopK = 100

// Config represents findex configuration options
type Config struct {
	// DBPath is the catalog database file
	DBPath string `yaml:"db_path"`

	// ModelPath is the word vector model used by semantic search
	ModelPath string `yaml:"model_path"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// TopK is the default number of semantic search results
	TopK int `yaml:"top_k"`

	// Workers is the number of concurrent scorers in semantic search
	Workers int `yaml:"workers"`

	// CacheSize bounds the name to vector lookup cache
	CacheSize int `yaml:"cache_size"`

	// NoColor disables colored console output
	NoColor bool `yaml:"no_color"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DBPath:    filepath.Join("~", ".findex", "findex.db"),
		ModelPath: "",
		LogLevel:  "warn",
		TopK:      5,
		Workers:   1,
		CacheSize: 10000,
		NoColor:   false,
	}
}

// DefaultConfigPath returns ~/.findex/config.yaml
func DefaultConfigPath() string {
	return filepath.Join("~", ".findex", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path, a .env
// file in the working directory and the environment, in that order.
// An empty path reads DefaultConfigPath if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(expanded)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", expanded)
		}
		cfg = DefaultConfig()
	}

	// Variables already set in the environment win over .env
	_ = godotenv.Load()

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file on top of the defaults.
// It returns nil without error when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FINDEX_* variables and NO_COLOR
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvModelPath); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if err := envInt(EnvTopK, &c.TopK); err != nil {
		return err
	}
	if err := envInt(EnvWorkers, &c.Workers); err != nil {
		return err
	}
	if err := envInt(EnvCacheSize, &c.CacheSize); err != nil {
		return err
	}
	// Any non-empty value disables color, per no-color.org
	if os.Getenv(EnvNoColor) != "" {
		c.NoColor = true
	}
	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db_path cannot be empty")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("top_k must be between 1 and %d, got %d", MaxTopK, c.TopK)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize)
	}
	return nil
}

// SlogLevel maps LogLevel onto slog. Unknown values map to warn.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ResolvedDBPath returns DBPath with ~ expanded
func (c *Config) ResolvedDBPath() (string, error) {
	return ExpandHome(c.DBPath)
}

// ResolvedModelPath returns ModelPath with ~ expanded
func (c *Config) ResolvedModelPath() (string, error) {
	return ExpandHome(c.ModelPath)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
