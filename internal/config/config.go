// Package config loads SubDeck configuration from YAML with environment
// variable overrides. Precedence: built-in defaults, then .subdeck.yaml,
// then SUBDECK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the per-directory config file name.
const DefaultFileName = ".subdeck.yaml"

// Duration wraps time.Duration so YAML accepts both "5m"-style strings
// and raw nanosecond integers.
type Duration time.Duration

func (d Duration) String() string { return time.Duration(d).String() }

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses either a duration string or an integer nanosecond
// count.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value %q", value.Value)
	}
	*d = Duration(n)
	return nil
}

// SourceBackend selects the record-source backend.
type SourceBackend string

const (
	// BackendSQLite reads collections from a SQLite database.
	BackendSQLite SourceBackend = "sqlite"
	// BackendJSONDir reads one JSON file per collection from a directory.
	BackendJSONDir SourceBackend = "jsondir"
)

// Config is the complete SubDeck configuration.
type Config struct {
	Version int          `yaml:"version"`
	Source  SourceConfig `yaml:"source"`
	Search  SearchConfig `yaml:"search"`
	Log     LogConfig    `yaml:"log"`
}

// SourceConfig configures the record source the index is built from.
type SourceConfig struct {
	// Backend is "sqlite" (default) or "jsondir".
	Backend SourceBackend `yaml:"backend"`
	// Path is the database file (sqlite) or collection directory (jsondir).
	Path string `yaml:"path"`
}

// SearchConfig configures the search service.
type SearchConfig struct {
	// RefreshInterval bounds index staleness. The timer rebuilds on this
	// cadence and Search self-triggers a rebuild past it. Default: 5m.
	RefreshInterval Duration `yaml:"refresh_interval"`
	// DefaultLimit is the page size when a query does not set one.
	DefaultLimit int `yaml:"default_limit"`
	// MaxSuggestions caps inline suggestions in a search response.
	MaxSuggestions int `yaml:"max_suggestions"`
	// FuzzyCacheSize bounds the edit-distance memo cache entries.
	FuzzyCacheSize int `yaml:"fuzzy_cache_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Source: SourceConfig{
			Backend: BackendSQLite,
			Path:    DefaultSourcePath(),
		},
		Search: SearchConfig{
			RefreshInterval: Duration(5 * time.Minute),
			DefaultLimit:    20,
			MaxSuggestions:  5,
			FuzzyCacheSize:  4096,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultSourcePath returns the default SQLite database path
// (~/.subdeck/subdeck.db).
func DefaultSourcePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".subdeck", "subdeck.db")
	}
	return filepath.Join(home, ".subdeck", "subdeck.db")
}

// Load reads configuration for the given directory. A missing config file
// is not an error; defaults plus environment overrides are returned.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, DefaultFileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies SUBDECK_* environment overrides, the highest
// precedence layer.
func (c *Config) applyEnv() {
	if v := os.Getenv("SUBDECK_SOURCE_BACKEND"); v != "" {
		c.Source.Backend = SourceBackend(v)
	}
	if v := os.Getenv("SUBDECK_SOURCE_PATH"); v != "" {
		c.Source.Path = v
	}
	if v := os.Getenv("SUBDECK_REFRESH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Search.RefreshInterval = Duration(d)
		}
	}
	if v := os.Getenv("SUBDECK_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("SUBDECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks the configuration and fills gaps with defaults.
func (c *Config) Validate() error {
	switch c.Source.Backend {
	case BackendSQLite, BackendJSONDir:
	case "":
		c.Source.Backend = BackendSQLite
	default:
		return fmt.Errorf("unknown source backend %q (use sqlite or jsondir)", c.Source.Backend)
	}
	if c.Source.Path == "" {
		c.Source.Path = DefaultSourcePath()
	}
	if c.Search.RefreshInterval <= 0 {
		c.Search.RefreshInterval = Duration(5 * time.Minute)
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxSuggestions <= 0 {
		c.Search.MaxSuggestions = 5
	}
	if c.Search.FuzzyCacheSize <= 0 {
		c.Search.FuzzyCacheSize = 4096
	}
	return nil
}

// Save writes the configuration to dir/.subdeck.yaml.
func (c *Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
