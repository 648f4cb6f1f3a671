package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/nzemmouri/subdeck/internal/config"
	"github.com/nzemmouri/subdeck/internal/search"
	"github.com/nzemmouri/subdeck/internal/source"
)

// collectionWriter is the optional write side of a record source, used
// only by the seed command.
type collectionWriter interface {
	WriteCollection(ctx context.Context, name string, records any) error
}

// loadConfig reads the config for the current directory.
func loadConfig() (*config.Config, error) {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return config.Load(dir)
}

// openSource opens the configured record-source backend.
func openSource(cfg *config.Config, logger *slog.Logger) (source.RecordSource, error) {
	switch cfg.Source.Backend {
	case config.BackendJSONDir:
		return source.OpenJSONDir(cfg.Source.Path, logger)
	default:
		return source.OpenSQLite(cfg.Source.Path, logger)
	}
}

// newService wires a search service from configuration. The caller owns
// both returned closers.
func newService(cfg *config.Config, logger *slog.Logger) (*search.Service, source.RecordSource, error) {
	src, err := openSource(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open record source: %w", err)
	}
	svc := search.New(src, search.Config{
		RefreshInterval: time.Duration(cfg.Search.RefreshInterval),
		DefaultLimit:    cfg.Search.DefaultLimit,
		MaxSuggestions:  cfg.Search.MaxSuggestions,
		FuzzyCacheSize:  cfg.Search.FuzzyCacheSize,
	}, logger)
	return svc, src, nil
}
