package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"github.com/nzemmouri/subdeck/internal/model"
	"github.com/nzemmouri/subdeck/internal/source"
)

// Config configures a search Service.
type Config struct {
	// RefreshInterval bounds index staleness: the background timer
	// rebuilds on this cadence and Search self-triggers a rebuild when
	// the snapshot is older. Default: 5 minutes.
	RefreshInterval time.Duration

	// DefaultLimit is the page size applied when options leave Limit
	// unset. Default: 20.
	DefaultLimit int

	// MaxSuggestions caps inline suggestions per response. Default: 5.
	MaxSuggestions int

	// FuzzyCacheSize bounds the edit-distance memo cache. Default: 4096.
	FuzzyCacheSize int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 5 * time.Minute,
		DefaultLimit:    20,
		MaxSuggestions:  5,
		FuzzyCacheSize:  4096,
	}
}

func (c *Config) sanitize() {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 5 * time.Minute
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = 20
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = 5
	}
	if c.FuzzyCacheSize <= 0 {
		c.FuzzyCacheSize = 4096
	}
}

// Service owns the in-memory index and serves searches over it. It holds
// its own state (current snapshot, refresh timer) and is safe for
// concurrent use: rebuilds publish a fresh snapshot atomically while
// in-flight reads keep using the old one.
//
// Search never fails visibly: any internal error degrades to the
// canonical empty response and is logged.
type Service struct {
	source source.RecordSource
	logger *slog.Logger
	cfg    Config

	snap       atomic.Pointer[indexSnapshot]
	generation atomic.Uint64
	rebuilds   singleflight.Group
	fuzzy      *fuzzyMatcher

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a Service reading from src and starts its refresh timer.
// The index is built lazily on first use. Call Close to stop the timer.
func New(src source.RecordSource, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.sanitize()

	s := &Service{
		source: src,
		logger: logger,
		cfg:    cfg,
		fuzzy:  newFuzzyMatcher(cfg.FuzzyCacheSize),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go s.refreshLoop()
	return s
}

// refreshLoop rebuilds the index on the configured cadence until Close.
// Failures are logged, never propagated.
func (s *Service) refreshLoop() {
	defer close(s.doneCh)
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if _, err := s.rebuild(context.Background()); err != nil {
				s.logger.Error("scheduled_rebuild_failed", slog.String("error", err.Error()))
			}
		}
	}
}

// rebuild builds and publishes a fresh snapshot. Concurrent callers
// coalesce onto one rebuild via singleflight; each rebuild runs to
// completion regardless of caller cancellation so a half-built snapshot
// is never published.
func (s *Service) rebuild(ctx context.Context) (*indexSnapshot, error) {
	v, err, _ := s.rebuilds.Do("rebuild", func() (any, error) {
		start := time.Now()
		snap := buildSnapshot(context.WithoutCancel(ctx), s.source, s.logger, s.generation.Add(1))
		s.snap.Store(snap)
		s.logger.Info("index_rebuilt",
			slog.Uint64("generation", snap.generation),
			slog.Int("entries", len(snap.entries)),
			slog.Duration("took", time.Since(start)))
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*indexSnapshot), nil
}

// ensureFresh returns the current snapshot, rebuilding first when there
// is none yet or it is older than the refresh interval. A read can
// therefore carry rebuild latency; staleness stays bounded regardless of
// caller cadence.
func (s *Service) ensureFresh(ctx context.Context) (*indexSnapshot, error) {
	if snap := s.snap.Load(); snap != nil && time.Since(snap.builtAt) < s.cfg.RefreshInterval {
		return snap, nil
	}
	return s.rebuild(ctx)
}

// Search executes a free-text query with structural filters and returns
// ranked, paginated results. It never returns an error: internal
// failures are logged and degrade to the canonical empty response.
func (s *Service) Search(ctx context.Context, opts Options) *Response {
	resp, err := s.doSearch(ctx, opts)
	if err != nil {
		s.logger.Error("search_failed",
			slog.String("query", opts.Query),
			slog.String("error", err.Error()))
		return EmptyResponse()
	}
	return resp
}

func (s *Service) doSearch(ctx context.Context, opts Options) (*Response, error) {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	if query == "" {
		return EmptyResponse(), nil
	}

	start := time.Now()
	opts.normalize(s.cfg.DefaultLimit)

	snap, err := s.ensureFresh(ctx)
	if err != nil {
		return nil, err
	}

	queryWords := strings.Fields(query)
	sc := &scorer{fuzzy: s.fuzzy, useFuzz: *opts.FuzzySearch, now: time.Now()}

	matches := runQuery(snap, queryWords, opts, sc)
	sortMatches(matches, opts.Filters.SortBy, opts.Filters.SortOrder)

	facets := tallyFacets(matches)
	suggestions := collectSuggestions(matches, s.cfg.MaxSuggestions)

	page := paginate(matches, opts.Offset, opts.Limit)
	results := make([]Result, 0, len(page))
	for _, m := range page {
		results = append(results, formatEntry(m.entry, m.score, m.matched))
	}

	s.logger.Debug("search_completed",
		slog.String("query", query),
		slog.Int("total", len(matches)),
		slog.Int("returned", len(results)))

	return &Response{
		Results:     results,
		TotalCount:  len(matches),
		SearchTime:  time.Since(start).Milliseconds(),
		Suggestions: suggestions,
		Facets:      facets,
	}, nil
}

// Suggestions returns up to limit typeahead suggestions for a prefix of
// at least two characters: keywords starting with the prefix (excluding
// an exact match) and entity names containing it. The scan stops as soon
// as the limit is reached. Failures degrade to an empty slice.
func (s *Service) Suggestions(ctx context.Context, prefix string, limit int) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if utf8.RuneCountInString(p) < 2 {
		return []string{}
	}
	if limit <= 0 {
		limit = s.cfg.MaxSuggestions
	}

	snap := s.snap.Load()
	if snap == nil {
		var err error
		if snap, err = s.rebuild(ctx); err != nil {
			s.logger.Error("suggestions_failed",
				slog.String("prefix", prefix),
				slog.String("error", err.Error()))
			return []string{}
		}
	}

	suggestions := make([]string, 0, limit)
	seen := make(map[string]struct{})
	add := func(v string) bool {
		if _, dup := seen[v]; dup {
			return true
		}
		seen[v] = struct{}{}
		suggestions = append(suggestions, v)
		return len(suggestions) < limit
	}

	for _, entry := range snap.entries {
		for _, k := range entry.Keywords {
			if strings.HasPrefix(k, p) && k != p {
				if !add(k) {
					return suggestions
				}
			}
		}
		if name := primaryName(entry.Entity); name != "" {
			if strings.Contains(strings.ToLower(name), p) {
				if !add(name) {
					return suggestions
				}
			}
		}
	}
	return suggestions
}

// Stats returns the current index state without triggering a rebuild.
func (s *Service) Stats() IndexStats {
	snap := s.snap.Load()
	if snap == nil {
		return IndexStats{EntityCounts: map[model.EntityType]int{}}
	}
	return IndexStats{
		TotalItems:   len(snap.entries),
		LastUpdate:   snap.builtAt,
		EntityCounts: snap.counts(),
	}
}

// ForceRefresh synchronously rebuilds the index, bypassing the timer.
func (s *Service) ForceRefresh(ctx context.Context) error {
	_, err := s.rebuild(ctx)
	return err
}

// Close stops the refresh timer. Safe to call multiple times. The current
// snapshot stays readable after Close.
func (s *Service) Close() error {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh
	})
	return nil
}
