// Package watcher notifies the search service when the record source
// changes on disk, so `subdeck watch` can refresh the index between timer
// ticks. Bursts of writes (the management app rewrites whole collection
// documents) are debounced into a single notification.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceWindow coalesces rapid write bursts into one event.
const DefaultDebounceWindow = 500 * time.Millisecond

// SourceWatcher watches the record-source path (a database file or a
// collection directory) and emits a signal after writes settle.
type SourceWatcher struct {
	path     string
	window   time.Duration
	logger   *slog.Logger
	notifyCh chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a watcher for path. window <= 0 uses the default debounce
// window.
func New(path string, window time.Duration, logger *slog.Logger) *SourceWatcher {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceWatcher{
		path:     path,
		window:   window,
		logger:   logger,
		notifyCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Changes returns the notification channel. It receives one value per
// settled burst of writes; pending notifications do not stack.
func (w *SourceWatcher) Changes() <-chan struct{} {
	return w.notifyCh
}

// Start begins watching. For a file path the containing directory is
// watched and events are filtered to the file and its sidecars (SQLite
// -wal, lock files), since editors and SQLite replace files by rename.
func (w *SourceWatcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	watchDir := w.path
	if info, err := os.Stat(w.path); err == nil && !info.IsDir() {
		watchDir = filepath.Dir(w.path)
	} else if err != nil {
		watchDir = filepath.Dir(w.path)
	}
	if err := fw.Add(watchDir); err != nil {
		_ = fw.Close()
		return err
	}

	w.mu.Lock()
	w.started = true
	w.mu.Unlock()

	go w.run(ctx, fw)
	return nil
}

func (w *SourceWatcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer close(w.doneCh)
	defer func() { _ = fw.Close() }()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Restart the debounce window on every relevant event.
			if timer == nil {
				timer = time.NewTimer(w.window)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.window)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			select {
			case w.notifyCh <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch_error", slog.String("error", err.Error()))
		}
	}
}

// relevant filters events down to the watched path and its sidecar files.
func (w *SourceWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name := event.Name
	if name == w.path || filepath.Dir(name) == w.path {
		return true
	}
	base := filepath.Base(w.path)
	eb := filepath.Base(name)
	return eb == base || eb == base+"-wal" || eb == base+"-journal"
}

// Stop stops the watcher. Safe to call multiple times.
func (w *SourceWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.stopCh)
	if w.started {
		<-w.doneCh
	}
}
