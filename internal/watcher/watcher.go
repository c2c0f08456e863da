package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Event represents a single creation in the watched directory.
type Event struct {
	Path  string // absolute
	IsDir bool
}

// Func handles one creation event.
type Func func(ctx context.Context, event Event)

// Watcher is the concrete fsnotify-backed implementation.
type Watcher struct {
	dir       string
	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	closeErr  error
}

// New starts watching dir. It fails if dir does not exist, is not a
// directory or cannot be watched.
func New(dir string) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve watch directory %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory %q is not a directory", abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %q: %w", abs, err)
	}

	return &Watcher{dir: abs, watcher: fsw}, nil
}

// Dir returns the absolute path being watched.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run calls fn for every creation event until ctx is cancelled.
// A cancelled context is a clean stop and returns nil. The OS watch is
// released before Run returns.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			fn(ctx, toEvent(event))
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				slog.WarnContext(ctx, "watch queue overflow, events were lost", "path", w.dir)
				continue
			}
			slog.ErrorContext(ctx, "watch error", "path", w.dir, "error", err)
		}
	}
}

// Close stops watching. Safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

// toEvent looks the entry up at delivery time. An entry that is already
// gone is reported as a file so the caller sees the failure.
func toEvent(event fsnotify.Event) Event {
	info, err := os.Lstat(event.Name)
	return Event{
		Path:  event.Name,
		IsDir: err == nil && info.IsDir(),
	}
}
