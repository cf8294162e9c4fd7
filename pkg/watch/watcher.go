// Package watch monitors a directory for training dataset drops and
// triggers thinning as files appear or change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zerotrim/zerotrim/pkg/util"
)

// Watcher monitors a directory for CSV writes and invokes OnChange once
// a file has settled.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	ignore   string // substring marking our own output files
	debounce time.Duration

	mu   sync.Mutex
	seen map[string]fileState

	OnChange func(path string) error
	OnError  func(path string, err error)
}

type fileState struct {
	modTime time.Time
	size    int64
}

// NewWatcher creates a watcher for dir. Files whose base name contains
// ignore are skipped so the watcher does not reprocess its own output.
func NewWatcher(dir, ignore string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		watcher:  fsWatcher,
		dir:      dir,
		ignore:   ignore,
		debounce: debounce,
		seen:     make(map[string]fileState),
	}, nil
}

// Run starts the watch loop. Blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	debounceTimers := make(map[string]*time.Timer)
	var timerMu sync.Mutex

	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.wants(event.Name) {
				continue
			}

			absPath, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			// Debounce rapid writes while the producer is still flushing
			timerMu.Lock()
			if timer, exists := debounceTimers[absPath]; exists {
				timer.Stop()
			}
			debounceTimers[absPath] = time.AfterFunc(w.debounce, func() {
				w.handleChange(absPath)
			})
			timerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError("", err)
			}
		}
	}
}

// wants reports whether the path is a dataset the watcher should process.
func (w *Watcher) wants(path string) bool {
	switch util.BaseFormat(path) {
	case ".csv", ".tsv", ".xlsx":
	default:
		return false
	}
	if w.ignore != "" && strings.Contains(filepath.Base(path), w.ignore) {
		return false
	}
	return true
}

func (w *Watcher) handleChange(path string) {
	stat, err := os.Stat(path)
	if err != nil {
		if w.OnError != nil {
			w.OnError(path, err)
		}
		return
	}

	w.mu.Lock()
	last, known := w.seen[path]
	if known && last.modTime.Equal(stat.ModTime()) && last.size == stat.Size() {
		w.mu.Unlock()
		return // no actual change
	}
	w.seen[path] = fileState{modTime: stat.ModTime(), size: stat.Size()}
	w.mu.Unlock()

	if w.OnChange != nil {
		if err := w.OnChange(path); err != nil {
			if w.OnError != nil {
				w.OnError(path, err)
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
