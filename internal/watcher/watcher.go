// Package watcher monitors the current vault's directory so the listing
// and cached image count stay consistent when files appear or disappear
// underneath the app (drag-and-drop, Finder edits).
package watcher

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ogvaibhavshukla/VisualLibrary/internal/vlib"
)

// DefaultDebounce is the quiet period before a refresh signal is emitted.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single vault directory at a time and emits debounced
// refresh signals. Switching vaults re-targets the watch.
type Watcher struct {
	fsw          *fsnotify.Watcher
	debouncer    *Debouncer
	logger       vlib.Logger
	includeVideo bool

	mu     sync.Mutex
	dir    string
	stopCh chan struct{}
}

// New creates a Watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(debounce time.Duration, includeVideo bool, logger vlib.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating filesystem watcher: %w", err)
	}
	w := &Watcher{
		fsw:          fsw,
		debouncer:    NewDebouncer(debounce),
		logger:       logger,
		includeVideo: includeVideo,
		stopCh:       make(chan struct{}),
	}
	go w.processEvents()
	return w, nil
}

// Events returns the channel of debounced refresh signals.
func (w *Watcher) Events() <-chan struct{} {
	return w.debouncer.Events()
}

// Watch re-targets the watcher at dir, dropping the previous target.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		if err := w.fsw.Remove(w.dir); err != nil {
			w.logger.Warn("unwatching directory", "dir", w.dir, "error", err)
		}
	}
	if err := w.fsw.Add(dir); err != nil {
		w.dir = ""
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	w.dir = dir
	w.logger.Debug("watching vault directory", "dir", dir)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.debouncer.Stop()
	return w.fsw.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Chmod-only churn never changes the listing. Op is a bitmask, so a
	// combined op that also carries Chmod still counts.
	if event.Op&^fsnotify.Chmod == 0 {
		return
	}
	// Only supported media affects the listing or the count.
	if !vlib.IsSupportedMedia(event.Name, w.includeVideo) {
		return
	}
	w.debouncer.Trigger()
}
