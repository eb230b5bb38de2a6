package config

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dataapis/protogen/errors"
	"github.com/dataapis/protogen/logger"
)

// Watcher watches a directory tree and triggers a debounced callback when
// anything under it changes. The watch command uses it to regenerate on stub
// edits.
type Watcher struct {
	watcher        *fsnotify.Watcher
	callbacks      []func()
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
}

// NewWatcher creates a watcher over the given directories.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	return &Watcher{
		watcher:        fsw,
		debouncePeriod: 500 * time.Millisecond, // coalesce editor write bursts
		done:           make(chan struct{}),
	}, nil
}

// OnChange registers a callback invoked after changes settle.
func (w *Watcher) OnChange(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Logger.Warnw("watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, w.fire)
}

func (w *Watcher) fire() {
	w.mu.RLock()
	callbacks := append([]func(){}, w.callbacks...)
	w.mu.RUnlock()
	for _, cb := range callbacks {
		cb()
	}
}

// Stop shuts the watcher down.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
