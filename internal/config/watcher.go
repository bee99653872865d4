package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a config file and invokes a callback with the re-loaded
// configuration after each change. The parent directory is watched rather
// than the file itself so editor rename-replace saves are picked up.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(cfg *Config, err error)
	watcher  *fsnotify.Watcher
	running  atomic.Bool
}

// WatcherConfig configures a config-file watcher.
type WatcherConfig struct {
	Path     string
	Debounce time.Duration // debounce period for rapid changes
	OnChange func(cfg *Config, err error)
}

// NewWatcher creates a watcher for a single config file.
func NewWatcher(wc WatcherConfig) (*Watcher, error) {
	if wc.Path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if wc.OnChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}
	debounce := wc.Debounce
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		path:     wc.Path,
		debounce: debounce,
		onChange: wc.OnChange,
	}, nil
}

// Start begins watching. It returns once the watch is established; events
// are processed on a background goroutine until ctx is done or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return fmt.Errorf("watcher already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.running.Store(false)
		return fmt.Errorf("creating watcher: %w", err)
	}
	w.watcher = watcher

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		w.running.Store(false)
		return fmt.Errorf("watching directory: %w", err)
	}

	go w.processEvents(ctx)
	return nil
}

func (w *Watcher) processEvents(ctx context.Context) {
	var lastChange time.Time
	dirty := false
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			lastChange = time.Now()
			dirty = true

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onChange(nil, fmt.Errorf("watcher error: %w", err))

		case <-ticker.C:
			if !dirty || time.Since(lastChange) < w.debounce {
				continue
			}
			dirty = false
			cfg, err := Load(w.path)
			w.onChange(cfg, err)

		case <-ctx.Done():
			return
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	if !w.running.CompareAndSwap(true, false) {
		return nil
	}
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
