package config

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatcherConfig controls which files trigger a reload and how change
// bursts are debounced.
type WatcherConfig struct {
	// Paths are the files to watch (the YAML config file, the
	// custom-models registry file). Empty paths are skipped silently so
	// callers can pass cfg.CustomModelsPath even when it is unset.
	Paths []string

	// DebounceInterval collapses a burst of filesystem events (editors
	// commonly write-then-rename) into a single reload.
	DebounceInterval time.Duration
}

// DefaultWatcherConfig returns sane defaults: a 200ms debounce window.
func DefaultWatcherConfig(paths ...string) *WatcherConfig {
	return &WatcherConfig{Paths: paths, DebounceInterval: 200 * time.Millisecond}
}

// watchLogger is satisfied by both *slog.Logger and *logging.Logger, so
// callers can pass either without this package importing the telemetry
// stack.
type watchLogger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// FileWatcher watches the config file and custom-models registry for
// changes and triggers ReloadConfig, debounced to avoid reload storms
// from editors that write a file in several steps.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   watchLogger
	cfg      *WatcherConfig
	reloadFn func() error

	mu     sync.Mutex
	timer  *time.Timer
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewFileWatcher builds a watcher over cfg.Paths. reloadFn is called
// (debounced) whenever a watched file changes; typically this wraps
// ReloadConfig with the same path originally passed to Initialize.
func NewFileWatcher(cfg *WatcherConfig, logger watchLogger, reloadFn func() error) (*FileWatcher, error) {
	if cfg == nil {
		cfg = DefaultWatcherConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating file watcher: %w", err)
	}

	added := 0
	for _, path := range cfg.Paths {
		if path == "" {
			continue
		}
		if err := w.Add(path); err != nil {
			logger.Warn("config: could not watch file", "path", path, "error", err)
			continue
		}
		added++
	}
	if added == 0 {
		w.Close()
		return nil, fmt.Errorf("config: no watchable paths configured")
	}

	return &FileWatcher{
		watcher:  w,
		logger:   logger,
		cfg:      cfg,
		reloadFn: reloadFn,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs the event loop in a background goroutine. Stop shuts it
// down; it is safe to call Stop without ever observing an event.
func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) run() {
	defer close(fw.doneCh)
	for {
		select {
		case <-fw.stopCh:
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			fw.debounceReload(event.Name)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("config: watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) debounceReload(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.cfg.DebounceInterval, func() {
		fw.logger.Info("config: reloading after file change", "path", path)
		if err := fw.reloadFn(); err != nil {
			fw.logger.Error("config: reload failed", "path", path, "error", err)
		}
	})
}

// Stop halts the watcher and releases the underlying fsnotify handle.
func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
	<-fw.doneCh

	fw.mu.Lock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mu.Unlock()

	fw.watcher.Close()
}
