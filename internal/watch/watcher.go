// Package watch reloads the site configuration when its source files change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/siteconf/internal/logfields"
)

// DefaultDebounce coalesces editor save bursts into one reload.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc is called after the watched files settle.
type ReloadFunc func(ctx context.Context) error

// Options tunes a Watcher.
type Options struct {
	// Debounce is the quiet period after the last event; DefaultDebounce when zero.
	Debounce time.Duration
	// ExtraFiles are additional file names in the config directory that trigger reloads.
	ExtraFiles []string
}

// Watcher monitors a configuration file and calls reload on change.
type Watcher struct {
	configPath   string
	files        []string
	reload       ReloadFunc
	watcher      *fsnotify.Watcher
	mu           sync.Mutex
	reloadMu     sync.Mutex
	stopOnce     sync.Once
	stopChan     chan struct{}
	reloadChan   chan struct{}
	debounceTime time.Duration
}

// New creates a watcher for configPath. Start must be called to begin watching.
func New(configPath string, reload ReloadFunc, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Resolve absolute path for consistent watching
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	files := append([]string{filepath.Base(absPath)}, opts.ExtraFiles...)

	return &Watcher{
		configPath:   absPath,
		files:        files,
		reload:       reload,
		watcher:      fw,
		stopChan:     make(chan struct{}),
		reloadChan:   make(chan struct{}, 1),
		debounceTime: debounce,
	}, nil
}

// Start begins monitoring. The directory is watched rather than the file so
// editors that replace files on save are still seen.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	configDir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(configDir); err != nil {
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}

	slog.Info("Starting configuration watcher", logfields.Path(w.configPath))

	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends monitoring. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	w.stopOnce.Do(func() {
		slog.Info("Stopping configuration watcher")
		close(w.stopChan)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watched(name string) bool {
	return slices.Contains(w.files, filepath.Base(name))
}

// watchLoop monitors file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.watched(event.Name) {
				continue
			}

			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				slog.Debug("Config change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
				w.trigger()
			case event.Op&fsnotify.Remove != 0:
				slog.Warn("Config file removed", logfields.Path(event.Name))
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Config watcher error", logfields.Error(err))
		}
	}
}

// reloadLoop handles debounced reloads
func (w *Watcher) reloadLoop(ctx context.Context) {
	var reloadTimer *time.Timer
	stop := func() {
		if reloadTimer != nil {
			reloadTimer.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.reloadChan:
			stop()
			reloadTimer = time.AfterFunc(w.debounceTime, func() {
				w.performReload(ctx)
			})
		}
	}
}

// trigger requests a debounced reload
func (w *Watcher) trigger() {
	select {
	case w.reloadChan <- struct{}{}:
	default:
		// Reload already pending
	}
}

func (w *Watcher) performReload(ctx context.Context) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := w.reload(ctx); err != nil {
		slog.Error("Failed to reload configuration", logfields.Path(w.configPath), logfields.Error(err))
	}
}
