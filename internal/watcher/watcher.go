// Package watcher provides file system watching with debouncing for the
// descriptor search directories.
package watcher

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/pubsub"
)

// Watcher monitors the descriptor directories and publishes a debounced
// change event when their contents move under the running session.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	broker    *pubsub.Broker[string]
	debounce  time.Duration
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	// Dirs are the descriptor directories to watch. Missing dirs are
	// skipped; they invalidate the cache by mtime when they appear.
	Dirs        []string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(dirs []string) Config {
	return Config{
		Dirs:        dirs,
		DebounceDur: 1 * time.Second,
	}
}

// New creates a descriptor-directory watcher publishing on broker.
func New(cfg Config, broker *pubsub.Broker[string]) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsw,
		broker:    broker,
		debounce:  cfg.DebounceDur,
		done:      make(chan struct{}),
	}

	watched := 0
	for _, dir := range cfg.Dirs {
		if err := fsw.Add(dir); err != nil {
			log.Debug(log.CatWatcher, "skipping unwatchable dir", "dir", dir, "reason", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("no watchable directories among %d candidates", len(cfg.Dirs))
	}

	log.Info(log.CatWatcher, "watching descriptor dirs", "count", watched)
	return w, nil
}

// Start begins processing events in the background.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop terminates the watcher and releases resources. The broker is owned by
// the caller and stays open.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing. A burst of descriptor
// writes (package upgrades touch dozens of files) collapses into one
// published event.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending string
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !isRelevantEvent(event) {
				continue
			}
			pending = filepath.Dir(event.Name)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending != "" {
				log.Debug(log.CatWatcher, "descriptor dir changed", "dir", pending)
				w.broker.Publish(pubsub.ChangedEvent, pending)
				pending = ""
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Debug(log.CatWatcher, "watch error", "reason", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent checks if the event should trigger a rescan.
func isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return strings.HasSuffix(event.Name, ".desktop")
}
