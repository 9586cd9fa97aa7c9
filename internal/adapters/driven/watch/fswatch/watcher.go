// Package fswatch reports changes to a file made by other processes.
//
// The SQLite backend uses it to pick up keyword edits from a second
// dealwatch instance sharing the same data directory. The parent directory is
// watched rather than the file itself so that WAL and journal companions
// (dealwatch.db-wal, dealwatch.db-journal) and atomic renames are seen.
package fswatch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/dealwatch/internal/core/ports/driven"
	"github.com/custodia-labs/dealwatch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ChangeWatcher = (*Watcher)(nil)

// DefaultDebounce coalesces the bursts of events a single SQLite commit
// produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher emits one notification per burst of writes to a file.
type Watcher struct {
	fsw      *fsnotify.Watcher
	base     string
	debounce time.Duration

	changes chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New watches path. A debounce of zero uses DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	w := &Watcher{
		fsw:      fsw,
		base:     filepath.Base(path),
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()

	logger.Debug("Watching %s for external changes", path)
	return w, nil
}

// Changes returns the notification channel. It is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.stopped)
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error: %v", err)

		case <-timer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether event touches the watched file or one of its
// companions. Chmod-only events are ignored.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return name == w.base || strings.HasPrefix(name, w.base+"-")
}
