// Package watch reports changes to a listed directory
package watch

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of file
// system events to settle before reporting a change
const DefaultDebounce = 100 * time.Millisecond

// WatcherInterface defines the interface for directory watchers
type WatcherInterface interface {
	Events() <-chan struct{}
	Errors() <-chan error
	Close() error
}

// Watcher monitors one directory for entries being created, removed,
// renamed or changed. Bursts of events are coalesced into one signal.
type Watcher struct {
	watcher   *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	eventChan chan struct{}
	errorChan chan error
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher starts watching dir
func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:   fsWatcher,
		dir:       dir,
		debounce:  debounce,
		eventChan: make(chan struct{}, 1),
		errorChan: make(chan error, 10),
		done:      make(chan struct{}),
	}
	go w.watch()
	return w, nil
}

// watch runs the event loop
func (w *Watcher) watch() {
	defer close(w.eventChan)
	defer close(w.errorChan)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// chmod counts too: the permissions column shows it
			if event.Op == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			select {
			case w.eventChan <- struct{}{}:
			default:
				// a change is already waiting to be picked up
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errorChan <- err:
			default:
			}
		}
	}
}

// Events returns a channel that receives a value after the directory
// changes
func (w *Watcher) Events() <-chan struct{} {
	return w.eventChan
}

// Errors returns a channel of errors that occur during watching
func (w *Watcher) Errors() <-chan error {
	return w.errorChan
}

// Dir returns the watched directory
func (w *Watcher) Dir() string {
	return w.dir
}

// Close stops watching
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// TestWatcher is a helper for testing that provides direct control over
// the channels
type TestWatcher struct {
	eventChan chan struct{}
	errorChan chan error
	closed    bool
	mu        sync.Mutex
}

// NewTestWatcher creates a test watcher with controllable channels
func NewTestWatcher() *TestWatcher {
	return &TestWatcher{
		eventChan: make(chan struct{}, 10),
		errorChan: make(chan error, 10),
	}
}

func (tw *TestWatcher) Events() <-chan struct{} {
	return tw.eventChan
}

func (tw *TestWatcher) Errors() <-chan error {
	return tw.errorChan
}

func (tw *TestWatcher) Close() error {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.closed {
		return nil
	}
	tw.closed = true
	close(tw.eventChan)
	close(tw.errorChan)
	return nil
}

// SendEvent reports a change
func (tw *TestWatcher) SendEvent() {
	tw.eventChan <- struct{}{}
}

// SendError reports an error
func (tw *TestWatcher) SendError(err error) {
	tw.errorChan <- err
}
