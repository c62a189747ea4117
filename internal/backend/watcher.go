package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/mindmap-tui/internal/logging/events"
)

// Event reports that the watched store file changed on disk, or that the
// underlying notifier failed.
type Event struct {
	Path string
	Err  error
}

// DefaultMinGap is the shortest time between two change events.
const DefaultMinGap = time.Second

// Option customises a Watcher.
type Option func(*Watcher)

// WithMinGap sets the shortest time between two change events. A writer
// saving faster than that still produces at most one event per gap.
func WithMinGap(d time.Duration) Option {
	return func(w *Watcher) { w.minGap = d }
}

// Watcher publishes an Event whenever the store's backing file is written,
// created, renamed or removed by another process.
type Watcher struct {
	path     string
	debounce time.Duration
	minGap   time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	notify *fsnotify.Watcher
	events chan Event
	wg     sync.WaitGroup

	mu          sync.Mutex
	ignoreUntil time.Time
}

// NewWatcher watches the directory containing path and reports changes to
// path itself. Bursts of notifications closer than debounce collapse into a
// single event, and events are spaced by the minimum gap.
func NewWatcher(path string, debounce time.Duration, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	notify, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := notify.Add(filepath.Dir(abs)); err != nil {
		notify.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		minGap:   DefaultMinGap,
		ctx:      ctx,
		cancel:   cancel,
		notify:   notify,
		events:   make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	events.Watch.Start(abs)

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of change events. It is closed after Stop once
// the watcher goroutine has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Path reports the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Ignore drops changes observed within d from now. Call it right before
// writing the file from this process.
func (w *Watcher) Ignore(d time.Duration) {
	w.mu.Lock()
	w.ignoreUntil = time.Now().Add(d)
	w.mu.Unlock()
}

func (w *Watcher) ignored() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Now().Before(w.ignoreUntil)
}

// Stop cancels the watcher; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.notify.Close()

	throttle := newThrottle(w.minGap)
	var pending *time.Timer
	var fire <-chan time.Time

	emit := func(evt Event) bool {
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	for {
		select {
		case <-w.ctx.Done():
			if pending != nil {
				pending.Stop()
			}
			return
		case ev, ok := <-w.notify.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op == fsnotify.Chmod {
				continue
			}
			if w.ignored() {
				events.Watch.Ignored(w.path)
				continue
			}
			events.Watch.Change(w.path, ev.Op.String())
			if pending == nil {
				pending = time.NewTimer(w.debounce)
				fire = pending.C
			} else {
				pending.Reset(w.debounce)
			}
		case <-fire:
			if hold := throttle.delay(time.Now()); hold > 0 {
				events.Watch.Held(w.path, hold)
				pending.Reset(hold)
				continue
			}
			pending, fire = nil, nil
			throttle.mark(time.Now())
			if !emit(Event{Path: w.path}) {
				return
			}
		case err, ok := <-w.notify.Errors:
			if !ok {
				return
			}
			events.Watch.Error(err)
			if !emit(Event{Path: w.path, Err: err}) {
				return
			}
		}
	}
}
