package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventBooksChanged indicates the stored collection was rewritten.
	EventBooksChanged EventType = iota
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
}

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid missing events. The channel is closed once ctx is
// done or the watcher stops.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Debug().Err(err).Msg("store: watcher close")
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; it reloads the whole collection anyway.
			}
		}

		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Debug().Err(err).Msg("store: watcher error")
				throttle.Enqueue(send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !p.isBooksPath(evt.Name) {
					continue
				}
				throttle.Enqueue(send)
			}
		}
	}()

	return events, nil
}

func (p *persistence) isBooksPath(path string) bool {
	return filepath.Base(path) == BooksKey
}

// eventThrottle coalesces rapid change notifications so the UI reloads once
// per burst of filesystem activity.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{delay: delay}
}

func (t *eventThrottle) Enqueue(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil || t.stopped {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.stopped {
			return
		}
		t.timer = nil
		// send never blocks, so holding the lock keeps it ordered before Stop.
		send(Event{Type: EventBooksChanged})
	})
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
