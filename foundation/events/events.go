// Package events allows for the registering and receiving of ledger events.
package events

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// messageBuffer is the number of messages held for a subscriber that is
// not ready to receive. Messages beyond this are dropped for that subscriber.
const messageBuffer = 100

// subscriber represents a registered receiver of events.
type subscriber struct {
	ch     chan string
	prefix string
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]subscriber
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]subscriber),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Subscribe.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, sub := range evt.m {
		delete(evt.m, id)
		close(sub.ch)
	}
}

// Subscribe registers a receiver for every event that starts with the
// specified prefix. An empty prefix receives everything. The returned id
// is used to Unsubscribe.
func (evt *Events) Subscribe(prefix string) (string, <-chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.NewString()
	sub := subscriber{
		ch:     make(chan string, messageBuffer),
		prefix: prefix,
	}
	evt.m[id] = sub

	return id, sub.ch
}

// Unsubscribe closes and removes the channel that was provided by
// the call to Subscribe.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	sub, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(sub.ch)
	return nil
}

// Send signals a message to every matching subscriber. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, sub := range evt.m {
		if !strings.HasPrefix(s, sub.prefix) {
			continue
		}

		select {
		case sub.ch <- s:
		default:
		}
	}
}

// Handler returns an event handler that formats each event and sends it.
// The next handler, when provided, is called first with the raw arguments.
func (evt *Events) Handler(next func(v string, args ...any)) func(v string, args ...any) {
	return func(v string, args ...any) {
		if next != nil {
			next(v, args...)
		}
		evt.Send(fmt.Sprintf(v, args...))
	}
}
