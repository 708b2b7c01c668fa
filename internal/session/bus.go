// Package session publishes logical shortcut events to UI collaborators.
package session

import (
	"sync"
	"time"

	"voxbar/internal/shortcut"
)

// Event names consumed by UI collaborators. Keep verbatim.
const (
	EventPressed  = "shortcut-pressed"
	EventReleased = "shortcut-released"
	// EventPaste is a notice. The dispatcher sends the paste chord itself
	// right after emitting it; a subscriber that answers with
	// paste_transcript pastes a second time.
	EventPaste = "shortcut-paste"
)

// Name returns the event name for an action.
func Name(a shortcut.Action) string {
	switch a {
	case shortcut.PushToTalkStart:
		return EventPressed
	case shortcut.PushToTalkStop:
		return EventReleased
	case shortcut.TriggerPaste:
		return EventPaste
	}
	return ""
}

// Event is one emitted session event.
type Event struct {
	Name   string
	Action shortcut.Action
	At     time.Time
}

// Bus fans events out to subscribers. Delivery is at-most-once: a
// subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event
	now    func() time.Time
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]chan Event),
		now:  time.Now,
	}
}

// Subscribe registers a subscriber. The returned cancel func removes it and
// closes the channel; calling it more than once is safe.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Emit publishes an action without blocking. Actions without an event name
// are ignored.
func (b *Bus) Emit(a shortcut.Action) {
	name := Name(a)
	if name == "" {
		return
	}
	ev := Event{Name: name, Action: a, At: b.now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
