// Package events implements the in-process event bus.
package events

import (
	"sync"

	"github.com/lorabridge/lorabridge/internal/core/ports"
)

var _ ports.EventBus = (*Bus)(nil)

// Bus dispatches events synchronously on the publisher's goroutine.
// Ordering matters here: a lora code update must reach a node before
// the trigger words that follow it, so handlers run in subscription
// order and Publish returns only after all of them did.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string][]subscription
}

type subscription struct {
	id      int
	handler ports.EventHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Publish delivers payload to every subscriber of event. Handlers
// registered while Publish runs see only later events.
func (b *Bus) Publish(event string, payload any) {
	b.mu.RLock()
	handlers := make([]ports.EventHandler, 0, len(b.subs[event]))
	for _, sub := range b.subs[event] {
		handlers = append(handlers, sub.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}

// Subscribe registers a handler and returns its unsubscribe func.
// Unsubscribing twice is harmless.
func (b *Bus) Subscribe(event string, h ports.EventHandler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[event] = append(b.subs[event], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[event]
		for i, sub := range subs {
			if sub.id == id {
				b.subs[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}
