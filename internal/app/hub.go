// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import "sync"

// Hub fans flight states out to any number of subscribers. Slow subscribers
// miss states instead of blocking the broadcaster.
type Hub struct {
	mu   sync.Mutex
	subs map[chan StateMessage]struct{}
}

// NewHub returns a hub without subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan StateMessage]struct{})}
}

// Subscribe registers a new subscriber. Call cancel to release it.
func (h *Hub) Subscribe(buffer int) (ch <-chan StateMessage, cancel func()) {
	c := make(chan StateMessage, buffer)
	h.mu.Lock()
	h.subs[c] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return c, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, c)
			h.mu.Unlock()
			close(c)
		})
	}
}

// Broadcast delivers msg to every subscriber with room in its buffer.
func (h *Hub) Broadcast(msg StateMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.subs {
		select {
		case c <- msg:
		default:
		}
	}
}

// Len is the number of active subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
