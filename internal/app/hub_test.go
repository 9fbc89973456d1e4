// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import "testing"

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	a, cancelA := h.Subscribe(1)
	b, cancelB := h.Subscribe(1)
	defer cancelB()

	h.Broadcast(StateMessage{Tick: 7})
	if m := <-a; m.Tick != 7 {
		t.Fatalf("a got tick=%d want=7", m.Tick)
	}
	if m := <-b; m.Tick != 7 {
		t.Fatalf("b got tick=%d want=7", m.Tick)
	}

	cancelA()
	cancelA()
	if h.Len() != 1 {
		t.Fatalf("subscribers=%d want=1", h.Len())
	}
	if _, ok := <-a; ok {
		t.Fatalf("cancelled channel still open")
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe(1)
	defer cancel()

	h.Broadcast(StateMessage{Tick: 1})
	h.Broadcast(StateMessage{Tick: 2})

	if m := <-ch; m.Tick != 1 {
		t.Fatalf("tick=%d want=1", m.Tick)
	}
	select {
	case m := <-ch:
		t.Fatalf("unexpected message tick=%d", m.Tick)
	default:
	}
}
