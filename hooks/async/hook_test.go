package asynchook

import (
	"sync"
	"testing"

	"github.com/flowgrid/cachefetch"
)

type countingHooks struct {
	cachefetch.NopHooks
	mu     sync.Mutex
	events []string
	gate   chan struct{} // when set, CacheHit blocks until the gate closes
}

func (h *countingHooks) add(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *countingHooks) CacheHit(key string, _ int) {
	if h.gate != nil {
		<-h.gate
	}
	h.add("hit:" + key)
}
func (h *countingHooks) CacheMiss(key string)               { h.add("miss:" + key) }
func (h *countingHooks) TransportError(key string, _ error) { h.add("err:" + key) }

func TestDeliversInOrder(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 1, 16)
	h.CacheHit("a", 1)
	h.CacheMiss("b")
	h.TransportError("c", nil)
	h.Close() // drains the queue

	want := []string{"hit:a", "miss:b", "err:c"}
	if len(inner.events) != len(want) {
		t.Fatalf("events = %v", inner.events)
	}
	for i, e := range want {
		if inner.events[i] != e {
			t.Fatalf("events = %v, want %v", inner.events, want)
		}
	}
}

func TestDropsWhenQueueFull(t *testing.T) {
	gate := make(chan struct{})
	inner := &countingHooks{gate: gate}
	h := New(inner, 1, 1)

	h.CacheHit("first", 1)  // taken by the worker, blocked on the gate
	h.CacheHit("second", 1) // sits in the queue
	h.CacheHit("third", 1)  // queue full -> dropped

	close(gate)
	h.Close()

	inner.mu.Lock()
	defer inner.mu.Unlock()
	if len(inner.events) > 2 {
		t.Fatalf("expected dropped events, delivered %v", inner.events)
	}
}

func TestCloseIdempotent(t *testing.T) {
	h := New(&countingHooks{}, 2, 8)
	h.Close()
	h.Close()
}
