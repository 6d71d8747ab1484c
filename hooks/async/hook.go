package asynchook

import (
	"sync"

	"github.com/flowgrid/cachefetch"
)

// Hooks decouples hook delivery from the dispatch hot path: events are
// queued to a bounded channel and delivered by worker goroutines. When the
// queue is full, events are dropped.
type Hooks struct {
	inner cachefetch.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ cachefetch.Hooks = (*Hooks)(nil)

func New(inner cachefetch.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) CacheHit(k string, n int) { h.try(func() { h.inner.CacheHit(k, n) }) }
func (h *Hooks) CacheMiss(k string)       { h.try(func() { h.inner.CacheMiss(k) }) }
func (h *Hooks) EmptyKey(t string)        { h.try(func() { h.inner.EmptyKey(t) }) }
func (h *Hooks) TransportError(k string, err error) {
	h.try(func() { h.inner.TransportError(k, err) })
}
func (h *Hooks) ValueDecodeError(k string, err error) {
	h.try(func() { h.inner.ValueDecodeError(k, err) })
}
func (h *Hooks) AttributeTruncated(name string, from, to int) {
	h.try(func() { h.inner.AttributeTruncated(name, from, to) })
}
