// Package memory is a process-local Provider backed by a plain map.
// It exists for tests and single-process tools; production deployments
// should prefer the redis, ristretto or bigcache providers.
package memory

import (
	"context"
	"sync"
	"time"

	pr "github.com/flowgrid/cachefetch/provider"
)

type entry struct {
	value []byte
	exp   time.Time // zero => no expiry
}

// Provider keeps entries in-process with optional per-entry TTL.
// Expired entries are dropped lazily on Get and by a background sweep loop
// when a cleanup interval is configured.
type Provider struct {
	mu      sync.RWMutex
	entries map[string]entry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

var _ pr.Provider = (*Provider)(nil)

// New creates a memory provider. cleanupInterval <= 0 disables the sweep
// loop; expired entries are then only removed when read.
func New(cleanupInterval time.Duration) *Provider {
	p := &Provider{entries: make(map[string]entry)}
	if cleanupInterval > 0 {
		p.ticker = time.NewTicker(cleanupInterval)
		p.stopCh = make(chan struct{})
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.ticker.C:
					p.sweep(time.Now())
				case <-p.stopCh:
					return
				}
			}
		}()
	}
	return p
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	p.mu.RLock()
	e, ok := p.entries[key]
	p.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		p.mu.Lock()
		// re-check under the write lock; a concurrent Set may have refreshed it
		if cur, ok := p.entries[key]; ok && !cur.exp.IsZero() && time.Now().After(cur.exp) {
			delete(p.entries, key)
		}
		p.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	p.mu.Lock()
	p.entries[key] = entry{value: value, exp: deadline(ttl)}
	p.mu.Unlock()
	return nil
}

func (p *Provider) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	now := time.Now()
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[key]; ok && (e.exp.IsZero() || now.Before(e.exp)) {
		return false, nil
	}
	p.entries[key] = entry{value: value, exp: deadline(ttl)}
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.mu.Lock()
	delete(p.entries, key)
	p.mu.Unlock()
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.once.Do(func() {
		if p.stopCh != nil {
			close(p.stopCh)
			p.ticker.Stop() // stop ticker before waiting
			p.wg.Wait()
		}
	})
	return nil
}

// Len reports the number of live entries; used by tests.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

func (p *Provider) sweep(now time.Time) {
	p.mu.Lock()
	for k, e := range p.entries {
		if !e.exp.IsZero() && e.exp.Before(now) {
			delete(p.entries, k)
		}
	}
	p.mu.Unlock()
}

func deadline(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}
