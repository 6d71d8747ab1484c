package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/flowgrid/cachefetch"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ cachefetch.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CacheHit(key string, size int) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("cachefetch.hit",
		"key", h.redact(key),
		"size", size)
}

func (h *Hooks) CacheMiss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("cachefetch.miss",
		"key", h.redact(key))
}

func (h *Hooks) TransportError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachefetch.transport_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) EmptyKey(template string) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachefetch.empty_key",
		"template", template)
}

func (h *Hooks) ValueDecodeError(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("cachefetch.value_decode_error",
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) AttributeTruncated(name string, from, to int) {
	if h.l == nil {
		return
	}
	h.l.Debug("cachefetch.attribute_truncated",
		"attribute", name,
		"from", from,
		"to", to)
}
