package memory

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	defer p.Close(ctx)

	if _, ok, err := p.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if err := p.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(b, []byte("v")) {
		t.Fatalf("Get: ok=%v err=%v val=%q", ok, err, b)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestSetIfAbsent(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	defer p.Close(ctx)

	ok, err := p.SetIfAbsent(ctx, "k", []byte("first"), 0)
	if err != nil || !ok {
		t.Fatalf("first SetIfAbsent: ok=%v err=%v", ok, err)
	}
	ok, err = p.SetIfAbsent(ctx, "k", []byte("second"), 0)
	if err != nil || ok {
		t.Fatalf("second SetIfAbsent should refuse, ok=%v err=%v", ok, err)
	}
	b, _, _ := p.Get(ctx, "k")
	if string(b) != "first" {
		t.Fatalf("value overwritten: %q", b)
	}
}

func TestTTLExpiry(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	defer p.Close(ctx)

	if err := p.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); !ok {
		t.Fatalf("entry should be live before TTL")
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
	// lazy expiry also removes the entry
	if n := p.Len(); n != 0 {
		t.Fatalf("expected 0 live entries, got %d", n)
	}
}

func TestSetIfAbsentAfterExpiry(t *testing.T) {
	ctx := context.Background()
	p := New(0)
	defer p.Close(ctx)

	_ = p.Set(ctx, "k", []byte("old"), 5*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	ok, err := p.SetIfAbsent(ctx, "k", []byte("new"), 0)
	if err != nil || !ok {
		t.Fatalf("SetIfAbsent over expired entry: ok=%v err=%v", ok, err)
	}
	b, _, _ := p.Get(ctx, "k")
	if string(b) != "new" {
		t.Fatalf("expected refreshed value, got %q", b)
	}
}

func TestSweepLoop(t *testing.T) {
	ctx := context.Background()
	p := New(5 * time.Millisecond)
	defer p.Close(ctx)

	_ = p.Set(ctx, "short", []byte("x"), 5*time.Millisecond)
	_ = p.Set(ctx, "keep", []byte("y"), 0)

	deadline := time.Now().Add(500 * time.Millisecond)
	for p.Len() > 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := p.Len(); n != 1 {
		t.Fatalf("sweep did not prune expired entry, live=%d", n)
	}
	if _, ok, _ := p.Get(ctx, "keep"); !ok {
		t.Fatalf("unexpired entry must survive the sweep")
	}
}

func TestCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	p := New(time.Millisecond)
	if err := p.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(ctx); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
