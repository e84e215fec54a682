package conversation

import (
	"context"
	"testing"
	"time"
)

func TestMemoryBackendGetSetRoundTrip(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	if err := b.SetWithTTL(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	value, ok, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(value) != "v" {
		t.Fatalf("Get returned (%q, %v), want (\"v\", true)", value, ok)
	}
}

func TestMemoryBackendGetMissingKey(t *testing.T) {
	b := NewMemoryBackend()
	_, ok, err := b.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported a missing key as present")
	}
}

func TestMemoryBackendExpiredEntryNotReturned(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	if err := b.SetWithTTL(ctx, "k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	_, ok, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get returned an already-expired entry")
	}
	exists, err := b.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("Exists reported an already-expired entry as present")
	}
}

func TestMemoryBackendZeroTTLNeverExpires(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	if err := b.SetWithTTL(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("SetWithTTL: %v", err)
	}
	_, ok, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get treated a zero-TTL entry as expired")
	}
}

func TestMemoryBackendDelete(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	_ = b.SetWithTTL(ctx, "k", []byte("v"), time.Hour)
	if err := b.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, _ := b.Get(ctx, "k")
	if ok {
		t.Fatal("Get returned a value after Delete")
	}
	if err := b.Delete(ctx, "already-gone"); err != nil {
		t.Fatalf("Delete of a missing key should not error: %v", err)
	}
}

func TestMemoryBackendSweepRemovesOnlyExpired(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()
	_ = b.SetWithTTL(ctx, "live", []byte("v"), time.Hour)
	_ = b.SetWithTTL(ctx, "dead1", []byte("v"), -time.Second)
	_ = b.SetWithTTL(ctx, "dead2", []byte("v"), -time.Minute)

	removed, err := b.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 2 {
		t.Fatalf("Sweep removed %d entries, want 2", removed)
	}
	if _, ok, _ := b.Get(ctx, "live"); !ok {
		t.Fatal("Sweep removed a live entry")
	}
}
