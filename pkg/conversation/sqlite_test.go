package conversation

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "conversation.db")
	b, err := NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteBackend: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestSQLiteBackendGetSetRoundTrip(t *testing.T) {
	b := newTestSQLiteBackend(t)
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

func TestSQLiteBackendUpsertReplacesValue(t *testing.T) {
	b := newTestSQLiteBackend(t)
	ctx := context.Background()

	_ = b.SetWithTTL(ctx, "k", []byte("first"), time.Hour)
	_ = b.SetWithTTL(ctx, "k", []byte("second"), time.Hour)

	value, ok, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || string(value) != "second" {
		t.Fatalf("Get returned (%q, %v), want (\"second\", true)", value, ok)
	}
}

func TestSQLiteBackendExpiredEntryNotReturned(t *testing.T) {
	b := newTestSQLiteBackend(t)
	ctx := context.Background()
	_ = b.SetWithTTL(ctx, "k", []byte("v"), -time.Second)

	_, ok, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get returned an already-expired entry")
	}
}

func TestSQLiteBackendDelete(t *testing.T) {
	b := newTestSQLiteBackend(t)
	ctx := context.Background()
	_ = b.SetWithTTL(ctx, "k", []byte("v"), time.Hour)

	if err := b.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := b.Get(ctx, "k"); ok {
		t.Fatal("Get returned a value after Delete")
	}
}

func TestSQLiteBackendSweepRemovesOnlyExpired(t *testing.T) {
	b := newTestSQLiteBackend(t)
	ctx := context.Background()
	_ = b.SetWithTTL(ctx, "live", []byte("v"), time.Hour)
	_ = b.SetWithTTL(ctx, "dead", []byte("v"), -time.Second)

	removed, err := b.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Sweep removed %d entries, want 1", removed)
	}
	if _, ok, _ := b.Get(ctx, "live"); !ok {
		t.Fatal("Sweep removed a live entry")
	}
}

func TestSQLiteBackendEmptyPathRejected(t *testing.T) {
	if _, err := NewSQLiteBackend(""); err == nil {
		t.Fatal("NewSQLiteBackend(\"\") did not error")
	}
}
