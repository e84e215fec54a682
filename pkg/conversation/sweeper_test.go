package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/mercator-hq/routecore/pkg/telemetry/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	t.Cleanup(func() { logger.Shutdown() })
	return logger
}

func TestSweeperServiceRunSweepRemovesExpiredEntries(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()
	_ = backend.SetWithTTL(ctx, "live", []byte("v"), time.Hour)
	_ = backend.SetWithTTL(ctx, "dead", []byte("v"), -time.Second)

	s, err := NewSweeperService(backend, SweepSchedule, testLogger(t))
	if err != nil {
		t.Fatalf("NewSweeperService: %v", err)
	}

	s.runSweep()

	if _, ok, _ := backend.Get(ctx, "live"); !ok {
		t.Fatal("runSweep removed a live entry")
	}
	if _, ok, _ := backend.Get(ctx, "dead"); ok {
		t.Fatal("runSweep left an expired entry in place")
	}
}

func TestSweeperServiceRunSweepOnNonSweeperBackendIsNoOp(t *testing.T) {
	backend := &nonSweepingBackend{Backend: NewMemoryBackend()}
	s, err := NewSweeperService(backend, SweepSchedule, testLogger(t))
	if err != nil {
		t.Fatalf("NewSweeperService: %v", err)
	}

	// Must not panic when the backend has no Sweep method.
	s.runSweep()
}

func TestNewSweeperServiceRejectsBadSchedule(t *testing.T) {
	_, err := NewSweeperService(NewMemoryBackend(), "not a cron expression", testLogger(t))
	if err == nil {
		t.Fatal("NewSweeperService accepted an invalid cron schedule")
	}
}

// nonSweepingBackend wraps a Backend without exposing Sweep, so the type
// assertion in runSweep fails and the backend is left untouched.
type nonSweepingBackend struct {
	Backend
}
