package main

import (
	"context"
	"testing"
	"time"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/config"
	"github.com/mercator-hq/routecore/pkg/registry"
	"github.com/mercator-hq/routecore/pkg/telemetry/logging"
)

func TestServeCommandExists(t *testing.T) {
	if serveCmd == nil {
		t.Fatal("serveCmd is nil")
	}
	if serveCmd.Use != "serve" {
		t.Errorf("serveCmd.Use = %q, want %q", serveCmd.Use, "serve")
	}
	if serveCmd.RunE == nil {
		t.Error("serveCmd.RunE should not be nil")
	}
}

func TestBuildRestrictionService(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.ProviderConfig{
			"nativea": {AllowedModels: "model-a-large, model-a-small"},
			"nativeb": {AllowedModels: ""},
		},
	}

	svc := buildRestrictionService(cfg)

	if !svc.HasRestrictions(capabilities.NativeA) {
		t.Error("expected nativea to be restricted")
	}
	if svc.HasRestrictions(capabilities.NativeB) {
		t.Error("expected nativeb to have no restriction (empty allow-list)")
	}
	if !svc.IsAllowed(capabilities.NativeA, "model-a-large", "model-a-large") {
		t.Error("expected model-a-large to be allowed for nativea")
	}
	if svc.IsAllowed(capabilities.NativeA, "model-a-huge", "model-a-huge") {
		t.Error("expected model-a-huge to be denied for nativea")
	}
}

func TestRegisterProvidersSkipsProvidersWithoutAPIKey(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.ProviderConfig{
			"nativea": {APIKey: ""},
			"nativeb": {APIKey: "test-key", Timeout: time.Second, MaxRetries: 1},
		},
	}
	svc := buildRestrictionService(cfg)
	logger := testLogger(t)

	reg := registry.New()
	count := registerProviders(context.Background(), reg, cfg, svc, nil, logger)

	if count != 1 {
		t.Errorf("registerProviders() count = %d, want 1", count)
	}
	if _, ok := reg.Provider(capabilities.NativeA); ok {
		t.Error("nativea should not be registered without an API key")
	}
	if _, ok := reg.Provider(capabilities.NativeB); !ok {
		t.Error("nativeb should be registered")
	}
}

func TestRegisterProvidersSkipsUnknownKind(t *testing.T) {
	cfg := &config.Config{
		Providers: map[string]config.ProviderConfig{
			"not-a-real-provider": {APIKey: "test-key"},
		},
	}
	svc := buildRestrictionService(cfg)
	logger := testLogger(t)

	reg := registry.New()
	count := registerProviders(context.Background(), reg, cfg, svc, nil, logger)

	if count != 0 {
		t.Errorf("registerProviders() count = %d, want 0", count)
	}
}

func TestBuildConversationBackendMemory(t *testing.T) {
	cfg := &config.Config{Conversation: config.ConversationConfig{Backend: "memory"}}

	backend, closeFn, err := buildConversationBackend(cfg)
	if err != nil {
		t.Fatalf("buildConversationBackend() error = %v", err)
	}
	defer closeFn()

	if backend == nil {
		t.Fatal("expected non-nil backend")
	}
}

func TestBuildConversationBackendSQLite(t *testing.T) {
	cfg := &config.Config{
		Conversation: config.ConversationConfig{
			Backend:    "sqlite",
			SQLitePath: ":memory:",
		},
	}

	backend, closeFn, err := buildConversationBackend(cfg)
	if err != nil {
		t.Fatalf("buildConversationBackend() error = %v", err)
	}
	defer closeFn()

	if backend == nil {
		t.Fatal("expected non-nil backend")
	}
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error", Format: "text"})
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	t.Cleanup(func() { logger.Shutdown() })
	return logger
}
