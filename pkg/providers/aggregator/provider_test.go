package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mercator-hq/routecore/pkg/providers"
)

func writeRegistry(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "custom_models.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestGenerateUnknownModelUsesGenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"proxied"},"finish_reason":"stop"}],"usage":{}}`))
	}))
	defer srv.Close()

	cfg := providers.ProviderConfig{Name: "aggregator", BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second, MaxRetries: 1}
	p, err := New(cfg, "", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	result, err := p.Generate(context.Background(), "some-unlisted-model", providers.GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Content != "proxied" {
		t.Errorf("Content = %q, want proxied", result.Content)
	}
}

func TestGenerateRegistryKnownModel(t *testing.T) {
	registryPath := writeRegistry(t, `[{"canonical_name":"community-70b","aliases":["c70b"],"context_window":32768,"supports_system_prompt":true,"supports_streaming":true,"supports_temperature":true,"temperature_constraint":"range","is_custom":true}]`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],"usage":{}}`))
	}))
	defer srv.Close()

	cfg := providers.ProviderConfig{Name: "aggregator", BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second, MaxRetries: 1}
	p, err := New(cfg, registryPath, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if got := p.ResolveModelName("c70b"); got != "community-70b" {
		t.Errorf("ResolveModelName(c70b) = %q, want community-70b", got)
	}
}

func TestNewRejectsMalformedRegistry(t *testing.T) {
	registryPath := writeRegistry(t, `not json`)
	cfg := providers.ProviderConfig{Name: "aggregator", BaseURL: "http://example.invalid", APIKey: "k"}
	if _, err := New(cfg, registryPath, nil); err == nil {
		t.Fatal("expected malformed registry to fail New")
	}
}
