package nativea

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

func newTestProvider(t *testing.T, serverURL string) *Provider {
	t.Helper()
	cfg := providers.ProviderConfig{
		Name:       "nativea",
		BaseURL:    serverURL,
		APIKey:     "test-key",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
	return New(cfg, nil)
}

func TestResolveAndValidate(t *testing.T) {
	p := newTestProvider(t, "http://example.invalid")
	defer p.Close()

	if got := p.ResolveModelName("core"); got != "chat-core-4.1" {
		t.Errorf("ResolveModelName(core) = %q, want chat-core-4.1", got)
	}
	if !p.Validate("r1-mini") {
		t.Error("expected r1-mini alias to validate")
	}
}

func TestGenerateOmitsTemperatureForReasoningModel(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":2,"total_tokens":7}}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	defer p.Close()

	result, err := p.Generate(context.Background(), "r1", providers.GenerateRequest{Prompt: "hello", Temperature: 0.9})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Content != "hi" {
		t.Errorf("Content = %q, want hi", result.Content)
	}
	if _, present := captured["temperature"]; present {
		t.Error("expected temperature to be omitted for a fixed-temperature reasoning model")
	}
}

func TestGenerateIncludesTemperatureForGeneralModel(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],"usage":{}}`))
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL)
	defer p.Close()

	_, err := p.Generate(context.Background(), "core", providers.GenerateRequest{Prompt: "hello", Temperature: 1.4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if temp, ok := captured["temperature"].(float64); !ok || temp != 1.4 {
		t.Errorf("temperature = %v, want 1.4", captured["temperature"])
	}
}

func TestGenerateDeniedByRestriction(t *testing.T) {
	cfg := providers.ProviderConfig{Name: "nativea", BaseURL: "http://example.invalid", APIKey: "k", Timeout: 5 * time.Second}
	svc := restriction.New(map[capabilities.ProviderKind]string{capabilities.NativeA: "chat-core-4.1"})
	p := New(cfg, svc)
	defer p.Close()

	_, err := p.Generate(context.Background(), "r1", providers.GenerateRequest{Prompt: "hello"})
	if err == nil {
		t.Fatal("expected restriction to deny r1")
	}
	if _, ok := err.(*providers.PolicyError); !ok {
		t.Errorf("expected PolicyError, got %T", err)
	}
}
