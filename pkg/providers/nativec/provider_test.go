package nativec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mercator-hq/routecore/pkg/providers"
)

func TestGenerateResolvesAliasAndSendsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"spark reply"},"finish_reason":"stop"}],"usage":{"total_tokens":9}}`))
	}))
	defer srv.Close()

	cfg := providers.ProviderConfig{Name: "nativec", BaseURL: srv.URL, APIKey: "k", Timeout: 5 * time.Second, MaxRetries: 1}
	p := New(cfg, nil)
	defer p.Close()

	result, err := p.Generate(context.Background(), "spark-fast", providers.GenerateRequest{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.ModelName != "spark-3-fast" {
		t.Errorf("ModelName = %q, want spark-3-fast", result.ModelName)
	}
	if result.Content != "spark reply" {
		t.Errorf("Content = %q, want spark reply", result.Content)
	}
}

func TestGenerateUnknownModel(t *testing.T) {
	cfg := providers.ProviderConfig{Name: "nativec", BaseURL: "http://example.invalid", APIKey: "k", Timeout: 5 * time.Second}
	p := New(cfg, nil)
	defer p.Close()

	_, err := p.Generate(context.Background(), "nonexistent", providers.GenerateRequest{Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if _, ok := err.(*providers.ModelNotFoundError); !ok {
		t.Errorf("expected ModelNotFoundError, got %T", err)
	}
}
