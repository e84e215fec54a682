package selection

import (
	"context"
	"testing"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/registry"
)

// stubProvider is a minimal providers.Provider backed by a fixed
// name -> ModelCapabilities table, for exercising Selector in isolation
// from any real wire protocol.
type stubProvider struct {
	kind  capabilities.ProviderKind
	table map[string]capabilities.ModelCapabilities
}

func (s *stubProvider) Kind() capabilities.ProviderKind { return s.kind }
func (s *stubProvider) Capabilities(name string) (capabilities.ModelCapabilities, bool) {
	c, ok := s.table[name]
	return c, ok
}
func (s *stubProvider) ListModels() []string {
	names := make([]string, 0, len(s.table))
	for n := range s.table {
		names = append(names, n)
	}
	return names
}
func (s *stubProvider) ListAllKnownModels() []string { return s.ListModels() }
func (s *stubProvider) Validate(name string) bool    { _, ok := s.table[name]; return ok }
func (s *stubProvider) ResolveModelName(name string) string { return name }
func (s *stubProvider) SupportsThinking(name string) bool {
	return s.table[name].SupportsExtendedThinking
}
func (s *stubProvider) EffectiveTemperature(name string, requested float64) (float64, bool) {
	return s.table[name].EffectiveTemperature(requested)
}
func (s *stubProvider) Generate(context.Context, string, providers.GenerateRequest) (providers.GenerateResult, error) {
	return providers.GenerateResult{}, nil
}
func (s *stubProvider) CountTokens(text string, _ string) int { return len(text) / 4 }
func (s *stubProvider) Close() error                          { return nil }

func nativeBStub() *stubProvider {
	return &stubProvider{
		kind: capabilities.NativeB,
		table: map[string]capabilities.ModelCapabilities{
			"vertex-flash-1": {Provider: capabilities.NativeB, CanonicalName: "vertex-flash-1", ContextWindow: 1_000_000, SupportsExtendedThinking: true},
			"vertex-pro-1":   {Provider: capabilities.NativeB, CanonicalName: "vertex-pro-1", ContextWindow: 2_000_000, SupportsExtendedThinking: true},
		},
	}
}

func nativeCStub() *stubProvider {
	return &stubProvider{
		kind: capabilities.NativeC,
		table: map[string]capabilities.ModelCapabilities{
			"spark-3":      {Provider: capabilities.NativeC, CanonicalName: "spark-3", ContextWindow: 131_072},
			"spark-3-fast": {Provider: capabilities.NativeC, CanonicalName: "spark-3-fast", ContextWindow: 131_072},
		},
	}
}

func TestSelectModelExtendedReasoningPrefersThinkingAndLargerContext(t *testing.T) {
	reg := registry.New()
	reg.Register(nativeBStub())

	kind, name, err := New(reg).SelectModel(ExtendedReasoning)
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if kind != capabilities.NativeB || name != "vertex-pro-1" {
		t.Errorf("got (%v, %q), want (NativeB, vertex-pro-1)", kind, name)
	}
}

func TestSelectModelFastResponsePrefersFastVariant(t *testing.T) {
	reg := registry.New()
	reg.Register(nativeCStub())

	kind, name, err := New(reg).SelectModel(FastResponse)
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if kind != capabilities.NativeC || name != "spark-3-fast" {
		t.Errorf("got (%v, %q), want (NativeC, spark-3-fast)", kind, name)
	}
}

func TestSelectModelBalancedFallsBackToFastResponse(t *testing.T) {
	reg := registry.New()
	reg.Register(nativeCStub())

	// Neither spark-3 nor spark-3-fast match a "balanced" indicator, so
	// rule 4 falls back to the FastResponse pick.
	kind, name, err := New(reg).SelectModel(Balanced)
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if kind != capabilities.NativeC || name != "spark-3-fast" {
		t.Errorf("got (%v, %q), want (NativeC, spark-3-fast)", kind, name)
	}
}

func TestSelectModelSkipsEmptyProvidersInPriorityOrder(t *testing.T) {
	reg := registry.New()
	reg.Register(&stubProvider{kind: capabilities.NativeA, table: map[string]capabilities.ModelCapabilities{}})
	reg.Register(nativeCStub())

	kind, _, err := New(reg).SelectModel(Balanced)
	if err != nil {
		t.Fatalf("SelectModel: %v", err)
	}
	if kind != capabilities.NativeC {
		t.Errorf("kind = %v, want NativeC (NativeA has no models and must be skipped)", kind)
	}
}

func TestSelectModelNoProvidersReturnsStructuredError(t *testing.T) {
	reg := registry.New()

	_, _, err := New(reg).SelectModel(FastResponse)
	if err == nil {
		t.Fatal("expected an error")
	}
	nae, ok := err.(*NoAcceptableModelError)
	if !ok {
		t.Fatalf("error type = %T, want *NoAcceptableModelError", err)
	}
	if nae.Category != FastResponse {
		t.Errorf("Category = %v, want FastResponse", nae.Category)
	}
}
