package providers

import (
	"context"
	"strings"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Base implements every Provider method except Generate from a static
// capability Table and the restriction service, so each concrete
// back-end only needs to supply wire shaping and a kind-specific
// fallback for unknown models (the aggregator's generic-conservative
// record, for instance). Alias resolution here is pure: no I/O, no
// allocation of an HTTP client.
type Base struct {
	kind        capabilities.ProviderKind
	table       *capabilities.Table
	restriction *restriction.Service
	http        *HTTPProvider

	// Fallback, when set, supplies a capability record for a model name
	// the Table does not recognize, instead of reporting not-found. The
	// aggregator and custom providers use this for generic-conservative
	// capabilities; native providers leave it nil.
	Fallback func(nameOrAlias string) (capabilities.ModelCapabilities, bool)
}

// NewBase constructs a Base. http may be nil for providers that issue
// requests through a different transport (e.g. one cached per
// deployment, as Hosted does).
func NewBase(kind capabilities.ProviderKind, table *capabilities.Table, restrictionSvc *restriction.Service, http *HTTPProvider) *Base {
	return &Base{kind: kind, table: table, restriction: restrictionSvc, http: http}
}

func (b *Base) Kind() capabilities.ProviderKind { return b.kind }

func (b *Base) ResolveModelName(nameOrAlias string) string {
	return b.table.Resolve(nameOrAlias)
}

func (b *Base) Capabilities(nameOrAlias string) (capabilities.ModelCapabilities, bool) {
	if caps, ok := b.table.Get(nameOrAlias); ok {
		return caps, true
	}
	if b.Fallback != nil {
		return b.Fallback(nameOrAlias)
	}
	return capabilities.ModelCapabilities{}, false
}

func (b *Base) Validate(nameOrAlias string) bool {
	if _, ok := b.table.Get(nameOrAlias); ok {
		return true
	}
	return b.Fallback != nil
}

// ListModels returns canonical names allowed under the restriction
// service's current policy for this provider kind (aliases are
// never included).
func (b *Base) ListModels() []string {
	all := b.table.ListCanonical()
	if b.restriction == nil {
		return all
	}
	return b.restriction.Filter(b.kind, all)
}

func (b *Base) ListAllKnownModels() []string {
	return b.table.ListAllKnown()
}

func (b *Base) SupportsThinking(nameOrAlias string) bool {
	caps, ok := b.Capabilities(nameOrAlias)
	return ok && caps.SupportsExtendedThinking
}

func (b *Base) EffectiveTemperature(nameOrAlias string, requested float64) (float64, bool) {
	caps, ok := b.Capabilities(nameOrAlias)
	if !ok {
		return 0, false
	}
	return caps.EffectiveTemperature(requested)
}

func (b *Base) CountTokens(text string, nameOrAlias string) int {
	// Falls back to the 4-characters-per-token heuristic;
	// providers with an exact tokenizer override this by not embedding
	// Base's CountTokens, or by wrapping it.
	return len([]rune(text)) / 4
}

func (b *Base) Close() error {
	if b.http != nil {
		return b.http.Close()
	}
	return nil
}

// StartHealthChecker starts the underlying HTTPProvider's background
// health checker, when one exists. Hosted-style providers constructed
// with a nil HTTPProvider silently ignore this call.
func (b *Base) StartHealthChecker(ctx context.Context) {
	if b.http != nil {
		b.http.StartHealthChecker(ctx)
	}
}

// SetMetrics wires sink into the underlying HTTPProvider's retry/health
// event path, when one exists. Hosted-style providers constructed with a
// nil HTTPProvider silently ignore this call.
func (b *Base) SetMetrics(sink MetricsSink) {
	if b.http != nil {
		b.http.SetMetrics(sink)
	}
}

// CheckRestriction enforces the allow-list before a wire call: both the original
// caller-supplied token and the resolved canonical are tested. Concrete
// back-ends call this from Generate before shaping a wire request.
func (b *Base) CheckRestriction(canonical, original string) error {
	if b.restriction == nil {
		return nil
	}
	if b.restriction.IsAllowed(b.kind, canonical, original) {
		return nil
	}
	return &PolicyError{Provider: string(b.kind), Model: original}
}

// StripTag removes a trailing ":tag" suffix (e.g. "llama3:8b" ->
// "llama3"), used by the Custom provider to normalize names before
// lookup.
func StripTag(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[:i]
	}
	return name
}
