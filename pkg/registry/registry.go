package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
)

// Registry holds at most one provider instance per ProviderKind and
// resolves model names against them in priority order. It is
// thread-safe; registration and lookup may interleave freely.
type Registry struct {
	mu        sync.RWMutex
	providers map[capabilities.ProviderKind]providers.Provider
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{providers: make(map[capabilities.ProviderKind]providers.Provider)}
}

// Register adds or replaces the provider instance for its kind. If a
// provider already occupies that kind, it is closed first.
func (r *Registry) Register(p providers.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.providers[p.Kind()]; ok {
		_ = existing.Close()
	}
	r.providers[p.Kind()] = p
}

// Provider returns the registered provider for kind, if any.
func (r *Registry) Provider(kind capabilities.ProviderKind) (providers.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[kind]
	return p, ok
}

// ProviderForModel resolves nameOrAlias to the first registered
// provider, in capabilities.KindPriority order, that recognizes it.
// Resolution performs no registration side effects: an unresolved name
// simply returns false.
func (r *Registry) ProviderForModel(nameOrAlias string) (providers.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, kind := range capabilities.KindPriority {
		p, ok := r.providers[kind]
		if !ok {
			continue
		}
		if p.Validate(nameOrAlias) {
			return p, true
		}
	}
	return nil, false
}

// AvailableProviders returns the kinds currently registered, in
// priority order.
func (r *Registry) AvailableProviders() []capabilities.ProviderKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []capabilities.ProviderKind
	for _, kind := range capabilities.KindPriority {
		if _, ok := r.providers[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}

// AvailableModels returns every provider's ListModels, keyed by kind.
func (r *Registry) AvailableModels() map[capabilities.ProviderKind][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[capabilities.ProviderKind][]string, len(r.providers))
	for kind, p := range r.providers {
		out[kind] = p.ListModels()
	}
	return out
}

// PreferredFallback returns the alphabetically first model of the
// highest-priority registered provider that lists at least one model
// (providers with no models are skipped), used to pick a default when a
// caller specifies no model and no auto-mode rule applies.
func (r *Registry) PreferredFallback() (providers.Provider, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, kind := range capabilities.KindPriority {
		p, ok := r.providers[kind]
		if !ok {
			continue
		}
		models := p.ListModels()
		if len(models) == 0 {
			continue
		}
		sort.Strings(models)
		return p, models[0], true
	}
	return nil, "", false
}

// Clear closes and removes every registered provider.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for kind, p := range r.providers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing provider %s: %w", kind, err))
		}
	}
	r.providers = make(map[capabilities.ProviderKind]providers.Provider)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing registry: %v", errs)
	}
	return nil
}
