package selection

import (
	"sort"
	"strings"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/registry"
)

// fastIndicators and balancedIndicators classify a model's speed/quality
// variant from its canonical name, the way the concrete provider tables
// name their models (e.g. nativeb's "vertex-flash-1" vs "vertex-pro-1",
// nativec's "spark-3-fast"). ModelCapabilities carries no explicit
// variant tag, so this substring heuristic stands in for one; see
// DESIGN.md's selection entry for why a dedicated field was rejected.
var fastIndicators = []string{"fast", "flash", "mini", "lite", "turbo"}
var balancedIndicators = []string{"pro", "flagship", "balanced", "core"}

type variant int

const (
	variantNone variant = iota
	variantFast
	variantBalanced
)

func classifyVariant(canonicalName string) variant {
	lower := strings.ToLower(canonicalName)
	for _, ind := range fastIndicators {
		if strings.Contains(lower, ind) {
			return variantFast
		}
	}
	for _, ind := range balancedIndicators {
		if strings.Contains(lower, ind) {
			return variantBalanced
		}
	}
	return variantNone
}

// Selector resolves a ToolModelCategory to a concrete model, deferring
// to a registry.Registry for the set of configured providers and their
// restriction-filtered model lists.
type Selector struct {
	registry *registry.Registry
}

// New returns a Selector backed by reg.
func New(reg *registry.Registry) *Selector {
	return &Selector{registry: reg}
}

// candidate pairs a model's canonical name with its capability record.
type candidate struct {
	name string
	caps capabilities.ModelCapabilities
}

// SelectModel picks a model for category deterministically: scan
// providers in capabilities.KindPriority order; the first provider with
// any restriction-allowed models wins, and the category rule picks one
// model from that provider's list. It never mixes models across
// providers, and it performs no side effects on a miss.
func (s *Selector) SelectModel(category ToolModelCategory) (capabilities.ProviderKind, string, error) {
	for _, kind := range capabilities.KindPriority {
		p, ok := s.registry.Provider(kind)
		if !ok {
			continue
		}
		models := p.ListModels()
		if len(models) == 0 {
			continue
		}

		candidates := make([]candidate, 0, len(models))
		for _, name := range models {
			caps, ok := p.Capabilities(name)
			if !ok {
				continue
			}
			candidates = append(candidates, candidate{name: name, caps: caps})
		}
		if len(candidates) == 0 {
			continue
		}

		picked := pickForCategory(category, candidates)
		return kind, picked, nil
	}

	return "", "", &NoAcceptableModelError{Category: category, AvailableModels: allModels(s.registry)}
}

func pickForCategory(category ToolModelCategory, candidates []candidate) string {
	switch category {
	case ExtendedReasoning:
		pool := filterVariant(candidates, func(c candidate) bool { return c.caps.SupportsExtendedThinking })
		if len(pool) == 0 {
			pool = candidates
		}
		return bestByContextWindow(pool, true)

	case Balanced:
		pool := filterVariant(candidates, func(c candidate) bool { return classifyVariant(c.name) == variantBalanced })
		if len(pool) > 0 {
			return bestByContextWindow(pool, true)
		}
		return pickForCategory(FastResponse, candidates)

	case FastResponse:
		fallthrough
	default:
		pool := filterVariant(candidates, func(c candidate) bool { return classifyVariant(c.name) == variantFast })
		if len(pool) == 0 {
			pool = candidates
		}
		return bestByContextWindow(pool, false)
	}
}

func filterVariant(candidates []candidate, keep func(candidate) bool) []candidate {
	var out []candidate
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// bestByContextWindow picks the largest (descending=true) or smallest
// (descending=false) context window, breaking ties alphabetically by
// canonical name for determinism.
func bestByContextWindow(candidates []candidate, descending bool) string {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].caps.ContextWindow != sorted[j].caps.ContextWindow {
			if descending {
				return sorted[i].caps.ContextWindow > sorted[j].caps.ContextWindow
			}
			return sorted[i].caps.ContextWindow < sorted[j].caps.ContextWindow
		}
		return sorted[i].name < sorted[j].name
	})
	return sorted[0].name
}

// allModels flattens every registered provider's ListModels for the
// NoAcceptableModelError message, in priority order.
func allModels(reg *registry.Registry) []string {
	var out []string
	for _, kind := range capabilities.KindPriority {
		p, ok := reg.Provider(kind)
		if !ok {
			continue
		}
		out = append(out, p.ListModels()...)
	}
	return out
}
