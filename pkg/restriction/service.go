package restriction

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

// KnownModelLister is the subset of the provider interface restriction
// validation needs: the union of a provider's canonical names and
// aliases, lowercased.
type KnownModelLister interface {
	ListAllKnownModels() []string
}

// MetricsSink receives restriction-decision events from IsAllowed. It is
// satisfied structurally by *metrics.Collector.
type MetricsSink interface {
	RecordRestrictionDecision(provider, decision string, duration time.Duration)
	RecordRestrictionAllowed(provider string)
	RecordRestrictionDenied(provider string)
}

// Service is the process-wide restriction policy: a mapping from
// provider kind to an allow-set of lowercased model names. An empty or
// absent set means no restriction.
type Service struct {
	allowed map[capabilities.ProviderKind]map[string]bool
	metrics MetricsSink
}

// SetMetrics wires sink into IsAllowed's decision path. Passing nil
// disables metrics recording.
func (s *Service) SetMetrics(sink MetricsSink) {
	s.metrics = sink
}

// New builds a Service from per-provider-kind comma-separated allow-list
// strings, typically sourced from config.ProviderConfig.AllowedModels.
// Entries are lowercased and whitespace-trimmed; an entry that is empty
// or all-whitespace after trimming contributes nothing, matching the
// source's "all-whitespace entries ⇒ no restriction" behavior.
func New(allowLists map[capabilities.ProviderKind]string) *Service {
	s := &Service{allowed: make(map[capabilities.ProviderKind]map[string]bool)}

	for kind, csv := range allowLists {
		set := make(map[string]bool)
		for _, entry := range strings.Split(csv, ",") {
			cleaned := strings.ToLower(strings.TrimSpace(entry))
			if cleaned != "" {
				set[cleaned] = true
			}
		}
		if len(set) > 0 {
			s.allowed[kind] = set
		}
	}

	return s
}

// IsAllowed reports whether canonical (or original, if it resolved from a
// different alias) is permitted for kind. Resolution runs before this
// call; both the original caller-supplied token and the resolved
// canonical are tested against the allow-set, so an allow-list naming
// only an alias still grants access via its canonical and vice versa,
// but not via a *different* alias of the same canonical.
func (s *Service) IsAllowed(kind capabilities.ProviderKind, canonical string, original string) bool {
	start := time.Now()
	allowed := s.isAllowed(kind, canonical, original)

	if s.metrics != nil {
		provider := string(kind)
		decision := "deny"
		if allowed {
			decision = "allow"
			s.metrics.RecordRestrictionAllowed(provider)
		} else {
			s.metrics.RecordRestrictionDenied(provider)
		}
		s.metrics.RecordRestrictionDecision(provider, decision, time.Since(start))
	}

	return allowed
}

func (s *Service) isAllowed(kind capabilities.ProviderKind, canonical string, original string) bool {
	set, restricted := s.allowed[kind]
	if !restricted || len(set) == 0 {
		return true
	}

	if set[strings.ToLower(canonical)] {
		return true
	}
	if original != "" && !strings.EqualFold(original, canonical) && set[strings.ToLower(original)] {
		return true
	}
	return false
}

// Filter returns the subset of names allowed for kind.
func (s *Service) Filter(kind capabilities.ProviderKind, names []string) []string {
	set, restricted := s.allowed[kind]
	if !restricted || len(set) == 0 {
		return names
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		if set[strings.ToLower(n)] {
			out = append(out, n)
		}
	}
	return out
}

// HasRestrictions reports whether kind has a non-empty allow-list.
func (s *Service) HasRestrictions(kind capabilities.ProviderKind) bool {
	set, ok := s.allowed[kind]
	return ok && len(set) > 0
}

// ValidateAgainstKnown walks each restriction entry and returns a warning
// for every allow-listed name absent from the corresponding provider's
// known-model set. Validation never fails the caller; it only reports.
func (s *Service) ValidateAgainstKnown(providers map[capabilities.ProviderKind]KnownModelLister) []string {
	var warnings []string

	for kind, set := range s.allowed {
		provider, ok := providers[kind]
		if !ok {
			continue
		}

		known := make(map[string]bool)
		for _, n := range provider.ListAllKnownModels() {
			known[strings.ToLower(n)] = true
		}

		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)

		for _, name := range names {
			if !known[name] {
				warnings = append(warnings, fmt.Sprintf(
					"model %q allow-listed for provider %s is not a recognized model; check for typos", name, kind))
			}
		}
	}

	return warnings
}

// Summary returns, for every restricted provider, its sorted allow-list;
// providers with no restriction are omitted.
func (s *Service) Summary() map[capabilities.ProviderKind][]string {
	out := make(map[capabilities.ProviderKind][]string, len(s.allowed))
	for kind, set := range s.allowed {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[kind] = names
	}
	return out
}
