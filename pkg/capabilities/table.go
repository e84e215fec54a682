package capabilities

import "fmt"

// Table is a static, per-provider lookup of ModelCapabilities by
// canonical name and alias. It replaces the source's dynamic
// class-attribute lookup of SUPPORTED_MODELS with a built-at-
// construction map; resolution is a pure, allocation-free lookup.
type Table struct {
	kind      ProviderKind
	models    []ModelCapabilities
	byName    map[string]*ModelCapabilities // lowercased canonical -> model
	aliasToCn map[string]string             // lowercased alias -> lowercased canonical
}

// NewTable builds a Table from a fixed list of model capability records,
// validating the construction invariants: canonical names unique within the
// provider, and no alias colliding with a different model's canonical or
// alias. A violation is a hard configuration error, returned rather than
// panicking so callers can fail startup cleanly.
func NewTable(kind ProviderKind, models []ModelCapabilities) (*Table, error) {
	t := &Table{
		kind:      kind,
		models:    models,
		byName:    make(map[string]*ModelCapabilities, len(models)),
		aliasToCn: make(map[string]string),
	}

	for i := range models {
		m := &models[i]
		cn := lowerASCII(m.CanonicalName)
		if cn == "" {
			return nil, fmt.Errorf("capabilities: model with empty canonical_name in provider %s", kind)
		}
		if _, dup := t.byName[cn]; dup {
			return nil, fmt.Errorf("capabilities: duplicate canonical_name %q in provider %s", m.CanonicalName, kind)
		}
		t.byName[cn] = m

		for _, alias := range m.Aliases {
			a := lowerASCII(alias)
			if a == "" {
				continue
			}
			if existing, dup := t.aliasToCn[a]; dup && existing != cn {
				return nil, fmt.Errorf("capabilities: duplicate alias %q maps to both %q and %q in provider %s", alias, existing, cn, kind)
			}
			t.aliasToCn[a] = cn
		}
	}

	return t, nil
}

// Resolve returns the canonical name for nameOrAlias, case-insensitively.
// Unknown input is returned unchanged rather than erroring, matching the
// Provider.ResolveModelName contract.
func (t *Table) Resolve(nameOrAlias string) string {
	lower := lowerASCII(nameOrAlias)
	if _, ok := t.byName[lower]; ok {
		return t.byName[lower].CanonicalName
	}
	if cn, ok := t.aliasToCn[lower]; ok {
		return t.byName[cn].CanonicalName
	}
	return nameOrAlias
}

// Get returns the capability record for nameOrAlias after resolution, and
// whether it was found.
func (t *Table) Get(nameOrAlias string) (ModelCapabilities, bool) {
	lower := lowerASCII(nameOrAlias)
	if m, ok := t.byName[lower]; ok {
		return *m, true
	}
	if cn, ok := t.aliasToCn[lower]; ok {
		return *t.byName[cn], true
	}
	return ModelCapabilities{}, false
}

// ListCanonical returns every canonical name in the table, in the order
// models were registered.
func (t *Table) ListCanonical() []string {
	out := make([]string, len(t.models))
	for i, m := range t.models {
		out[i] = m.CanonicalName
	}
	return out
}

// ListAllKnown returns canonicals ∪ aliases, lowercased, with no
// duplicates; used only by restriction validation so that an
// administrator naming a target model in an allow-list is never falsely
// warned about.
func (t *Table) ListAllKnown() []string {
	seen := make(map[string]bool, len(t.byName)+len(t.aliasToCn))
	var out []string
	for _, m := range t.models {
		for _, n := range m.knownNames() {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Len reports how many models the table holds.
func (t *Table) Len() int { return len(t.models) }
