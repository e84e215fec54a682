// Package registry holds the set of configured providers and resolves
// which one serves a given model name. Resolution is
// priority-ordered (native providers first in capabilities.KindPriority
// order, then aggregator, then custom, then hosted) and purely a
// lookup: no provider is ever constructed or registered as a side
// effect of a failed resolution.
package registry
