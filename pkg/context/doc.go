// Package context assembles the prompt text passed to a provider for
// each tool call: it dedups requested files against a
// continuation thread's already-embedded set, computes the content
// budget from the selected model's context window, optionally splits
// that budget across named sub-regions, packs files via pkg/sandbox,
// and prepends a compact summary of prior turns.
package context
