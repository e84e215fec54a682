package context

import "path/filepath"

// NewFiles returns the subset of requested that is not already present
// in embedded, after normalizing every path. Order is
// preserved from requested with duplicates collapsed.
func NewFiles(requested []string, embedded map[string]bool) []string {
	seen := make(map[string]bool, len(requested))
	out := make([]string, 0, len(requested))
	for _, path := range requested {
		norm := filepath.Clean(path)
		if embedded[norm] || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}

// DedupeSlots embeds a file at most once across multiple named request
// slots (e.g. "files" and "test_examples"), keeping the first slot in
// precedence order that names it. The return value maps slot name to
// the subset of its original paths that should actually be read.
func DedupeSlots(slotOrder []string, slots map[string][]string) map[string][]string {
	claimed := make(map[string]bool)
	out := make(map[string][]string, len(slotOrder))
	for _, name := range slotOrder {
		paths := slots[name]
		kept := make([]string, 0, len(paths))
		for _, path := range paths {
			norm := filepath.Clean(path)
			if claimed[norm] {
				continue
			}
			claimed[norm] = true
			kept = append(kept, norm)
		}
		out[name] = kept
	}
	return out
}
