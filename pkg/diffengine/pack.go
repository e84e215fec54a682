package diffengine

import (
	"fmt"
	"strings"

	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// DiffBudgetReserve is subtracted from a model's context window to
// leave headroom for the prompt and reply when packing diffs.
const DiffBudgetReserve = 50000

// PackedDiffs is the result of budgeting a repository's diffs into a
// prompt-ready blob.
type PackedDiffs struct {
	Content        string
	FilesIncluded  []string
	FilesOmitted   []string
}

// PackDiffs wraps each diff with BEGIN/END DIFF markers and accumulates
// them until the budget would be exceeded; remaining diffs are omitted
// and counted in a trailing summary line. Diffs are never line-numbered:
// the wire format already carries @@ hunk markers, and a line-number
// prefix would corrupt them.
func PackDiffs(repoLabel string, diffs []FileDiff, mode Mode, budget int) PackedDiffs {
	var b strings.Builder
	var included, omitted []string
	used := 0

	for _, diff := range diffs {
		if diff.Text == "" {
			continue
		}
		wrapped := fmt.Sprintf("--- BEGIN DIFF: %s/%s (%s) ---\n%s\n--- END DIFF: %s/%s ---\n",
			repoLabel, diff.Path, mode, diff.Text, repoLabel, diff.Path)
		cost := sandbox.EstimateTokens(wrapped)

		if used+cost > budget {
			omitted = append(omitted, diff.Path)
			continue
		}
		b.WriteString(wrapped)
		used += cost
		included = append(included, diff.Path)
	}

	if len(omitted) > 0 {
		b.WriteString(fmt.Sprintf("\n[%d file(s) omitted: over the diff budget]\n", len(omitted)))
	}

	return PackedDiffs{
		Content:       b.String(),
		FilesIncluded: included,
		FilesOmitted:  omitted,
	}
}

// DiffBudget returns the token budget available for packing diffs given
// a model's context window.
func DiffBudget(contextWindow int) int {
	budget := contextWindow - DiffBudgetReserve
	if budget < 0 {
		return 0
	}
	return budget
}
