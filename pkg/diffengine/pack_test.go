package diffengine

import (
	"strings"
	"testing"
)

func TestPackDiffsWrapsWithBeginEndMarkers(t *testing.T) {
	diffs := []FileDiff{{Path: "a.go", Text: "@@ -1 +1 @@\n-old\n+new\n"}}
	result := PackDiffs("myrepo", diffs, IncludeStaged, 100000)

	if !strings.Contains(result.Content, "--- BEGIN DIFF: myrepo/a.go (include_staged) ---") {
		t.Fatalf("Content missing BEGIN marker: %q", result.Content)
	}
	if !strings.Contains(result.Content, "--- END DIFF: myrepo/a.go ---") {
		t.Fatalf("Content missing END marker: %q", result.Content)
	}
	if len(result.FilesIncluded) != 1 || result.FilesIncluded[0] != "a.go" {
		t.Fatalf("FilesIncluded = %v, want [a.go]", result.FilesIncluded)
	}
}

func TestPackDiffsOmitsOverBudgetDiffsWithSummary(t *testing.T) {
	diffs := []FileDiff{
		{Path: "a.go", Text: strings.Repeat("x", 4000)},
		{Path: "b.go", Text: strings.Repeat("y", 4000)},
	}
	// First diff alone costs roughly 1000 tokens (4 chars/token); budget
	// only fits one.
	result := PackDiffs("myrepo", diffs, IncludeStaged, 1100)

	if len(result.FilesIncluded) != 1 {
		t.Fatalf("FilesIncluded = %v, want exactly one file to fit", result.FilesIncluded)
	}
	if len(result.FilesOmitted) != 1 || result.FilesOmitted[0] != "b.go" {
		t.Fatalf("FilesOmitted = %v, want [b.go]", result.FilesOmitted)
	}
	if !strings.Contains(result.Content, "1 file(s) omitted") {
		t.Fatalf("Content missing omitted-files summary: %q", result.Content)
	}
}

func TestPackDiffsSkipsEmptyDiffText(t *testing.T) {
	diffs := []FileDiff{{Path: "unchanged.go", Text: ""}}
	result := PackDiffs("myrepo", diffs, IncludeStaged, 100000)
	if len(result.FilesIncluded) != 0 {
		t.Fatalf("FilesIncluded = %v, want none for an empty diff", result.FilesIncluded)
	}
}

func TestDiffBudgetSubtractsReserve(t *testing.T) {
	if got := DiffBudget(100000); got != 50000 {
		t.Fatalf("DiffBudget(100000) = %d, want 50000", got)
	}
	if got := DiffBudget(10000); got != 0 {
		t.Fatalf("DiffBudget(10000) = %d, want 0 (clamped)", got)
	}
}
