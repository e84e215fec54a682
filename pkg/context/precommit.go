package context

import (
	"fmt"
	"strings"

	"github.com/mercator-hq/routecore/pkg/diffengine"
	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// DiffOptions requests a precommit-style diff section be woven into the
// assembled prompt ahead of file context. Root is
// walked for nested repositories; Mode/CompareRef select one of
// diffengine's three extraction strategies.
type DiffOptions struct {
	Root       string
	Mode       diffengine.Mode
	CompareRef string
	MaxDepth   int
}

// RepoSummary is the per-repository line attached alongside its packed
// diffs, covering the repository-status fields that the prompt
// itself needs to surface (branch, ahead/behind, file-set sizes).
type RepoSummary struct {
	Path      string
	Branch    string
	Ahead     int
	Behind    int
	Staged    int
	Unstaged  int
	Untracked int
	Error     string
}

// buildDiffSection discovers repositories under opts.Root, extracts and
// packs their diffs under diffBudget, and renders a summary line per
// repository. A repository whose ref fails to resolve (CompareToRef
// only) is recorded with an error and skipped rather than aborting the
// whole section.
func buildDiffSection(opts DiffOptions, diffBudget int) (string, []RepoSummary, int) {
	repos, err := diffengine.FindRepositories(opts.Root, opts.MaxDepth)
	if err != nil || len(repos) == 0 {
		return "", nil, diffBudget
	}

	var b strings.Builder
	summaries := make([]RepoSummary, 0, len(repos))
	remaining := diffBudget

	for _, repoPath := range repos {
		label := repoLabel(repoPath, opts.Root)
		summary := RepoSummary{Path: repoPath}

		status, err := diffengine.GetStatus(repoPath)
		if err == nil {
			summary.Branch = status.Branch
			summary.Ahead = status.Ahead
			summary.Behind = status.Behind
			summary.Staged = len(status.Staged)
			summary.Unstaged = len(status.Unstaged)
			summary.Untracked = len(status.Untracked)
		}

		diffs, err := diffengine.ExtractDiffs(repoPath, opts.Mode, opts.CompareRef)
		if err != nil {
			summary.Error = err.Error()
			summaries = append(summaries, summary)
			continue
		}

		packed := diffengine.PackDiffs(label, diffs, opts.Mode, remaining)
		b.WriteString(packed.Content)
		remaining -= sandbox.EstimateTokens(packed.Content)
		if remaining < 0 {
			remaining = 0
		}
		if len(packed.FilesOmitted) > 0 {
			summary.Error = fmt.Sprintf("%d file(s) omitted over diff budget", len(packed.FilesOmitted))
		}
		summaries = append(summaries, summary)
	}

	b.WriteString("\n")
	b.WriteString(renderRepoSummaries(summaries))
	return b.String(), summaries, remaining
}

// repoLabel renders repoPath relative to root when possible, falling
// back to the absolute path (BEGIN/END DIFF markers use "<repo>/<file>").
func repoLabel(repoPath, root string) string {
	if rel := strings.TrimPrefix(repoPath, root); rel != repoPath {
		rel = strings.TrimPrefix(rel, "/")
		if rel != "" {
			return rel
		}
	}
	return repoPath
}

func renderRepoSummaries(summaries []RepoSummary) string {
	if len(summaries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("--- REPOSITORY SUMMARY ---\n")
	for _, s := range summaries {
		if s.Error != "" {
			fmt.Fprintf(&b, "%s: branch=%s error=%s\n", s.Path, s.Branch, s.Error)
			continue
		}
		fmt.Fprintf(&b, "%s: branch=%s ahead=%d behind=%d staged=%d unstaged=%d untracked=%d\n",
			s.Path, s.Branch, s.Ahead, s.Behind, s.Staged, s.Unstaged, s.Untracked)
	}
	return b.String()
}
