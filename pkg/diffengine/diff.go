package diffengine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// FileDiff is one file's unified diff within a repository.
type FileDiff struct {
	Path string
	Text string
}

// ExtractDiffs produces per-file diffs for repoPath in the given mode.
// ref is only consulted for CompareToRef; it is ignored otherwise.
func ExtractDiffs(repoPath string, mode Mode, ref string) ([]FileDiff, error) {
	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("diffengine: open %q: %w", repoPath, err)
	}

	switch mode {
	case CompareToRef:
		return extractCompareToRef(repo, repoPath, ref)
	case IncludeStaged:
		return extractStaged(repo, repoPath)
	case IncludeUnstaged:
		return extractUnstaged(repo, repoPath)
	default:
		return nil, fmt.Errorf("diffengine: unknown mode %q", mode)
	}
}

func extractCompareToRef(repo *gogit.Repository, repoPath, ref string) ([]FileDiff, error) {
	refHash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, &InvalidRefError{Repo: repoPath, Ref: ref}
	}
	refCommit, err := repo.CommitObject(*refHash)
	if err != nil {
		return nil, &InvalidRefError{Repo: repoPath, Ref: ref}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD of %q: %w", repoPath, err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD commit of %q: %w", repoPath, err)
	}

	bases, err := refCommit.MergeBase(headCommit)
	if err != nil || len(bases) == 0 {
		// No common ancestor: fall back to a direct two-dot comparison
		// against ref itself.
		bases = []*object.Commit{refCommit}
	}
	baseTree, err := bases[0].Tree()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read base tree in %q: %w", repoPath, err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD tree in %q: %w", repoPath, err)
	}

	changes, err := baseTree.Diff(headTree)
	if err != nil {
		return nil, fmt.Errorf("diffengine: diff trees in %q: %w", repoPath, err)
	}

	var diffs []FileDiff
	for _, change := range changes {
		path, oldText, newText, err := changeContents(baseTree, headTree, change)
		if err != nil {
			continue
		}
		diffs = append(diffs, FileDiff{Path: path, Text: unifiedDiff(path, oldText, newText)})
	}
	return diffs, nil
}

func extractStaged(repo *gogit.Repository, repoPath string) ([]FileDiff, error) {
	status, err := GetStatus(repoPath)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD of %q: %w", repoPath, err)
	}
	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD commit of %q: %w", repoPath, err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD tree of %q: %w", repoPath, err)
	}

	var diffs []FileDiff
	for _, path := range status.Staged {
		oldText := treeFileContents(headTree, path)
		newText, err := indexFileContents(repo, path)
		if err != nil {
			continue
		}
		diffs = append(diffs, FileDiff{Path: path, Text: unifiedDiff(path, oldText, newText)})
	}
	return diffs, nil
}

func extractUnstaged(repo *gogit.Repository, repoPath string) ([]FileDiff, error) {
	status, err := GetStatus(repoPath)
	if err != nil {
		return nil, err
	}

	var diffs []FileDiff
	for _, path := range status.Unstaged {
		oldText, err := indexFileContents(repo, path)
		if err != nil {
			oldText = ""
		}
		newText, err := os.ReadFile(filepath.Join(repoPath, path))
		if err != nil {
			continue
		}
		diffs = append(diffs, FileDiff{Path: path, Text: unifiedDiff(path, oldText, string(newText))})
	}
	return diffs, nil
}

// changeContents resolves a tree change to its path and before/after
// text, treating additions and deletions as empty-string sides.
func changeContents(from, to *object.Tree, change *object.Change) (path, oldText, newText string, err error) {
	action, err := change.Action()
	if err != nil {
		return "", "", "", err
	}
	path = change.To.Name
	if path == "" {
		path = change.From.Name
	}

	switch action {
	case merkletrie.Insert:
		newText = treeFileContents(to, path)
	case merkletrie.Delete:
		oldText = treeFileContents(from, path)
	default:
		oldText = treeFileContents(from, path)
		newText = treeFileContents(to, path)
	}
	return path, oldText, newText, nil
}

// treeFileContents returns a file's text content within tree, or empty
// string if the path is absent (deletions, additions).
func treeFileContents(tree *object.Tree, path string) string {
	file, err := tree.File(path)
	if err != nil {
		return ""
	}
	content, err := file.Contents()
	if err != nil {
		return ""
	}
	return content
}

// indexFileContents reads a path's blob content as staged in the index.
func indexFileContents(repo *gogit.Repository, path string) (string, error) {
	idx, err := repo.Storer.Index()
	if err != nil {
		return "", err
	}
	entry, err := idx.Entry(path)
	if err != nil {
		return "", err
	}
	blob, err := repo.BlobObject(entry.Hash)
	if err != nil {
		return "", err
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", err
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// unifiedDiff renders a git-style unified diff for one file using
// diffmatchpatch's Myers-diff patch text, which carries the same @@
// hunk-header convention as `git diff` output.
func unifiedDiff(path, oldText, newText string) string {
	if oldText == newText {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(oldText, diffs)

	header := fmt.Sprintf("--- a/%s\n+++ b/%s\n", path, path)
	return header + dmp.PatchToText(patches)
}
