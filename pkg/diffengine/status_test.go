package diffengine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetStatusReportsBranchAndCleanTree(t *testing.T) {
	dir := t.TempDir()
	repo := initTestRepo(t, dir)
	writeAndCommit(t, repo, dir, "a.go", "package a\n", "initial")

	status, err := GetStatus(dir)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Branch == "" {
		t.Fatal("GetStatus returned an empty branch name")
	}
	if len(status.Staged) != 0 || len(status.Unstaged) != 0 || len(status.Untracked) != 0 {
		t.Fatalf("GetStatus on a clean tree = %+v, want all empty", status)
	}
}

func TestGetStatusReportsStagedUnstagedUntracked(t *testing.T) {
	dir := t.TempDir()
	repo := initTestRepo(t, dir)
	writeAndCommit(t, repo, dir, "a.go", "package a\n", "initial")

	// Staged: a new file added to the index.
	stageFile(t, repo, dir, "b.go", "package b\n")
	// Untracked: a file on disk that was never added.
	if err := os.WriteFile(filepath.Join(dir, "c.go"), []byte("package c\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Unstaged: modify the already-committed file without staging it.
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n\nvar X = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	status, err := GetStatus(dir)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !contains(status.Staged, "b.go") {
		t.Fatalf("Staged = %v, want to include b.go", status.Staged)
	}
	if !contains(status.Untracked, "c.go") {
		t.Fatalf("Untracked = %v, want to include c.go", status.Untracked)
	}
	if !contains(status.Unstaged, "a.go") {
		t.Fatalf("Unstaged = %v, want to include a.go", status.Unstaged)
	}
}

func TestGetStatusNoUpstreamReportsZero(t *testing.T) {
	dir := t.TempDir()
	repo := initTestRepo(t, dir)
	writeAndCommit(t, repo, dir, "a.go", "package a\n", "initial")

	status, err := GetStatus(dir)
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.HasUpstream {
		t.Fatal("GetStatus reported an upstream for a repo with no remote")
	}
	if status.Ahead != 0 || status.Behind != 0 {
		t.Fatalf("GetStatus ahead/behind = %d/%d, want 0/0 with no upstream", status.Ahead, status.Behind)
	}
}

func contains(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
