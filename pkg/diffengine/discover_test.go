package diffengine

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"

	gogit "github.com/go-git/go-git/v5"
)

func initTestRepo(t *testing.T, dir string) *gogit.Repository {
	t.Helper()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return repo
}

func TestFindRepositoriesFindsNestedRepo(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "project", "service-a")
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	initTestRepo(t, repoDir)

	repos, err := FindRepositories(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("FindRepositories: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("FindRepositories returned %v, want 1 repo", repos)
	}
	resolved, _ := filepath.EvalSymlinks(repoDir)
	gotResolved, _ := filepath.EvalSymlinks(repos[0])
	if gotResolved != resolved {
		t.Fatalf("FindRepositories found %q, want %q", repos[0], repoDir)
	}
}

func TestFindRepositoriesDoesNotDescendIntoRepo(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "mono")
	if err := os.MkdirAll(filepath.Join(repoDir, "vendor", "nested"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	initTestRepo(t, repoDir)
	// A second .git buried inside the first repo's tree should not be
	// reported separately.
	initTestRepo(t, filepath.Join(repoDir, "vendor", "nested"))

	repos, err := FindRepositories(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("FindRepositories: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("FindRepositories returned %v, want exactly the outer repo", repos)
	}
}

func TestFindRepositoriesSkipsHiddenAndExcludedDirs(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".hidden", "repo"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	initTestRepo(t, filepath.Join(root, ".hidden", "repo"))
	if err := os.MkdirAll(filepath.Join(root, "node_modules", "repo"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	initTestRepo(t, filepath.Join(root, "node_modules", "repo"))

	repos, err := FindRepositories(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("FindRepositories: %v", err)
	}
	if len(repos) != 0 {
		t.Fatalf("FindRepositories returned %v, want none (hidden/excluded)", repos)
	}
}

func TestFindRepositoriesMultipleSiblings(t *testing.T) {
	root := t.TempDir()
	var want []string
	for _, name := range []string{"a", "b", "c"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		initTestRepo(t, dir)
		resolved, _ := filepath.EvalSymlinks(dir)
		want = append(want, resolved)
	}

	repos, err := FindRepositories(root, DefaultMaxDepth)
	if err != nil {
		t.Fatalf("FindRepositories: %v", err)
	}
	var got []string
	for _, r := range repos {
		resolved, _ := filepath.EvalSymlinks(r)
		got = append(got, resolved)
	}
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FindRepositories = %v, want %v", got, want)
	}
}
