package diffengine

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// DefaultMaxDepth bounds how deep FindRepositories descends before
// giving up on a subtree.
const DefaultMaxDepth = 5

// FindRepositories walks root up to maxDepth levels deep and returns the
// absolute path of every directory containing a ".git" metadata
// directory. A repository's subtree is not descended further once
// found; nested repositories (submodules checked out as plain
// directories) are not reported separately. Hidden directories and
// pkg/sandbox.ExcludedDirs entries are skipped.
func FindRepositories(root string, maxDepth int) ([]string, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var repos []string
	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if isGitRepository(dir) {
			repos = append(repos, dir)
			return nil
		}
		if depth >= maxDepth {
			return nil
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") || sandbox.ExcludedDirs[name] {
				continue
			}
			if err := walk(filepath.Join(dir, name), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(absRoot, 0); err != nil {
		return nil, err
	}
	return repos, nil
}

func isGitRepository(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}
