package diffengine

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Status is one repository's working state.
type Status struct {
	Path      string
	Branch    string
	Ahead     int
	Behind    int
	HasUpstream bool
	Staged    []string
	Unstaged  []string
	Untracked []string
}

// GetStatus opens repoPath and reports its current branch, ahead/behind
// counts versus its upstream (if one exists), and the three file sets.
func GetStatus(repoPath string) (*Status, error) {
	repo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("diffengine: open %q: %w", repoPath, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read HEAD of %q: %w", repoPath, err)
	}

	status := &Status{
		Path:   repoPath,
		Branch: head.Name().Short(),
	}

	if upstream, err := findUpstream(repo, head.Name()); err == nil && upstream != nil {
		status.HasUpstream = true
		ahead, behind, err := aheadBehind(repo, head.Hash(), upstream.Hash())
		if err == nil {
			status.Ahead = ahead
			status.Behind = behind
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read worktree of %q: %w", repoPath, err)
	}
	wtStatus, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("diffengine: read status of %q: %w", repoPath, err)
	}

	for file, fileStatus := range wtStatus {
		switch {
		case fileStatus.Staging == gogit.Untracked && fileStatus.Worktree == gogit.Untracked:
			status.Untracked = append(status.Untracked, file)
		case fileStatus.Staging != gogit.Unmodified && fileStatus.Staging != gogit.Untracked:
			status.Staged = append(status.Staged, file)
			if fileStatus.Worktree != gogit.Unmodified {
				status.Unstaged = append(status.Unstaged, file)
			}
		case fileStatus.Worktree != gogit.Unmodified:
			status.Unstaged = append(status.Unstaged, file)
		}
	}

	return status, nil
}

// findUpstream resolves the remote-tracking ref for localBranch, e.g.
// refs/heads/main → refs/remotes/origin/main. It returns nil (no error)
// if the branch has no configured remote-tracking ref.
func findUpstream(repo *gogit.Repository, localBranch plumbing.ReferenceName) (*plumbing.Reference, error) {
	cfg, err := repo.Config()
	if err != nil {
		return nil, err
	}
	branchCfg, ok := cfg.Branches[localBranch.Short()]
	if !ok || branchCfg.Remote == "" || branchCfg.Merge == "" {
		return nil, nil
	}
	remoteRef := plumbing.NewRemoteReferenceName(branchCfg.Remote, branchCfg.Merge.Short())
	return repo.Reference(remoteRef, true)
}

// aheadBehind counts commits reachable from local but not upstream
// (ahead) and vice versa (behind), via a bounded ancestor walk.
func aheadBehind(repo *gogit.Repository, local, upstream plumbing.Hash) (ahead, behind int, err error) {
	if local == upstream {
		return 0, 0, nil
	}

	localAncestors, err := ancestorSet(repo, local)
	if err != nil {
		return 0, 0, err
	}
	upstreamAncestors, err := ancestorSet(repo, upstream)
	if err != nil {
		return 0, 0, err
	}

	for hash := range localAncestors {
		if !upstreamAncestors[hash] {
			ahead++
		}
	}
	for hash := range upstreamAncestors {
		if !localAncestors[hash] {
			behind++
		}
	}
	return ahead, behind, nil
}

// ancestorSet collects every commit hash reachable from start via
// first-parent and merge-parent traversal.
func ancestorSet(repo *gogit.Repository, start plumbing.Hash) (map[plumbing.Hash]bool, error) {
	seen := make(map[plumbing.Hash]bool)
	queue := []plumbing.Hash{start}
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		if seen[hash] {
			continue
		}
		seen[hash] = true

		commit, err := repo.CommitObject(hash)
		if err != nil {
			continue
		}
		err = commit.Parents().ForEach(func(parent *object.Commit) error {
			if !seen[parent.Hash] {
				queue = append(queue, parent.Hash)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return seen, nil
}
