// Package diffengine discovers Git repositories under a root directory,
// reports per-repository status, and extracts per-file diffs in three
// modes (compare-to-ref, staged, unstaged). Diffs are produced
// with go-git rather than by shelling out to the git binary.
package diffengine
