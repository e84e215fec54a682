package sandbox

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandPaths walks paths (files are taken as-is, directories are
// walked recursively) and returns the individual file paths found,
// de-duplicated and sorted for determinism. extensions filters
// which files a directory walk admits; nil defaults to CodeExtensions.
// Direct file arguments are never extension-filtered. Invalid paths
// (relative, outside the root, or the home directory root) are skipped
// rather than aborting the whole call, matching expand_paths's
// best-effort behavior.
func ExpandPaths(v *Validator, paths []string, extensions map[string]bool) []string {
	if extensions == nil {
		extensions = CodeExtensions
	}

	seen := make(map[string]bool)
	var out []string

	for _, p := range paths {
		resolved, err := v.ValidatePath(p)
		if err != nil {
			continue
		}

		info, err := os.Stat(resolved)
		if err != nil {
			continue
		}

		if info.Mode().IsRegular() {
			if !seen[resolved] {
				seen[resolved] = true
				out = append(out, resolved)
			}
			continue
		}

		if !info.IsDir() {
			continue
		}

		_ = filepath.WalkDir(resolved, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				name := d.Name()
				if path != resolved && (strings.HasPrefix(name, ".") || ExcludedDirs[name] || IsSignatureDirectory(path)) {
					return filepath.SkipDir
				}
				return nil
			}

			name := d.Name()
			if strings.HasPrefix(name, ".") {
				return nil
			}
			if len(extensions) > 0 && !extensions[strings.ToLower(filepath.Ext(name))] {
				return nil
			}
			if !seen[path] {
				seen[path] = true
				out = append(out, path)
			}
			return nil
		})
	}

	sort.Strings(out)
	return out
}
