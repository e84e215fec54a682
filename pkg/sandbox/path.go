package sandbox

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// homeRootPatterns match an exact home-directory root across the OS
// families the original tool supported: macOS (/Users/<name>), Linux
// (/home/<name>), and Windows (C:\Users\<name> or C:/Users/<name>).
// Subdirectories of these never match; only the root itself.
var homeRootPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^/Users/[^/]+/?$`),
	regexp.MustCompile(`^/home/[^/]+/?$`),
	regexp.MustCompile(`(?i)^[a-z]:[\\/]Users[\\/][^\\/]+[\\/]?$`),
}

// Validator confines path resolution to a configured workspace root
//. The zero value is not usable; construct with NewValidator.
type Validator struct {
	root string
	home string
}

// NewValidator returns a Validator rooted at root. home overrides home-
// directory-root detection (the USER_HOME / WORKSPACE_ROOT environment
// fallback the original tool used for container-mounted workspaces); an
// empty string disables only that comparison, and the fixed OS home-root
// patterns are checked either way.
func NewValidator(root, home string) *Validator {
	cleanRoot := filepath.Clean(root)
	if real, err := filepath.EvalSymlinks(cleanRoot); err == nil {
		cleanRoot = real
	}
	cleanHome := ""
	if home != "" {
		cleanHome = filepath.Clean(home)
		if real, err := filepath.EvalSymlinks(cleanHome); err == nil {
			cleanHome = real
		}
	}
	return &Validator{root: cleanRoot, home: cleanHome}
}

// Root returns the configured workspace root.
func (v *Validator) Root() string { return v.root }

// ValidatePath canonicalizes pathStr and checks it lies within the
// workspace root. It rejects relative paths, paths outside the root
// (including via a symlink that escapes it), and the exact home
// directory root.
func (v *Validator) ValidatePath(pathStr string) (string, error) {
	if !filepath.IsAbs(pathStr) {
		return "", &RelativePathError{Path: pathStr}
	}

	resolved := filepath.Clean(pathStr)
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}

	rel, err := filepath.Rel(v.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &OutsideRootError{Path: pathStr, Root: v.root}
	}

	if v.home != "" && isHomeDirectoryRoot(resolved, v.home) {
		return "", &HomeRootError{Path: pathStr}
	}
	if isHomeDirectoryRootPattern(resolved) {
		return "", &HomeRootError{Path: pathStr}
	}

	return resolved, nil
}

// isHomeDirectoryRoot reports whether path is exactly the configured
// home directory (not a subdirectory of it).
func isHomeDirectoryRoot(path, home string) bool {
	return filepath.Clean(path) == filepath.Clean(home)
}

// isHomeDirectoryRootPattern reports whether path matches a known OS
// home-directory-root shape. ValidatePath applies it whether or not a
// home override is configured.
func isHomeDirectoryRootPattern(path string) bool {
	for _, pattern := range homeRootPatterns {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// IsSignatureDirectory reports whether dir looks like this server's own
// source tree (at least signatureThreshold of signatureFiles are
// present as direct children) so expansion can skip it and avoid
// self-ingestion.
func IsSignatureDirectory(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}

	found := 0
	for _, sig := range signatureFiles {
		if _, err := os.Stat(filepath.Join(dir, sig)); err == nil {
			found++
			if found >= signatureThreshold {
				return true
			}
		}
	}
	return false
}
