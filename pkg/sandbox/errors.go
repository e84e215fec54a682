package sandbox

import "fmt"

// RelativePathError is returned when a caller supplies a non-absolute
// path; the sandbox only ever evaluates absolute paths.
type RelativePathError struct {
	Path string
}

// Error implements the error interface.
func (e *RelativePathError) Error() string {
	return fmt.Sprintf("relative paths are not supported, received %q: provide an absolute path", e.Path)
}

// OutsideRootError is returned when a resolved path escapes the
// configured workspace root, whether directly or via a symlink.
type OutsideRootError struct {
	Path string
	Root string
}

// Error implements the error interface.
func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("path %q is outside the workspace root %q", e.Path, e.Root)
}

// HomeRootError is returned when a path is exactly the user's home
// directory root (subdirectories of home are allowed).
type HomeRootError struct {
	Path string
}

// Error implements the error interface.
func (e *HomeRootError) Error() string {
	return fmt.Sprintf("path %q is the user's home directory root and cannot be scanned directly", e.Path)
}
