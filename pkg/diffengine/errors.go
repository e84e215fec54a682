package diffengine

import "fmt"

// InvalidRefError is returned by ExtractDiffs(CompareToRef, ...) when ref
// does not resolve in the repository. The caller records this
// as an error and skips the repository rather than failing the whole
// operation.
type InvalidRefError struct {
	Repo string
	Ref  string
}

func (e *InvalidRefError) Error() string {
	return fmt.Sprintf("diffengine: invalid ref %q in repository %q", e.Ref, e.Repo)
}
