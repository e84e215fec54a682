package selection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAcceptableModel is returned when no registered provider has a
// model suitable for the requested category. Check with errors.Is.
var ErrNoAcceptableModel = errors.New("no acceptable model for category")

// NoAcceptableModelError reports an auto-selection failure, listing
// every model the registry currently has on offer so the caller can
// retry with an explicit name.
type NoAcceptableModelError struct {
	// Category is the tool category that failed to resolve.
	Category ToolModelCategory

	// AvailableModels lists every model known across registered
	// providers, in registry priority order.
	AvailableModels []string
}

// Error implements the error interface.
func (e *NoAcceptableModelError) Error() string {
	if len(e.AvailableModels) == 0 {
		return fmt.Sprintf("no acceptable model for category %q: no providers are registered", e.Category)
	}
	return fmt.Sprintf("no acceptable model for category %q (available models: %s)",
		e.Category, strings.Join(e.AvailableModels, ", "))
}

// Is implements error matching for errors.Is().
func (e *NoAcceptableModelError) Is(target error) bool {
	return target == ErrNoAcceptableModel
}
