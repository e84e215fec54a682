package tooldriver

import (
	"errors"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/sandbox"
	"github.com/mercator-hq/routecore/pkg/selection"
)

// Kind is one of the caller-visible error kinds.
type Kind string

const (
	KindInvalidRequest    Kind = "invalid_request"
	KindPolicyDenied      Kind = "policy_denied"
	KindPathSandbox       Kind = "path_sandbox"
	KindTooLarge          Kind = "too_large"
	KindNoModelAvailable  Kind = "no_model_available"
	KindUpstreamTransient Kind = "upstream_transient"
	KindUpstreamFatal     Kind = "upstream_fatal"
	KindInternal          Kind = "internal"
)

// DriverError is the structured, always-valid error envelope the driver
// returns on any failure path. ToolName is always set; ModelUsed and
// ProviderUsed are set whenever resolution got that far.
type DriverError struct {
	Kind         Kind
	Message      string
	ToolName     string
	ModelUsed    string
	ProviderUsed string
	Cause        error
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("tooldriver: %s: %s", e.Kind, e.Message)
}

func (e *DriverError) Unwrap() error {
	return e.Cause
}

// classify maps an underlying error from validation, selection, the
// sandbox, or a provider into the enumerated Kind.
func classify(err error) Kind {
	var relErr *sandbox.RelativePathError
	var outsideErr *sandbox.OutsideRootError
	var homeErr *sandbox.HomeRootError
	var selfIngestErr *SelfIngestError
	switch {
	case errors.As(err, &relErr), errors.As(err, &outsideErr), errors.As(err, &homeErr), errors.As(err, &selfIngestErr):
		return KindPathSandbox
	}

	var noModelErr *selection.NoAcceptableModelError
	if errors.As(err, &noModelErr) {
		return KindNoModelAvailable
	}

	var policyErr *providers.PolicyError
	if errors.As(err, &policyErr) {
		return KindPolicyDenied
	}

	var rateLimitErr *providers.RateLimitError
	if errors.As(err, &rateLimitErr) {
		// A RateLimitError surfacing here means the provider's retry loop has
		// already exhausted its budget (a still-retryable attempt never
		// reaches the driver); it is an exhausted transient failure.
		return KindUpstreamTransient
	}

	var timeoutErr *providers.TimeoutError
	if errors.As(err, &timeoutErr) {
		return KindUpstreamTransient
	}

	var authErr *providers.AuthError
	var parseErr *providers.ParseError
	var modelNotFoundErr *providers.ModelNotFoundError
	switch {
	case errors.As(err, &authErr), errors.As(err, &parseErr), errors.As(err, &modelNotFoundErr):
		return KindUpstreamFatal
	}

	var providerErr *providers.ProviderError
	if errors.As(err, &providerErr) {
		if providerErr.StatusCode >= 500 || providerErr.StatusCode == 0 {
			return KindUpstreamTransient
		}
		return KindUpstreamFatal
	}

	var tooLargeErr *TooLargeError
	if errors.As(err, &tooLargeErr) {
		return KindTooLarge
	}

	var invalidErr *InvalidRequestError
	if errors.As(err, &invalidErr) {
		return KindInvalidRequest
	}

	return KindInternal
}

// wrap builds a DriverError from err, classifying it and attaching
// whatever resolution metadata the driver had gathered by the point of
// failure.
func wrap(err error, toolName, modelUsed, providerUsed string) *DriverError {
	return &DriverError{
		Kind:         classify(err),
		Message:      err.Error(),
		ToolName:     toolName,
		ModelUsed:    modelUsed,
		ProviderUsed: providerUsed,
		Cause:        err,
	}
}

// TooLargeError covers both the prompt-size gate and an over-budget file
// encountered during packing.
type TooLargeError struct {
	What  string
	Limit int
	Got   int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("tooldriver: %s too large (%d > %d)", e.What, e.Got, e.Limit)
}

// InvalidRequestError covers request schema/validation failures the
// driver itself checks before touching any other subsystem.
type InvalidRequestError struct {
	Field   string
	Message string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("tooldriver: invalid request (%s): %s", e.Field, e.Message)
}

// SelfIngestError is returned when a requested path resolves into the
// server's own source tree (the sandbox's self-ingestion
// heuristic). Unlike the excluded/hidden directories ExpandPaths skips
// silently during a walk, a path naming a signature directory directly
// is rejected outright.
type SelfIngestError struct {
	Path string
}

func (e *SelfIngestError) Error() string {
	return fmt.Sprintf("tooldriver: path %q resolves into the server's own source tree", e.Path)
}
