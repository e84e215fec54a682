package providers

import "strings"

// Classification is the outcome of classifying a failed generation
// attempt.
type Classification int

const (
	// Retryable failures are absorbed by the backoff loop up to the
	// retry cap: transient network errors, timeouts, generic 5xx,
	// gateway errors, and request-rate 429s.
	Retryable Classification = iota

	// Fatal failures propagate immediately: authentication, invalid
	// request, context-length-exceeded, and token-budget 429s.
	Fatal
)

// tokenQuantityMarkers are substrings commonly present in a 429 error
// body when the limit being hit is a token budget rather than a request
// count. Matching is case-insensitive and best-effort: the wire format
// is provider-specific and varies between back-ends (the
// HTTP client as an external collaborator).
var tokenQuantityMarkers = []string{
	"tokens per", "token limit", "tpm", "token_quota", "token quota", "tokens_per_min",
}

// requestRateMarkers are substrings indicating a request-count limit.
var requestRateMarkers = []string{
	"requests per", "request limit", "rpm", "too many requests", "requests_per_min",
}

// ClassifyRateLimit inspects a 429 response body and reports whether the
// limit is a token-quantity limit (fatal) as opposed to a request-rate
// limit (retryable). A malformed or unrecognized body defaults to
// request-rate / retryable: retrying an unknown limit is the safer bet.
func ClassifyRateLimit(body string) (tokenQuantity bool) {
	lower := strings.ToLower(body)

	for _, m := range tokenQuantityMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	for _, m := range requestRateMarkers {
		if strings.Contains(lower, m) {
			return false
		}
	}
	return false
}

// Classify maps a failure from DoRequest to a retry classification.
// AuthError and bad-request ProviderErrors are always fatal; a
// RateLimitError's classification depends on ClassifyRateLimit's
// judgment at the point the error was constructed; everything else
// (network errors, 5xx ProviderErrors) is retryable.
func Classify(err error) Classification {
	switch e := err.(type) {
	case *AuthError:
		return Fatal
	case *PolicyError:
		return Fatal
	case *ModelNotFoundError:
		return Fatal
	case *RateLimitError:
		if e.TokenQuantity {
			return Fatal
		}
		return Retryable
	case *ProviderError:
		if e.StatusCode == 400 {
			return Fatal
		}
		return Retryable
	case *TimeoutError:
		return Retryable
	case *ParseError:
		return Retryable
	default:
		return Retryable
	}
}
