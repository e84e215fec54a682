// Package providers defines the Provider abstraction: alias
// resolution, capability lookup, restriction-aware model listing, wire
// shaping, retry classification, and the common HTTP transport concrete
// back-ends embed.
//
// # Architecture
//
// The package has three layers:
//
//  1. Provider: the interface every concrete back-end (nativea,
//     nativeb, nativec, aggregator, custom, hosted) implements.
//  2. HTTPProvider: a base embedding connection pooling, the fixed
//     progressive retry schedule, and health tracking.
//  3. Errors and Classify: typed failures and the retryable/fatal
//     classifier the retry loop consumes instead of matching exception
//     types.
//
// # Retry policy
//
// DoRequest retries with backoffSchedule's fixed progressive delays,
// capped at four attempts including the first, so the delays waited are
// 1s, 3s and 5s; the schedule's final 8s step is not reached. A 429 response is
// classified by ClassifyRateLimit: request-rate limits are retried,
// token-quantity limits are returned immediately since retrying an
// oversized request cannot succeed.
//
// # Error handling
//
// AuthError, RateLimitError, TimeoutError, ParseError, ModelNotFoundError,
// and ProviderError all implement error and Unwrap where they carry a
// cause. Classify maps any of them to Retryable or Fatal.
package providers
