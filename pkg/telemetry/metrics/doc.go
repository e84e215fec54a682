// Package metrics provides Prometheus metrics collection for routecore.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring tool-call
// processing, provider health, and two router-specific decisions: allow-list
// restriction outcomes and conversation-store continuation lookups. It
// provides high-performance metric collection with minimal overhead (<50µs
// per request).
//
// # Metrics Categories
//
//   - Request Metrics: Request count, duration, tokens, and sizes
//   - Provider Metrics: Provider health, latency, and error rates
//   - Restriction Metrics: Allow-list decision count, duration, and outcome
//   - Conversation Metrics: Continuation hit/miss rate, active threads, TTL expirations
//
// # Usage
//
//	// Create collector
//	collector := metrics.NewCollector(config, registry)
//
//	// Record request metrics
//	collector.RecordRequest(
//		"nativea",        // provider
//		"model-a-large",  // model
//		"success",        // status
//		time.Second,      // duration
//		1500,             // tokens
//	)
//
//	// Record provider metrics
//	collector.RecordProviderLatency("nativea", "model-a-large", 0.95)
//	collector.UpdateProviderHealth("nativea", true)
//
//	// Record restriction metrics
//	collector.RecordRestrictionDecision("nativea", "allow", 2*time.Microsecond)
//
// # Performance
//
// The metrics package is optimized for minimal overhead:
//
//   - Lock-free counters where possible
//   - Pre-allocated metric instances
//   - A fixed cardinality limit on request metrics
//   - Target: <50µs per metric update
//
// # Custom Histogram Buckets
//
// The collector uses custom histogram buckets optimized for LLM workloads:
//
//	Request Duration: 0.1s, 0.25s, 0.5s, 1s, 2s, 5s, 10s, 30s
//	Token Counts: 100, 500, 1K, 5K, 10K, 50K, 100K
//
// # Prometheus Endpoint
//
// All metrics are exposed on the /metrics endpoint in standard Prometheus format:
//
//	# HELP routecore_router_requests_total Total number of LLM requests processed
//	# TYPE routecore_router_requests_total counter
//	routecore_router_requests_total{provider="nativea",model="model-a-large",status="success"} 1234
//
// # Cardinality Management
//
// RecordRequest admits at most 10,000 distinct provider/model/status
// combinations. Once that many have been seen, a request with a new
// combination is recorded with its model label set to "other". The limit
// is fixed, and the provider, restriction and conversation metrics are not
// limited.
package metrics
