package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/mercator-hq/routecore/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the main orchestrator for all Prometheus metrics in routecore.
// It manages metric registration, collection, and provides a unified interface
// for recording metrics across the router, its providers, restriction
// checks, and the conversation store.
//
// The collector is designed for high-performance with minimal overhead (<50µs per update):
//   - Pre-allocated metric instances
//   - Lock-free counters where possible
//   - Cardinality limits to prevent memory issues
//   - Custom histogram buckets optimized for LLM workloads
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Request metrics
	requestMetrics *RequestMetrics

	// Provider metrics
	providerMetrics *ProviderMetrics

	// Restriction (allow-list) metrics
	restrictionMetrics *RestrictionMetrics

	// Conversation-store metrics
	conversationMetrics *ConversationMetrics

	// Cardinality tracking
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a new private registry is
// created; the global default Prometheus registry is never used.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "routecore",
//		Subsystem: "router",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "routecore"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "router"
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		// Optimized for LLM request latencies (100ms - 30s)
		cfg.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}
	if len(cfg.TokenCountBuckets) == 0 {
		// Optimized for token counts (100 - 100K tokens)
		cfg.TokenCountBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(10000), // Max 10K unique label sets
	}

	// Initialize metric subsystems
	c.requestMetrics = NewRequestMetrics(cfg, registry)
	c.providerMetrics = NewProviderMetrics(cfg, registry)
	c.restrictionMetrics = NewRestrictionMetrics(cfg, registry)
	c.conversationMetrics = NewConversationMetrics(cfg, registry)

	return c
}

// RecordRequest records metrics for a completed tool-driver request.
//
// Parameters:
//   - provider: LLM provider kind (e.g., "nativea", "aggregator")
//   - model: Model name
//   - status: Request status ("success", "error", "blocked")
//   - duration: Total request duration
//   - tokens: Total token count (prompt + completion)
//
// Example:
//
//	collector.RecordRequest(
//		"nativea",
//		"model-a-large",
//		"success",
//		1200*time.Millisecond,
//		1500,
//	)
func (c *Collector) RecordRequest(provider, model, status string, duration time.Duration, tokens int) {
	if !c.config.Enabled {
		return
	}

	// Check cardinality limit
	labelSet := fmt.Sprintf("request:%s:%s:%s", provider, model, status)
	if !c.cardinalityLimiter.Allow(labelSet) {
		// Aggregate into "other" to prevent cardinality explosion
		model = "other"
	}

	c.requestMetrics.RecordRequest(provider, model, status, duration, tokens)
}

// RecordProviderLatency records the latency for a provider API call.
//
// Parameters:
//   - provider: LLM provider kind
//   - model: Model name
//   - latency: API call latency in seconds
func (c *Collector) RecordProviderLatency(provider, model string, latency float64) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordLatency(provider, model, latency)
}

// UpdateProviderHealth updates the health status of a provider.
//
// Parameters:
//   - provider: LLM provider kind
//   - healthy: true if provider is healthy, false otherwise
//
// The health metric is a gauge where 1=healthy, 0=unhealthy.
func (c *Collector) UpdateProviderHealth(provider string, healthy bool) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.UpdateHealth(provider, healthy)
}

// RecordProviderError records an error from a provider.
//
// Parameters:
//   - provider: LLM provider kind
//   - errorType: Type of error (e.g., "rate_limit", "timeout", "auth", "server_error")
func (c *Collector) RecordProviderError(provider, errorType string) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.RecordError(provider, errorType)
}

// RecordRestrictionDecision records metrics for an allow-list evaluation
//.
//
// Parameters:
//   - provider: provider kind the resolved model belongs to
//   - decision: "allow" or "deny"
//   - duration: evaluation duration
//
// Example:
//
//	collector.RecordRestrictionDecision(
//		"nativea",
//		"allow",
//		2*time.Microsecond,
//	)
func (c *Collector) RecordRestrictionDecision(provider, decision string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.restrictionMetrics.RecordDecision(provider, decision, duration)
}

// RecordRestrictionDenied records that a resolved model was rejected by its
// provider's allow-list.
func (c *Collector) RecordRestrictionDenied(provider string) {
	if !c.config.Enabled {
		return
	}

	c.restrictionMetrics.RecordDenied(provider)
}

// RecordRestrictionAllowed records that a resolved model passed its
// provider's allow-list check.
func (c *Collector) RecordRestrictionAllowed(provider string) {
	if !c.config.Enabled {
		return
	}

	c.restrictionMetrics.RecordAllowed(provider)
}

// RecordContinuationHit records that a continuation id resolved to a live
// conversation thread.
//
// Parameters:
//   - backend: conversation store backend ("memory" or "sqlite")
func (c *Collector) RecordContinuationHit(backend string) {
	if !c.config.Enabled {
		return
	}

	c.conversationMetrics.RecordContinuationHit(backend)
}

// RecordContinuationMiss records that a continuation id did not resolve to
// a live thread.
func (c *Collector) RecordContinuationMiss(backend string) {
	if !c.config.Enabled {
		return
	}

	c.conversationMetrics.RecordContinuationMiss(backend)
}

// UpdateActiveThreads updates the current number of live conversation
// threads held by a backend.
func (c *Collector) UpdateActiveThreads(backend string, count int) {
	if !c.config.Enabled {
		return
	}

	c.conversationMetrics.UpdateActiveThreads(backend, count)
}

// RecordThreadExpiration records that the conversation-store TTL sweep
// removed a thread.
func (c *Collector) RecordThreadExpiration(backend string) {
	if !c.config.Enabled {
		return
	}

	c.conversationMetrics.RecordThreadExpiration(backend)
}

// Registry returns the Prometheus registry used by this collector.
// This can be used to create an HTTP handler for the /metrics endpoint:
//
//	http.Handle("/metrics", promhttp.HandlerFor(
//		collector.Registry(),
//		promhttp.HandlerOpts{},
//	))
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label-set strings it admits. The Collector uses
// one limiter, for request metrics only.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
