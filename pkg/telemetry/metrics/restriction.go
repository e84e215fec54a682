package metrics

import (
	"time"

	"github.com/mercator-hq/routecore/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RestrictionMetrics tracks metrics related to allow-list
// evaluation: whether a resolved model was permitted for its provider kind.
//
// Metrics:
//   - routecore_router_restriction_decisions_total: Total decisions by provider and outcome
//   - routecore_router_restriction_decision_duration_seconds: Evaluation duration by provider
//   - routecore_router_restriction_denied_total: Requests denied by allow-list
//   - routecore_router_restriction_allowed_total: Requests permitted by allow-list
type RestrictionMetrics struct {
	// Total restriction decisions
	decisionsTotal *prometheus.CounterVec

	// Restriction evaluation duration histogram
	decisionDuration *prometheus.HistogramVec

	// Requests denied because the model was outside the allow-list
	deniedTotal *prometheus.CounterVec

	// Requests permitted by the allow-list (or no restriction configured)
	allowedTotal *prometheus.CounterVec
}

// NewRestrictionMetrics creates and registers restriction metrics with the
// provided registry.
func NewRestrictionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RestrictionMetrics {
	rm := &RestrictionMetrics{
		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "restriction_decisions_total",
				Help:      "Total number of allow-list decisions",
			},
			[]string{"provider", "decision"},
		),

		decisionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "restriction_decision_duration_seconds",
				Help:      "Duration of allow-list evaluation in seconds",
				// Allow-list checks are pure in-memory string comparisons.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"provider"},
		),

		deniedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "restriction_denied_total",
				Help:      "Total number of requests denied by a provider allow-list",
			},
			[]string{"provider"},
		),

		allowedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "restriction_allowed_total",
				Help:      "Total number of requests permitted by a provider allow-list",
			},
			[]string{"provider"},
		),
	}

	registry.MustRegister(
		rm.decisionsTotal,
		rm.decisionDuration,
		rm.deniedTotal,
		rm.allowedTotal,
	)

	return rm
}

// RecordDecision records a single allow-list evaluation.
//
// Parameters:
//   - provider: provider kind tag the model resolved to ("nativea", "aggregator", ...)
//   - decision: "allow" or "deny"
//   - duration: time taken to evaluate the allow-list
func (rm *RestrictionMetrics) RecordDecision(provider, decision string, duration time.Duration) {
	rm.decisionsTotal.WithLabelValues(provider, decision).Inc()
	rm.decisionDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordDenied records that a resolved model was rejected by its provider's
// allow-list.
func (rm *RestrictionMetrics) RecordDenied(provider string) {
	rm.deniedTotal.WithLabelValues(provider).Inc()
}

// RecordAllowed records that a resolved model passed its provider's
// allow-list check.
func (rm *RestrictionMetrics) RecordAllowed(provider string) {
	rm.allowedTotal.WithLabelValues(provider).Inc()
}
