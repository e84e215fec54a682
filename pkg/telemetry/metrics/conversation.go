package metrics

import (
	"github.com/mercator-hq/routecore/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ConversationMetrics tracks metrics for the conversation store:
// whether a continuation id resolved to an existing thread, how many
// threads are currently live, and how many expired out of the sweeper.
//
// Metrics:
//   - routecore_router_conversation_continuation_hits_total: Continuation id resolved to a thread
//   - routecore_router_conversation_continuation_misses_total: Continuation id absent or expired
//   - routecore_router_conversation_active_threads: Current number of live threads
//   - routecore_router_conversation_thread_expirations_total: Threads removed by the TTL sweep
type ConversationMetrics struct {
	// Continuation lookups that found a live thread
	continuationHitsTotal *prometheus.CounterVec

	// Continuation lookups that found nothing (new conversation, or expired)
	continuationMissesTotal *prometheus.CounterVec

	// Current number of live threads held by the backend
	activeThreads *prometheus.GaugeVec

	// Threads removed by the TTL sweep
	threadExpirationsTotal *prometheus.CounterVec
}

// NewConversationMetrics creates and registers conversation-store metrics
// with the provided registry.
func NewConversationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ConversationMetrics {
	cm := &ConversationMetrics{
		continuationHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversation_continuation_hits_total",
				Help:      "Total number of continuation ids that resolved to a live thread",
			},
			[]string{"backend"},
		),

		continuationMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversation_continuation_misses_total",
				Help:      "Total number of continuation ids that did not resolve to a live thread",
			},
			[]string{"backend"},
		),

		activeThreads: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversation_active_threads",
				Help:      "Current number of live conversation threads",
			},
			[]string{"backend"},
		),

		threadExpirationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "conversation_thread_expirations_total",
				Help:      "Total number of threads removed by the TTL sweep",
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(
		cm.continuationHitsTotal,
		cm.continuationMissesTotal,
		cm.activeThreads,
		cm.threadExpirationsTotal,
	)

	return cm
}

// RecordContinuationHit records that a continuation id resolved to a live
// thread.
//
// Parameters:
//   - backend: conversation store backend ("memory" or "sqlite")
func (cm *ConversationMetrics) RecordContinuationHit(backend string) {
	cm.continuationHitsTotal.WithLabelValues(backend).Inc()
}

// RecordContinuationMiss records that a continuation id did not resolve
// (new conversation, unknown id, or the thread already expired).
func (cm *ConversationMetrics) RecordContinuationMiss(backend string) {
	cm.continuationMissesTotal.WithLabelValues(backend).Inc()
}

// UpdateActiveThreads sets the current number of live threads held by a
// backend.
func (cm *ConversationMetrics) UpdateActiveThreads(backend string, count int) {
	cm.activeThreads.WithLabelValues(backend).Set(float64(count))
}

// RecordThreadExpiration records that the TTL sweep removed a thread.
func (cm *ConversationMetrics) RecordThreadExpiration(backend string) {
	cm.threadExpirationsTotal.WithLabelValues(backend).Inc()
}
