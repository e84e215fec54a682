package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Benchmark_Collector_RecordRequest benchmarks request recording
func Benchmark_Collector_RecordRequest(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordRequest("nativea", "model-a-large", "success", time.Second, 1500)
	}
}

// Benchmark_Collector_RecordRequest_Parallel benchmarks parallel request recording
func Benchmark_Collector_RecordRequest_Parallel(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			collector.RecordRequest("nativea", "model-a-large", "success", time.Second, 1500)
		}
	})
}

// Benchmark_Collector_UpdateProviderHealth benchmarks health updates
func Benchmark_Collector_UpdateProviderHealth(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.UpdateProviderHealth("nativea", true)
	}
}

// Benchmark_Collector_RecordProviderLatency benchmarks latency recording
func Benchmark_Collector_RecordProviderLatency(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordProviderLatency("nativea", "model-a-large", 0.95)
	}
}

// Benchmark_Collector_RecordProviderError benchmarks error recording
func Benchmark_Collector_RecordProviderError(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordProviderError("nativea", "rate_limit")
	}
}

// Benchmark_Collector_RecordRestrictionDecision benchmarks restriction decision recording
func Benchmark_Collector_RecordRestrictionDecision(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordRestrictionDecision("nativea", "allow", 2*time.Microsecond)
	}
}

// Benchmark_Collector_RecordContinuationHit benchmarks continuation hit recording
func Benchmark_Collector_RecordContinuationHit(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordContinuationHit("memory")
	}
}

// Benchmark_RequestMetrics_RecordRequest benchmarks raw request metric recording
func Benchmark_RequestMetrics_RecordRequest(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	rm := NewRequestMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rm.RecordRequest("nativea", "model-a-large", "success", time.Second, 1500)
	}
}

// Benchmark_RequestMetrics_RecordTokens benchmarks token recording
func Benchmark_RequestMetrics_RecordTokens(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	rm := NewRequestMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rm.RecordTokens("nativea", "model-a-large", 1000, 500)
	}
}

// Benchmark_ProviderMetrics_UpdateHealth benchmarks health updates
func Benchmark_ProviderMetrics_UpdateHealth(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	pm := NewProviderMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.UpdateHealth("nativea", true)
	}
}

// Benchmark_ProviderMetrics_RecordLatency benchmarks latency recording
func Benchmark_ProviderMetrics_RecordLatency(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	pm := NewProviderMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.RecordLatency("nativea", "model-a-large", 0.95)
	}
}

// Benchmark_RestrictionMetrics_RecordDecision benchmarks restriction decision recording
func Benchmark_RestrictionMetrics_RecordDecision(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	rm := NewRestrictionMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rm.RecordDecision("nativea", "allow", 2*time.Microsecond)
	}
}

// Benchmark_ConversationMetrics_RecordContinuationHit benchmarks continuation hit recording
func Benchmark_ConversationMetrics_RecordContinuationHit(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	cm := NewConversationMetrics(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cm.RecordContinuationHit("memory")
	}
}

// Benchmark_CardinalityLimiter_Allow benchmarks cardinality checking
func Benchmark_CardinalityLimiter_Allow(b *testing.B) {
	limiter := NewCardinalityLimiter(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow("label1")
	}
}

// Benchmark_CardinalityLimiter_Allow_New benchmarks cardinality checking with new labels
func Benchmark_CardinalityLimiter_Allow_New(b *testing.B) {
	limiter := NewCardinalityLimiter(100000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		limiter.Allow("label" + string(rune(i)))
	}
}

// Benchmark_Collector_Disabled benchmarks metrics when disabled
func Benchmark_Collector_Disabled(b *testing.B) {
	cfg := testConfig()
	cfg.Enabled = false
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		collector.RecordRequest("nativea", "model-a-large", "success", time.Second, 1500)
	}
}

// Benchmark_Collector_ManyLabels benchmarks recording with many different label values
func Benchmark_Collector_ManyLabels(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	providers := []string{"nativea", "nativeb", "nativec", "aggregator"}
	models := []string{"model-a-large", "model-b-large", "model-c-large", "model-agg-default"}
	statuses := []string{"success", "error", "blocked"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		provider := providers[i%len(providers)]
		model := models[i%len(models)]
		status := statuses[i%len(statuses)]
		collector.RecordRequest(provider, model, status, time.Second, 1500)
	}
}

// Benchmark_Collector_AllMetrics benchmarks recording all metric types
func Benchmark_Collector_AllMetrics(b *testing.B) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()
	collector := NewCollector(cfg, registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Record request
		collector.RecordRequest("nativea", "model-a-large", "success", time.Second, 1500)

		// Update provider health
		collector.UpdateProviderHealth("nativea", true)

		// Record restriction decision
		collector.RecordRestrictionDecision("nativea", "allow", 2*time.Microsecond)

		// Record continuation hit
		collector.RecordContinuationHit("memory")
	}
}
