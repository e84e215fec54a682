package config

import "time"

// ApplyDefaults fills zero-valued fields of cfg with documented defaults.
// It never overwrites a value the caller (file or env override) already set.
func ApplyDefaults(cfg *Config) {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "auto"
	}

	if cfg.Workspace.MaxFileBytes == 0 {
		cfg.Workspace.MaxFileBytes = 1_000_000
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, p := range cfg.Providers {
		if p.Timeout == 0 {
			p.Timeout = 120 * time.Second
		}
		if p.MaxRetries == 0 {
			p.MaxRetries = 4
		}
		cfg.Providers[name] = p
	}

	if cfg.Conversation.ThreadTTL == 0 {
		cfg.Conversation.ThreadTTL = 3 * time.Hour
	}
	if cfg.Conversation.CleanupInterval == 0 {
		cfg.Conversation.CleanupInterval = 5 * time.Minute
	}
	if cfg.Conversation.MaxThreads == 0 {
		cfg.Conversation.MaxThreads = 10_000
	}
	if cfg.Conversation.Backend == "" {
		cfg.Conversation.Backend = "memory"
	}

	if cfg.Tokens.DefaultRatio == 0 {
		cfg.Tokens.DefaultRatio = 3.5
	}
	if cfg.Tokens.ExtensionRatios == nil {
		cfg.Tokens.ExtensionRatios = make(map[string]float64)
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = "info"
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = "json"
	}
	if cfg.Telemetry.Logging.BufferSize == 0 {
		cfg.Telemetry.Logging.BufferSize = 1000
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = "routecore"
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = "router"
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}
	if len(cfg.Telemetry.Metrics.TokenCountBuckets) == 0 {
		cfg.Telemetry.Metrics.TokenCountBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000}
	}
	if cfg.Telemetry.Metrics.ListenAddr == "" {
		cfg.Telemetry.Metrics.ListenAddr = ":9090"
	}
}
