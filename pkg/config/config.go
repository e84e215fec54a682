// Package config holds the process-wide configuration for routecore:
// workspace sandboxing, per-provider credentials and allow-lists,
// conversation TTL, token-estimation overrides, and telemetry settings.
package config

import "time"

// Config is the root configuration structure for routecore.
type Config struct {
	// DefaultModel is either a concrete canonical/alias model name or the
	// literal "auto", which enables category-based auto-selection.
	// Default: "auto"
	DefaultModel string `yaml:"default_model"`

	// Workspace contains the file/path sandbox configuration.
	Workspace WorkspaceConfig `yaml:"workspace"`

	// Providers contains per-provider-kind configuration. Keys are the
	// lowercase ProviderKind tag ("nativea", "nativeb", "nativec",
	// "aggregator", "custom", "hosted").
	Providers map[string]ProviderConfig `yaml:"providers"`

	// CustomModelsPath is the path to the custom-models JSON registry file
	// consumed by the Aggregator and Custom providers.
	CustomModelsPath string `yaml:"custom_models_path"`

	// Conversation contains conversation-store configuration.
	Conversation ConversationConfig `yaml:"conversation"`

	// Tokens contains token-estimation configuration.
	Tokens TokensConfig `yaml:"tokens"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorkspaceConfig contains the file/path sandbox configuration.
type WorkspaceConfig struct {
	// Root is the absolute workspace root all tool file paths are validated
	// against. Required; the core receives it already resolved.
	Root string `yaml:"root"`

	// PathTranslation optionally rewrites a single path prefix, for
	// container-mounted workspaces where the caller's paths use a
	// different root than the process sees on disk.
	PathTranslation PathTranslation `yaml:"path_translation"`

	// HomeOverride, if set, is used instead of the OS-reported user home
	// directory when checking the home-root-rejection rule.
	HomeOverride string `yaml:"home_override"`

	// MaxFileBytes is the oversize-file threshold; files larger than this
	// become a "FILE TOO LARGE" stub instead of being read.
	// Default: 1000000 (1 MB)
	MaxFileBytes int64 `yaml:"max_file_bytes"`
}

// PathTranslation is a single container-path-prefix-to-host-path-prefix
// rewrite rule.
type PathTranslation struct {
	ContainerPrefix string `yaml:"container_prefix"`
	HostPrefix      string `yaml:"host_prefix"`
}

// ProviderConfig contains configuration for a single provider kind.
type ProviderConfig struct {
	// APIKey authenticates requests to this provider. Absence disables the
	// provider entirely: the registry will not register it.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `yaml:"base_url"`

	// AllowedModels is a comma-separated, case-insensitive, whitespace-
	// trimmed allow-list. Empty means "no restriction".
	AllowedModels string `yaml:"allowed_models"`

	// Timeout bounds a single generation call. Default: 120s.
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the number of retries after the first attempt; the
	// provider layer caps a request at four attempts in all. Default: 4.
	MaxRetries int `yaml:"max_retries"`
}

// ConversationConfig contains conversation-store configuration.
type ConversationConfig struct {
	// ThreadTTL is the inactivity duration after which a thread expires.
	// Default: 3h.
	ThreadTTL time.Duration `yaml:"thread_ttl"`

	// CleanupInterval is how often the background sweep removes expired
	// threads.
	// Default: 5m.
	CleanupInterval time.Duration `yaml:"cleanup_interval"`

	// MaxThreads must be at least 1. The conversation store does not read
	// it: thread count is not bounded by it, and nothing is evicted when
	// it is exceeded.
	// Default: 10000.
	MaxThreads int `yaml:"max_threads"`

	// Backend selects the KV backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path when Backend is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`
}

// TokensConfig contains token-estimation configuration.
type TokensConfig struct {
	// ExtensionRatios overrides the built-in per-extension bytes-per-token
	// table. Keys include the leading dot (".py").
	ExtensionRatios map[string]float64 `yaml:"extension_ratios"`

	// DefaultRatio is used for extensions absent from the table.
	// Default: 3.5
	DefaultRatio float64 `yaml:"default_ratio"`
}

// TelemetryConfig contains logging and metrics configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level: "debug", "info", "warn", "error". Default: "info".
	Level string `yaml:"level"`

	// Format: "json" or "text". Default: "json".
	Format string `yaml:"format"`

	// AddSource includes file:line in log entries. Default: false.
	AddSource bool `yaml:"add_source"`

	// BufferSize is the async log buffer capacity. Default: 1000.
	BufferSize int `yaml:"buffer_size"`

	// RedactSecrets enables automatic redaction of provider API keys,
	// bearer tokens, and other credential-shaped values before they
	// reach the log writer. Default: true.
	RedactSecrets bool `yaml:"redact_secrets"`

	// RedactPatterns contains additional custom redaction patterns
	// beyond the built-in credential patterns.
	RedactPatterns []RedactPattern `yaml:"redact_patterns"`
}

// RedactPattern defines a custom log-redaction pattern.
type RedactPattern struct {
	// Name is a descriptive name for the pattern.
	Name string `yaml:"name"`

	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Replacement is the string to replace matches with.
	Replacement string `yaml:"replacement"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collectors are registered.
	// Default: true.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix. Default: "routecore".
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric name's second-level prefix. Default: "router".
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets are the histogram buckets, in seconds, for
	// tool-call and provider-latency histograms. Default is tuned for
	// LLM request latencies (100ms-30s).
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`

	// TokenCountBuckets are the histogram buckets for per-request token
	// counts. Default is tuned for 100-100K token requests.
	TokenCountBuckets []float64 `yaml:"token_count_buckets"`

	// ListenAddr is the address the Prometheus /metrics endpoint binds
	// to. Default: ":9090".
	ListenAddr string `yaml:"listen_addr"`
}
