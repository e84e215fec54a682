package config

import (
	"fmt"
	"path/filepath"
)

// Validate checks that cfg is internally consistent and usable. It runs
// after ApplyDefaults, so zero-valued optional fields are already filled
// in; Validate only rejects values a default cannot repair.
func Validate(cfg *Config) error {
	if cfg.Workspace.Root == "" {
		return fmt.Errorf("workspace.root is required")
	}
	if !filepath.IsAbs(cfg.Workspace.Root) {
		return fmt.Errorf("workspace.root must be an absolute path, got %q", cfg.Workspace.Root)
	}
	if cfg.Workspace.MaxFileBytes <= 0 {
		return fmt.Errorf("workspace.max_file_bytes must be positive, got %d", cfg.Workspace.MaxFileBytes)
	}

	for kind, p := range cfg.Providers {
		if !isKnownProviderKind(kind) {
			return fmt.Errorf("providers: unknown provider kind %q", kind)
		}
		if p.Timeout < 0 {
			return fmt.Errorf("providers.%s.timeout must not be negative", kind)
		}
		if p.MaxRetries < 1 {
			return fmt.Errorf("providers.%s.max_retries must be at least 1", kind)
		}
	}

	switch cfg.Conversation.Backend {
	case "memory":
	case "sqlite":
		if cfg.Conversation.SQLitePath == "" {
			return fmt.Errorf("conversation.sqlite_path is required when conversation.backend is \"sqlite\"")
		}
	default:
		return fmt.Errorf("conversation.backend must be \"memory\" or \"sqlite\", got %q", cfg.Conversation.Backend)
	}
	if cfg.Conversation.ThreadTTL <= 0 {
		return fmt.Errorf("conversation.thread_ttl must be positive")
	}
	if cfg.Conversation.MaxThreads < 1 {
		return fmt.Errorf("conversation.max_threads must be at least 1")
	}

	if cfg.Tokens.DefaultRatio <= 0 {
		return fmt.Errorf("tokens.default_ratio must be positive")
	}
	for ext, ratio := range cfg.Tokens.ExtensionRatios {
		if ratio <= 0 {
			return fmt.Errorf("tokens.extension_ratios[%q] must be positive", ext)
		}
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("telemetry.logging.level must be one of debug/info/warn/error, got %q", cfg.Telemetry.Logging.Level)
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("telemetry.logging.format must be \"json\" or \"text\", got %q", cfg.Telemetry.Logging.Format)
	}

	return nil
}

func isKnownProviderKind(kind string) bool {
	for _, k := range providerKinds {
		if k == kind {
			return true
		}
	}
	return false
}
