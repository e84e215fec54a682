package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// providerKinds is the closed set of provider-kind keys recognized in
// per-provider environment overrides and the Providers map.
var providerKinds = []string{"nativea", "nativeb", "nativec", "aggregator", "custom", "hosted"}

// LoadConfig loads configuration from a YAML file at path, applies
// defaults, and validates the result. An empty path skips the file read
// entirely and builds configuration from defaults alone (environment
// overrides are applied separately by LoadConfigWithEnvOverrides).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from path (if non-empty),
// applies the enumerated environment overrides, and
// re-validates. Environment variables always take precedence over the
// file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies the environment-variable surface:
// DEFAULT_MODEL, per-provider API keys/base URLs/allow-lists,
// workspace root, path-translation map, home override, custom-models
// registry path, log level.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ROUTECORE_DEFAULT_MODEL"); v != "" {
		cfg.DefaultModel = v
	}

	if v := os.Getenv("ROUTECORE_WORKSPACE_ROOT"); v != "" {
		cfg.Workspace.Root = v
	}
	if v := os.Getenv("ROUTECORE_HOME_OVERRIDE"); v != "" {
		cfg.Workspace.HomeOverride = v
	}
	if v := os.Getenv("ROUTECORE_PATH_TRANSLATION"); v != "" {
		if container, host, ok := strings.Cut(v, "="); ok {
			cfg.Workspace.PathTranslation = PathTranslation{
				ContainerPrefix: container,
				HostPrefix:      host,
			}
		}
	}
	if v := os.Getenv("ROUTECORE_MAX_FILE_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Workspace.MaxFileBytes = n
		}
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for _, kind := range providerKinds {
		upper := strings.ToUpper(kind)
		p := cfg.Providers[kind]

		if v := os.Getenv("ROUTECORE_" + upper + "_API_KEY"); v != "" {
			p.APIKey = v
		}
		if v := os.Getenv("ROUTECORE_" + upper + "_BASE_URL"); v != "" {
			p.BaseURL = v
		}
		if v := os.Getenv("ROUTECORE_" + upper + "_ALLOWED_MODELS"); v != "" {
			p.AllowedModels = v
		}

		if p != (ProviderConfig{}) || cfg.Providers[kind] != (ProviderConfig{}) {
			cfg.Providers[kind] = p
		}
	}

	if v := os.Getenv("ROUTECORE_CUSTOM_MODELS_PATH"); v != "" {
		cfg.CustomModelsPath = v
	}

	if v := os.Getenv("ROUTECORE_LOG_LEVEL"); v != "" {
		cfg.Telemetry.Logging.Level = v
	}
}
