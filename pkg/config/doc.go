// Package config loads, validates, and exposes routecore's process-wide
// configuration.
//
// Configuration flows through three stages: LoadConfig reads an optional
// YAML file and fills defaults, LoadConfigWithEnvOverrides layers the
// environment-variable surface on top, and Validate
// rejects values no default can repair. Initialize stores the resolved
// Config behind a singleton for the rest of the process to read via
// GetConfig or MustGetConfig.
package config
