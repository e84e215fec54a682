// Package telemetry groups routecore's structured logging and metrics
// subpackages.
//
// # Components
//
//   - logging: structured logging with secret redaction
//   - metrics: Prometheus counters/histograms/gauges for requests,
//     upstream providers, restriction decisions, and conversation
//     threads
//
// Each subpackage is self-contained and constructed directly by
// cmd/routecore; this package exists only to group them under one
// import path, not to expose a combined entry point.
package telemetry
