// Package logging provides structured logging with provider-credential
// redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Automatic redaction of provider API keys, bearer tokens, and other
//     secret-shaped values (error envelopes must never leak a
//     provider credential into a log line)
//   - Context-aware logging with request IDs and metadata
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    RedactPII: true,
//	})
//
//	// Log structured data
//	logger.Info("request processed",
//	    "tool_name", "chat",
//	    "api_key", "sk-abc123",  // Automatically redacted
//	    "duration_ms", 1234,
//	)
//
//	// Create context-aware logger
//	ctx := context.WithValue(ctx, logging.RequestIDKey, "req-123")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("processing")  // Includes request_id automatically
//
// # Redaction
//
// Secret-shaped values are automatically redacted from log fields when
// RedactPII is enabled:
//
//   - API keys: sk-abc123xyz → sk-***
//   - Bearer tokens: Bearer abc123xyz → Bearer ***
//   - Emails: user@example.com → u***@example.com
//   - IP addresses: 192.168.1.100 → 192.*.*.*
//
// # Performance
//
// A message below the configured level returns before any redaction or
// formatting. Enabled messages are written synchronously: the handler
// writes through LogBuffer straight to the configured writer on the
// calling goroutine. LogBuffer's entry queue is never filled, so no
// entry is dropped and DroppedCount stays 0.
package logging
