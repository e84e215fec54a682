package conversation

import (
	"context"
	"time"
)

// Backend is the generic key-value interface the thread store persists
// through. Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the raw value for key, and false if it does not exist
	// or has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// SetWithTTL stores value under key, expiring it after ttl. Calling
	// SetWithTTL again on an existing key replaces both the value and
	// the expiry.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. It is not an error if key does not exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases any resources the backend holds.
	Close() error
}

// Sweeper is implemented by backends that can proactively evict expired
// entries rather than only checking expiry lazily on Get/Exists.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Counter is implemented by backends that can report their current
// unexpired entry count, used to feed an active-threads gauge.
type Counter interface {
	Count(ctx context.Context) (int, error)
}
