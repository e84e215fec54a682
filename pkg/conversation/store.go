package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a thread survives without a new turn before the
// sweeper is allowed to reclaim it.
const DefaultTTL = 3 * time.Hour

const keyPrefix = "thread:"

// MetricsSink receives continuation hit/miss and active-thread events
// from the Store. It is satisfied structurally by *metrics.Collector.
type MetricsSink interface {
	RecordContinuationHit(backend string)
	RecordContinuationMiss(backend string)
	UpdateActiveThreads(backend string, count int)
}

// Store is the business layer over a Backend: it owns thread id
// generation, JSON encoding, and TTL refresh on every append.
type Store struct {
	backend Backend
	ttl     time.Duration
	metrics MetricsSink
}

// NewStore wraps backend with the default thread TTL.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend, ttl: DefaultTTL}
}

// NewStoreWithTTL wraps backend with a caller-supplied TTL, primarily for
// tests that want short-lived threads.
func NewStoreWithTTL(backend Backend, ttl time.Duration) *Store {
	return &Store{backend: backend, ttl: ttl}
}

// SetMetrics wires sink into the Store's continuation and active-thread
// gauge events. Passing nil disables metrics recording.
func (s *Store) SetMetrics(sink MetricsSink) {
	s.metrics = sink
}

// backendLabel names the concrete Backend for metric label values.
func backendLabel(b Backend) string {
	switch b.(type) {
	case *MemoryBackend:
		return "memory"
	case *SQLiteBackend:
		return "sqlite"
	default:
		return "unknown"
	}
}

func (s *Store) updateActiveThreads(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	counter, ok := s.backend.(Counter)
	if !ok {
		return
	}
	n, err := counter.Count(ctx)
	if err != nil {
		return
	}
	s.metrics.UpdateActiveThreads(backendLabel(s.backend), n)
}

// CreateThread starts a new thread seeded with initialContext and
// returns its id. The first turn, if any, should be appended via
// AddTurn immediately after.
func (s *Store) CreateThread(ctx context.Context, toolName, initialContext string) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	thread := &Thread{
		ID:             id,
		ToolName:       toolName,
		InitialContext: initialContext,
		Turns:          nil,
		CreatedAt:      now,
		LastUpdated:    now,
	}
	if err := s.save(ctx, thread); err != nil {
		return "", err
	}
	s.updateActiveThreads(ctx)
	return id, nil
}

// AddTurn appends turn to the thread identified by id and refreshes its
// TTL. It returns an error if the thread does not exist or has expired.
func (s *Store) AddTurn(ctx context.Context, id string, turn Turn) error {
	thread, err := s.GetThread(ctx, id)
	if err != nil {
		return err
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	thread.Turns = append(thread.Turns, turn)
	thread.LastUpdated = time.Now()
	return s.save(ctx, thread)
}

// GetThread loads the thread identified by id.
func (s *Store) GetThread(ctx context.Context, id string) (*Thread, error) {
	raw, ok, err := s.backend.Get(ctx, threadKey(id))
	if err != nil {
		return nil, fmt.Errorf("conversation: get thread %q: %w", id, err)
	}
	if !ok {
		return nil, &ThreadNotFoundError{ID: id}
	}
	var thread Thread
	if err := json.Unmarshal(raw, &thread); err != nil {
		return nil, fmt.Errorf("conversation: decode thread %q: %w", id, err)
	}
	return &thread, nil
}

// FilesAlreadyEmbedded returns the set of file paths any turn in the
// thread has already embedded, for the context assembler's dedup pass
//. A missing or expired thread is treated as an empty set rather
// than an error, since callers use this on a best-effort continuation
// lookup.
func (s *Store) FilesAlreadyEmbedded(ctx context.Context, id string) (map[string]bool, error) {
	thread, err := s.GetThread(ctx, id)
	if err != nil {
		if _, notFound := err.(*ThreadNotFoundError); notFound {
			return make(map[string]bool), nil
		}
		return nil, err
	}
	return thread.FilesEmbedded(), nil
}

// DeleteThread removes a thread immediately, ahead of its TTL.
func (s *Store) DeleteThread(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, threadKey(id)); err != nil {
		return fmt.Errorf("conversation: delete thread %q: %w", id, err)
	}
	s.updateActiveThreads(ctx)
	return nil
}

// ResolveContinuation looks up a caller-supplied continuation id for the
// context assembler. Unlike GetThread, a missing or expired id is
// not an error: it returns (nil, nil), letting the caller degrade to a
// fresh thread. Every lookup records a continuation hit or miss.
func (s *Store) ResolveContinuation(ctx context.Context, id string) (*Thread, error) {
	thread, err := s.GetThread(ctx, id)
	if err != nil {
		if _, notFound := err.(*ThreadNotFoundError); notFound {
			if s.metrics != nil {
				s.metrics.RecordContinuationMiss(backendLabel(s.backend))
			}
			return nil, nil
		}
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordContinuationHit(backendLabel(s.backend))
	}
	return thread, nil
}

func (s *Store) save(ctx context.Context, thread *Thread) error {
	raw, err := json.Marshal(thread)
	if err != nil {
		return fmt.Errorf("conversation: encode thread %q: %w", thread.ID, err)
	}
	if err := s.backend.SetWithTTL(ctx, threadKey(thread.ID), raw, s.ttl); err != nil {
		return fmt.Errorf("conversation: save thread %q: %w", thread.ID, err)
	}
	return nil
}

func threadKey(id string) string {
	return keyPrefix + id
}
