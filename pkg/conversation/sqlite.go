package conversation

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteBackend is a durable Backend for single-instance deployments
// that need conversation threads to survive a restart. WAL mode, a
// single writer connection, and prepared statements reused across calls.
type SQLiteBackend struct {
	db *sql.DB
	mu sync.Mutex

	getStmt    *sql.Stmt
	setStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	sweepStmt  *sql.Stmt
	countStmt  *sql.Stmt
}

// NewSQLiteBackend opens (creating if absent) a SQLite database at
// dbPath and prepares the key-value schema.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("conversation: db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("conversation: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	backend := &SQLiteBackend{db: db}
	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	if err := backend.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return backend, nil
}

func (s *SQLiteBackend) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_expires_at ON kv_entries(expires_at);
	`)
	if err != nil {
		return fmt.Errorf("conversation: failed to initialize schema: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) prepareStatements() error {
	var err error
	s.getStmt, err = s.db.Prepare(`SELECT value, expires_at FROM kv_entries WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("conversation: failed to prepare get statement: %w", err)
	}
	s.setStmt, err = s.db.Prepare(`
		INSERT INTO kv_entries (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`)
	if err != nil {
		return fmt.Errorf("conversation: failed to prepare set statement: %w", err)
	}
	s.deleteStmt, err = s.db.Prepare(`DELETE FROM kv_entries WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("conversation: failed to prepare delete statement: %w", err)
	}
	s.sweepStmt, err = s.db.Prepare(`DELETE FROM kv_entries WHERE expires_at IS NOT NULL AND expires_at < ?`)
	if err != nil {
		return fmt.Errorf("conversation: failed to prepare sweep statement: %w", err)
	}
	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM kv_entries WHERE expires_at IS NULL OR expires_at >= ?`)
	if err != nil {
		return fmt.Errorf("conversation: failed to prepare count statement: %w", err)
	}
	return nil
}

// Get implements Backend.
func (s *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value []byte
	var expiresAt sql.NullInt64
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("conversation: get %q: %w", key, err)
	}
	if expiresAt.Valid && time.Now().Unix() > expiresAt.Int64 {
		return nil, false, nil
	}
	return value, true, nil
}

// SetWithTTL implements Backend.
func (s *SQLiteBackend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: time.Now().Add(ttl).Unix(), Valid: true}
	}
	if _, err := s.setStmt.ExecContext(ctx, key, value, expiresAt); err != nil {
		return fmt.Errorf("conversation: set %q: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (s *SQLiteBackend) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deleteStmt.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("conversation: delete %q: %w", key, err)
	}
	return nil
}

// Exists implements Backend.
func (s *SQLiteBackend) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Sweep deletes every row whose TTL has already elapsed, satisfying the
// Sweeper interface for the cron-driven cleanup loop.
func (s *SQLiteBackend) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.sweepStmt.ExecContext(ctx, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("conversation: sweep: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// Count returns the number of unexpired rows, satisfying the Counter
// interface for the active-threads gauge.
func (s *SQLiteBackend) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.countStmt.QueryRowContext(ctx, time.Now().Unix()).Scan(&n); err != nil {
		return 0, fmt.Errorf("conversation: count: %w", err)
	}
	return n, nil
}

// Close implements Backend.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}
