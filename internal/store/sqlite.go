package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// sqliteKV persists keys in the kv_store table.
type sqliteKV struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLite creates a KV backed by the given database.
func NewSQLite(db *sql.DB) KV {
	return &sqliteKV{
		db: db,
	}
}

var _ KV = (*sqliteKV)(nil)

func (s *sqliteKV) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to read key from store", "error", err, "key", key)
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *sqliteKV) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;
	`, key, string(value), time.Now().Unix())
	if err != nil {
		log.Error("Failed to write key to store", "error", err, "key", key)
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *sqliteKV) Has(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM kv_store WHERE key = ?)", key).Scan(&exists)
	if err != nil {
		log.Error("Failed to check key in store", "error", err, "key", key)
		return false, fmt.Errorf("failed to check key %q: %w", key, err)
	}
	return exists, nil
}

func (s *sqliteKV) Remove(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key = ?", key)
	if err != nil {
		log.Error("Failed to remove key from store", "error", err, "key", key)
		return false, fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *sqliteKV) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv_store ORDER BY key")
	if err != nil {
		log.Error("Failed to list keys in store", "error", err)
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			log.Error("Failed to scan key row", "error", err)
			continue
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *sqliteKV) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM kv_store")
	if err != nil {
		log.Error("Failed to clear store", "error", err)
		return err
	}
	return nil
}
