package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khrees2412/jobtrack/internal/store"
)

// Get returns the value stored under key, or store.ErrNotFound
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := d.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), nil
}

// Put replaces the value under key
func (d *DB) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			  ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := d.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}
