package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duskfall/mstro/internal/shared"
)

// KV is a SQLite-backed key/value store with optional per-key expiry.
type KV struct {
	db  *sql.DB
	now func() time.Time
}

// NewKV creates a KV store on top of an open, migrated database connection.
func NewKV(db *sql.DB) *KV {
	return &KV{db: db, now: time.Now}
}

// Put stores v under key, JSON-encoded. A ttl of zero means no expiry.
func (k *KV) Put(key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}

	now := k.now().UTC()
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, expires_at = excluded.expires_at
	`
	if _, err := k.db.Exec(query, key, data, now, expiresAt); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	return nil
}

// Get loads the value stored under key into out.
//
// Misses and expired entries return [shared.ErrNotFound]; expired rows are
// deleted on read.
func (k *KV) Get(key string, out any) error {
	var (
		data      []byte
		expiresAt sql.NullTime
	)

	query := `SELECT value, expires_at FROM kv_store WHERE key = ?`
	err := k.db.QueryRow(query, key).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}

	if expiresAt.Valid && k.now().UTC().After(expiresAt.Time) {
		if err := k.Delete(key); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s expired", shared.ErrNotFound, key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (k *KV) Delete(key string) error {
	if _, err := k.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Reset removes every stored value.
func (k *KV) Reset() error {
	if _, err := k.db.Exec(`DELETE FROM kv_store`); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}
