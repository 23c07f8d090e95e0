package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// SQLiteBackend stores values in the kv table.
type SQLiteBackend struct {
	db    *sql.DB
	quota int64
	now   func() time.Time
}

// NewSQLiteBackend wraps an already-migrated database. quota is the maximum
// number of bytes (keys plus values) the table may hold; zero disables the check.
func NewSQLiteBackend(db *sql.DB, quota int64) *SQLiteBackend {
	return &SQLiteBackend{db: db, quota: quota, now: time.Now}
}

func (b *SQLiteBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	row := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv load: %w", err)
	}
	return []byte(v), true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, key string, value []byte) error {
	return WithTx(ctx, b.db, func(tx *sql.Tx) error {
		if b.quota > 0 {
			used, err := usedBytesExcept(ctx, tx, key)
			if err != nil {
				return err
			}
			if used+int64(len(key)+len(value)) > b.quota {
				return fmt.Errorf("kv save %q: %w", key, ErrQuotaExceeded)
			}
		}
		return b.upsert(ctx, tx, key, value)
	})
}

// SaveAll writes entries in one transaction. The quota is checked once
// against the final size of the table, so a batch that does not fit leaves
// the table untouched.
func (b *SQLiteBackend) SaveAll(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	var size int64
	for k, v := range entries {
		keys = append(keys, k)
		size += int64(len(k) + len(v))
	}
	sort.Strings(keys)

	return WithTx(ctx, b.db, func(tx *sql.Tx) error {
		if b.quota > 0 {
			used, err := usedBytesExcept(ctx, tx, keys...)
			if err != nil {
				return err
			}
			if used+size > b.quota {
				return fmt.Errorf("kv save %d keys: %w", len(keys), ErrQuotaExceeded)
			}
		}
		for _, k := range keys {
			if err := b.upsert(ctx, tx, k, entries[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *SQLiteBackend) upsert(ctx context.Context, tx *sql.Tx, key string, value []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(value), b.now().UTC())
	if err != nil {
		return fmt.Errorf("kv save: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kv delete: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("kv list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv scan: %w", err)
		}
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv rows: %w", err)
	}
	return out, nil
}

// usedBytesExcept sums the size of every row whose key is not in keys.
func usedBytesExcept(ctx context.Context, tx *sql.Tx, keys ...string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
		FROM kv`
	args := make([]any, len(keys))
	if len(keys) > 0 {
		query += ` WHERE key NOT IN (?` + strings.Repeat(`, ?`, len(keys)-1) + `)`
		for i, k := range keys {
			args[i] = k
		}
	}
	var n int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("kv usage: %w", err)
	}
	return n, nil
}
