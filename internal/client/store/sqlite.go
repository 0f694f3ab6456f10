package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/planplant/internal/client/migrations"
	"github.com/dmitrijs2005/planplant/internal/dbx"
	"github.com/dmitrijs2005/planplant/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteStore persists cookies in the `cookies` table. Expiry instants are
// stored as unix milliseconds.
type SQLiteStore struct {
	db    *sql.DB
	clock Clock
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB, clock Clock) *SQLiteStore {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SQLiteStore{db: db, clock: clock}
}

// RunMigrations applies the embedded goose migrations. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the sqlite jar at dsn and migrates it.
func Open(ctx context.Context, dsn string, clock Clock) (*SQLiteStore, error) {
	if dsn != MemoryDSN {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar: %w", err)
	}
	if dsn == MemoryDSN {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewSQLiteStore(db, clock), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string, ttlDays int) error {
	expiresAt := expiry(s.clock.Now(), ttlDays).UnixMilli()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cookies (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set cookie[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM cookies WHERE key = ? AND expires_at > ?`,
		key, s.clock.Now().UnixMilli(),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cookie[%s]: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM cookies WHERE key = ?`, k); err != nil {
				return fmt.Errorf("failed to clear cookie[%s]: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}

// Purge deletes every expired row.
func (s *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cookies WHERE expires_at <= ?`, s.clock.Now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge cookies: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// ExpiresAt returns the stored expiry of key, expired or not.
func (s *SQLiteStore) ExpiresAt(ctx context.Context, key string) (time.Time, bool, error) {
	var ms int64
	err := s.db.QueryRowContext(ctx, `SELECT expires_at FROM cookies WHERE key = ?`, key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get cookie[%s] expiry: %w", key, err)
	}
	return time.UnixMilli(ms), true, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
