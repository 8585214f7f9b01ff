package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nikolayk812/storefront-demo/internal/migrations"
	"github.com/nikolayk812/storefront-demo/internal/port"

	_ "modernc.org/sqlite"
)

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStorage keeps profiles in a single local database file, the closest
// analogue of a browser profile directory.
type SQLiteStorage struct {
	q         sqlQuerier
	db        *sql.DB
	profileID string
}

func OpenSQLite(ctx context.Context, path, profileID string) (*SQLiteStorage, error) {
	if profileID == "" {
		return nil, fmt.Errorf("profileID is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll: %w", err)
	}

	// immediate transactions take the write lock up front, so concurrent
	// read-modify-write cycles queue up instead of failing on lock upgrade
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	stmts, err := migrations.Up()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations.Up: %w", err)
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db.ExecContext: %w", err)
		}
	}

	return &SQLiteStorage{
		q:         db,
		db:        db,
		profileID: profileID,
	}, nil
}

func (s *SQLiteStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.q.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE profile_id = ? AND key = ?`,
		s.profileID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.QueryRowContext: %w", err)
	}

	return value, true, nil
}

func (s *SQLiteStorage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO local_storage (profile_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (profile_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.profileID, key, value)
	if err != nil {
		return fmt.Errorf("q.ExecContext: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) RemoveItem(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		_, err := s.q.ExecContext(ctx,
			`DELETE FROM local_storage WHERE profile_id = ? AND key = ?`,
			s.profileID, key)
		if err != nil {
			return fmt.Errorf("q.ExecContext: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStorage) Atomically(ctx context.Context, fn func(s port.Storage) error) error {
	if s.db == nil {
		return fn(s)
	}

	return withSQLTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&SQLiteStorage{
			q:         tx,
			profileID: s.profileID,
		})
	})
}
