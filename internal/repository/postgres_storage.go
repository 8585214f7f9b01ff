package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront-demo/internal/migrations"
	"github.com/nikolayk812/storefront-demo/internal/port"
)

type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStorage struct {
	q         pgQuerier
	pool      *pgxpool.Pool
	profileID string
}

func NewPostgres(pool *pgxpool.Pool, profileID string) (port.Storage, error) {
	if profileID == "" {
		return nil, fmt.Errorf("profileID is empty")
	}

	return &postgresStorage{
		q:         pool,
		pool:      pool,
		profileID: profileID,
	}, nil
}

func NewPostgresWithTx(tx pgx.Tx, profileID string) (port.Storage, error) {
	if profileID == "" {
		return nil, fmt.Errorf("profileID is empty")
	}

	return &postgresStorage{
		q:         tx,
		pool:      nil, // use provided transaction instead
		profileID: profileID,
	}, nil
}

// MigratePostgres applies the local_storage schema.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	stmts, err := migrations.Up()
	if err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pool.Exec: %w", err)
		}
	}

	return nil
}

func (s *postgresStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string

	err := s.q.QueryRow(ctx,
		`SELECT value FROM local_storage WHERE profile_id = $1 AND key = $2`,
		s.profileID, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.QueryRow: %w", err)
	}

	return value, true, nil
}

func (s *postgresStorage) SetItem(ctx context.Context, key, value string) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO local_storage (profile_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.profileID, key, value)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func (s *postgresStorage) RemoveItem(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := s.q.Exec(ctx,
		`DELETE FROM local_storage WHERE profile_id = $1 AND key = ANY($2)`,
		s.profileID, keys)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

// Atomically serialises writers of one profile with a transaction scoped
// advisory lock.
func (s *postgresStorage) Atomically(ctx context.Context, fn func(s port.Storage) error) error {
	// If we're already in a transaction (pool is nil), just use it
	if s.pool == nil {
		return fn(s)
	}

	return withPgTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, s.profileID); err != nil {
			return fmt.Errorf("tx.Exec: %w", err)
		}

		return fn(&postgresStorage{
			q:         tx,
			profileID: s.profileID,
		})
	})
}
