package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront-demo/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisMaxRetries = 10

type redisHashCmds interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
}

// redisStorage keeps one hash per profile; hash fields are storage keys.
type redisStorage struct {
	client  redisHashCmds
	rdb     *redis.Client
	hashKey string

	// writes buffered inside Atomically, nil value means removal
	pending map[string]*string
}

func NewRedis(rdb *redis.Client, profileID string) (port.Storage, error) {
	if profileID == "" {
		return nil, fmt.Errorf("profileID is empty")
	}

	return &redisStorage{
		client:  rdb,
		rdb:     rdb,
		hashKey: fmt.Sprintf("storefront:profile:%s", profileID),
	}, nil
}

func (s *redisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	value, err := s.client.HGet(ctx, s.hashKey, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.HGet: %w", err)
	}

	return value, true, nil
}

func (s *redisStorage) SetItem(ctx context.Context, key, value string) error {
	if s.pending != nil {
		s.pending[key] = &value
		return nil
	}

	if err := s.client.HSet(ctx, s.hashKey, key, value).Err(); err != nil {
		return fmt.Errorf("client.HSet: %w", err)
	}

	return nil
}

func (s *redisStorage) RemoveItem(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if s.pending != nil {
		for _, key := range keys {
			s.pending[key] = nil
		}
		return nil
	}

	if err := s.client.HDel(ctx, s.hashKey, keys...).Err(); err != nil {
		return fmt.Errorf("client.HDel: %w", err)
	}

	return nil
}

// Atomically watches the profile hash, buffers writes made by fn and applies
// them in MULTI/EXEC. A concurrent change aborts EXEC and fn is re-run.
func (s *redisStorage) Atomically(ctx context.Context, fn func(s port.Storage) error) error {
	if s.pending != nil {
		return fn(s)
	}

	txf := func(tx *redis.Tx) error {
		view := &redisStorage{
			client:  tx,
			hashKey: s.hashKey,
			pending: map[string]*string{},
		}

		if err := fn(view); err != nil {
			return err
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, value := range view.pending {
				if value == nil {
					pipe.HDel(ctx, s.hashKey, key)
					continue
				}
				pipe.HSet(ctx, s.hashKey, key, *value)
			}
			return nil
		})
		return err
	}

	for range redisMaxRetries {
		err := s.rdb.Watch(ctx, txf, s.hashKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("rdb.Watch: %w", err)
		}
		return nil
	}

	return fmt.Errorf("rdb.Watch: %w", redis.TxFailedErr)
}
