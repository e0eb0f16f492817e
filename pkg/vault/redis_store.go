package vault

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix   = "botguard:vault:"
	defaultScanBatchSize = 500
)

// RedisStore keeps values as plain Redis strings under a key prefix.
type RedisStore struct {
	db        redis.UniversalClient
	prefix    string
	batchSize int64
}

// NewRedisStore wraps client. An empty prefix uses "botguard:vault:" and a
// non-positive batchSize uses 500.
func NewRedisStore(client redis.UniversalClient, prefix string, batchSize int64) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	if batchSize <= 0 {
		batchSize = defaultScanBatchSize
	}
	return &RedisStore{db: client, prefix: prefix, batchSize: batchSize}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.db.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Join(ErrStoreFailed, err)
	}
	return v, nil
}

func (s *RedisStore) Put(ctx context.Context, key, value string) error {
	if err := s.db.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Swap uses WATCH/MULTI so a write from another client between the read and
// the SET aborts the transaction.
func (s *RedisStore) Swap(ctx context.Context, key, old, value string) (bool, error) {
	k := s.prefix + key
	swapped := false
	err := s.db.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		if cur != old {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, k, value, 0)
			return nil
		})
		swapped = err == nil
		return err
	}, k)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrStoreFailed, err)
	}
	return swapped, nil
}

// Keys lists keys with SCAN so a large keyspace never blocks the server.
func (s *RedisStore) Keys(ctx context.Context) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := s.db.Scan(ctx, cursor, s.prefix+"*", s.batchSize).Result()
		if err != nil {
			return nil, errors.Join(ErrStoreFailed, err)
		}
		for _, k := range batch {
			keys = append(keys, strings.TrimPrefix(k, s.prefix))
		}
		if next == 0 {
			break
		}
		cursor = next
	}

	slices.Sort(keys)
	return slices.Compact(keys), nil
}
