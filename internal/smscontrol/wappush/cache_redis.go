package wappush

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

// redisKeyPrefix namespaces cache entries; Redis keys are binary-safe so the
// raw byte key is appended as-is.
const redisKeyPrefix = "wappush:size:"

// RedisStore keeps the size cache in Redis so that the WAP push receive path
// and the size query path can live in separate processes. Same contract as
// MemoryStore: no TTL, explicit Clear only.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, location, transactionID []byte, size int64) error {
	key := redisKeyPrefix + compositeKey(location, transactionID)
	if err := s.client.Set(ctx, key, size, 0).Err(); err != nil {
		return fmt.Errorf("failed to store wap push size: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, compositeKeyText string) (int64, error) {
	key, err := decodeKeyText(compositeKeyText)
	if err != nil {
		return 0, domain.ErrCacheKeyNotFound
	}

	size, err := s.client.Get(ctx, redisKeyPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrCacheKeyNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read wap push size: %w", err)
	}
	return size, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan wap push keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete wap push keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
