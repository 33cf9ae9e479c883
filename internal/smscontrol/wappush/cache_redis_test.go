package wappush

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Project-Pixelstar-Fifteen/frameworks-opt-telephony/internal/smscontrol/domain"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_PutThenGetWithJoinedKey(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, []byte("content://mms"), []byte("123"), 100))

	size, err := store.Get(ctx, "content://mms123")
	require.NoError(t, err)
	assert.Equal(t, int64(100), size)

	_, err = store.Get(ctx, "content://mms")
	assert.ErrorIs(t, err, domain.ErrCacheKeyNotFound)
}

func TestRedisStore_GetUnknownKeyFails(t *testing.T) {
	store := newTestRedisStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheKeyNotFound)
}

func TestRedisStore_Clear(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, []byte("a"), []byte("1"), 10))
	require.NoError(t, store.Put(ctx, []byte("b"), []byte("2"), 20))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Get(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrCacheKeyNotFound)
	_, err = store.Get(ctx, "b2")
	assert.ErrorIs(t, err, domain.ErrCacheKeyNotFound)
}

func TestRedisStore_LastWriterWins(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, []byte("loc"), []byte("tx"), 1))
	require.NoError(t, store.Put(ctx, []byte("loc"), []byte("tx"), 2))

	size, err := store.Get(ctx, "loctx")
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}
