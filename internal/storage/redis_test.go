package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisStore instance
func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewRedisStore(client, ttl)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return store, mr, cleanup
}

func TestRedisLoad_Success(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	require.NoError(t, mr.Set("@HealthShopApp:cart", `[{"id":1,"quantity":2}]`))

	value, err := store.Load(context.Background(), "@HealthShopApp:cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":2}]`, string(value))
}

func TestRedisLoad_Missing(t *testing.T) {
	store, _, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	value, err := store.Load(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, value)
}

func TestRedisLoad_ServerDown(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	mr.Close()

	_, err := store.Load(context.Background(), "key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "redis get failed")
}

func TestRedisSave_WithoutTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	require.NoError(t, store.Save(context.Background(), "key", []byte("[]")))

	stored, err := mr.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
	assert.Equal(t, time.Duration(0), mr.TTL("key"))
}

func TestRedisSave_WithTTL(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t, 15*time.Minute)
	defer cleanup()

	require.NoError(t, store.Save(context.Background(), "key", []byte("[]")))

	ttl := mr.TTL("key")
	assert.True(t, ttl >= 15*time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= 20*time.Minute, "TTL should be base + max jitter")
}

func TestRedisSave_Overwrites(t *testing.T) {
	store, _, cleanup := setupTestRedis(t, 0)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "key", []byte("first")))
	require.NoError(t, store.Save(ctx, "key", []byte("second")))

	value, err := store.Load(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "second", string(value))
}

func TestRedisDelete(t *testing.T) {
	store, mr, cleanup := setupTestRedis(t, 0)
	defer cleanup()

	require.NoError(t, mr.Set("key", "[]"))
	assert.True(t, mr.Exists("key"))

	require.NoError(t, store.Delete(context.Background(), "key"))
	assert.False(t, mr.Exists("key"))

	// deleting a missing key is not an error
	assert.NoError(t, store.Delete(context.Background(), "key"))
}
