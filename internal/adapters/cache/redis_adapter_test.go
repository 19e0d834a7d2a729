package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
)

func newTestAdapter(t *testing.T) (*miniredis.Miniredis, providers.CacheProvider) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisAdapter(client)
}

func TestRedisAdapterSetGet(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestAdapter(t)

	require.NoError(t, cache.Set(ctx, "hospital:1", []byte(`{"name":"Unity"}`), 60))
	got, err := cache.Get(ctx, "hospital:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Unity"}`, string(got))
	assert.Equal(t, 60, int(mr.TTL("hospital:1").Seconds()))

	exists, err := cache.Exists(ctx, "hospital:1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisAdapterMiss(t *testing.T) {
	_, cache := newTestAdapter(t)

	_, err := cache.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, providers.ErrCacheMiss))
}

func TestRedisAdapterDeletePattern(t *testing.T) {
	ctx := context.Background()
	mr, cache := newTestAdapter(t)

	for _, key := range []string{"hospitals:list:a", "hospitals:list:b", "hospital:1"} {
		require.NoError(t, cache.Set(ctx, key, []byte("x"), 60))
	}

	require.NoError(t, cache.DeletePattern(ctx, "hospitals:list:*"))

	assert.False(t, mr.Exists("hospitals:list:a"))
	assert.False(t, mr.Exists("hospitals:list:b"))
	assert.True(t, mr.Exists("hospital:1"))

	require.NoError(t, cache.Delete(ctx, "hospital:1"))
	assert.False(t, mr.Exists("hospital:1"))
}
