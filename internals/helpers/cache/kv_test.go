package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKV(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, Ping(context.Background(), client))
	return mr, NewRedisKV(client)
}

func TestRedisKVGetSet(t *testing.T) {
	mr, kv := setupKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	mr.FastForward(2 * time.Minute)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, kv.Set(ctx, "gone", "x", 0))
	require.NoError(t, kv.Del(ctx, "gone"))
	assert.False(t, mr.Exists("gone"))
	require.NoError(t, kv.Del(ctx))
}

func TestJSONRoundTrip(t *testing.T) {
	_, kv := setupKV(t)
	ctx := context.Background()

	type stats struct {
		Total int64 `json:"total"`
	}
	var out stats
	assert.ErrorIs(t, GetJSON(ctx, kv, "stats", &out), ErrMiss)

	require.NoError(t, SetJSON(ctx, kv, "stats", stats{Total: 7}, time.Minute))
	require.NoError(t, GetJSON(ctx, kv, "stats", &out))
	assert.EqualValues(t, 7, out.Total)
}
