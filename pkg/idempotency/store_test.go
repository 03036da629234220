package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	redis.Cmdable
	keys map[string]time.Duration
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if _, ok := f.keys[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	f.keys[key] = ttl
	cmd.SetVal(true)
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			delete(f.keys, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestSeenClaimsOnce(t *testing.T) {
	ctx := context.Background()
	rdb := &fakeRedis{keys: map[string]time.Duration{}}
	s := NewStore(rdb, time.Minute, "stock_update")

	seen, err := s.Seen(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = s.Seen(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, time.Minute, rdb.keys["idem:stock_update:abc"])
}

func TestForgetReleasesClaim(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&fakeRedis{keys: map[string]time.Duration{}}, time.Minute, "p")

	_, err := s.Seen(ctx, "abc")
	require.NoError(t, err)
	require.NoError(t, s.Forget(ctx, "abc"))

	seen, err := s.Seen(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, seen)
}
