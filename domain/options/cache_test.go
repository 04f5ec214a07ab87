package options

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, name string) (*Record, error) {
	s.gets++
	return s.Store.Get(ctx, name)
}

func newCachedStore(t *testing.T) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	backing := &countingStore{Store: NewMemoryStore()}
	return NewCachedStore(backing, client, time.Minute), backing, mr
}

func TestCachedStore_ReadThrough(t *testing.T) {
	ctx := context.Background()
	cache, backing, mr := newCachedStore(t)
	require.NoError(t, backing.Set(ctx, OptionName, []byte(`{"v":1}`), 1))

	for i := 0; i < 3; i++ {
		rec, err := cache.Get(ctx, OptionName)
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":1}`, string(rec.Value))
	}
	assert.Equal(t, 1, backing.gets)
	assert.True(t, mr.Exists(cacheKey(OptionName)))
	assert.Equal(t, time.Minute, mr.TTL(cacheKey(OptionName)))
}

func TestCachedStore_SetEvicts(t *testing.T) {
	ctx := context.Background()
	cache, backing, mr := newCachedStore(t)

	require.NoError(t, cache.Set(ctx, OptionName, []byte(`{"v":1}`), 1))
	_, err := cache.Get(ctx, OptionName)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, OptionName, []byte(`{"v":2}`), 1))
	assert.False(t, mr.Exists(cacheKey(OptionName)))

	rec, err := cache.Get(ctx, OptionName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(rec.Value))
	assert.Equal(t, 2, backing.gets)
}

func TestCachedStore_MissIsNotCached(t *testing.T) {
	cache, _, mr := newCachedStore(t)
	_, err := cache.Get(context.Background(), OptionName)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists(cacheKey(OptionName)))
}

func TestCachedStore_RedisDownFallsBack(t *testing.T) {
	ctx := context.Background()
	cache, backing, mr := newCachedStore(t)
	require.NoError(t, backing.Set(ctx, OptionName, []byte(`{"v":1}`), 1))
	mr.Close()

	rec, err := cache.Get(ctx, OptionName)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(rec.Value))
	require.NoError(t, cache.Set(ctx, OptionName, []byte(`{"v":2}`), 1))
}

func TestCachedStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	cache, backing, mr := newCachedStore(t)
	require.NoError(t, backing.Set(ctx, OptionName, []byte(`{"v":1}`), 1))
	require.NoError(t, mr.Set(cacheKey(OptionName), "not json"))

	rec, err := cache.Get(ctx, OptionName)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, 1, backing.gets)
}
