package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestCacheFetchJSONPopulatesOnce(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "totals")
	require.NoError(t, err)

	loads := 0
	loader := func(context.Context) (interface{}, error) {
		loads++
		return Totals{Income: 100, Expense: 40, Net: 60}, nil
	}

	var first Totals
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	var second Totals
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))

	require.Equal(t, 1, loads)
	require.Equal(t, first, second)
	require.Equal(t, 60.0, second.Net)
}

func TestCacheBumpChangesKeys(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	before, err := cache.BuildKey(ctx, "totals")
	require.NoError(t, err)
	require.NoError(t, cache.Bump(ctx))
	after, err := cache.BuildKey(ctx, "totals")
	require.NoError(t, err)

	require.NotEqual(t, before, after)
}

func TestNilCacheFallsThroughToLoader(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.BuildKey(ctx, "totals")
	require.NoError(t, err)

	var out Totals
	require.NoError(t, cache.FetchJSON(ctx, key, &out, func(context.Context) (interface{}, error) {
		return Totals{Income: 5, Net: 5}, nil
	}))
	require.Equal(t, 5.0, out.Income)
	require.NoError(t, cache.Bump(ctx))
}
