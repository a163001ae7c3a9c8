package ports

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		key := prefix + ":3:3"
		err := cache.Put(ctx, key, domain.CacheEntry{Decimal: "7625597484987"})
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "7625597484987", got.Decimal)
		assert.False(t, got.Overflow)
	})

	t.Run("Overflow Entry", func(t *testing.T) {
		key := prefix + ":3:4"
		require.NoError(t, cache.Put(ctx, key, domain.CacheEntry{Overflow: true}))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, got.Overflow)
		assert.Empty(t, got.Decimal)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, prefix+":missing")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := prefix + ":overwrite"
		require.NoError(t, cache.Put(ctx, key, domain.CacheEntry{Decimal: "1"}))
		require.NoError(t, cache.Put(ctx, key, domain.CacheEntry{Decimal: "2"}))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "2", got.Decimal)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("%s:concurrent:%d", prefix, i)
				assert.NoError(t, cache.Put(ctx, key, domain.CacheEntry{Decimal: fmt.Sprint(i)}))
				got, err := cache.Get(ctx, key)
				assert.NoError(t, err)
				assert.Equal(t, fmt.Sprint(i), got.Decimal)
			}(i)
		}
		wg.Wait()
	})
}
