package storage

import (
	"context"
	"testing"
	"time"

	"seatmap/internal/testutil"
	apperrors "seatmap/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	rdb := testutil.SetupRedisOnly(t)

	t.Run("Failed - NotFound", func(t *testing.T) {
		store := NewRedisStore(rdb, 0)
		_, err := store.Get(ctx, "seatmap:missing")
		assert.ErrorIs(t, err, apperrors.ErrKeyNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		store := NewRedisStore(rdb, 0)
		require.NoError(t, store.Set(ctx, "seatmap:selectedSeats", `[]`))
		val, err := store.Get(ctx, "seatmap:selectedSeats")
		require.NoError(t, err)
		assert.Equal(t, `[]`, val)
	})

	t.Run("Success - TTL applied", func(t *testing.T) {
		store := NewRedisStore(rdb, time.Minute)
		require.NoError(t, store.Set(ctx, "seatmap:ttl", `[]`))
		ttl, err := rdb.TTL(ctx, "seatmap:ttl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})
}
