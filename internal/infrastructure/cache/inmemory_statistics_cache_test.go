package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastock/backend/internal/domain/inventory"
)

func TestInMemoryStatisticsCache(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryStatisticsCache()

	stats := []inventory.MovementStatistic{
		{Type: inventory.MovementTypeIn, Day: "2026-08-30", Count: 2, TotalPieces: 16},
	}

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k1", stats, time.Minute))
		got, err := c.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("expired entry reads as miss", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k2", stats, -time.Second))
		got, err := c.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate drops everything", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k3", stats, time.Minute))
		require.NoError(t, c.Invalidate(ctx))
		got, err := c.Get(ctx, "k3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
