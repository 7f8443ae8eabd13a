package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionBatch(t *testing.T) {
	productID := uuid.New()
	prodDate := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("applies default shelf life when expiry is nil", func(t *testing.T) {
		batch, err := NewProductionBatch(productID, "LOT-0310", prodDate, nil, 40, decimal.NewFromInt(12))
		require.NoError(t, err)

		require.NotNil(t, batch.ExpiryDate)
		assert.Equal(t, prodDate.AddDate(0, 0, DefaultShelfLifeDays), *batch.ExpiryDate)
		assert.Equal(t, int64(40), batch.TotalQuantity)
		assert.Equal(t, int64(40), batch.AvailableQuantity)
		assert.Zero(t, batch.ReservedQuantity)
		assert.Equal(t, BatchStatusActive, batch.Status)
	})

	t.Run("batch date is truncated to midnight", func(t *testing.T) {
		batch, err := NewProductionBatch(productID, "LOT-0310", prodDate, nil, 1, decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), batch.BatchDate)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewProductionBatch(productID, "LOT-0310", prodDate, nil, 0, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestProductionBatchReservations(t *testing.T) {
	newBatch := func(available int64) *ProductionBatch {
		b, err := NewProductionBatch(uuid.New(), "LOT-1", time.Now(), nil, available, decimal.Zero)
		require.NoError(t, err)
		return b
	}

	t.Run("reserve moves stock from available to reserved", func(t *testing.T) {
		b := newBatch(20)
		require.NoError(t, b.Reserve(6))

		assert.Equal(t, int64(14), b.AvailableQuantity)
		assert.Equal(t, int64(6), b.ReservedQuantity)
		assert.Equal(t, int64(20), b.TotalQuantity)
	})

	t.Run("reserve beyond available fails with shortfall detail", func(t *testing.T) {
		b := newBatch(5)
		err := b.Reserve(8)

		var insufficientErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)
		assert.Equal(t, int64(8), insufficientErr.Requested)
		assert.Equal(t, int64(5), insufficientErr.Available)
		assert.Equal(t, int64(5), b.AvailableQuantity)
	})

	t.Run("reserve then release round-trips", func(t *testing.T) {
		b := newBatch(20)
		require.NoError(t, b.Reserve(6))
		require.NoError(t, b.Release(6))

		assert.Equal(t, int64(20), b.AvailableQuantity)
		assert.Zero(t, b.ReservedQuantity)
	})

	t.Run("consume reserved depletes the hold and keeps the produced total", func(t *testing.T) {
		b := newBatch(20)
		require.NoError(t, b.Reserve(6))
		require.NoError(t, b.ConsumeReserved(6))

		assert.Equal(t, int64(14), b.AvailableQuantity)
		assert.Zero(t, b.ReservedQuantity)
		assert.Equal(t, int64(20), b.TotalQuantity)
	})

	t.Run("return stock restores consumed quantity within the produced total", func(t *testing.T) {
		b := newBatch(20)
		require.NoError(t, b.ConsumeAvailable(8))
		require.NoError(t, b.ReturnStock(8))

		assert.Equal(t, int64(20), b.AvailableQuantity)
		assert.Equal(t, int64(20), b.TotalQuantity)

		assert.Error(t, b.ReturnStock(1))
	})

	t.Run("invariant available plus reserved never exceeds total", func(t *testing.T) {
		b := newBatch(20)
		require.NoError(t, b.Reserve(12))
		require.NoError(t, b.ConsumeReserved(5))
		require.NoError(t, b.Release(7))

		assert.LessOrEqual(t, b.AvailableQuantity+b.ReservedQuantity, b.TotalQuantity)
		assert.GreaterOrEqual(t, b.AvailableQuantity, int64(0))
		assert.GreaterOrEqual(t, b.ReservedQuantity, int64(0))
	})
}

func TestProductionBatchLifecycle(t *testing.T) {
	t.Run("batch depletes when fully consumed and keeps its produced total", func(t *testing.T) {
		b, err := NewProductionBatch(uuid.New(), "LOT-1", time.Now(), nil, 6, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, b.ConsumeAvailable(6))
		assert.Equal(t, BatchStatusDepleted, b.Status)
		assert.False(t, b.HasStock())
		assert.Zero(t, b.AvailableQuantity)
		assert.Equal(t, int64(6), b.TotalQuantity)
	})

	t.Run("add production reactivates a depleted batch", func(t *testing.T) {
		b, err := NewProductionBatch(uuid.New(), "LOT-1", time.Now(), nil, 3, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, b.ConsumeAvailable(3))

		require.NoError(t, b.AddProduction(7))
		assert.Equal(t, BatchStatusActive, b.Status)
		assert.Equal(t, int64(7), b.AvailableQuantity)
		assert.Equal(t, int64(10), b.TotalQuantity)
	})

	t.Run("close refuses while stock is reserved", func(t *testing.T) {
		b, err := NewProductionBatch(uuid.New(), "LOT-1", time.Now(), nil, 10, decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, b.Reserve(2))

		assert.Error(t, b.Close())
		require.NoError(t, b.Release(2))
		require.NoError(t, b.Close())
		assert.Equal(t, BatchStatusClosed, b.Status)
	})

	t.Run("adjust applies signed delta and caps negative at available", func(t *testing.T) {
		b, err := NewProductionBatch(uuid.New(), "LOT-1", time.Now(), nil, 10, decimal.Zero)
		require.NoError(t, err)

		require.NoError(t, b.Adjust(-4))
		assert.Equal(t, int64(6), b.AvailableQuantity)
		assert.Equal(t, int64(6), b.TotalQuantity)

		err = b.Adjust(-10)
		var insufficientErr *shared.InsufficientStockError
		require.ErrorAs(t, err, &insufficientErr)

		require.NoError(t, b.Adjust(5))
		assert.Equal(t, int64(11), b.AvailableQuantity)
	})
}
