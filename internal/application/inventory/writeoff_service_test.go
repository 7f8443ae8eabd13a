package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

func TestWriteoff_AllocatesFIFO(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "FUNG-01", 8)
	run := produce(t, e, product.ID, 20, daysAgo(4))

	writeoffs, err := e.writeoffs.Create(ctx, inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		QuantityPieces: 6,
		Reason:         "dropped tray",
		UserName:       "tester",
	})
	require.NoError(t, err)
	require.Len(t, writeoffs, 1)

	w := writeoffs[0]
	assert.Equal(t, run.BatchID, w.BatchID)
	assert.Equal(t, int64(6), w.QuantityPieces)
	assert.Equal(t, int64(0), w.Boxes)
	assert.Equal(t, int64(6), w.Pieces)
	assert.Equal(t, "dropped tray", w.Reason)

	assert.Equal(t, int64(14), stockOf(t, e, product.ID))

	// the lot keeps its produced total as history
	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(14), batch.AvailableQuantity)
	assert.Equal(t, int64(20), batch.TotalQuantity)

	movementType := inventory.MovementTypeWriteoff
	page, err := e.movements.ListMovements(ctx, inventory.MovementFilter{
		ProductID: &product.ID,
		Type:      &movementType,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(6), page.Items[0].Pieces)
	assert.Equal(t, int64(20), page.Items[0].BalanceBefore)
	assert.Equal(t, int64(14), page.Items[0].BalanceAfter)
}

func TestWriteoff_SpansMultipleLots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "FUNG-02", 10)
	older := produce(t, e, product.ID, 10, daysAgo(9))
	newer := produce(t, e, product.ID, 10, daysAgo(2))

	writeoffs, err := e.writeoffs.Create(ctx, inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		QuantityPieces: 13,
		Reason:         "power failure, fridge warm",
	})
	require.NoError(t, err)
	require.Len(t, writeoffs, 2)
	assert.Equal(t, older.BatchID, writeoffs[0].BatchID)
	assert.Equal(t, int64(10), writeoffs[0].QuantityPieces)
	assert.Equal(t, newer.BatchID, writeoffs[1].BatchID)
	assert.Equal(t, int64(3), writeoffs[1].QuantityPieces)

	assert.Equal(t, int64(7), stockOf(t, e, product.ID))

	// one ledger entry for the whole writeoff even though it spanned two lots
	movementType := inventory.MovementTypeWriteoff
	page, err := e.movements.ListMovements(ctx, inventory.MovementFilter{
		ProductID: &product.ID,
		Type:      &movementType,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(13), page.Items[0].Pieces)
	assert.Equal(t, int64(20), page.Items[0].BalanceBefore)
	assert.Equal(t, int64(7), page.Items[0].BalanceAfter)

	verification, err := e.movements.VerifyBalance(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, verification.Consistent)
}

func TestWriteoff_DepletedLotKeepsProducedTotal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "FUNG-06", 8)
	run := produce(t, e, product.ID, 10, daysAgo(4))

	_, err := e.writeoffs.Create(ctx, inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		QuantityPieces: 10,
		Reason:         "full recall",
	})
	require.NoError(t, err)

	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, inventory.BatchStatusDepleted.String(), batch.Status)
	assert.Zero(t, batch.AvailableQuantity)
	assert.Equal(t, int64(10), batch.TotalQuantity)
}

func TestWriteoff_ExplicitBatch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "FUNG-03", 8)
	older := produce(t, e, product.ID, 10, daysAgo(9))
	newer := produce(t, e, product.ID, 10, daysAgo(2))

	// an explicit batch skips FIFO and charges the named lot
	writeoffs, err := e.writeoffs.Create(ctx, inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		BatchID:        &newer.BatchID,
		QuantityPieces: 4,
		Reason:         "mold on sample check",
	})
	require.NoError(t, err)
	require.Len(t, writeoffs, 1)
	assert.Equal(t, newer.BatchID, writeoffs[0].BatchID)

	olderBatch, err := e.batches.GetBatch(ctx, older.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), olderBatch.AvailableQuantity)

	newerBatch, err := e.batches.GetBatch(ctx, newer.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), newerBatch.AvailableQuantity)
}

func TestWriteoff_InsufficientStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "FUNG-04", 8)
	run := produce(t, e, product.ID, 5, daysAgo(3))

	_, err := e.writeoffs.Create(ctx, inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		QuantityPieces: 8,
		Reason:         "expired",
	})
	require.Error(t, err)

	var stockErr *shared.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(8), stockErr.Requested)
	assert.Equal(t, int64(5), stockErr.Available)

	// nothing was written off
	assert.Equal(t, int64(5), stockOf(t, e, product.ID))
	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), batch.AvailableQuantity)

	list, err := e.writeoffs.ListWriteoffs(ctx, shared.Filter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWriteoff_RequiresReason(t *testing.T) {
	e := newEnv(t)
	product := seedProduct(t, e, "FUNG-05", 8)
	produce(t, e, product.ID, 5, daysAgo(3))

	_, err := e.writeoffs.Create(context.Background(), inventoryapp.CreateWriteoffInput{
		ProductID:      product.ID,
		QuantityPieces: 2,
	})
	require.Error(t, err)
}
