package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

func TestReserve_FIFOAcrossLots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "PEPP-01", 8)

	older := produce(t, e, product.ID, 10, daysAgo(10))
	newer := produce(t, e, product.ID, 5, daysAgo(3))

	reservation, err := e.reservations.Reserve(ctx, product.ID, 15)
	require.NoError(t, err)

	assert.Equal(t, int64(15), reservation.Requested)
	assert.Equal(t, int64(15), reservation.TotalAllocated)
	require.Len(t, reservation.Allocations, 2)
	// the oldest lot drains first
	assert.Equal(t, older.BatchID, reservation.Allocations[0].BatchID)
	assert.Equal(t, int64(10), reservation.Allocations[0].Quantity)
	assert.Equal(t, newer.BatchID, reservation.Allocations[1].BatchID)
	assert.Equal(t, int64(5), reservation.Allocations[1].Quantity)

	olderBatch, err := e.batches.GetBatch(ctx, older.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), olderBatch.AvailableQuantity)
	assert.Equal(t, int64(10), olderBatch.ReservedQuantity)

	newerBatch, err := e.batches.GetBatch(ctx, newer.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), newerBatch.AvailableQuantity)
	assert.Equal(t, int64(5), newerBatch.ReservedQuantity)
}

func TestReserve_InsufficientStockLeavesLotsUntouched(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "PEPP-02", 8)
	run := produce(t, e, product.ID, 10, daysAgo(5))

	_, err := e.reservations.Reserve(ctx, product.ID, 15)
	require.Error(t, err)

	var stockErr *shared.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(15), stockErr.Requested)
	assert.Equal(t, int64(10), stockErr.Available)

	// no partial allocation survives the failed attempt
	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), batch.AvailableQuantity)
	assert.Equal(t, int64(0), batch.ReservedQuantity)
}

func TestReserveRelease_RoundTrip(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "PEPP-03", 8)
	run := produce(t, e, product.ID, 10, daysAgo(5))

	reservation, err := e.reservations.Reserve(ctx, product.ID, 8)
	require.NoError(t, err)

	require.NoError(t, e.reservations.Release(ctx, reservation.Allocations))

	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), batch.AvailableQuantity)
	assert.Equal(t, int64(0), batch.ReservedQuantity)

	availability, err := e.batches.GetAvailability(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), availability.TotalAvailable)
}

func TestConsume_ReservedStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "PEPP-04", 8)
	run := produce(t, e, product.ID, 12, daysAgo(5))

	reservation, err := e.reservations.Reserve(ctx, product.ID, 9)
	require.NoError(t, err)

	movements, err := e.reservations.Consume(ctx, product.ID, reservation.Allocations, "order picked", "tester")
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementTypeOut.String(), movements[0].Type)
	assert.Equal(t, int64(9), movements[0].Pieces)

	// consumption drains the hold; the produced total stays on record
	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), batch.TotalQuantity)
	assert.Equal(t, int64(3), batch.AvailableQuantity)
	assert.Equal(t, int64(0), batch.ReservedQuantity)

	assert.Equal(t, int64(3), stockOf(t, e, product.ID))

	verification, err := e.movements.VerifyBalance(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, verification.Consistent)
}
