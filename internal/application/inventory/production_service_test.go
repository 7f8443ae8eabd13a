package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

func TestProductionCreate_NewBatch(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "MARG-01", 8)
	productionDate := daysAgo(2)

	run := produce(t, e, product.ID, 20, productionDate)

	assert.Equal(t, int64(20), run.QuantityPieces)
	assert.Equal(t, int64(2), run.Boxes)
	assert.Equal(t, int64(4), run.Pieces)

	batch, err := e.batches.GetBatch(ctx, run.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), batch.TotalQuantity)
	assert.Equal(t, int64(20), batch.AvailableQuantity)
	assert.Equal(t, int64(0), batch.ReservedQuantity)
	assert.Equal(t, inventory.BatchStatusActive.String(), batch.Status)
	assert.Equal(t, inventory.DateOnly(productionDate).Format("2006-01-02"), batch.BatchDate)

	require.NotNil(t, batch.ExpiryDate)
	wantExpiry := productionDate.AddDate(0, 0, inventory.DefaultShelfLifeDays)
	assert.WithinDuration(t, wantExpiry, *batch.ExpiryDate, time.Minute)

	assert.Equal(t, int64(20), stockOf(t, e, product.ID))

	page, err := e.movements.ListMovements(ctx, inventory.MovementFilter{ProductID: &product.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	movement := page.Items[0]
	assert.Equal(t, inventory.MovementTypeProduction.String(), movement.Type)
	assert.Equal(t, int64(20), movement.Pieces)
	assert.Equal(t, int64(0), movement.BalanceBefore)
	assert.Equal(t, int64(20), movement.BalanceAfter)
}

func TestProductionCreate_SameDayMerge(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "MARG-02", 6)
	productionDate := daysAgo(1)

	first := produce(t, e, product.ID, 5, productionDate)
	// a later run on the same calendar day merges into the same lot
	second := produce(t, e, product.ID, 7, productionDate.Add(6*time.Hour))

	assert.Equal(t, first.BatchID, second.BatchID)

	batch, err := e.batches.GetBatch(ctx, first.BatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(12), batch.TotalQuantity)
	assert.Equal(t, int64(12), batch.AvailableQuantity)

	batches, err := e.batches.ListBatches(ctx, product.ID, shared.Filter{Page: 1, PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	assert.Equal(t, int64(12), stockOf(t, e, product.ID))

	page, err := e.movements.ListMovements(ctx, inventory.MovementFilter{ProductID: &product.ID})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestProductionCreate_SeparateDaysSeparateLots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	product := seedProduct(t, e, "MARG-03", 8)

	older := produce(t, e, product.ID, 10, daysAgo(5))
	newer := produce(t, e, product.ID, 5, daysAgo(1))

	assert.NotEqual(t, older.BatchID, newer.BatchID)

	availability, err := e.batches.GetAvailability(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), availability.TotalAvailable)
	require.Len(t, availability.Batches, 2)
	// FIFO: oldest production date first
	assert.Equal(t, older.BatchID, availability.Batches[0].ID)
	assert.Equal(t, newer.BatchID, availability.Batches[1].ID)
}

func TestProductionCreate_UnknownProduct(t *testing.T) {
	e := newEnv(t)

	_, err := e.productions.Create(context.Background(), inventoryapp.CreateProductionInput{
		ProductID:      uuid.New(),
		QuantityPieces: 10,
		ProductionDate: daysAgo(1),
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
