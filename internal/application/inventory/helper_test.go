package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/catalog"
	"github.com/pizzastock/backend/internal/infrastructure/cache"
	"github.com/pizzastock/backend/internal/infrastructure/config"
	"github.com/pizzastock/backend/internal/infrastructure/persistence"
)

// env wires the application services against an in-memory sqlite database
// so every test exercises the same transaction path as the server.
type env struct {
	db           *persistence.Database
	products     *persistence.GormProductRepository
	batches      *inventoryapp.BatchService
	movements    *inventoryapp.MovementService
	reservations *inventoryapp.ReservationService
	productions  *inventoryapp.ProductionService
	writeoffs    *inventoryapp.WriteoffService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop()
	txScope := persistence.NewGormTransactionScope(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	writeoffRepo := persistence.NewGormWriteoffRepository(db.DB)
	productionRepo := persistence.NewGormProductionRepository(db.DB)

	return &env{
		db:           db,
		products:     persistence.NewGormProductRepository(db.DB),
		batches:      inventoryapp.NewBatchService(txScope, batchRepo, log),
		movements:    inventoryapp.NewMovementService(txScope, movementRepo, cache.NewInMemoryStatisticsCache(), log),
		reservations: inventoryapp.NewReservationService(txScope, log),
		productions:  inventoryapp.NewProductionService(txScope, productionRepo, log),
		writeoffs:    inventoryapp.NewWriteoffService(txScope, writeoffRepo, log),
	}
}

func seedProduct(t *testing.T, e *env, code string, piecesPerBox int) *catalog.Product {
	t.Helper()

	product, err := catalog.NewProduct("Margherita "+code, code, piecesPerBox, decimal.NewFromInt(12))
	require.NoError(t, err)
	require.NoError(t, e.products.Save(context.Background(), product))
	return product
}

func produce(t *testing.T, e *env, productID uuid.UUID, quantity int64, date time.Time) *inventoryapp.ProductionResponse {
	t.Helper()

	run, err := e.productions.Create(context.Background(), inventoryapp.CreateProductionInput{
		ProductID:      productID,
		QuantityPieces: quantity,
		ProductionDate: date,
		UnitCost:       decimal.NewFromFloat(2.5),
		UserName:       "tester",
	})
	require.NoError(t, err)
	return run
}

func stockOf(t *testing.T, e *env, productID uuid.UUID) int64 {
	t.Helper()

	product, err := e.products.FindByID(context.Background(), productID)
	require.NoError(t, err)
	return product.StockPieces
}

// daysAgo anchors test dates to the wall clock so expiry filters behave
// the same whenever the suite runs.
func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}
