package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	catalogapp "github.com/pizzastock/backend/internal/application/catalog"
	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/pizzastock/backend/internal/infrastructure/config"
	"github.com/pizzastock/backend/internal/infrastructure/persistence"
)

func newProductService(t *testing.T) *catalogapp.ProductService {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	return catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), zap.NewNop())
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalogapp.CreateProductInput{
		Name:         "Quattro Formaggi",
		Code:         "QUAT-01",
		PiecesPerBox: 8,
		Price:        decimal.NewFromInt(14),
	})
	require.NoError(t, err)
	assert.Equal(t, "QUAT-01", created.Code)
	assert.Equal(t, int64(0), created.StockPieces)
	assert.True(t, created.Active)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	byCode, err := svc.GetByCode(ctx, "QUAT-01")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)
}

func TestProductService_DuplicateCode(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	input := catalogapp.CreateProductInput{
		Name:         "Quattro Formaggi",
		Code:         "QUAT-01",
		PiecesPerBox: 8,
		Price:        decimal.NewFromInt(14),
	}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	input.Name = "Quattro Formaggi XL"
	_, err = svc.Create(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestProductService_PartialUpdate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalogapp.CreateProductInput{
		Name:         "Diavola",
		Code:         "DIAV-01",
		PiecesPerBox: 8,
		Price:        decimal.NewFromInt(13),
	})
	require.NoError(t, err)

	newName := "Diavola Piccante"
	updated, err := svc.Update(ctx, created.ID, catalogapp.UpdateProductInput{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Diavola Piccante", updated.Name)
	// untouched fields survive a partial update
	assert.Equal(t, created.Code, updated.Code)
	assert.Equal(t, created.PiecesPerBox, updated.PiecesPerBox)
}

func TestProductService_Deactivate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, catalogapp.CreateProductInput{
		Name:         "Capricciosa",
		Code:         "CAPR-01",
		PiecesPerBox: 8,
		Price:        decimal.NewFromInt(13),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.Active)
}

func TestProductService_List(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	for _, code := range []string{"A-01", "B-01", "C-01"} {
		_, err := svc.Create(ctx, catalogapp.CreateProductInput{
			Name:         "Pizza " + code,
			Code:         code,
			PiecesPerBox: 8,
			Price:        decimal.NewFromInt(10),
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
