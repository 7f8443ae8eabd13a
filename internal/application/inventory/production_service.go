package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductionInput describes a production event to book into stock
type CreateProductionInput struct {
	ProductID      uuid.UUID       `json:"product_id" binding:"required"`
	QuantityPieces int64           `json:"quantity_pieces" binding:"required,gt=0"`
	ProductionDate time.Time       `json:"production_date"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	UserName       string          `json:"user_name,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// ProductionService books produced stock: it creates or merges the day's
// batch, appends the production movement and raises the product balance,
// all inside one transaction.
type ProductionService struct {
	txScope     TransactionScope
	productions inventory.ProductionRepository
	logger      *zap.Logger
}

// NewProductionService creates a new ProductionService
func NewProductionService(txScope TransactionScope, productions inventory.ProductionRepository, logger *zap.Logger) *ProductionService {
	return &ProductionService{
		txScope:     txScope,
		productions: productions,
		logger:      logger,
	}
}

// Create books a production run. A second run for the same product and
// calendar day merges into the existing batch instead of opening a new one.
func (s *ProductionService) Create(ctx context.Context, input CreateProductionInput) (*ProductionResponse, error) {
	if input.QuantityPieces <= 0 {
		return nil, fmt.Errorf("%w: production quantity must be positive", shared.ErrValidation)
	}
	productionDate := input.ProductionDate
	if productionDate.IsZero() {
		productionDate = time.Now()
	}

	var resp ProductionResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		batchDate := inventory.DateOnly(productionDate)
		batch, err := repos.Batches().FindByProductAndDate(ctx, input.ProductID, batchDate)
		switch {
		case err == nil:
			if err := batch.AddProduction(input.QuantityPieces); err != nil {
				return err
			}
		case shared.IsNotFound(err):
			batchCode := fmt.Sprintf("%s-%s", product.Code, batchDate.Format("20060102"))
			batch, err = inventory.NewProductionBatch(input.ProductID, batchCode, productionDate, input.ExpiryDate, input.QuantityPieces, input.UnitCost)
			if err != nil {
				return err
			}
		default:
			return err
		}
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}

		run, err := inventory.NewProductionRun(input.ProductID, batch.ID, input.QuantityPieces, product.PiecesPerBox, productionDate, input.UserName, input.Notes)
		if err != nil {
			return err
		}
		if err := repos.Productions().Create(ctx, run); err != nil {
			return err
		}

		balanceBefore := product.StockPieces
		if err := product.ApplyDelta(input.QuantityPieces); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		boxes, _ := product.Breakdown(input.QuantityPieces)
		movement, err := inventory.NewStockMovement(input.ProductID, inventory.MovementTypeProduction, input.QuantityPieces, boxes)
		if err != nil {
			return err
		}
		movement.WithBatch(batch.ID).
			WithReason(input.Notes).
			WithUser(input.UserName).
			WithBalances(balanceBefore, product.StockPieces)
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}

		resp = ToProductionResponse(run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("production booked",
		zap.String("production_id", resp.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("batch_id", resp.BatchID.String()),
		zap.Int64("pieces", input.QuantityPieces))
	return &resp, nil
}

// GetProduction returns a single production record
func (s *ProductionService) GetProduction(ctx context.Context, id uuid.UUID) (*ProductionResponse, error) {
	run, err := s.productions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductionResponse(run)
	return &resp, nil
}

// ListProductions returns production records, newest first
func (s *ProductionService) ListProductions(ctx context.Context, filter shared.Filter) ([]ProductionResponse, error) {
	runs, err := s.productions.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToProductionResponses(runs), nil
}
