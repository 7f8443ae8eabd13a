package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/catalog"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CreateWriteoffInput describes stock to dispose of. When BatchID is set
// the writeoff depletes that batch directly; otherwise the quantity is
// allocated across the product's batches oldest first.
type CreateWriteoffInput struct {
	ProductID      uuid.UUID  `json:"product_id" binding:"required"`
	BatchID        *uuid.UUID `json:"batch_id,omitempty"`
	QuantityPieces int64      `json:"quantity_pieces" binding:"required,gt=0"`
	Reason         string     `json:"reason" binding:"required"`
	UserName       string     `json:"user_name,omitempty"`
}

// WriteoffService disposes of stock. Every writeoff is validated against
// actual batch availability, never against the denormalized balance alone.
type WriteoffService struct {
	txScope   TransactionScope
	writeoffs inventory.WriteoffRepository
	logger    *zap.Logger
}

// NewWriteoffService creates a new WriteoffService
func NewWriteoffService(txScope TransactionScope, writeoffs inventory.WriteoffRepository, logger *zap.Logger) *WriteoffService {
	return &WriteoffService{
		txScope:   txScope,
		writeoffs: writeoffs,
		logger:    logger,
	}
}

// Create books a writeoff. The batch depletion, the writeoff records, the
// ledger entry and the balance update commit together or not at all.
func (s *WriteoffService) Create(ctx context.Context, input CreateWriteoffInput) ([]WriteoffResponse, error) {
	if input.QuantityPieces <= 0 {
		return nil, fmt.Errorf("%w: writeoff quantity must be positive", shared.ErrValidation)
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("%w: writeoff reason is required", shared.ErrValidation)
	}

	var responses []WriteoffResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		allocations, err := s.allocate(ctx, repos, input)
		if err != nil {
			return err
		}

		comp := NewCompensator()
		records, err := s.applyAllocations(ctx, repos, product, input, allocations, comp)
		if err != nil {
			comp.Run()
			return err
		}
		comp.Discard()

		responses = ToWriteoffResponses(records)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("writeoff booked",
		zap.String("product_id", input.ProductID.String()),
		zap.Int64("pieces", input.QuantityPieces),
		zap.String("reason", input.Reason),
		zap.Int("batches", len(responses)))
	return responses, nil
}

// allocate resolves the batches the writeoff will deplete. The explicit
// batch path still verifies availability on that one batch.
func (s *WriteoffService) allocate(ctx context.Context, repos TransactionalRepositories, input CreateWriteoffInput) ([]inventory.BatchAllocation, error) {
	if input.BatchID != nil {
		batch, err := repos.Batches().FindByID(ctx, *input.BatchID)
		if err != nil {
			return nil, err
		}
		if batch.ProductID != input.ProductID {
			return nil, fmt.Errorf("%w: batch %s does not belong to product %s", shared.ErrInvalidInput, batch.ID, input.ProductID)
		}
		if batch.AvailableQuantity < input.QuantityPieces {
			return nil, shared.NewInsufficientStockError(input.QuantityPieces, batch.AvailableQuantity)
		}
		return []inventory.BatchAllocation{{
			BatchID:        batch.ID,
			BatchCode:      batch.BatchCode,
			Quantity:       input.QuantityPieces,
			ProductionDate: batch.ProductionDate,
			ExpiryDate:     batch.ExpiryDate,
		}}, nil
	}

	batches, err := repos.Batches().FindAvailableForProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	plan, err := inventory.PlanFIFOReservation(batches, input.QuantityPieces)
	if err != nil {
		return nil, err
	}
	if !plan.FullySatisfied {
		return nil, shared.NewInsufficientStockError(input.QuantityPieces, plan.TotalAllocated)
	}
	return plan.Allocations, nil
}

func (s *WriteoffService) applyAllocations(
	ctx context.Context,
	repos TransactionalRepositories,
	product *catalog.Product,
	input CreateWriteoffInput,
	allocations []inventory.BatchAllocation,
	comp *Compensator,
) ([]inventory.Writeoff, error) {
	records := make([]inventory.Writeoff, 0, len(allocations))
	var total int64

	for _, alloc := range allocations {
		batch, err := repos.Batches().FindByID(ctx, alloc.BatchID)
		if err != nil {
			return nil, err
		}
		quantity := alloc.Quantity
		if err := batch.ConsumeAvailable(quantity); err != nil {
			return nil, err
		}
		comp.Add(func() { _ = batch.ReturnStock(quantity) })
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return nil, err
		}

		record, err := inventory.NewWriteoff(input.ProductID, batch.ID, quantity, product.PiecesPerBox, input.Reason, input.UserName)
		if err != nil {
			return nil, err
		}
		if err := repos.Writeoffs().Create(ctx, record); err != nil {
			return nil, err
		}

		records = append(records, *record)
		total += quantity
	}

	// One ledger entry for the whole writeoff, however many lots it touched.
	balanceBefore := product.StockPieces
	if err := product.ApplyDelta(-total); err != nil {
		return nil, err
	}
	comp.Add(func() { _ = product.ApplyDelta(total) })
	if err := repos.Products().Save(ctx, product); err != nil {
		return nil, err
	}

	boxes, _ := product.Breakdown(total)
	movement, err := inventory.NewStockMovement(input.ProductID, inventory.MovementTypeWriteoff, total, boxes)
	if err != nil {
		return nil, err
	}
	movement.WithReason(input.Reason).
		WithUser(input.UserName).
		WithBalances(balanceBefore, product.StockPieces)
	if len(allocations) == 1 {
		movement.WithBatch(allocations[0].BatchID)
	}
	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}

	return records, nil
}

// GetWriteoff returns a single writeoff record
func (s *WriteoffService) GetWriteoff(ctx context.Context, id uuid.UUID) (*WriteoffResponse, error) {
	record, err := s.writeoffs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToWriteoffResponse(record)
	return &resp, nil
}

// ListWriteoffs returns writeoff records, newest first
func (s *WriteoffService) ListWriteoffs(ctx context.Context, filter shared.Filter) ([]WriteoffResponse, error) {
	records, err := s.writeoffs.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToWriteoffResponses(records), nil
}
