package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BatchService handles production batch queries and adjustments
type BatchService struct {
	txScope TransactionScope
	batches inventory.BatchRepository
	logger  *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(txScope TransactionScope, batches inventory.BatchRepository, logger *zap.Logger) *BatchService {
	return &BatchService{
		txScope: txScope,
		batches: batches,
		logger:  logger,
	}
}

// GetBatch returns a single batch by ID
func (s *BatchService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batches.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToBatchResponse(batch)
	return &resp, nil
}

// ListBatches returns batches for a product, oldest first
func (s *BatchService) ListBatches(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]BatchResponse, error) {
	batches, err := s.batches.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// GetAvailability returns a product's usable lots in allocation order
// with the total that could be reserved right now.
func (s *BatchService) GetAvailability(ctx context.Context, productID uuid.UUID) (*ProductAvailabilityResponse, error) {
	batches, err := s.batches.FindAvailableForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &ProductAvailabilityResponse{
		ProductID:      productID,
		TotalAvailable: inventory.TotalAvailable(batches),
		Batches:        ToBatchResponses(batches),
	}, nil
}

// ListExpiring returns batches whose expiry date falls within the window
func (s *BatchService) ListExpiring(ctx context.Context, withinDays int) ([]BatchResponse, error) {
	batches, err := s.batches.FindExpiringSoon(ctx, withinDays)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// AdjustBatch applies a signed correction to a batch's quantities and
// records the matching correction movement against the product balance.
func (s *BatchService) AdjustBatch(ctx context.Context, batchID uuid.UUID, delta int64, reason, userName string) (*BatchResponse, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: adjustment delta cannot be zero", shared.ErrInvalidInput)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: adjustment reason is required", shared.ErrValidation)
	}

	var resp BatchResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return err
		}

		if err := batch.Adjust(delta); err != nil {
			return err
		}
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}

		product, err := repos.Products().FindByID(ctx, batch.ProductID)
		if err != nil {
			return err
		}

		movementType := inventory.MovementTypeCorrectionUp
		magnitude := delta
		if delta < 0 {
			movementType = inventory.MovementTypeCorrectionDown
			magnitude = -delta
		}

		balanceBefore := product.StockPieces
		if err := product.ApplyDelta(delta); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		boxes, _ := product.Breakdown(magnitude)
		movement, err := inventory.NewStockMovement(product.ID, movementType, magnitude, boxes)
		if err != nil {
			return err
		}
		movement.WithBatch(batch.ID).
			WithReason(reason).
			WithUser(userName).
			WithBalances(balanceBefore, product.StockPieces)
		if err := repos.Movements().Create(ctx, movement); err != nil {
			return err
		}

		resp = ToBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch adjusted",
		zap.String("batch_id", batchID.String()),
		zap.Int64("delta", delta),
		zap.String("reason", reason))
	return &resp, nil
}

// CloseBatch marks a batch closed so it no longer participates in allocation
func (s *BatchService) CloseBatch(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	var resp BatchResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.Batches().FindByID(ctx, batchID)
		if err != nil {
			return err
		}
		if err := batch.Close(); err != nil {
			return err
		}
		if err := repos.Batches().Save(ctx, batch); err != nil {
			return err
		}
		resp = ToBatchResponse(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("batch closed", zap.String("batch_id", batchID.String()))
	return &resp, nil
}
