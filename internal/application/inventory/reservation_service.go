package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReservationService places and releases FIFO holds on production batches.
// A reservation never mutates the product balance; stock only leaves the
// books when the hold is consumed.
type ReservationService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(txScope TransactionScope, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		txScope: txScope,
		logger:  logger,
	}
}

// Reserve places a hold for the requested quantity across the product's
// batches, oldest first. Either the full quantity is reserved or nothing
// is: a shortfall aborts the transaction with the true availability.
func (s *ReservationService) Reserve(ctx context.Context, productID uuid.UUID, quantity int64) (*ReservationResponse, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: reservation quantity must be positive", shared.ErrValidation)
	}

	var resp ReservationResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.Batches().FindAvailableForProduct(ctx, productID)
		if err != nil {
			return err
		}

		plan, err := inventory.PlanFIFOReservation(batches, quantity)
		if err != nil {
			return err
		}
		if !plan.FullySatisfied {
			return shared.NewInsufficientStockError(quantity, plan.TotalAllocated)
		}

		byID := make(map[uuid.UUID]*inventory.ProductionBatch, len(batches))
		for i := range batches {
			byID[batches[i].ID] = &batches[i]
		}
		for _, alloc := range plan.Allocations {
			batch := byID[alloc.BatchID]
			if err := batch.Reserve(alloc.Quantity); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
		}

		resp = ReservationResponse{
			ProductID:      productID,
			Requested:      quantity,
			TotalAllocated: plan.TotalAllocated,
			Allocations:    plan.Allocations,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock reserved",
		zap.String("product_id", productID.String()),
		zap.Int64("quantity", quantity),
		zap.Int("batches", len(resp.Allocations)))
	return &resp, nil
}

// Release returns previously reserved quantity to the named batches.
// It is the exact inverse of Reserve for the same allocation set.
func (s *ReservationService) Release(ctx context.Context, allocations []inventory.BatchAllocation) error {
	if len(allocations) == 0 {
		return fmt.Errorf("%w: nothing to release", shared.ErrValidation)
	}

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, alloc := range allocations {
			batch, err := repos.Batches().FindByID(ctx, alloc.BatchID)
			if err != nil {
				return err
			}
			if err := batch.Release(alloc.Quantity); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("reservation released", zap.Int("batches", len(allocations)))
	return nil
}

// Consume turns reserved quantity into a permanent depletion, recording
// an outbound movement and synchronizing the product balance.
func (s *ReservationService) Consume(ctx context.Context, productID uuid.UUID, allocations []inventory.BatchAllocation, reason, userName string) ([]MovementResponse, error) {
	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: nothing to consume", shared.ErrValidation)
	}

	var movements []MovementResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		for _, alloc := range allocations {
			batch, err := repos.Batches().FindByID(ctx, alloc.BatchID)
			if err != nil {
				return err
			}
			if batch.ProductID != productID {
				return fmt.Errorf("%w: batch %s does not belong to product %s", shared.ErrInvalidInput, batch.ID, productID)
			}
			if err := batch.ConsumeReserved(alloc.Quantity); err != nil {
				return err
			}
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}

			balanceBefore := product.StockPieces
			if err := product.ApplyDelta(-alloc.Quantity); err != nil {
				return err
			}

			boxes, _ := product.Breakdown(alloc.Quantity)
			movement, err := inventory.NewStockMovement(productID, inventory.MovementTypeOut, alloc.Quantity, boxes)
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
			movements = append(movements, ToMovementResponse(movement))
		}

		return repos.Products().Save(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation consumed",
		zap.String("product_id", productID.String()),
		zap.Int("batches", len(allocations)))
	return movements, nil
}
