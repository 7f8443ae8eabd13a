package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StatisticsCache stores computed movement statistics keyed by time range.
// A miss returns (nil, nil).
type StatisticsCache interface {
	Get(ctx context.Context, key string) ([]inventory.MovementStatistic, error)
	Set(ctx context.Context, key string, stats []inventory.MovementStatistic, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// RecordMovementInput describes a manual ledger entry
type RecordMovementInput struct {
	ProductID uuid.UUID              `json:"product_id" binding:"required"`
	Type      inventory.MovementType `json:"movement_type" binding:"required,movementtype"`
	Pieces    int64                  `json:"pieces" binding:"required,gt=0"`
	BatchID   *uuid.UUID             `json:"batch_id,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
	UserName  string                 `json:"user_name,omitempty"`
}

// MovementService maintains the append-only stock ledger and keeps the
// denormalized product balance synchronized with it.
type MovementService struct {
	txScope   TransactionScope
	movements inventory.MovementRepository
	cache     StatisticsCache
	logger    *zap.Logger
}

const statisticsCacheTTL = 5 * time.Minute

// NewMovementService creates a new MovementService
func NewMovementService(txScope TransactionScope, movements inventory.MovementRepository, cache StatisticsCache, logger *zap.Logger) *MovementService {
	return &MovementService{
		txScope:   txScope,
		movements: movements,
		cache:     cache,
		logger:    logger,
	}
}

// Record appends a movement and applies its signed delta to the product
// balance. The ledger write and the balance update share one transaction:
// if either fails, neither happens.
func (s *MovementService) Record(ctx context.Context, input RecordMovementInput) (*MovementResponse, error) {
	var resp MovementResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		movement, err := s.recordInTx(ctx, repos, input)
		if err != nil {
			return err
		}
		resp = ToMovementResponse(movement)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStatistics(ctx)
	s.logger.Info("movement recorded",
		zap.String("movement_id", resp.ID.String()),
		zap.String("product_id", input.ProductID.String()),
		zap.String("type", resp.Type),
		zap.Int64("pieces", input.Pieces))
	return &resp, nil
}

// recordInTx is the shared record path used by Record and by the
// orchestrators that write ledger entries inside their own transactions.
func (s *MovementService) recordInTx(ctx context.Context, repos TransactionalRepositories, input RecordMovementInput) (*inventory.StockMovement, error) {
	product, err := repos.Products().FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	delta := input.Pieces
	if input.Type.IsDecrease() {
		delta = -input.Pieces
	}

	balanceBefore := product.StockPieces
	if err := product.ApplyDelta(delta); err != nil {
		return nil, err
	}
	if err := repos.Products().Save(ctx, product); err != nil {
		return nil, err
	}

	boxes, _ := product.Breakdown(input.Pieces)
	movement, err := inventory.NewStockMovement(input.ProductID, input.Type, input.Pieces, boxes)
	if err != nil {
		return nil, err
	}
	if input.BatchID != nil {
		movement.WithBatch(*input.BatchID)
	}
	movement.WithReason(input.Reason).
		WithUser(input.UserName).
		WithBalances(balanceBefore, product.StockPieces)

	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// GetMovement returns a single ledger entry
func (s *MovementService) GetMovement(ctx context.Context, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// ListMovements returns a filtered page of ledger entries, newest first
func (s *MovementService) ListMovements(ctx context.Context, filter inventory.MovementFilter) (*shared.Paginated[MovementResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	movements, total, err := s.movements.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToMovementResponses(movements), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Amend patches the free-text fields of an existing entry. The quantity,
// type and balances of a persisted movement are never mutated.
func (s *MovementService) Amend(ctx context.Context, id uuid.UUID, reason, userName string) (*MovementResponse, error) {
	if reason == "" && userName == "" {
		return nil, fmt.Errorf("%w: nothing to amend", shared.ErrValidation)
	}

	movement, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	movement.Amend(reason, userName)
	if err := s.movements.Save(ctx, movement); err != nil {
		return nil, err
	}

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// Reverse undoes a movement with a compensating balance update and removes
// the original row, all in one transaction. The ledger sum and the stored
// balance stay equal on both sides of the operation.
func (s *MovementService) Reverse(ctx context.Context, id uuid.UUID, userName string) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		movement, err := repos.Movements().FindByID(ctx, id)
		if err != nil {
			return err
		}

		product, err := repos.Products().FindByID(ctx, movement.ProductID)
		if err != nil {
			return err
		}

		reverseDelta := movement.Pieces
		if movement.Type.ReverseType().IsDecrease() {
			reverseDelta = -movement.Pieces
		}
		if err := product.ApplyDelta(reverseDelta); err != nil {
			return err
		}
		if err := repos.Products().Save(ctx, product); err != nil {
			return err
		}

		if movement.BatchID != nil {
			batch, err := repos.Batches().FindByID(ctx, *movement.BatchID)
			if err == nil {
				// Outbound movements depleted available stock only; their
				// reversal returns it without touching the produced total.
				// Everything else moved total and available together.
				switch movement.Type {
				case inventory.MovementTypeOut, inventory.MovementTypeTransfer, inventory.MovementTypeWriteoff:
					err = batch.ReturnStock(movement.Pieces)
				default:
					err = batch.Adjust(reverseDelta)
				}
				if err != nil {
					return err
				}
				if err := repos.Batches().Save(ctx, batch); err != nil {
					return err
				}
			} else if !shared.IsNotFound(err) {
				return err
			}
		}

		return repos.Movements().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidateStatistics(ctx)
	s.logger.Info("movement reversed",
		zap.String("movement_id", id.String()),
		zap.String("user", userName))
	return nil
}

// GetStatistics aggregates movement counts and quantities per type and day
// over the given range. Results are cached briefly since the dashboard
// polls this endpoint.
func (s *MovementService) GetStatistics(ctx context.Context, from, to time.Time) ([]inventory.MovementStatistic, error) {
	key := fmt.Sprintf("movement_stats:%s:%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("statistics cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.movements.Statistics(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, statisticsCacheTTL); err != nil {
			s.logger.Warn("statistics cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// VerifyBalance replays the ledger for a product and compares the result
// against the denormalized balance. A mismatch is reported, never repaired.
func (s *MovementService) VerifyBalance(ctx context.Context, productID uuid.UUID) (*BalanceVerification, error) {
	var result BalanceVerification
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		product, err := repos.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}
		ledgerBalance, err := repos.Movements().SumDeltaForProduct(ctx, productID)
		if err != nil {
			return err
		}
		result = BalanceVerification{
			ProductID:     productID,
			LedgerBalance: ledgerBalance,
			StockBalance:  product.StockPieces,
			Consistent:    ledgerBalance == product.StockPieces,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Consistent {
		inconsistency := shared.NewLedgerInconsistencyError(productID.String(), result.LedgerBalance, result.StockBalance)
		s.logger.Error("ledger balance mismatch",
			zap.String("product_id", productID.String()),
			zap.Int64("ledger_balance", result.LedgerBalance),
			zap.Int64("stock_balance", result.StockBalance),
			zap.Error(inconsistency))
	}
	return &result, nil
}

func (s *MovementService) invalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("statistics cache invalidation failed", zap.Error(err))
	}
}
