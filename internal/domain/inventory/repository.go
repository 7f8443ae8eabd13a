package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// BatchRepository defines persistence operations for production batches
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionBatch, error)
	// FindAvailableForProduct returns ACTIVE batches with stock for the
	// product in FIFO order (production date, then expiry, then creation).
	// The query is read-only and safe to repeat.
	FindAvailableForProduct(ctx context.Context, productID uuid.UUID) ([]ProductionBatch, error)
	// FindByProductAndDate looks up the merge target for a production run
	FindByProductAndDate(ctx context.Context, productID uuid.UUID, batchDate time.Time) (*ProductionBatch, error)
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]ProductionBatch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionBatch, error)
	FindExpiringSoon(ctx context.Context, withinDays int) ([]ProductionBatch, error)
	Save(ctx context.Context, batch *ProductionBatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// MovementFilter narrows ledger queries
type MovementFilter struct {
	ProductID *uuid.UUID
	BatchID   *uuid.UUID
	Type      *MovementType
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// MovementStatistic is one aggregated row of the ledger, grouped by
// movement type and day.
type MovementStatistic struct {
	Type        MovementType `json:"movement_type"`
	Day         string       `json:"day"`
	Count       int64        `json:"count"`
	TotalPieces int64        `json:"total_pieces"`
	TotalBoxes  int64        `json:"total_boxes"`
}

// MovementRepository defines persistence for the append-only ledger.
// Create and Delete are the only writes that touch quantities; Save exists
// solely for amending reason/user on an existing row.
type MovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, int64, error)
	Save(ctx context.Context, movement *StockMovement) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumDeltaForProduct replays the ledger into a signed piece balance
	SumDeltaForProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	Statistics(ctx context.Context, from, to time.Time) ([]MovementStatistic, error)
}

// WriteoffRepository defines persistence for writeoff records
type WriteoffRepository interface {
	Create(ctx context.Context, writeoff *Writeoff) error
	FindByID(ctx context.Context, id uuid.UUID) (*Writeoff, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Writeoff, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductionRepository defines persistence for production run records
type ProductionRepository interface {
	Create(ctx context.Context, run *ProductionRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionRun, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ProductionRun, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
