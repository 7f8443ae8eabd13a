package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends a new ledger entry
func (r *GormMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(movement).Error; err != nil {
		return shared.WrapDatabaseError(err)
	}
	return nil
}

// FindByID finds a movement by its ID
func (r *GormMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapDatabaseError(err)
	}
	return &movement, nil
}

// FindAll finds movements matching the filter, newest first, with the
// total match count for pagination.
func (r *GormMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, int64, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{})
	query = applyMovementFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, shared.WrapDatabaseError(err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var movements []inventory.StockMovement
	if err := query.Order("created_at DESC").Find(&movements).Error; err != nil {
		return nil, 0, shared.WrapDatabaseError(err)
	}
	return movements, total, nil
}

// Save updates the amendable fields of an existing entry. Only reason and
// user_name are written; quantities and balances stay immutable.
func (r *GormMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("id = ?", movement.ID).
		Updates(map[string]interface{}{
			"reason":     movement.Reason,
			"user_name":  movement.UserName,
			"updated_at": movement.UpdatedAt,
		})
	if result.Error != nil {
		return shared.WrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a movement row. Only the compensating reverse path calls
// this; there is no general delete endpoint.
func (r *GormMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.StockMovement{}, "id = ?", id)
	if result.Error != nil {
		return shared.WrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SumDeltaForProduct replays the ledger into a signed piece balance
func (r *GormMovementRepository) SumDeltaForProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	increases := make([]string, 0)
	for _, t := range inventory.AllMovementTypes() {
		if t.IsIncrease() {
			increases = append(increases, string(t))
		}
	}

	var sum int64
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(CASE WHEN type IN ? THEN pieces ELSE -pieces END), 0)", increases).
		Where("product_id = ?", productID).
		Scan(&sum).Error
	if err != nil {
		return 0, shared.WrapDatabaseError(err)
	}
	return sum, nil
}

// Statistics aggregates movements by type and day over the range
func (r *GormMovementRepository) Statistics(ctx context.Context, from, to time.Time) ([]inventory.MovementStatistic, error) {
	var stats []inventory.MovementStatistic
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("type, DATE(created_at) AS day, COUNT(*) AS count, SUM(pieces) AS total_pieces, SUM(boxes) AS total_boxes").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("type, DATE(created_at)").
		Order("day ASC, type ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return stats, nil
}

func applyMovementFilter(query *gorm.DB, filter inventory.MovementFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	return query
}
