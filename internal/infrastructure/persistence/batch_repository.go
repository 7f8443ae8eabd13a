package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ProductionBatch, error) {
	var batch inventory.ProductionBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapDatabaseError(err)
	}
	return &batch, nil
}

// FindAvailableForProduct finds batches with unreserved stock for a product,
// ordered for FIFO allocation: oldest production first, then nearest expiry.
func (r *GormBatchRepository) FindAvailableForProduct(ctx context.Context, productID uuid.UUID) ([]inventory.ProductionBatch, error) {
	var batches []inventory.ProductionBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ? AND available_quantity > 0", productID, inventory.BatchStatusActive).
		Where("expiry_date IS NULL OR expiry_date > ?", time.Now()).
		Order("production_date ASC, COALESCE(expiry_date, '9999-12-31') ASC, created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return batches, nil
}

// FindByProductAndDate looks up the batch a same-day production run merges into
func (r *GormBatchRepository) FindByProductAndDate(ctx context.Context, productID uuid.UUID, batchDate time.Time) (*inventory.ProductionBatch, error) {
	var batch inventory.ProductionBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND batch_date = ?", productID, batchDate).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapDatabaseError(err)
	}
	return &batch, nil
}

// FindByProduct finds all batches for a product
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.ProductionBatch, error) {
	var batches []inventory.ProductionBatch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.ProductionBatch{}).
			Where("product_id = ?", productID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return batches, nil
}

// FindAll finds batches matching the filter
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ProductionBatch, error) {
	var batches []inventory.ProductionBatch
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.ProductionBatch{}), filter)
	if err := query.Find(&batches).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return batches, nil
}

// FindExpiringSoon finds batches with stock that expire within the window
func (r *GormBatchRepository) FindExpiringSoon(ctx context.Context, withinDays int) ([]inventory.ProductionBatch, error) {
	var batches []inventory.ProductionBatch
	now := time.Now()
	threshold := now.AddDate(0, 0, withinDays)

	if err := r.db.WithContext(ctx).
		Where("status = ? AND available_quantity + reserved_quantity > 0", inventory.BatchStatusActive).
		Where("expiry_date IS NOT NULL AND expiry_date > ? AND expiry_date <= ?", now, threshold).
		Order("expiry_date ASC").
		Find(&batches).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return batches, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.ProductionBatch) error {
	if err := r.db.WithContext(ctx).Save(batch).Error; err != nil {
		return shared.WrapDatabaseError(err)
	}
	return nil
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.ProductionBatch{}, "id = ?", id)
	if result.Error != nil {
		return shared.WrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.ProductionBatch{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.WrapDatabaseError(err)
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if hasStock, ok := filter.Filters["has_stock"]; ok && hasStock == true {
		query = query.Where("available_quantity + reserved_quantity > 0")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("production_date ASC, created_at ASC")
	}
	return query
}
