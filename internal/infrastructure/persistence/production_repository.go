package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductionRepository implements ProductionRepository using GORM
type GormProductionRepository struct {
	db *gorm.DB
}

// NewGormProductionRepository creates a new GormProductionRepository
func NewGormProductionRepository(db *gorm.DB) *GormProductionRepository {
	return &GormProductionRepository{db: db}
}

// Create inserts a production run record
func (r *GormProductionRepository) Create(ctx context.Context, run *inventory.ProductionRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return shared.WrapDatabaseError(err)
	}
	return nil
}

// FindByID finds a production run by its ID
func (r *GormProductionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ProductionRun, error) {
	var run inventory.ProductionRun
	if err := r.db.WithContext(ctx).First(&run, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapDatabaseError(err)
	}
	return &run, nil
}

// FindAll finds production runs matching the filter, newest first
func (r *GormProductionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ProductionRun, error) {
	var runs []inventory.ProductionRun
	query := r.db.WithContext(ctx).Model(&inventory.ProductionRun{})
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("production_date DESC, created_at DESC").Find(&runs).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return runs, nil
}

// Count counts production runs matching the filter
func (r *GormProductionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.ProductionRun{})
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.WrapDatabaseError(err)
	}
	return count, nil
}
