package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWriteoffRepository implements WriteoffRepository using GORM
type GormWriteoffRepository struct {
	db *gorm.DB
}

// NewGormWriteoffRepository creates a new GormWriteoffRepository
func NewGormWriteoffRepository(db *gorm.DB) *GormWriteoffRepository {
	return &GormWriteoffRepository{db: db}
}

// Create inserts a writeoff record. Writeoffs are immutable once created.
func (r *GormWriteoffRepository) Create(ctx context.Context, writeoff *inventory.Writeoff) error {
	if err := r.db.WithContext(ctx).Create(writeoff).Error; err != nil {
		return shared.WrapDatabaseError(err)
	}
	return nil
}

// FindByID finds a writeoff by its ID
func (r *GormWriteoffRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Writeoff, error) {
	var writeoff inventory.Writeoff
	if err := r.db.WithContext(ctx).First(&writeoff, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.WrapDatabaseError(err)
	}
	return &writeoff, nil
}

// FindAll finds writeoffs matching the filter, newest first
func (r *GormWriteoffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Writeoff, error) {
	var writeoffs []inventory.Writeoff
	query := r.db.WithContext(ctx).Model(&inventory.Writeoff{})
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("created_at DESC").Find(&writeoffs).Error; err != nil {
		return nil, shared.WrapDatabaseError(err)
	}
	return writeoffs, nil
}

// Count counts writeoffs matching the filter
func (r *GormWriteoffRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Writeoff{})
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.WrapDatabaseError(err)
	}
	return count, nil
}
