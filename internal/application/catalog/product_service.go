package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/catalog"
	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductInput describes a new product
type CreateProductInput struct {
	Name         string          `json:"name" binding:"required"`
	Code         string          `json:"code" binding:"required"`
	PiecesPerBox int             `json:"pieces_per_box"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateProductInput describes a partial product update. Nil fields are
// left unchanged. Stock is deliberately absent: the balance only moves
// through the movement ledger.
type UpdateProductInput struct {
	Name         *string          `json:"name,omitempty"`
	PiecesPerBox *int             `json:"pieces_per_box,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

// ProductService manages the product catalog
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		logger:   logger,
	}
}

// Create registers a new product with a unique code
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	if existing, err := s.products.FindByCode(ctx, input.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: product code %q is already in use", shared.ErrAlreadyExists, input.Code)
	} else if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}

	product, err := catalog.NewProduct(input.Name, input.Code, input.PiecesPerBox, input.Price)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("code", product.Code))
	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByCode returns a product by its unique code
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.products.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: product name cannot be empty", shared.ErrValidation)
		}
		product.Name = *input.Name
	}
	if input.PiecesPerBox != nil {
		if *input.PiecesPerBox <= 0 {
			return nil, fmt.Errorf("%w: pieces per box must be positive", shared.ErrValidation)
		}
		product.PiecesPerBox = *input.PiecesPerBox
		// box size changed, re-derive the box balance
		if err := product.SetStock(product.StockPieces); err != nil {
			return nil, err
		}
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price cannot be negative", shared.ErrValidation)
		}
		product.Price = *input.Price
	}
	if input.Active != nil {
		if *input.Active {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Deactivate retires a product without deleting its history
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	if err := s.products.Save(ctx, product); err != nil {
		return err
	}
	s.logger.Info("product deactivated", zap.String("product_id", id.String()))
	return nil
}
