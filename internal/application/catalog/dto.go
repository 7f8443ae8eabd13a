package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	PiecesPerBox int             `json:"pieces_per_box"`
	StockPieces  int64           `json:"stock_pieces"`
	StockBoxes   int64           `json:"stock_boxes"`
	Price        decimal.Decimal `json:"price"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProductResponse converts a domain product to its API view
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		PiecesPerBox: p.PiecesPerBox,
		StockPieces:  p.StockPieces,
		StockBoxes:   p.StockBoxes,
		Price:        p.Price,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
