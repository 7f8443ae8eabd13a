package catalog

import (
	"strings"

	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a produced good tracked in the warehouse.
// StockPieces is the authoritative denormalized piece balance; StockBoxes is
// derived from it through PiecesPerBox and kept in sync on every change.
type Product struct {
	shared.BaseEntity
	Name         string
	Code         string
	PiecesPerBox int
	StockPieces  int64
	StockBoxes   int64
	Price        decimal.Decimal
	Active       bool
}

// NewProduct creates a new product with validation
func NewProduct(name, code string, piecesPerBox int, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name is required")
	}
	if piecesPerBox < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Pieces per box cannot be negative")
	}
	if piecesPerBox == 0 {
		piecesPerBox = 1
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Price cannot be negative")
	}
	return &Product{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		Code:         strings.TrimSpace(code),
		PiecesPerBox: piecesPerBox,
		Price:        price,
		Active:       true,
	}, nil
}

// ApplyDelta adjusts the piece balance by delta (positive or negative) and
// re-derives the box count. A delta that would drive the balance negative is
// rejected with the exact shortfall.
func (p *Product) ApplyDelta(delta int64) error {
	next := p.StockPieces + delta
	if next < 0 {
		return shared.NewInsufficientStockError(-delta, p.StockPieces)
	}
	p.StockPieces = next
	p.syncBoxes()
	p.Touch()
	return nil
}

// SetStock sets the piece balance directly (corrections, migrations)
func (p *Product) SetStock(pieces int64) error {
	if pieces < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Stock cannot be negative")
	}
	p.StockPieces = pieces
	p.syncBoxes()
	p.Touch()
	return nil
}

func (p *Product) syncBoxes() {
	if p.PiecesPerBox > 0 {
		p.StockBoxes = p.StockPieces / int64(p.PiecesPerBox)
	} else {
		p.StockBoxes = 0
	}
}

// Breakdown splits a piece quantity into full boxes and remaining pieces
// using this product's box size.
func (p *Product) Breakdown(pieces int64) (boxes int64, remainder int64) {
	if p.PiecesPerBox <= 0 {
		return 0, pieces
	}
	return pieces / int64(p.PiecesPerBox), pieces % int64(p.PiecesPerBox)
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.Active = false
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.Active = true
}
