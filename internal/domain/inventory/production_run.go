package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// ProductionRun records a single production event. Several runs on the same
// day feed the same batch (the lot merge rule), so BatchID may be shared.
type ProductionRun struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	BatchID        uuid.UUID
	QuantityPieces int64
	Boxes          int64
	Pieces         int64
	ProductionDate time.Time
	UserName       string
	Notes          string
}

// NewProductionRun creates a production record with the box/piece breakdown
func NewProductionRun(productID, batchID uuid.UUID, quantity int64, piecesPerBox int, productionDate time.Time, userName, notes string) (*ProductionRun, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Production quantity must be positive")
	}
	boxes, pieces := breakdown(quantity, piecesPerBox)
	return &ProductionRun{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		BatchID:        batchID,
		QuantityPieces: quantity,
		Boxes:          boxes,
		Pieces:         pieces,
		ProductionDate: productionDate,
		UserName:       userName,
		Notes:          notes,
	}, nil
}
