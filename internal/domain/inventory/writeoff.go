package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// Writeoff records stock removed from a batch outside of normal outbound
// flow (spoilage, damage, quality control). QuantityPieces is the total in
// pieces; Boxes and Pieces carry the box-size breakdown for display.
type Writeoff struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	BatchID        uuid.UUID
	QuantityPieces int64
	Boxes          int64
	Pieces         int64
	Reason         string
	UserName       string
}

// NewWriteoff creates a writeoff record with the box/piece breakdown for the
// given box size.
func NewWriteoff(productID, batchID uuid.UUID, quantity int64, piecesPerBox int, reason, userName string) (*Writeoff, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Writeoff quantity must be positive")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Writeoff reason is required")
	}
	boxes, pieces := breakdown(quantity, piecesPerBox)
	return &Writeoff{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		BatchID:        batchID,
		QuantityPieces: quantity,
		Boxes:          boxes,
		Pieces:         pieces,
		Reason:         strings.TrimSpace(reason),
		UserName:       userName,
	}, nil
}

func breakdown(quantity int64, piecesPerBox int) (boxes, pieces int64) {
	if piecesPerBox <= 0 {
		return 0, quantity
	}
	return quantity / int64(piecesPerBox), quantity % int64(piecesPerBox)
}
