package inventory

import (
	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// MovementType classifies a ledger entry. The sign of a movement is carried
// by its type, never by a negative quantity: corrections are split into an
// explicit up and down type.
type MovementType string

const (
	MovementTypeIn             MovementType = "IN"
	MovementTypeOut            MovementType = "OUT"
	MovementTypeTransfer       MovementType = "TRANSFER"
	MovementTypeCorrectionUp   MovementType = "CORRECTION_UP"
	MovementTypeCorrectionDown MovementType = "CORRECTION_DOWN"
	MovementTypeWriteoff       MovementType = "WRITEOFF"
	MovementTypeProduction     MovementType = "PRODUCTION"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer,
		MovementTypeCorrectionUp, MovementTypeCorrectionDown,
		MovementTypeWriteoff, MovementTypeProduction:
		return true
	}
	return false
}

// String returns the string representation
func (t MovementType) String() string {
	return string(t)
}

// IsIncrease returns true if this movement type increases the product balance
func (t MovementType) IsIncrease() bool {
	switch t {
	case MovementTypeIn, MovementTypeProduction, MovementTypeCorrectionUp:
		return true
	}
	return false
}

// IsDecrease returns true if this movement type decreases the product balance
func (t MovementType) IsDecrease() bool {
	return t.IsValid() && !t.IsIncrease()
}

// ReverseType returns the movement type whose effect cancels this one.
// Used when a ledger entry is removed and its balance impact must be
// replayed in the opposite direction.
func (t MovementType) ReverseType() MovementType {
	switch t {
	case MovementTypeIn:
		return MovementTypeOut
	case MovementTypeOut:
		return MovementTypeIn
	case MovementTypeTransfer:
		return MovementTypeIn
	case MovementTypeCorrectionUp:
		return MovementTypeCorrectionDown
	case MovementTypeCorrectionDown:
		return MovementTypeCorrectionUp
	case MovementTypeWriteoff:
		return MovementTypeIn
	case MovementTypeProduction:
		return MovementTypeOut
	}
	return t
}

// AllMovementTypes returns every valid movement type
func AllMovementTypes() []MovementType {
	return []MovementType{
		MovementTypeIn,
		MovementTypeOut,
		MovementTypeTransfer,
		MovementTypeCorrectionUp,
		MovementTypeCorrectionDown,
		MovementTypeWriteoff,
		MovementTypeProduction,
	}
}

// StockMovement is an append-only ledger row. Once written, only Reason and
// UserName may change; quantities and type are immutable.
type StockMovement struct {
	shared.BaseEntity
	ProductID     uuid.UUID
	Type          MovementType
	Pieces        int64
	Boxes         int64
	BatchID       *uuid.UUID
	BalanceBefore int64
	BalanceAfter  int64
	Reason        string
	UserName      string
}

// NewStockMovement creates a new ledger entry. Pieces must be positive;
// direction comes from the type.
func NewStockMovement(productID uuid.UUID, movementType MovementType, pieces, boxes int64) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid movement type")
	}
	if pieces <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement pieces must be positive")
	}
	if boxes < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement boxes cannot be negative")
	}
	return &StockMovement{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       movementType,
		Pieces:     pieces,
		Boxes:      boxes,
	}, nil
}

// WithBatch links the movement to a production batch
func (m *StockMovement) WithBatch(batchID uuid.UUID) *StockMovement {
	m.BatchID = &batchID
	return m
}

// WithReason attaches a reason to the movement
func (m *StockMovement) WithReason(reason string) *StockMovement {
	m.Reason = reason
	return m
}

// WithUser records who triggered the movement
func (m *StockMovement) WithUser(userName string) *StockMovement {
	m.UserName = userName
	return m
}

// WithBalances records the product balance around this movement
func (m *StockMovement) WithBalances(before, after int64) *StockMovement {
	m.BalanceBefore = before
	m.BalanceAfter = after
	return m
}

// Delta returns the signed effect of this movement on the product balance
func (m *StockMovement) Delta() int64 {
	if m.Type.IsIncrease() {
		return m.Pieces
	}
	return -m.Pieces
}

// Amend updates the only mutable fields of a ledger entry
func (m *StockMovement) Amend(reason, userName string) {
	if reason != "" {
		m.Reason = reason
	}
	if userName != "" {
		m.UserName = userName
	}
	m.Touch()
}
