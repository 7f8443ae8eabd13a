package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchStatus represents the lifecycle state of a production batch
type BatchStatus string

const (
	// BatchStatusActive means the batch still holds stock
	BatchStatusActive BatchStatus = "ACTIVE"
	// BatchStatusDepleted means available and reserved both reached zero
	BatchStatusDepleted BatchStatus = "DEPLETED"
	// BatchStatusClosed means the batch was closed manually (recall, spoilage)
	BatchStatusClosed BatchStatus = "CLOSED"
)

// IsValid checks if the batch status is valid
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusActive, BatchStatusDepleted, BatchStatusClosed:
		return true
	}
	return false
}

// String returns the string representation
func (s BatchStatus) String() string {
	return string(s)
}

// DefaultShelfLifeDays is the shelf life applied when production does not
// specify an expiry date.
const DefaultShelfLifeDays = 365

// ProductionBatch is a lot of produced goods. BatchDate (date-only) is the
// FIFO merge key: two productions of the same product on the same day land
// in the same batch. Quantities are whole pieces.
//
// TotalQuantity records what the lot produced and only moves when production
// is added or the produced amount is corrected. Consumption and writeoffs
// deplete AvailableQuantity/ReservedQuantity, so an exhausted lot stays on
// the books with its produced total and zero available.
//
// Invariant: AvailableQuantity + ReservedQuantity <= TotalQuantity, all >= 0.
type ProductionBatch struct {
	shared.BaseEntity
	ProductID         uuid.UUID
	BatchCode         string
	BatchDate         time.Time
	ProductionDate    time.Time
	ExpiryDate        *time.Time
	TotalQuantity     int64
	AvailableQuantity int64
	ReservedQuantity  int64
	UnitCost          decimal.Decimal
	Status            BatchStatus
}

// NewProductionBatch creates a new active batch for a production run.
// When expiryDate is nil the default shelf life is applied.
func NewProductionBatch(
	productID uuid.UUID,
	batchCode string,
	productionDate time.Time,
	expiryDate *time.Time,
	quantity int64,
	unitCost decimal.Decimal,
) (*ProductionBatch, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Batch quantity must be positive")
	}
	if expiryDate == nil {
		d := productionDate.AddDate(0, 0, DefaultShelfLifeDays)
		expiryDate = &d
	}
	return &ProductionBatch{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		BatchCode:         batchCode,
		BatchDate:         DateOnly(productionDate),
		ProductionDate:    productionDate,
		ExpiryDate:        expiryDate,
		TotalQuantity:     quantity,
		AvailableQuantity: quantity,
		ReservedQuantity:  0,
		UnitCost:          unitCost,
		Status:            BatchStatusActive,
	}, nil
}

// DateOnly truncates a timestamp to midnight UTC, the granularity used for
// batch merging.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddProduction merges another production run of the same day into this batch
func (b *ProductionBatch) AddProduction(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Production quantity must be positive")
	}
	if b.Status == BatchStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot add production to a closed batch")
	}
	b.TotalQuantity += quantity
	b.AvailableQuantity += quantity
	b.Status = BatchStatusActive
	b.Touch()
	return nil
}

// Reserve moves quantity from available to reserved
func (b *ProductionBatch) Reserve(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Reservation quantity must be positive")
	}
	if quantity > b.AvailableQuantity {
		return shared.NewInsufficientStockError(quantity, b.AvailableQuantity)
	}
	b.AvailableQuantity -= quantity
	b.ReservedQuantity += quantity
	b.Touch()
	return nil
}

// Release moves quantity back from reserved to available
func (b *ProductionBatch) Release(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Release quantity must be positive")
	}
	if quantity > b.ReservedQuantity {
		return shared.NewDomainError("INVALID_STATE", "Cannot release more than is reserved")
	}
	b.ReservedQuantity -= quantity
	b.AvailableQuantity += quantity
	if b.Status == BatchStatusDepleted {
		b.Status = BatchStatusActive
	}
	b.Touch()
	return nil
}

// ConsumeReserved finalizes a reservation, removing the quantity from the lot
func (b *ProductionBatch) ConsumeReserved(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Consume quantity must be positive")
	}
	if quantity > b.ReservedQuantity {
		return shared.NewDomainError("INVALID_STATE", "Cannot consume more than is reserved")
	}
	b.ReservedQuantity -= quantity
	b.refreshStatus()
	b.Touch()
	return nil
}

// ConsumeAvailable removes quantity directly from available stock,
// bypassing the reservation step (writeoffs, direct outbound).
func (b *ProductionBatch) ConsumeAvailable(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Consume quantity must be positive")
	}
	if quantity > b.AvailableQuantity {
		return shared.NewInsufficientStockError(quantity, b.AvailableQuantity)
	}
	b.AvailableQuantity -= quantity
	b.refreshStatus()
	b.Touch()
	return nil
}

// ReturnStock puts previously consumed quantity back into available stock.
// The produced total is untouched since consumption never changed it.
func (b *ProductionBatch) ReturnStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Return quantity must be positive")
	}
	if b.AvailableQuantity+b.ReservedQuantity+quantity > b.TotalQuantity {
		return shared.NewDomainError("INVALID_STATE", "Cannot return more than was consumed")
	}
	b.AvailableQuantity += quantity
	b.refreshStatus()
	b.Touch()
	return nil
}

// Adjust corrects the produced amount of the lot by a signed delta, moving
// total and available together. Negative deltas cannot exceed what is
// available.
func (b *ProductionBatch) Adjust(delta int64) error {
	if delta == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Adjustment delta cannot be zero")
	}
	if delta < 0 && -delta > b.AvailableQuantity {
		return shared.NewInsufficientStockError(-delta, b.AvailableQuantity)
	}
	b.AvailableQuantity += delta
	b.TotalQuantity += delta
	b.refreshStatus()
	b.Touch()
	return nil
}

// Close marks the batch closed. Reserved stock blocks closing.
func (b *ProductionBatch) Close() error {
	if b.ReservedQuantity > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot close a batch with reserved stock")
	}
	b.Status = BatchStatusClosed
	b.Touch()
	return nil
}

func (b *ProductionBatch) refreshStatus() {
	if b.Status == BatchStatusClosed {
		return
	}
	if b.AvailableQuantity == 0 && b.ReservedQuantity == 0 {
		b.Status = BatchStatusDepleted
	} else {
		b.Status = BatchStatusActive
	}
}

// IsExpired returns true if the batch has expired
func (b *ProductionBatch) IsExpired() bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(time.Now())
}

// WillExpireWithin returns true if the batch will expire within the given duration
func (b *ProductionBatch) WillExpireWithin(duration time.Duration) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(time.Now().Add(duration))
}

// HasStock returns true if the batch has available quantity
func (b *ProductionBatch) HasStock() bool {
	return b.AvailableQuantity > 0 && b.Status == BatchStatusActive
}

// IsAvailable returns true if the batch can supply a reservation
func (b *ProductionBatch) IsAvailable() bool {
	return b.HasStock() && !b.IsExpired()
}

// TotalValue returns the value of the lot as produced
func (b *ProductionBatch) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(b.TotalQuantity).Mul(b.UnitCost)
}
