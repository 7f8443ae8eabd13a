package inventory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// BatchAllocation is one slice of a reservation plan: take Quantity pieces
// from the batch identified by BatchID.
type BatchAllocation struct {
	BatchID        uuid.UUID  `json:"batch_id"`
	BatchCode      string     `json:"batch_code"`
	Quantity       int64      `json:"quantity"`
	ProductionDate time.Time  `json:"production_date"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
}

// ReservationPlan is the outcome of walking the available batches for a
// requested quantity. The plan is pure calculation; nothing is persisted
// until a service commits it.
type ReservationPlan struct {
	Allocations    []BatchAllocation
	TotalAllocated int64
	Shortfall      int64
	FullySatisfied bool
}

// PlanFIFOReservation walks batches oldest-first and allocates up to the
// requested quantity. Ordering: production date, then expiry date (nil
// last), then creation time. Batches that are closed, depleted or expired
// are skipped.
func PlanFIFOReservation(batches []ProductionBatch, requested int64) (*ReservationPlan, error) {
	if requested <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Requested quantity must be positive")
	}

	available := make([]ProductionBatch, 0, len(batches))
	for _, b := range batches {
		if b.IsAvailable() {
			available = append(available, b)
		}
	}

	sorted := make([]ProductionBatch, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].ProductionDate.Equal(sorted[j].ProductionDate) {
			return sorted[i].ProductionDate.Before(sorted[j].ProductionDate)
		}
		if sorted[i].ExpiryDate != nil && sorted[j].ExpiryDate != nil {
			if !sorted[i].ExpiryDate.Equal(*sorted[j].ExpiryDate) {
				return sorted[i].ExpiryDate.Before(*sorted[j].ExpiryDate)
			}
		} else if sorted[i].ExpiryDate != nil {
			return true
		} else if sorted[j].ExpiryDate != nil {
			return false
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	allocations := make([]BatchAllocation, 0, len(sorted))
	remaining := requested
	var total int64

	for _, batch := range sorted {
		if remaining == 0 {
			break
		}
		take := batch.AvailableQuantity
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}
		allocations = append(allocations, BatchAllocation{
			BatchID:        batch.ID,
			BatchCode:      batch.BatchCode,
			Quantity:       take,
			ProductionDate: batch.ProductionDate,
			ExpiryDate:     batch.ExpiryDate,
		})
		total += take
		remaining -= take
	}

	return &ReservationPlan{
		Allocations:    allocations,
		TotalAllocated: total,
		Shortfall:      remaining,
		FullySatisfied: remaining == 0,
	}, nil
}

// TotalAvailable sums the available quantity across usable batches
func TotalAvailable(batches []ProductionBatch) int64 {
	var total int64
	for _, b := range batches {
		if b.IsAvailable() {
			total += b.AvailableQuantity
		}
	}
	return total
}
