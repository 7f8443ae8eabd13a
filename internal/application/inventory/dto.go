package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pizzastock/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// BatchResponse is the API view of a production batch
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	BatchCode         string          `json:"batch_code"`
	BatchDate         string          `json:"batch_date"`
	ProductionDate    time.Time       `json:"production_date"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	TotalQuantity     int64           `json:"total_quantity"`
	AvailableQuantity int64           `json:"available_quantity"`
	ReservedQuantity  int64           `json:"reserved_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToBatchResponse converts a domain batch to its API view
func ToBatchResponse(b *inventory.ProductionBatch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchCode:         b.BatchCode,
		BatchDate:         b.BatchDate.Format("2006-01-02"),
		ProductionDate:    b.ProductionDate,
		ExpiryDate:        b.ExpiryDate,
		TotalQuantity:     b.TotalQuantity,
		AvailableQuantity: b.AvailableQuantity,
		ReservedQuantity:  b.ReservedQuantity,
		UnitCost:          b.UnitCost,
		Status:            b.Status.String(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// ToBatchResponses converts a slice of batches
func ToBatchResponses(batches []inventory.ProductionBatch) []BatchResponse {
	out := make([]BatchResponse, len(batches))
	for i := range batches {
		out[i] = ToBatchResponse(&batches[i])
	}
	return out
}

// ProductAvailabilityResponse groups a product's usable lots in FIFO order
type ProductAvailabilityResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	TotalAvailable int64           `json:"total_available"`
	Batches        []BatchResponse `json:"batches"`
}

// MovementResponse is the API view of a ledger entry
type MovementResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProductID     uuid.UUID  `json:"product_id"`
	Type          string     `json:"movement_type"`
	Pieces        int64      `json:"pieces"`
	Boxes         int64      `json:"boxes"`
	BatchID       *uuid.UUID `json:"batch_id,omitempty"`
	BalanceBefore int64      `json:"balance_before"`
	BalanceAfter  int64      `json:"balance_after"`
	Reason        string     `json:"reason,omitempty"`
	UserName      string     `json:"user_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToMovementResponse converts a domain movement to its API view
func ToMovementResponse(m *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type.String(),
		Pieces:        m.Pieces,
		Boxes:         m.Boxes,
		BatchID:       m.BatchID,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reason:        m.Reason,
		UserName:      m.UserName,
		CreatedAt:     m.CreatedAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}

// WriteoffResponse is the API view of a writeoff record
type WriteoffResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	BatchID        uuid.UUID `json:"batch_id"`
	QuantityPieces int64     `json:"quantity_pieces"`
	Boxes          int64     `json:"boxes"`
	Pieces         int64     `json:"pieces"`
	Reason         string    `json:"reason"`
	UserName       string    `json:"user_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToWriteoffResponse converts a domain writeoff to its API view
func ToWriteoffResponse(w *inventory.Writeoff) WriteoffResponse {
	return WriteoffResponse{
		ID:             w.ID,
		ProductID:      w.ProductID,
		BatchID:        w.BatchID,
		QuantityPieces: w.QuantityPieces,
		Boxes:          w.Boxes,
		Pieces:         w.Pieces,
		Reason:         w.Reason,
		UserName:       w.UserName,
		CreatedAt:      w.CreatedAt,
	}
}

// ToWriteoffResponses converts a slice of writeoffs
func ToWriteoffResponses(writeoffs []inventory.Writeoff) []WriteoffResponse {
	out := make([]WriteoffResponse, len(writeoffs))
	for i := range writeoffs {
		out[i] = ToWriteoffResponse(&writeoffs[i])
	}
	return out
}

// ProductionResponse is the API view of a production run
type ProductionResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	BatchID        uuid.UUID `json:"batch_id"`
	QuantityPieces int64     `json:"quantity_pieces"`
	Boxes          int64     `json:"boxes"`
	Pieces         int64     `json:"pieces"`
	ProductionDate time.Time `json:"production_date"`
	UserName       string    `json:"user_name,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToProductionResponse converts a domain production run to its API view
func ToProductionResponse(r *inventory.ProductionRun) ProductionResponse {
	return ProductionResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		BatchID:        r.BatchID,
		QuantityPieces: r.QuantityPieces,
		Boxes:          r.Boxes,
		Pieces:         r.Pieces,
		ProductionDate: r.ProductionDate,
		UserName:       r.UserName,
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
	}
}

// ToProductionResponses converts a slice of production runs
func ToProductionResponses(runs []inventory.ProductionRun) []ProductionResponse {
	out := make([]ProductionResponse, len(runs))
	for i := range runs {
		out[i] = ToProductionResponse(&runs[i])
	}
	return out
}

// ReservationResponse reports a committed FIFO reservation
type ReservationResponse struct {
	ProductID      uuid.UUID                   `json:"product_id"`
	Requested      int64                       `json:"requested"`
	TotalAllocated int64                       `json:"total_allocated"`
	Allocations    []inventory.BatchAllocation `json:"allocations"`
}

// BalanceVerification reports a ledger replay against the stored balance
type BalanceVerification struct {
	ProductID     uuid.UUID `json:"product_id"`
	LedgerBalance int64     `json:"ledger_balance"`
	StockBalance  int64     `json:"stock_balance"`
	Consistent    bool      `json:"consistent"`
}
