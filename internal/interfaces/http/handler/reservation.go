package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
)

// ReserveRequest asks for a FIFO allocation across available batches.
type ReserveRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// ReleaseRequest returns previously reserved quantities to their batches.
type ReleaseRequest struct {
	Allocations []inventory.BatchAllocation `json:"allocations" binding:"required,min=1"`
}

// ConsumeRequest turns reserved quantities into outbound movements.
type ConsumeRequest struct {
	ProductID   uuid.UUID                   `json:"product_id" binding:"required"`
	Allocations []inventory.BatchAllocation `json:"allocations" binding:"required,min=1"`
	Reason      string                      `json:"reason,omitempty"`
	UserName    string                      `json:"user_name,omitempty"`
}

// ReservationHandler handles FIFO reservation endpoints
type ReservationHandler struct {
	BaseHandler
	reservations *inventoryapp.ReservationService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(reservations *inventoryapp.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// Reserve handles POST /reservations
func (h *ReservationHandler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	reservation, err := h.reservations.Reserve(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, reservation)
}

// Release handles POST /reservations/release
func (h *ReservationHandler) Release(c *gin.Context) {
	var req ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.reservations.Release(c.Request.Context(), req.Allocations); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Consume handles POST /reservations/consume
func (h *ReservationHandler) Consume(c *gin.Context) {
	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	userName := req.UserName
	if userName == "" {
		userName = getUsername(c)
	}

	movements, err := h.reservations.Consume(c.Request.Context(), req.ProductID, req.Allocations, req.Reason, userName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}
