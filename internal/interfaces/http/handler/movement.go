package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/inventory"
)

// AmendMovementRequest is the body for correcting a movement's annotations.
// Quantities are immutable; only reason and user can be amended.
type AmendMovementRequest struct {
	Reason   string `json:"reason,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// MovementHandler handles stock ledger endpoints
type MovementHandler struct {
	BaseHandler
	movements *inventoryapp.MovementService
}

// NewMovementHandler creates a new MovementHandler
func NewMovementHandler(movements *inventoryapp.MovementService) *MovementHandler {
	return &MovementHandler{movements: movements}
}

// Record handles POST /movements
func (h *MovementHandler) Record(c *gin.Context) {
	var input inventoryapp.RecordMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	if input.UserName == "" {
		input.UserName = getUsername(c)
	}

	movement, err := h.movements.Record(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, movement)
}

// Get handles GET /movements/:id
func (h *MovementHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	movement, err := h.movements.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// List handles GET /movements
func (h *MovementHandler) List(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := inventory.MovementFilter{Page: req.Page, PageSize: req.PageSize}

	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product_id")
			return
		}
		filter.ProductID = &id
	}
	if raw := c.Query("batch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid batch_id")
			return
		}
		filter.BatchID = &id
	}
	if raw := c.Query("type"); raw != "" {
		movementType := inventory.MovementType(raw)
		if !movementType.IsValid() {
			h.BadRequest(c, "Unknown movement type")
			return
		}
		filter.Type = &movementType
	}
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date")
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date")
			return
		}
		filter.To = &to
	}

	page, err := h.movements.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Amend handles PATCH /movements/:id
func (h *MovementHandler) Amend(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	var req AmendMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	movement, err := h.movements.Amend(c.Request.Context(), id, req.Reason, req.UserName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movement)
}

// Reverse handles DELETE /movements/:id
func (h *MovementHandler) Reverse(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	if err := h.movements.Reverse(c.Request.Context(), id, getUsername(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Statistics handles GET /movements/statistics
func (h *MovementHandler) Statistics(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "Invalid from date")
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.BadRequest(c, "Invalid to date")
			return
		}
		to = parsed
	}
	if to.Before(from) {
		h.BadRequest(c, "to must not be before from")
		return
	}

	stats, err := h.movements.GetStatistics(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// VerifyBalance handles GET /products/:id/balance/verify
func (h *MovementHandler) VerifyBalance(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	verification, err := h.movements.VerifyBalance(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, verification)
}

// parseDate accepts RFC3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
