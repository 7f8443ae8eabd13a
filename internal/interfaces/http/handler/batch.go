package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// AdjustBatchRequest is the body for a manual batch correction.
type AdjustBatchRequest struct {
	Delta    int64  `json:"delta" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
	UserName string `json:"user_name,omitempty"`
}

// BatchHandler handles production batch endpoints
type BatchHandler struct {
	BaseHandler
	batches *inventoryapp.BatchService
}

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(batches *inventoryapp.BatchService) *BatchHandler {
	return &BatchHandler{batches: batches}
}

// Get handles GET /batches/:id
func (h *BatchHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batches.GetBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// ListByProduct handles GET /products/:id/batches
func (h *BatchHandler) ListByProduct(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	req, err := parseListRequest(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}
	if status := c.Query("status"); status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	batches, err := h.batches.ListBatches(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// Availability handles GET /products/:id/availability
func (h *BatchHandler) Availability(c *gin.Context) {
	productID, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	availability, err := h.batches.GetAvailability(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, availability)
}

// ListExpiring handles GET /batches/expiring
func (h *BatchHandler) ListExpiring(c *gin.Context) {
	withinDays := 30
	if raw := c.Query("within_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "within_days must be a positive integer")
			return
		}
		withinDays = parsed
	}

	batches, err := h.batches.ListExpiring(c.Request.Context(), withinDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}

// Adjust handles POST /batches/:id/adjust
func (h *BatchHandler) Adjust(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	var req AdjustBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	userName := req.UserName
	if userName == "" {
		userName = getUsername(c)
	}

	batch, err := h.batches.AdjustBatch(c.Request.Context(), id, req.Delta, req.Reason, userName)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}

// Close handles POST /batches/:id/close
func (h *BatchHandler) Close(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return
	}

	batch, err := h.batches.CloseBatch(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batch)
}
