package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// WriteoffHandler handles stock writeoff endpoints
type WriteoffHandler struct {
	BaseHandler
	writeoffs *inventoryapp.WriteoffService
}

// NewWriteoffHandler creates a new WriteoffHandler
func NewWriteoffHandler(writeoffs *inventoryapp.WriteoffService) *WriteoffHandler {
	return &WriteoffHandler{writeoffs: writeoffs}
}

// Create handles POST /writeoffs
func (h *WriteoffHandler) Create(c *gin.Context) {
	var input inventoryapp.CreateWriteoffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	if input.UserName == "" {
		input.UserName = getUsername(c)
	}

	writeoffs, err := h.writeoffs.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, writeoffs)
}

// Get handles GET /writeoffs/:id
func (h *WriteoffHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid writeoff ID")
		return
	}

	writeoff, err := h.writeoffs.GetWriteoff(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, writeoff)
}

// List handles GET /writeoffs
func (h *WriteoffHandler) List(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}
	if productID := c.Query("product_id"); productID != "" {
		filter.Filters = map[string]interface{}{"product_id": productID}
	}

	writeoffs, err := h.writeoffs.ListWriteoffs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, writeoffs)
}
