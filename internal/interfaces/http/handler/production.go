package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/pizzastock/backend/internal/application/inventory"
	"github.com/pizzastock/backend/internal/domain/shared"
)

// ProductionHandler handles production run endpoints
type ProductionHandler struct {
	BaseHandler
	productions *inventoryapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productions *inventoryapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productions: productions}
}

// Create handles POST /productions
func (h *ProductionHandler) Create(c *gin.Context) {
	var input inventoryapp.CreateProductionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BindError(c, err)
		return
	}
	if input.UserName == "" {
		input.UserName = getUsername(c)
	}

	production, err := h.productions.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, production)
}

// Get handles GET /productions/:id
func (h *ProductionHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid production ID")
		return
	}

	production, err := h.productions.GetProduction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, production)
}

// List handles GET /productions
func (h *ProductionHandler) List(c *gin.Context) {
	req, err := parseListRequest(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}
	if productID := c.Query("product_id"); productID != "" {
		filter.Filters = map[string]interface{}{"product_id": productID}
	}

	productions, err := h.productions.ListProductions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, productions)
}
