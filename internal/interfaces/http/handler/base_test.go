package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastock/backend/internal/domain/shared"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/boom", func(c *gin.Context) { h.HandleError(c, err) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	engine.ServeHTTP(w, req)
	return w
}

func TestHandleError_NotFound(t *testing.T) {
	w := serveError(t, shared.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	w := serveError(t, fmt.Errorf("loading batch: %w", shared.ErrInvalidState))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INVALID_STATE")
}

func TestHandleError_WrappedValidationKeepsSpecificMessage(t *testing.T) {
	w := serveError(t, fmt.Errorf("%w: writeoff reason is required", shared.ErrValidation))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	assert.Contains(t, w.Body.String(), "writeoff reason is required")
}

func TestHandleError_DatabaseErrorStaysOpaque(t *testing.T) {
	w := serveError(t, shared.WrapDatabaseError(fmt.Errorf("driver: connection reset")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_DATABASE")
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestHandleError_InsufficientStockCarriesNumbers(t *testing.T) {
	w := serveError(t, shared.NewInsufficientStockError(15, 10))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
		Data struct {
			Requested int64 `json:"requested"`
			Available int64 `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "ERR_INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Equal(t, int64(15), resp.Data.Requested)
	assert.Equal(t, int64(10), resp.Data.Available)
}

func TestHandleError_LedgerInconsistency(t *testing.T) {
	w := serveError(t, shared.NewLedgerInconsistencyError("p1", 40, 38))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_LEDGER_INCONSISTENT")
}

func TestHandleError_UnknownErrorIsOpaque(t *testing.T) {
	w := serveError(t, fmt.Errorf("driver: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_INTERNAL")
	assert.NotContains(t, w.Body.String(), "connection reset")
}
