package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidation        = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrDatabase          = NewDomainError("DATABASE_ERROR", "Database operation failed")
)

// InsufficientStockError carries the requested and available quantities so
// callers can report exactly how short the stock is.
type InsufficientStockError struct {
	Requested int64 `json:"requested"`
	Available int64 `json:"available"`
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// Code returns the domain error code for HTTP mapping
func (e *InsufficientStockError) Code() string {
	return "INSUFFICIENT_STOCK"
}

// NewInsufficientStockError creates an InsufficientStockError
func NewInsufficientStockError(requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{Requested: requested, Available: available}
}

// LedgerInconsistencyError reports a mismatch between the movement ledger
// and the denormalized product balance.
type LedgerInconsistencyError struct {
	ProductID     string `json:"product_id"`
	LedgerBalance int64  `json:"ledger_balance"`
	StockBalance  int64  `json:"stock_balance"`
}

// Error implements the error interface
func (e *LedgerInconsistencyError) Error() string {
	return fmt.Sprintf("ledger inconsistency for product %s: ledger says %d, stock says %d",
		e.ProductID, e.LedgerBalance, e.StockBalance)
}

// Code returns the domain error code for HTTP mapping
func (e *LedgerInconsistencyError) Code() string {
	return "LEDGER_INCONSISTENT"
}

// NewLedgerInconsistencyError creates a LedgerInconsistencyError
func NewLedgerInconsistencyError(productID string, ledgerBalance, stockBalance int64) *LedgerInconsistencyError {
	return &LedgerInconsistencyError{
		ProductID:     productID,
		LedgerBalance: ledgerBalance,
		StockBalance:  stockBalance,
	}
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// WrapDatabaseError wraps a storage-layer failure so raw driver errors
// never cross the domain boundary.
func WrapDatabaseError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrDatabase, err)
}
