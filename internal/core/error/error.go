package errx

import (
	"errors"
	"fmt"
)

// Code classifies an error produced by the terminal core.
type Code string

const (
	CodeInvalidQuantity   Code = "invalid_quantity"
	CodeInsufficientStock Code = "insufficient_stock"
	CodeProductNotFound   Code = "product_not_found"
	CodeEmptyCart         Code = "empty_cart"
	CodeInvalidProduct    Code = "invalid_product"
	CodeReceiptSink       Code = "receipt_sink"
)

// AppError wraps an underlying error with a stable code and safe message.
type AppError struct {
	Err     error
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, code Code, message string) *AppError {
	return &AppError{
		Err:     err,
		Code:    code,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error, or is an
// AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if e.Err != nil && errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	return false
}

// CodeOf extracts the code from an error chain, or "" when none applies.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Core error kinds. All are recoverable result values; callers match them
// with errors.Is.
var (
	ErrInvalidQuantity   = New(nil, CodeInvalidQuantity, "quantity must be positive")
	ErrInsufficientStock = New(nil, CodeInsufficientStock, "requested quantity exceeds current stock")
	ErrProductNotFound   = New(nil, CodeProductNotFound, "product not found")
	ErrEmptyCart         = New(nil, CodeEmptyCart, "cart is empty, nothing to bill")
	ErrInvalidProduct    = New(nil, CodeInvalidProduct, "product fields are invalid")
)
