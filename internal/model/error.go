package model

import "fmt"

// Standard error codes surfaced to the presentation layer.
const (
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOutOfStock         = "OUT_OF_STOCK"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodePersistence        = "PERSISTENCE_FAILED"
)

// DomainError is a client-side business error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOutOfStock         = NewDomainError(ErrCodeOutOfStock, "Product is out of stock")
	ErrEmptyCart          = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrSubmissionInFlight = NewDomainError(ErrCodeSubmissionInFlight, "An order submission is already in progress")
)

// NewValidationError creates a validation failure for a specific field.
// Validation errors block submission locally and never reach the network.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("%s: %s", field, message),
	}
}

// APIError represents a non-success response from the backend, carrying
// the HTTP status and whatever payload the server returned. It is distinct
// from transport failures, which are wrapped transport errors with no
// status code at all.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
}

// NotFound reports whether the server indicated the entity is absent.
func (e *APIError) NotFound() bool {
	return e.StatusCode == 404
}
