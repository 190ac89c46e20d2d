package shared

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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrEmptyCart           = NewDomainError("EMPTY_CART", "Cart is empty")
)

// ValidationError is a domain error carrying a field-keyed map of messages.
// The checkout forms surface these inline next to each input, so the map key
// is the form field name, not a code.
type ValidationError struct {
	DomainError
	Fields map[string]string `json:"fields"`
}

// NewValidationError creates a validation error with per-field details
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{
		DomainError: DomainError{Code: "VALIDATION_FAILED", Message: message},
		Fields:      fields,
	}
}
