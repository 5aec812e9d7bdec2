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
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrNoCustomer          = NewDomainError("NO_CUSTOMER", "No customer selected")
	ErrEmptyLineItems      = NewDomainError("EMPTY_LINE_ITEMS", "Document has no line items")
	ErrZeroValueDocument   = NewDomainError("ZERO_VALUE_DOCUMENT", "Document total is zero; nothing to post")
	ErrMissingReason       = NewDomainError("MISSING_REASON", "A reason is required for this document")
)
