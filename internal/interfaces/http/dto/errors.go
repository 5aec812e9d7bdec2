package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "ERR_INTERNAL"
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here are treated as business-rule violations (422).
var domainCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_ACCOUNT":        http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_STATE_NAME":     http.StatusBadRequest,
	"INVALID_GSTIN":          http.StatusBadRequest,
	"INVALID_AMOUNT":         http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_GST_RATE":       http.StatusBadRequest,
	"INVALID_DOCUMENT_KIND":  http.StatusBadRequest,
	"INVALID_SUPPLY_TYPE":    http.StatusBadRequest,
	"INVALID_NUMBER":         http.StatusBadRequest,
	"INVALID_PREFIX":         http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_DESIGNATION":    http.StatusBadRequest,
	"INVALID_IDENTIFIER":     http.StatusBadRequest,
	"INVALID_ENTRY_TYPE":     http.StatusBadRequest,
	"INVALID_DESCRIPTION":    http.StatusBadRequest,
	"NO_CUSTOMER":            http.StatusBadRequest,
	"EMPTY_LINE_ITEMS":       http.StatusBadRequest,
	"MISSING_REASON":         http.StatusBadRequest,

	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"ZERO_VALUE_DOCUMENT":     http.StatusUnprocessableEntity,
	"NUMBER_ALREADY_ASSIGNED": http.StatusUnprocessableEntity,

	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
