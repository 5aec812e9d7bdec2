// Package handler contains the gin HTTP handlers for the billing API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gstbill/backend/internal/domain/shared"
	"github.com/gstbill/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AccountIDHeader carries the acting account until a real auth layer
// fronts the API.
const AccountIDHeader = "X-Account-ID"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getAccountID extracts the account ID from the request
func getAccountID(c *gin.Context) (uuid.UUID, error) {
	value := c.GetHeader(AccountIDHeader)
	if value == "" {
		return uuid.Nil, errors.New("account ID not found in request")
	}
	return uuid.Parse(value)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// SuccessWithWarnings sends a 200 response with non-blocking warnings
func (h *BaseHandler) SuccessWithWarnings(c *gin.Context, data any, warnings any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithWarnings(data, warnings))
}

// CreatedWithWarnings sends a 201 response with non-blocking warnings
func (h *BaseHandler) CreatedWithWarnings(c *gin.Context, data any, warnings any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponseWithWarnings(data, warnings))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// HandleError maps an error to the HTTP response. Domain errors carry
// their own code; everything else is reported as internal.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrCodeInternal, "Internal server error"))
}
