package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
	"github.com/warehouse/backend/internal/interfaces/http/dto"
	"github.com/warehouse/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated sends a 200 response with pagination meta
func Paginated[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(page))
}

// BadRequest sends a 400 response, formatting binding errors
func (h *BaseHandler) BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrCodeBadRequest,
		middleware.ValidationMessage(err),
		middleware.GetRequestID(c),
	))
}

// HandleError converts a domain error into the matching HTTP response.
// Anything that is not a DomainError is reported as a 500 without leaking
// its message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code), dto.NewDetailedErrorResponse(
			domainErr.Code,
			domainErr.Message,
			domainErr.Details,
			middleware.GetRequestID(c),
		))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		middleware.GetRequestID(c),
	))
}

// bindOptionalJSON binds a JSON request body whose fields are all optional.
// An absent or empty body leaves dest at its zero value instead of failing,
// so clients may omit the body entirely.
func bindOptionalJSON(c *gin.Context, dest any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, shared.NewDomainError(dto.ErrCodeBadRequest, "Invalid ID in path")
	}
	return id, nil
}
