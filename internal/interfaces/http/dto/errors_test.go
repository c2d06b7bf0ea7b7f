package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warehouse/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeBadRequest, http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_SERIES", http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"DUPLICATE_NUMBER", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"OUTSTANDING_BALANCE", http.StatusUnprocessableEntity},
		{"ALREADY_CANCELLED", http.StatusUnprocessableEntity},
		{"INVALID_COUNTERPARTY", http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		// Unmapped codes fall back to 500
		{"SOMETHING_NEW", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"name": "Widget"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeNotFound, "Product not found", "req-123")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 42, 2, 10)
	resp := NewPaginatedResponse(page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 5, resp.Meta.TotalPages)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponse(ErrCodeUnauthorized, "Missing token", "req-456")

	data, err := json.Marshal(resp)
	assert.NoError(t, err)

	var decoded Response
	err = json.Unmarshal(data, &decoded)
	assert.NoError(t, err)

	assert.False(t, decoded.Success)
	assert.Equal(t, ErrCodeUnauthorized, decoded.Error.Code)
	assert.Equal(t, "Missing token", decoded.Error.Message)
	assert.Equal(t, "req-456", decoded.Error.RequestID)
}
