package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorWritesMessageOnly(t *testing.T) {
	w := httptest.NewRecorder()

	NewErrorHandler().HandleInternalError(w, "Error fetching products")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Error fetching products", resp.Message)
	assert.Empty(t, resp.Errors, "no raw error detail leaks into the body")
}

func TestHandleNotFound(t *testing.T) {
	w := httptest.NewRecorder()

	NewErrorHandler().HandleNotFound(w, "Order not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleValidationErrorUsesFixedMessage(t *testing.T) {
	w := httptest.NewRecorder()

	NewErrorHandler().HandleValidationError(w, []ErrorDetail{
		{Field: "Name", Message: "This field is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Please provide all required fields.", resp.Message)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Name", resp.Errors[0].Field)
}

func TestValidationDetails(t *testing.T) {
	type payload struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email"})
	require.Error(t, err)

	details := ValidationDetails(err)
	require.Len(t, details, 2)
	assert.Equal(t, "Name", details[0].Field)
	assert.Equal(t, "This field is required", details[0].Message)
	assert.Equal(t, "Email", details[1].Field)
	assert.Equal(t, "Invalid email format", details[1].Message)
}
