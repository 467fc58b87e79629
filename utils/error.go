package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler maps service failures onto the API's error responses:
// validation failures to 400, unresolvable identifiers to 404 and
// persistence errors to 500. Raw storage errors are never echoed to the
// client; callers log them and pass only a public message here.
type ErrorHandler struct{}

// ErrorResponse represents an error response body
type ErrorResponse struct {
	Message string        `json:"message"`
	Errors  []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents per-field error information
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// HandleError sends a generic error response
func (h *ErrorHandler) HandleError(w http.ResponseWriter, code int, message string) {
	response, _ := json.Marshal(ErrorResponse{Message: message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// HandleValidationError sends a 400 with the fixed required-fields
// message plus per-field details.
func (h *ErrorHandler) HandleValidationError(w http.ResponseWriter, errors []ErrorDetail) {
	response, _ := json.Marshal(ErrorResponse{
		Message: "Please provide all required fields.",
		Errors:  errors,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write(response)
}

// HandleBadRequest sends a 400 Bad Request response
func (h *ErrorHandler) HandleBadRequest(w http.ResponseWriter, message string) {
	h.HandleError(w, http.StatusBadRequest, message)
}

// HandleNotFound sends a 404 Not Found response
func (h *ErrorHandler) HandleNotFound(w http.ResponseWriter, message string) {
	h.HandleError(w, http.StatusNotFound, message)
}

// HandleConflict sends a 409 Conflict response
func (h *ErrorHandler) HandleConflict(w http.ResponseWriter, message string) {
	h.HandleError(w, http.StatusConflict, message)
}

// HandleInternalError sends a 500 Internal Server Error response. The
// message must be a public one; the underlying error belongs in the log.
func (h *ErrorHandler) HandleInternalError(w http.ResponseWriter, message string) {
	h.HandleError(w, http.StatusInternalServerError, message)
}
