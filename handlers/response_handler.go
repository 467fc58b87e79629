package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Sara-kerr/Ecommerce-MERN/utils"
)

// ResponseHandler handles all successful responses
type ResponseHandler struct{}

// MessageResponse is the body of message-only responses
type MessageResponse struct {
	Message string `json:"message"`
}

// NewResponseHandler creates a new response handler
func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{}
}

// JSON sends a JSON response
func (h *ResponseHandler) JSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		utils.NewErrorHandler().HandleInternalError(w, "Error processing response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Success sends the payload with status 200
func (h *ResponseHandler) Success(w http.ResponseWriter, payload interface{}) {
	h.JSON(w, http.StatusOK, payload)
}

// Created sends the payload with status 201
func (h *ResponseHandler) Created(w http.ResponseWriter, payload interface{}) {
	h.JSON(w, http.StatusCreated, payload)
}

// Message sends a message-only body with the given status
func (h *ResponseHandler) Message(w http.ResponseWriter, code int, message string) {
	h.JSON(w, code, MessageResponse{Message: message})
}
