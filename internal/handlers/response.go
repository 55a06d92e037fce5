package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
)

// Error messages returned to clients
const (
	msgNotFound         = "Not found"
	msgServerError      = "Server error"
	msgInvalidBody      = "Invalid request body"
	msgRouteNotFound    = "API endpoint not found"
	msgMethodNotAllowed = "Method not allowed"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, ErrorResponse{Error: message}, logger)
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is returned by operations with nothing else to report
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductListResponse is returned by GET /api/products
type ProductListResponse struct {
	Count    int               `json:"count"`
	Products []models.Document `json:"products"`
}

// CreatedResponse is returned by POST /api/products
type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// UpdatedResponse is returned by PUT /api/products/{id}
type UpdatedResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

// NotFound handles requests that match no route
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, msgRouteNotFound, logger)
	}
}

// MethodNotAllowed handles requests to a known path with an unsupported method
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed, logger)
	}
}
