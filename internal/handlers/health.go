package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}, h.logger)
}

// Link describes one endpoint in the index response
type Link struct {
	Rel    string `json:"rel"`
	Method string `json:"method"`
	Href   string `json:"href"`
}

// IndexResponse is returned by GET /
type IndexResponse struct {
	Message string `json:"message"`
	Links   []Link `json:"links"`
}

// Index handles GET / with a list of the available endpoints
func Index(logger *slog.Logger) http.HandlerFunc {
	links := []Link{
		{Rel: "list", Method: http.MethodGet, Href: "/api/products"},
		{Rel: "filter", Method: http.MethodGet, Href: "/api/products?category=Pizza&minPrice=10&sort=-price&fields=name,price"},
		{Rel: "get", Method: http.MethodGet, Href: "/api/products/{id}"},
		{Rel: "create", Method: http.MethodPost, Href: "/api/products"},
		{Rel: "update", Method: http.MethodPut, Href: "/api/products/{id}"},
		{Rel: "delete", Method: http.MethodDelete, Href: "/api/products/{id}"},
		{Rel: "health", Method: http.MethodGet, Href: "/health"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, IndexResponse{
			Message: "Product API",
			Links:   links,
		}, logger)
	}
}
