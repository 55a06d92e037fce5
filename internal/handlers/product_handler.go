package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/service"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
// Supports category, minPrice, sort and fields query parameters
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), r.URL.Query())
	if err != nil {
		h.handleError(w, "list products", "", err)
		return
	}

	WriteJSON(w, http.StatusOK, ProductListResponse{
		Count:    len(products),
		Products: products,
	}, h.logger)
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		h.handleError(w, "get product", productID, err)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	id, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		h.handleError(w, "create product", "", err)
		return
	}

	h.logger.Info("product created", "productId", id.Hex())
	WriteJSON(w, http.StatusCreated, CreatedResponse{
		Message: "Product created",
		ID:      id.Hex(),
	}, h.logger)
}

// UpdateProduct handles PUT /api/products/{id}
// Only the fields present in the body are changed.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productID, in)
	if err != nil {
		h.handleError(w, "update product", productID, err)
		return
	}

	h.logger.Info("product updated", "productId", productID)
	WriteJSON(w, http.StatusOK, UpdatedResponse{
		Message: "Product updated",
		Product: product,
	}, h.logger)
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), productID); err != nil {
		h.handleError(w, "delete product", productID, err)
		return
	}

	h.logger.Info("product deleted", "productId", productID)
	WriteJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted"}, h.logger)
}

// decodeInput reads a product payload. An empty body decodes to an empty input
// so that the validator, not the decoder, reports the missing fields.
func (h *ProductHandler) decodeInput(w http.ResponseWriter, r *http.Request) (models.ProductInput, bool) {
	var in models.ProductInput

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("failed to decode product request", "error", err)
		WriteError(w, http.StatusBadRequest, msgInvalidBody, h.logger)
		return in, false
	}
	return in, true
}

// handleError maps service and repository errors to responses.
// Details of unexpected errors are logged and never sent to the client.
func (h *ProductHandler) handleError(w http.ResponseWriter, op, productID string, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		h.logger.Warn("rejected request", "operation", op, "productId", productID, "kind", verr.Kind, "reason", verr.Message)
		WriteError(w, http.StatusBadRequest, verr.Message, h.logger)
	case errors.Is(err, repository.ErrProductNotFound):
		h.logger.Info("product not found", "operation", op, "productId", productID)
		WriteError(w, http.StatusNotFound, msgNotFound, h.logger)
	case errors.Is(err, repository.ErrStoreUnavailable):
		WriteError(w, http.StatusServiceUnavailable, middleware.NotReadyMessage, h.logger)
	default:
		h.logger.Error("failed to "+op, "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, msgServerError, h.logger)
	}
}
