package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/product-service/internal/models"
	"github.com/Lixing-Zhang/product-service/internal/service"
)

const productCreatedMessage = "Product added successfully!"

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

// MessageResponse is the body of successful write operations
type MessageResponse struct {
	Message string `json:"message"`
}

// ListProducts handles GET /products
// Every failure is a 500 carrying the underlying error text.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// CreateProduct handles POST /products
// The body is not validated: absent fields reach the database as NULL, and
// both decode and database failures are reported as 500.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Error("failed to decode product request", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	if err := h.service.CreateProduct(r.Context(), req); err != nil {
		h.logger.Error("failed to create product", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, MessageResponse{Message: productCreatedMessage}, h.logger)
}

// DeleteProduct handles DELETE /products/{id}
// Responds 200 whether or not a row matched.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")

	// bound as a 32-bit INT, same as the Id column
	id, err := strconv.ParseInt(rawID, 10, 32)
	if err != nil {
		h.logger.Error("failed to bind product id", "id", rawID, "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		h.logger.Error("failed to delete product", "id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Product with ID %s deleted.", rawID),
	}, h.logger)
}
