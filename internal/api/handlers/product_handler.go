package handlers

import (
	"net/http"

	"github.com/glowmart/ai-product-search/backend/internal/application/services"
)

// ProductHandler handles product detail HTTP requests
type ProductHandler struct {
	detailService *services.ProductDetailService
}

// NewProductHandler creates a new product handler
func NewProductHandler(detailService *services.ProductDetailService) *ProductHandler {
	return &ProductHandler{detailService: detailService}
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	detail, err := h.detailService.GetDetail(r.Context(), productID)
	if err != nil {
		respondWithAppError(w, err, "failed to get product details")
		return
	}

	respondWithJSON(w, http.StatusOK, detail)
}
