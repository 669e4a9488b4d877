package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/glowmart/ai-product-search/backend/internal/application/services"
)

// AffiliateHandler handles affiliate tracking and revenue HTTP requests
type AffiliateHandler struct {
	affiliateService *services.AffiliateService
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateService *services.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateService: affiliateService}
}

type trackClickRequest struct {
	ProductID string `json:"product_id"`
	Retailer  string `json:"retailer"`
	UserID    string `json:"user_id,omitempty"`
}

// TrackClick handles POST /api/affiliate/click
func (h *AffiliateHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req trackClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.affiliateService.TrackClick(r.Context(), req.ProductID, req.Retailer, req.UserID)
	if err != nil {
		respondWithAppError(w, err, "failed to track click")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetRevenueReport handles GET /api/analytics/revenue
func (h *AffiliateHandler) GetRevenueReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.affiliateService.Report(r.Context())
	if err != nil {
		respondWithAppError(w, err, "failed to get analytics")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
