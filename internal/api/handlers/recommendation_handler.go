package handlers

import (
	"net/http"

	"github.com/glowmart/ai-product-search/backend/internal/application/services"
)

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GetRecommendations handles GET /api/recommendations and
// GET /api/recommendations/{userId}
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	recommendations, recType, err := h.recommendationService.ForUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err, "failed to get recommendations")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations":     recommendations,
		"recommendation_type": recType,
		"ai_powered":          true,
	})
}
