package routes

import (
	"net/http"

	"github.com/glowmart/ai-product-search/backend/internal/api/handlers"
	"github.com/glowmart/ai-product-search/backend/internal/api/middleware"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler         *handlers.SearchHandler
	productHandler        *handlers.ProductHandler
	recommendationHandler *handlers.RecommendationHandler
	affiliateHandler      *handlers.AffiliateHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	productHandler *handlers.ProductHandler,
	recommendationHandler *handlers.RecommendationHandler,
	affiliateHandler *handlers.AffiliateHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		searchHandler:         searchHandler,
		productHandler:        productHandler,
		recommendationHandler: recommendationHandler,
		affiliateHandler:      affiliateHandler,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints
	r.mux.HandleFunc("GET /api/search/products", r.searchHandler.SearchProducts)
	r.mux.HandleFunc("GET /api/search/suggestions", r.searchHandler.GetSuggestions)

	// Product endpoints
	r.mux.HandleFunc("GET /api/products/{id}", r.productHandler.GetProduct)

	// Recommendation endpoints
	r.mux.HandleFunc("GET /api/recommendations", r.recommendationHandler.GetRecommendations)
	r.mux.HandleFunc("GET /api/recommendations/{userId}", r.recommendationHandler.GetRecommendations)

	// Monetization endpoints
	r.mux.HandleFunc("POST /api/affiliate/click", r.affiliateHandler.TrackClick)
	r.mux.HandleFunc("GET /api/analytics/revenue", r.affiliateHandler.GetRevenueReport)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS is outermost so its headers are set on every response.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
