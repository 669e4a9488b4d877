package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/glowmart/ai-product-search/backend/internal/application/services"
	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
)

// SearchHandler handles product search HTTP requests
type SearchHandler struct {
	searchService     *services.SearchService
	suggestionService *services.SuggestionService
	defaultLimit      int
}

// NewSearchHandler creates a new search handler. defaultLimit is the page
// size applied when the request omits limit; pass 0 for the standard default.
func NewSearchHandler(searchService *services.SearchService, suggestionService *services.SuggestionService, defaultLimit int) *SearchHandler {
	if defaultLimit <= 0 {
		defaultLimit = entities.DefaultSearchLimit
	}
	return &SearchHandler{
		searchService:     searchService,
		suggestionService: suggestionService,
		defaultLimit:      defaultLimit,
	}
}

// SearchProducts handles GET /api/search/products
func (h *SearchHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if query.Limit <= 0 {
		query.Limit = h.defaultLimit
	}

	response, err := h.searchService.Search(r.Context(), query)
	if err != nil {
		respondWithAppError(w, err, "search failed")
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GetSuggestions handles GET /api/search/suggestions
func (h *SearchHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")

	suggestions := h.suggestionService.Suggest(r.Context(), partial)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
	})
}

// parseSearchQuery builds a SearchQuery from URL query parameters. Numeric
// parameters must parse when present; pagination is clamped later by
// SearchQuery.Normalized.
func parseSearchQuery(values url.Values) (entities.SearchQuery, error) {
	query := entities.SearchQuery{
		Query:    values.Get("q"),
		Category: values.Get("category"),
		Brand:    values.Get("brand"),
		SortBy:   parseSortBy(values.Get("sort_by")),
	}

	minPrice, err := parseOptionalFloat(values.Get("min_price"))
	if err != nil {
		return entities.SearchQuery{}, apperrors.NewValidationError("min_price must be a number")
	}
	query.MinPrice = minPrice

	maxPrice, err := parseOptionalFloat(values.Get("max_price"))
	if err != nil {
		return entities.SearchQuery{}, apperrors.NewValidationError("max_price must be a number")
	}
	query.MaxPrice = maxPrice

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return entities.SearchQuery{}, apperrors.NewValidationError("limit must be an integer")
		}
		query.Limit = limit
	}
	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return entities.SearchQuery{}, apperrors.NewValidationError("offset must be an integer")
		}
		query.Offset = offset
	}

	return query, nil
}

func parseSortBy(raw string) entities.SortBy {
	switch entities.SortBy(raw) {
	case entities.SortByPriceAsc, entities.SortByPriceDesc, entities.SortByRating, entities.SortByPopularity:
		return entities.SortBy(raw)
	default:
		return entities.SortByRelevance
	}
}

func parseOptionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
