package services

import (
	"context"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
)

const (
	searchRecommendationLimit = 3
	personalizedLimit         = 5
	trendingLimit             = 10
	clickHistoryLimit         = 10

	// RecommendationTypeTrending marks recommendations drawn from category or
	// global popularity.
	RecommendationTypeTrending = "trending"
	// RecommendationTypePersonalized marks recommendations derived from a
	// user's click history.
	RecommendationTypePersonalized = "personalized"

	searchRecommendationReason = "Popular in your search category"
)

// RecommendationService produces cross-sell product suggestions, either from
// a page of search results or from a user's click history.
type RecommendationService struct {
	products repositories.ProductRepository
	clicks   repositories.AffiliateClickRepository
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(
	products repositories.ProductRepository,
	clicks repositories.AffiliateClickRepository,
) *RecommendationService {
	return &RecommendationService{products: products, clicks: clicks}
}

// FromResults returns up to three trending products from the category of the
// first result. Recommendations are best-effort: any lookup failure yields an
// empty list, never an error, so a search response can always be assembled.
func (s *RecommendationService) FromResults(ctx context.Context, results []*entities.Product) []entities.Recommendation {
	if len(results) == 0 {
		return []entities.Recommendation{}
	}

	topCategory := results[0].Category
	trending, err := s.products.TrendingByCategory(ctx, topCategory, searchRecommendationLimit)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("category", topCategory).
			Msg("Failed to load trending products for recommendations")
		return []entities.Recommendation{}
	}

	recommendations := make([]entities.Recommendation, 0, len(trending))
	for _, product := range trending {
		recommendations = append(recommendations, entities.Recommendation{
			Type:    RecommendationTypeTrending,
			Product: product,
			Reason:  searchRecommendationReason,
		})
	}
	return recommendations
}

// ForUser returns personalized recommendations when a user id is given and
// click history exists for it, falling back to globally trending products
// otherwise. The second return value names the strategy used.
func (s *RecommendationService) ForUser(ctx context.Context, userID string) ([]*entities.Product, string, error) {
	if userID != "" {
		history, err := s.clicks.RecentProductsByUser(ctx, userID, clickHistoryLimit)
		if err != nil {
			return nil, "", err
		}
		if len(history) > 0 {
			favoriteCategory := history[0].Category
			products, err := s.products.TopRatedByCategory(ctx, favoriteCategory, personalizedLimit)
			if err != nil {
				return nil, "", err
			}
			return products, RecommendationTypePersonalized, nil
		}
	}

	products, err := s.products.Trending(ctx, trendingLimit)
	if err != nil {
		return nil, "", err
	}
	return products, RecommendationTypeTrending, nil
}
