package services

import (
	"context"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
)

const (
	detailReviewLimit   = 50
	similarProductLimit = 6

	recommendationStrengthHigh     = "highly_recommended"
	recommendationStrengthModerate = "moderately_recommended"

	strongSentimentThreshold = 0.5
)

// AIInsights is the derived summary attached to a product detail response.
type AIInsights struct {
	OverallSentiment       float64 `json:"overall_sentiment"`
	RecommendationStrength string  `json:"recommendation_strength"`
}

// ProductDetail is the assembled detail payload for one product.
type ProductDetail struct {
	Product           *entities.Product        `json:"product"`
	Reviews           []*entities.Review       `json:"reviews"`
	SentimentAnalysis entities.SentimentResult `json:"sentiment_analysis"`
	SimilarProducts   []*entities.Product      `json:"similar_products"`
	AIInsights        AIInsights               `json:"ai_insights"`
}

// ProductDetailService assembles the product detail view: the product, its
// most recent reviews, aggregated review sentiment, and similar products.
type ProductDetailService struct {
	products  repositories.ProductRepository
	reviews   repositories.ReviewRepository
	sentiment *SentimentScorer
}

// NewProductDetailService creates a new product detail service.
func NewProductDetailService(
	products repositories.ProductRepository,
	reviews repositories.ReviewRepository,
	sentiment *SentimentScorer,
) *ProductDetailService {
	return &ProductDetailService{products: products, reviews: reviews, sentiment: sentiment}
}

// GetDetail returns the detail payload for one product. The product itself
// is required; reviews and similar products are best-effort and degrade to
// empty lists on lookup failure.
func (s *ProductDetailService) GetDetail(ctx context.Context, productID string) (*ProductDetail, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)

	reviews, err := s.reviews.ListByProduct(ctx, productID, detailReviewLimit)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", productID).Msg("Failed to load reviews for product detail")
		reviews = []*entities.Review{}
	}

	similar, err := s.products.FindSimilar(ctx, product, similarProductLimit)
	if err != nil {
		logger.Warn().Err(err).Str("product_id", productID).Msg("Failed to load similar products")
		similar = []*entities.Product{}
	}

	sentiment := s.sentiment.Score(reviews)

	strength := recommendationStrengthModerate
	if sentiment.OverallSentiment > strongSentimentThreshold {
		strength = recommendationStrengthHigh
	}

	return &ProductDetail{
		Product:           product,
		Reviews:           reviews,
		SentimentAnalysis: sentiment,
		SimilarProducts:   similar,
		AIInsights: AIInsights{
			OverallSentiment:       sentiment.OverallSentiment,
			RecommendationStrength: strength,
		},
	}, nil
}
