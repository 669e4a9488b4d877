package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetailService(product *entities.Product, reviews []*entities.Review, similar []*entities.Product) *ProductDetailService {
	products := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id string) (*entities.Product, error) {
			if product == nil || product.ID != id {
				return nil, apperrors.NewNotFoundError("product not found")
			}
			return product, nil
		},
		findSimilarFn: func(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error) {
			return similar, nil
		},
	}
	reviewRepo := &fakeReviewRepo{
		listByProductFn: func(ctx context.Context, productID string, limit int) ([]*entities.Review, error) {
			return reviews, nil
		},
	}
	return NewProductDetailService(products, reviewRepo, NewSentimentScorer())
}

func TestGetDetail_AssemblesAllSections(t *testing.T) {
	product := &entities.Product{ID: "p1", Name: "Hydrating Serum", Category: "skincare", Price: 30}
	reviews := []*entities.Review{
		{ReviewText: "love it, amazing results"},
		{ReviewText: "great texture"},
	}
	similar := []*entities.Product{{ID: "p2"}, {ID: "p3"}}

	svc := newDetailService(product, reviews, similar)
	detail, err := svc.GetDetail(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "p1", detail.Product.ID)
	assert.Len(t, detail.Reviews, 2)
	assert.Len(t, detail.SimilarProducts, 2)
	assert.Equal(t, 3, detail.SentimentAnalysis.PositiveMentions)
	assert.Equal(t, detail.SentimentAnalysis.OverallSentiment, detail.AIInsights.OverallSentiment)
}

func TestGetDetail_StrongSentimentIsHighlyRecommended(t *testing.T) {
	product := &entities.Product{ID: "p1"}
	reviews := []*entities.Review{{ReviewText: "amazing, love it"}}

	svc := newDetailService(product, reviews, nil)
	detail, err := svc.GetDetail(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "highly_recommended", detail.AIInsights.RecommendationStrength)
}

func TestGetDetail_WeakSentimentIsModeratelyRecommended(t *testing.T) {
	product := &entities.Product{ID: "p1"}
	reviews := []*entities.Review{
		{ReviewText: "good but disappointing"},
	}

	svc := newDetailService(product, reviews, nil)
	detail, err := svc.GetDetail(context.Background(), "p1")

	require.NoError(t, err)
	assert.Equal(t, "moderately_recommended", detail.AIInsights.RecommendationStrength)
}

func TestGetDetail_UnknownProduct(t *testing.T) {
	svc := newDetailService(nil, nil, nil)

	_, err := svc.GetDetail(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetDetail_ReviewLookupFailureDegrades(t *testing.T) {
	product := &entities.Product{ID: "p1"}
	products := &fakeProductRepo{
		getByIDFn: func(ctx context.Context, id string) (*entities.Product, error) {
			return product, nil
		},
		findSimilarFn: func(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error) {
			return []*entities.Product{{ID: "p2"}}, nil
		},
	}
	reviewRepo := &fakeReviewRepo{
		listByProductFn: func(ctx context.Context, productID string, limit int) ([]*entities.Review, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewProductDetailService(products, reviewRepo, NewSentimentScorer())

	detail, err := svc.GetDetail(context.Background(), "p1")

	require.NoError(t, err)
	assert.Empty(t, detail.Reviews)
	assert.Zero(t, detail.SentimentAnalysis.ReviewsAnalyzed)
	assert.Len(t, detail.SimilarProducts, 1)
}
