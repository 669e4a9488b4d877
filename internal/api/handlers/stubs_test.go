package handlers

import (
	"context"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
)

// Static stub repositories backing handler tests.

type stubProductRepo struct {
	products   []*entities.Product
	total      int
	names      []string
	similar    []*entities.Product
	trending   []*entities.Product
	byID       map[string]*entities.Product
	lastSearch repositories.SearchParams
}

func (s *stubProductRepo) Create(ctx context.Context, product *entities.Product) error { return nil }
func (s *stubProductRepo) Update(ctx context.Context, product *entities.Product) error { return nil }
func (s *stubProductRepo) Delete(ctx context.Context, id string) error                 { return nil }

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	if product, ok := s.byID[id]; ok {
		return product, nil
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (s *stubProductRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
	s.lastSearch = params
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return nil, nil
	}
	return s.products, nil
}

func (s *stubProductRepo) Count(ctx context.Context, params repositories.SearchParams) (int, error) {
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return 0, nil
	}
	return s.total, nil
}

func (s *stubProductRepo) FindSimilar(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error) {
	return s.similar, nil
}

func (s *stubProductRepo) TrendingByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return s.trending, nil
}

func (s *stubProductRepo) TopRatedByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return s.trending, nil
}

func (s *stubProductRepo) Trending(ctx context.Context, limit int) ([]*entities.Product, error) {
	return s.trending, nil
}

func (s *stubProductRepo) SuggestNames(ctx context.Context, partial string, limit int) ([]string, error) {
	return s.names, nil
}

type stubClickRepo struct {
	inserted []*entities.AffiliateClick
	history  []*entities.Product
	revenue  []*entities.RetailerRevenue
	top      []*entities.ProductRevenue
}

func (s *stubClickRepo) Insert(ctx context.Context, click *entities.AffiliateClick) error {
	s.inserted = append(s.inserted, click)
	return nil
}

func (s *stubClickRepo) RecentProductsByUser(ctx context.Context, userID string, limit int) ([]*entities.Product, error) {
	return s.history, nil
}

func (s *stubClickRepo) RevenueByRetailer(ctx context.Context, since time.Time) ([]*entities.RetailerRevenue, error) {
	return s.revenue, nil
}

func (s *stubClickRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]*entities.ProductRevenue, error) {
	return s.top, nil
}

type stubReviewRepo struct {
	reviews []*entities.Review
}

func (s *stubReviewRepo) Create(ctx context.Context, review *entities.Review) error { return nil }

func (s *stubReviewRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entities.Review, error) {
	return s.reviews, nil
}
