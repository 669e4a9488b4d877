package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
)

// Function-backed fakes for the repository and provider interfaces. Only the
// fields a test sets are callable; the rest panic on nil dereference, which
// flags unexpected calls immediately.

type fakeProductRepo struct {
	searchFn             func(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error)
	countFn              func(ctx context.Context, params repositories.SearchParams) (int, error)
	getByIDFn            func(ctx context.Context, id string) (*entities.Product, error)
	findSimilarFn        func(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error)
	trendingByCategoryFn func(ctx context.Context, category string, limit int) ([]*entities.Product, error)
	topRatedByCategoryFn func(ctx context.Context, category string, limit int) ([]*entities.Product, error)
	trendingFn           func(ctx context.Context, limit int) ([]*entities.Product, error)
	suggestNamesFn       func(ctx context.Context, partial string, limit int) ([]string, error)
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entities.Product) error { return nil }
func (f *fakeProductRepo) Update(ctx context.Context, product *entities.Product) error { return nil }
func (f *fakeProductRepo) Delete(ctx context.Context, id string) error                 { return nil }

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProductRepo) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
	return f.searchFn(ctx, params)
}

func (f *fakeProductRepo) Count(ctx context.Context, params repositories.SearchParams) (int, error) {
	return f.countFn(ctx, params)
}

func (f *fakeProductRepo) FindSimilar(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error) {
	return f.findSimilarFn(ctx, ref, limit)
}

func (f *fakeProductRepo) TrendingByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return f.trendingByCategoryFn(ctx, category, limit)
}

func (f *fakeProductRepo) TopRatedByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	return f.topRatedByCategoryFn(ctx, category, limit)
}

func (f *fakeProductRepo) Trending(ctx context.Context, limit int) ([]*entities.Product, error) {
	return f.trendingFn(ctx, limit)
}

func (f *fakeProductRepo) SuggestNames(ctx context.Context, partial string, limit int) ([]string, error) {
	return f.suggestNamesFn(ctx, partial, limit)
}

type fakeClickRepo struct {
	insertFn            func(ctx context.Context, click *entities.AffiliateClick) error
	recentByUserFn      func(ctx context.Context, userID string, limit int) ([]*entities.Product, error)
	revenueByRetailerFn func(ctx context.Context, since time.Time) ([]*entities.RetailerRevenue, error)
	topProductsFn       func(ctx context.Context, since time.Time, limit int) ([]*entities.ProductRevenue, error)
}

func (f *fakeClickRepo) Insert(ctx context.Context, click *entities.AffiliateClick) error {
	return f.insertFn(ctx, click)
}

func (f *fakeClickRepo) RecentProductsByUser(ctx context.Context, userID string, limit int) ([]*entities.Product, error) {
	return f.recentByUserFn(ctx, userID, limit)
}

func (f *fakeClickRepo) RevenueByRetailer(ctx context.Context, since time.Time) ([]*entities.RetailerRevenue, error) {
	return f.revenueByRetailerFn(ctx, since)
}

func (f *fakeClickRepo) TopProducts(ctx context.Context, since time.Time, limit int) ([]*entities.ProductRevenue, error) {
	return f.topProductsFn(ctx, since, limit)
}

type fakeReviewRepo struct {
	listByProductFn func(ctx context.Context, productID string, limit int) ([]*entities.Review, error)
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *entities.Review) error { return nil }

func (f *fakeReviewRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entities.Review, error) {
	return f.listByProductFn(ctx, productID, limit)
}

type fakeAnalyticsRepo struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
}

func (f *fakeAnalyticsRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeAnalyticsRepo) loggedEvents() []*entities.SearchEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*entities.SearchEvent(nil), f.events...)
}

var errCacheMiss = errors.New("key not found")

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failing bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errors.New("cache down")
	}
	value, ok := f.entries[key]
	if !ok {
		return nil, errCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("cache down")
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok, nil
}

func (f *fakeCache) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[key]
	return ok
}

type fakeCompletion struct {
	completeFn func(ctx context.Context, query string) (string, error)
}

func (f *fakeCompletion) CompleteQuery(ctx context.Context, query string) (string, error) {
	return f.completeFn(ctx, query)
}
