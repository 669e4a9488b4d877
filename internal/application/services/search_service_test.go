package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchRepo(products []*entities.Product, total int) (*fakeProductRepo, *repositories.SearchParams) {
	var captured repositories.SearchParams
	repo := &fakeProductRepo{
		searchFn: func(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
			captured = params
			return products, nil
		},
		countFn: func(ctx context.Context, params repositories.SearchParams) (int, error) {
			return total, nil
		},
		trendingByCategoryFn: func(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
			return nil, nil
		},
	}
	return repo, &captured
}

func newTestSearchService(repo *fakeProductRepo, provider *fakeCompletion, cache *fakeCache, analytics *fakeAnalyticsRepo) *SearchService {
	enhancer := NewQueryEnhancer(nil, time.Second)
	if provider != nil {
		enhancer = NewQueryEnhancer(provider, time.Second)
	}
	svc := NewSearchService(
		repo,
		nil,
		enhancer,
		NewIntentClassifier(),
		NewRecommendationService(repo, &fakeClickRepo{}),
		nil,
		nil,
		300,
	)
	if cache != nil {
		svc.cache = cache
	}
	if analytics != nil {
		svc.analytics = analytics
	}
	return svc
}

func TestSearch_EnhancedQueryFiltersRawQueryRanks(t *testing.T) {
	repo, captured := newSearchRepo([]*entities.Product{{ID: "p1", Category: "makeup"}}, 1)
	provider := &fakeCompletion{
		completeFn: func(ctx context.Context, query string) (string, error) {
			return "cheap mascara waterproof long lasting", nil
		},
	}
	svc := newTestSearchService(repo, provider, nil, nil)

	response, err := svc.Search(context.Background(), entities.SearchQuery{Query: "cheap mascara"})

	require.NoError(t, err)
	assert.Equal(t, "cheap mascara waterproof long lasting", captured.Query)
	assert.Equal(t, "cheap mascara", captured.RawQuery)
	assert.Equal(t, "cheap mascara waterproof long lasting", response.AIEnhancedQuery)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, entities.IntentPriceFocused, response.SearchIntent.PrimaryIntent)
}

func TestSearch_EnhancerDownStillSearches(t *testing.T) {
	repo, captured := newSearchRepo([]*entities.Product{{ID: "p1", Category: "makeup"}}, 1)
	provider := &fakeCompletion{
		completeFn: func(ctx context.Context, query string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	svc := newTestSearchService(repo, provider, nil, nil)

	response, err := svc.Search(context.Background(), entities.SearchQuery{Query: "cheap mascara"})

	require.NoError(t, err)
	assert.Equal(t, "cheap mascara", captured.Query)
	assert.Empty(t, response.AIEnhancedQuery)
	require.Len(t, response.Products, 1)
}

func TestSearch_CacheHitSkipsRetrieval(t *testing.T) {
	cache := newFakeCache()
	cached := &entities.SearchResponse{
		Products: []*entities.Product{{ID: "cached-1"}},
		Total:    7,
		SearchIntent: entities.SearchIntent{
			PrimaryIntent: entities.IntentGeneral,
			Confidence:    0.8,
		},
	}
	query := entities.SearchQuery{Query: "lipstick"}.Normalized()
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, cache.Set(context.Background(), query.CacheKey(), data, 300))

	repo := &fakeProductRepo{
		searchFn: func(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
			t.Fatal("repository should not be hit on a cache hit")
			return nil, nil
		},
	}
	svc := newTestSearchService(repo, nil, cache, nil)

	response, err := svc.Search(context.Background(), entities.SearchQuery{Query: "lipstick"})

	require.NoError(t, err)
	assert.Equal(t, 7, response.Total)
	require.Len(t, response.Products, 1)
	assert.Equal(t, "cached-1", response.Products[0].ID)
}

func TestSearch_MissPopulatesCache(t *testing.T) {
	cache := newFakeCache()
	repo, _ := newSearchRepo([]*entities.Product{{ID: "p1", Category: "makeup"}}, 1)
	svc := newTestSearchService(repo, nil, cache, nil)

	query := entities.SearchQuery{Query: "lipstick"}
	first, err := svc.Search(context.Background(), query)
	require.NoError(t, err)

	key := query.Normalized().CacheKey()
	require.Eventually(t, func() bool { return cache.has(key) }, time.Second, 5*time.Millisecond)

	// The second request is served from cache and decodes to the same response
	second, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSearch_PaddedQuerySharesEntryWithTrimmed(t *testing.T) {
	cache := newFakeCache()
	repo, captured := newSearchRepo([]*entities.Product{{ID: "p1", Name: "Sky High Mascara", Category: "makeup"}}, 1)
	svc := newTestSearchService(repo, nil, cache, nil)

	first, err := svc.Search(context.Background(), entities.SearchQuery{Query: "  mascara"})
	require.NoError(t, err)
	assert.Equal(t, "mascara", captured.Query)
	assert.Equal(t, "mascara", captured.RawQuery)

	key := entities.SearchQuery{Query: "mascara"}.Normalized().CacheKey()
	require.Eventually(t, func() bool { return cache.has(key) }, time.Second, 5*time.Millisecond)

	// The trimmed request hits the entry the padded request wrote, and that
	// entry was retrieved with the same trimmed text it is keyed on.
	second, err := svc.Search(context.Background(), entities.SearchQuery{Query: "mascara"})
	require.NoError(t, err)
	assert.Equal(t, first.Total, second.Total)
	require.Len(t, second.Products, 1)
	assert.Equal(t, "p1", second.Products[0].ID)
}

func TestSearch_CacheDownDegradesToRetrieval(t *testing.T) {
	cache := newFakeCache()
	cache.failing = true
	repo, _ := newSearchRepo([]*entities.Product{{ID: "p1", Category: "makeup"}}, 1)
	svc := newTestSearchService(repo, nil, cache, nil)

	response, err := svc.Search(context.Background(), entities.SearchQuery{Query: "lipstick"})

	require.NoError(t, err)
	assert.Equal(t, 1, response.Total)
}

func TestSearch_RetrievalFailureSurfaces(t *testing.T) {
	repo := &fakeProductRepo{
		searchFn: func(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
			return nil, errors.New("db down")
		},
	}
	svc := newTestSearchService(repo, nil, nil, nil)

	_, err := svc.Search(context.Background(), entities.SearchQuery{Query: "lipstick"})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(err))
}

func TestSearch_NormalizesPagination(t *testing.T) {
	repo, captured := newSearchRepo(nil, 0)
	svc := newTestSearchService(repo, nil, nil, nil)

	_, err := svc.Search(context.Background(), entities.SearchQuery{Query: "lipstick", Limit: 0, Offset: -3})

	require.NoError(t, err)
	assert.Equal(t, entities.DefaultSearchLimit, captured.Limit)
	assert.Equal(t, 0, captured.Offset)
	assert.Equal(t, entities.SortByRelevance, captured.SortBy)
}

func TestSearch_LogsAnalyticsEvent(t *testing.T) {
	analytics := &fakeAnalyticsRepo{}
	repo, _ := newSearchRepo([]*entities.Product{{ID: "p1", Category: "makeup"}}, 4)
	svc := newTestSearchService(repo, nil, nil, analytics)

	_, err := svc.Search(context.Background(), entities.SearchQuery{Query: "lipstick", Category: "makeup"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(analytics.loggedEvents()) == 1 }, time.Second, 5*time.Millisecond)
	event := analytics.loggedEvents()[0]
	assert.Equal(t, "lipstick", event.Query)
	assert.Equal(t, "makeup", event.CategoryFilter)
	assert.Equal(t, 4, event.ResultCount)
	assert.NotEmpty(t, event.ID)
}
