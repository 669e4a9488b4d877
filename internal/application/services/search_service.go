package services

import (
	"context"
	"encoding/json"

	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/providers"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
	"github.com/google/uuid"
)

// SearchService runs the full search pipeline: result cache lookup, intent
// classification, fail-soft query enhancement, retrieval, recommendations,
// and response assembly. Only retrieval failures surface as errors; every
// auxiliary stage degrades silently.
type SearchService struct {
	products    repositories.ProductRepository
	analytics   repositories.SearchAnalyticsRepository
	enhancer    *QueryEnhancer
	classifier  *IntentClassifier
	recommender *RecommendationService
	cache       providers.CacheProvider
	metrics     *observability.Metrics
	cacheTTL    int
}

// NewSearchService creates a new search service. Cache, analytics, and
// metrics may be nil; the pipeline then runs without them.
func NewSearchService(
	products repositories.ProductRepository,
	analytics repositories.SearchAnalyticsRepository,
	enhancer *QueryEnhancer,
	classifier *IntentClassifier,
	recommender *RecommendationService,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
	cacheTTLSeconds int,
) *SearchService {
	return &SearchService{
		products:    products,
		analytics:   analytics,
		enhancer:    enhancer,
		classifier:  classifier,
		recommender: recommender,
		cache:       cache,
		metrics:     metrics,
		cacheTTL:    cacheTTLSeconds,
	}
}

// Search executes one search request and assembles the response.
func (s *SearchService) Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResponse, error) {
	q := query.Normalized()
	cacheKey := q.CacheKey()

	if cached := s.lookupCache(ctx, cacheKey); cached != nil {
		observability.RecordCacheHit(ctx, s.metrics)
		observability.RecordSearch(ctx, s.metrics, string(cached.SearchIntent.PrimaryIntent), true)
		return cached, nil
	}
	observability.RecordCacheMiss(ctx, s.metrics)

	// Enhancement runs concurrently with intent classification. Both operate
	// on the raw query text.
	enhancementCh := make(chan providers.Enhancement, 1)
	go func() {
		enhancementCh <- s.enhancer.Enhance(ctx, q.Query)
	}()

	intent := s.classifier.Classify(q.Query)
	enhancement := <-enhancementCh

	params := repositories.SearchParams{
		Query:    enhancement.Query,
		RawQuery: q.Query,
		Category: q.Category,
		Brand:    q.Brand,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   q.SortBy,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	products, err := s.products.Search(ctx, params)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search products", err)
	}
	total, err := s.products.Count(ctx, params)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to count search results", err)
	}

	response := &entities.SearchResponse{
		Products:        products,
		Total:           total,
		SearchIntent:    intent,
		Recommendations: s.recommender.FromResults(ctx, products),
	}
	if enhancement.Enhanced {
		response.AIEnhancedQuery = enhancement.Query
	}

	s.storeCache(ctx, cacheKey, response)
	s.logSearchEvent(ctx, q, enhancement, total)
	observability.RecordSearch(ctx, s.metrics, string(intent.PrimaryIntent), false)

	return response, nil
}

// lookupCache returns the cached response for the key, or nil on miss. Cache
// errors count as misses.
func (s *SearchService) lookupCache(ctx context.Context, key string) *entities.SearchResponse {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var response entities.SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("cache_key", key).
			Msg("Discarding undecodable cached search response")
		return nil
	}
	return &response
}

// storeCache writes the response to the result cache off the request path.
func (s *SearchService) storeCache(ctx context.Context, key string, response *entities.SearchResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(response)
	if err != nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)
	go func() {
		if err := s.cache.Set(context.Background(), key, data, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Str("cache_key", key).Msg("Failed to cache search response")
		}
	}()
}

// logSearchEvent records the executed search for analytics, off the request
// path. Logging failures never affect the response.
func (s *SearchService) logSearchEvent(ctx context.Context, q entities.SearchQuery, enhancement providers.Enhancement, total int) {
	if s.analytics == nil {
		return
	}
	event := &entities.SearchEvent{
		ID:             uuid.New().String(),
		Query:          q.Query,
		CategoryFilter: q.Category,
		PriceMin:       q.MinPrice,
		PriceMax:       q.MaxPrice,
		ResultCount:    total,
	}
	if enhancement.Enhanced {
		event.EnhancedQuery = enhancement.Query
	}
	logger := observability.LoggerFromContext(ctx)
	go func() {
		if err := s.analytics.LogEvent(context.Background(), event); err != nil {
			logger.Warn().Err(err).Str("query", event.Query).Msg("Failed to log search event")
		}
	}()
}
