package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// SortBy enumerates the supported result orderings
type SortBy string

const (
	SortByRelevance  SortBy = "relevance"
	SortByPriceAsc   SortBy = "price_asc"
	SortByPriceDesc  SortBy = "price_desc"
	SortByRating     SortBy = "rating"
	SortByPopularity SortBy = "popularity"
)

// Pagination bounds for search requests
const (
	DefaultSearchLimit = 20
	PremiumSearchLimit = 50
	MaxSearchLimit     = 100
)

// SearchQuery is an immutable description of one search request. Its
// deterministic serialization doubles as the result cache key.
type SearchQuery struct {
	Query    string   `json:"q"`
	Category string   `json:"category,omitempty"`
	Brand    string   `json:"brand,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	SortBy   SortBy   `json:"sort_by"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
}

// Normalized returns a copy with defaults applied and pagination clamped.
// The query text is trimmed so the text retrieved against matches the text
// the cache key is derived from.
func (q SearchQuery) Normalized() SearchQuery {
	q.Query = strings.TrimSpace(q.Query)
	if q.SortBy == "" {
		q.SortBy = SortByRelevance
	}
	if q.Limit <= 0 {
		q.Limit = DefaultSearchLimit
	}
	if q.Limit > MaxSearchLimit {
		q.Limit = MaxSearchLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// CacheKey returns the deterministic cache key for this query. The field
// order is fixed: two structurally equal queries always produce the same key
// regardless of how they were constructed.
func (q SearchQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:q=")
	b.WriteString(strings.ToLower(strings.TrimSpace(q.Query)))
	b.WriteString("|category=")
	b.WriteString(q.Category)
	b.WriteString("|brand=")
	b.WriteString(q.Brand)
	b.WriteString("|min_price=")
	b.WriteString(formatPrice(q.MinPrice))
	b.WriteString("|max_price=")
	b.WriteString(formatPrice(q.MaxPrice))
	b.WriteString("|sort_by=")
	b.WriteString(string(q.SortBy))
	fmt.Fprintf(&b, "|limit=%d|offset=%d", q.Limit, q.Offset)
	return b.String()
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// IntentType enumerates the shopping intents the classifier can detect
type IntentType string

const (
	IntentPriceFocused   IntentType = "price_focused"
	IntentQualityFocused IntentType = "quality_focused"
	IntentBrandSpecific  IntentType = "brand_specific"
	IntentUrgent         IntentType = "urgent"
	IntentGift           IntentType = "gift"
	IntentGeneral        IntentType = "general"
)

// ExtractedEntities holds tokens pulled out of the raw query text
type ExtractedEntities struct {
	PriceIndicators []string `json:"price_indicators"`
	Brands          []string `json:"brands"`
	Categories      []string `json:"categories"`
}

// SearchIntent is the classifier's reading of a raw query. Derived per
// request, never persisted.
type SearchIntent struct {
	PrimaryIntent IntentType        `json:"primary_intent"`
	Confidence    float64           `json:"confidence"`
	Entities      ExtractedEntities `json:"extracted_entities"`
}

// SentimentResult aggregates sentiment over a set of review texts
type SentimentResult struct {
	OverallSentiment float64 `json:"overall_sentiment"`
	Confidence       float64 `json:"confidence"`
	PositiveMentions int     `json:"positive_mentions"`
	NegativeMentions int     `json:"negative_mentions"`
	ReviewsAnalyzed  int     `json:"reviews_analyzed"`
}

// Recommendation is a single cross-sell entry attached to a search response
type Recommendation struct {
	Type    string   `json:"type"`
	Product *Product `json:"product"`
	Reason  string   `json:"reason"`
}

// SearchResponse is the assembled search payload. This is the unit stored in
// the result cache.
type SearchResponse struct {
	Products        []*Product       `json:"products"`
	Total           int              `json:"total"`
	AIEnhancedQuery string           `json:"ai_enhanced_query,omitempty"`
	SearchIntent    SearchIntent     `json:"search_intent"`
	Recommendations []Recommendation `json:"recommendations"`
}
