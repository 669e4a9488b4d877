package services

import (
	"context"
	"strings"

	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/observability"
)

const (
	suggestionNameLimit = 5
	suggestionCap       = 10
)

// Common search terms appended when the partial query matches them. The
// slice order fixes the suggestion order.
var commonSearchTerms = [][]string{
	{"foundation", "lipstick", "mascara", "eyeshadow", "concealer"},
	{"dress", "jeans", "shoes", "jacket", "accessories"},
	{"vitamins", "supplements", "skincare", "medication", "wellness"},
}

// SuggestionService produces type-ahead search suggestions from matching
// product names plus a fixed table of common per-category terms.
type SuggestionService struct {
	products repositories.ProductRepository
}

// NewSuggestionService creates a new suggestion service.
func NewSuggestionService(products repositories.ProductRepository) *SuggestionService {
	return &SuggestionService{products: products}
}

// Suggest returns up to ten deduplicated suggestions for a partial query.
// An empty partial yields no suggestions. Name lookup failures degrade to
// common terms only.
func (s *SuggestionService) Suggest(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []string{}
	}

	suggestions := make([]string, 0, suggestionCap)
	seen := make(map[string]struct{})
	add := func(term string) {
		key := strings.ToLower(term)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		suggestions = append(suggestions, term)
	}

	names, err := s.products.SuggestNames(ctx, partial, suggestionNameLimit)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("partial", partial).
			Msg("Failed to load product name suggestions")
	}
	for _, name := range names {
		add(name)
	}

	lower := strings.ToLower(partial)
	for _, terms := range commonSearchTerms {
		for _, term := range terms {
			if strings.Contains(term, lower) {
				add(term)
			}
		}
	}

	if len(suggestions) > suggestionCap {
		suggestions = suggestions[:suggestionCap]
	}
	return suggestions
}
