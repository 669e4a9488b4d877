package repositories

import (
	"context"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

// SearchParams defines the filter and ordering for a catalog search.
// Query carries the effective (possibly AI-enhanced) filter text while
// RawQuery carries the user's original text, used only as the relevance
// tiebreak term.
type SearchParams struct {
	Query    string
	RawQuery string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	SortBy   entities.SortBy
	Limit    int
	Offset   int
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// Update updates a product
	Update(ctx context.Context, product *entities.Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id string) error

	// Search returns one page of in-stock products matching the params
	Search(ctx context.Context, params SearchParams) ([]*entities.Product, error)

	// Count returns the total match count for the same predicate Search uses,
	// independent of pagination
	Count(ctx context.Context, params SearchParams) (int, error)

	// FindSimilar returns same-category, in-stock products priced within the
	// similarity band of the reference product, excluding the product itself
	FindSimilar(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error)

	// TrendingByCategory returns in-stock products of one category ordered by
	// review count then rating
	TrendingByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error)

	// TopRatedByCategory returns in-stock products of one category ordered by
	// rating
	TopRatedByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error)

	// Trending returns globally trending in-stock products
	Trending(ctx context.Context, limit int) ([]*entities.Product, error)

	// SuggestNames returns distinct product names matching the partial query
	SuggestNames(ctx context.Context, partial string, limit int) ([]string, error)
}
