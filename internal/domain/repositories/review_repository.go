package repositories

import (
	"context"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create stores a new review
	Create(ctx context.Context, review *entities.Review) error

	// ListByProduct returns the most recent reviews for a product
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entities.Review, error)
}
