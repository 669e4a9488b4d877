package repositories

import (
	"context"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

// AffiliateClickRepository defines the interface for the append-only click log
type AffiliateClickRepository interface {
	// Insert appends a click record. Click rows are never updated or deleted.
	Insert(ctx context.Context, click *entities.AffiliateClick) error

	// RecentProductsByUser returns the products a user most recently clicked,
	// newest first
	RecentProductsByUser(ctx context.Context, userID string, limit int) ([]*entities.Product, error)

	// RevenueByRetailer aggregates clicks and estimated revenue per retailer
	// and day since the given time
	RevenueByRetailer(ctx context.Context, since time.Time) ([]*entities.RetailerRevenue, error)

	// TopProducts returns the products generating the most estimated revenue
	// since the given time
	TopProducts(ctx context.Context, since time.Time, limit int) ([]*entities.ProductRevenue, error)
}
