package repositories

import (
	"context"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

// SearchAnalyticsRepository defines the interface for search analytics logging
type SearchAnalyticsRepository interface {
	// LogEvent records one executed search
	LogEvent(ctx context.Context, event *entities.SearchEvent) error
}
