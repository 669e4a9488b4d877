package database

import (
	"context"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
	"github.com/google/uuid"
)

type SearchAnalyticsAdapter struct {
	client *postgres.Client
}

func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{client: client}
}

func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO search_queries
		(id, query, enhanced_query, category_filter, price_min, price_max, result_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		event.ID,
		event.Query,
		event.EnhancedQuery,
		event.CategoryFilter,
		event.PriceMin,
		event.PriceMax,
		event.ResultCount,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}
	return nil
}
