package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
	"github.com/google/uuid"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}

	record := goqu.Record{
		"id":                review.ID,
		"product_id":        review.ProductID,
		"reviewer_name":     sql.NullString{String: review.ReviewerName, Valid: review.ReviewerName != ""},
		"rating":            review.Rating,
		"review_text":       review.ReviewText,
		"sentiment_score":   review.SentimentScore,
		"helpful_votes":     review.HelpfulVotes,
		"verified_purchase": review.VerifiedPurchase,
		"review_date":       review.ReviewDate,
		"source_website":    review.SourceWebsite,
		"created_at":        review.CreatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// ListByProduct returns the most recent reviews for a product
func (a *ReviewAdapter) ListByProduct(ctx context.Context, productID string, limit int) ([]*entities.Review, error) {
	query, args, err := a.db.From("reviews").
		Select(
			"id", "product_id", "reviewer_name", "rating", "review_text",
			"sentiment_score", "helpful_votes", "verified_purchase",
			"review_date", "source_website", "created_at",
		).
		Where(goqu.Ex{"product_id": productID}).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reviews query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query reviews", err)
	}
	defer rows.Close()

	var reviews []*entities.Review
	for rows.Next() {
		review := &entities.Review{}
		var reviewerName sql.NullString
		var sentimentScore sql.NullFloat64
		var reviewDate sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&reviewerName,
			&review.Rating,
			&review.ReviewText,
			&sentimentScore,
			&review.HelpfulVotes,
			&review.VerifiedPurchase,
			&reviewDate,
			&review.SourceWebsite,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}

		review.ReviewerName = reviewerName.String
		if sentimentScore.Valid {
			review.SentimentScore = &sentimentScore.Float64
		}
		if reviewDate.Valid {
			review.ReviewDate = &reviewDate.Time
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
