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

// AffiliateClickAdapter implements the AffiliateClickRepository interface.
// The affiliate_clicks table is an append-only log.
type AffiliateClickAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAffiliateClickAdapter creates a new affiliate click adapter
func NewAffiliateClickAdapter(client *postgres.Client) repositories.AffiliateClickRepository {
	return &AffiliateClickAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert appends a click record
func (a *AffiliateClickAdapter) Insert(ctx context.Context, click *entities.AffiliateClick) error {
	if click.ID == "" {
		click.ID = uuid.New().String()
	}
	if click.Timestamp.IsZero() {
		click.Timestamp = time.Now()
	}

	record := goqu.Record{
		"id":                click.ID,
		"product_id":        click.ProductID,
		"user_id":           sql.NullString{String: click.UserID, Valid: click.UserID != ""},
		"retailer":          click.Retailer,
		"timestamp":         click.Timestamp,
		"revenue_potential": click.RevenuePotential,
	}

	query, args, err := a.db.Insert("affiliate_clicks").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to record affiliate click", err)
	}
	return nil
}

// RecentProductsByUser returns the products a user most recently clicked
func (a *AffiliateClickAdapter) RecentProductsByUser(ctx context.Context, userID string, limit int) ([]*entities.Product, error) {
	cols := make([]interface{}, len(productColumns))
	for i, c := range productColumns {
		cols[i] = goqu.I("p." + c.(string))
	}

	query, args, err := a.db.From(goqu.T("products").As("p")).
		Select(cols...).
		Join(
			goqu.T("affiliate_clicks").As("ac"),
			goqu.On(goqu.I("p.id").Eq(goqu.I("ac.product_id"))),
		).
		Where(goqu.I("ac.user_id").Eq(userID)).
		Order(goqu.I("ac.timestamp").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user history query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query user history", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// RevenueByRetailer aggregates clicks and estimated revenue per retailer and day
func (a *AffiliateClickAdapter) RevenueByRetailer(ctx context.Context, since time.Time) ([]*entities.RetailerRevenue, error) {
	query, args, err := a.db.From("affiliate_clicks").
		Select(
			goqu.C("retailer"),
			goqu.COUNT("*").As("clicks"),
			goqu.SUM("revenue_potential").As("estimated_revenue"),
			goqu.L("DATE(timestamp)").As("date"),
		).
		Where(goqu.C("timestamp").Gt(since)).
		GroupBy(goqu.C("retailer"), goqu.L("DATE(timestamp)")).
		Order(goqu.I("estimated_revenue").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build revenue query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query retailer revenue", err)
	}
	defer rows.Close()

	var stats []*entities.RetailerRevenue
	for rows.Next() {
		row := &entities.RetailerRevenue{}
		if err := rows.Scan(&row.Retailer, &row.Clicks, &row.EstimatedRevenue, &row.Date); err != nil {
			return nil, apperrors.NewInternalError("failed to scan retailer revenue", err)
		}
		stats = append(stats, row)
	}
	return stats, rows.Err()
}

// TopProducts returns the products generating the most estimated revenue
func (a *AffiliateClickAdapter) TopProducts(ctx context.Context, since time.Time, limit int) ([]*entities.ProductRevenue, error) {
	query, args, err := a.db.From(goqu.T("products").As("p")).
		Select(
			goqu.I("p.name"),
			goqu.I("p.brand"),
			goqu.I("p.category"),
			goqu.I("p.price"),
			goqu.COUNT(goqu.I("ac.id")).As("clicks"),
			goqu.SUM(goqu.I("ac.revenue_potential")).As("revenue"),
		).
		Join(
			goqu.T("affiliate_clicks").As("ac"),
			goqu.On(goqu.I("p.id").Eq(goqu.I("ac.product_id"))),
		).
		Where(goqu.I("ac.timestamp").Gt(since)).
		GroupBy(goqu.I("p.id"), goqu.I("p.name"), goqu.I("p.brand"), goqu.I("p.category"), goqu.I("p.price")).
		Order(goqu.I("revenue").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build top products query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query top products", err)
	}
	defer rows.Close()

	var top []*entities.ProductRevenue
	for rows.Next() {
		row := &entities.ProductRevenue{}
		if err := rows.Scan(&row.Name, &row.Brand, &row.Category, &row.Price, &row.Clicks, &row.Revenue); err != nil {
			return nil, apperrors.NewInternalError("failed to scan top product", err)
		}
		top = append(top, row)
	}
	return top, rows.Err()
}
