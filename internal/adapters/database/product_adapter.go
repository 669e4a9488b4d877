package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/glowmart/ai-product-search/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
)

// Relevance weights for the default sort. Fixed, not configurable per
// request; tests pin the exact values.
const (
	relevanceRatingWeight      = 0.3
	relevanceReviewCountWeight = 0.2
	relevanceNameMatchWeight   = 0.5
	reviewCountNormalizer      = 100.0
)

// Similar products must be priced within this band of the reference product
const (
	similarPriceLowerFactor = 0.7
	similarPriceUpperFactor = 1.3
)

var productColumns = []interface{}{
	"id", "name", "brand", "category", "subcategory", "description",
	"price", "original_price", "discount_percentage", "rating", "review_count",
	"image_url", "product_url", "source_website", "in_stock", "affiliate_links",
	"created_at", "updated_at",
}

// ProductAdapter implements the ProductRepository interface
type ProductAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProductAdapter creates a new product adapter
func NewProductAdapter(client *postgres.Client) repositories.ProductRepository {
	return &ProductAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// searchFilter builds the predicate conjunction shared by Search and Count.
// Keeping one builder guarantees the total count always reflects the same
// filter as the page query.
func searchFilter(params repositories.SearchParams) []goqu.Expression {
	exprs := []goqu.Expression{goqu.C("in_stock").IsTrue()}

	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		exprs = append(exprs, goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("description").ILike(pattern),
			goqu.C("brand").ILike(pattern),
			goqu.C("category").ILike(pattern),
		))
	}
	if params.Category != "" {
		exprs = append(exprs, goqu.C("category").Eq(params.Category))
	}
	if params.Brand != "" {
		exprs = append(exprs, goqu.C("brand").Eq(params.Brand))
	}
	if params.MinPrice != nil {
		exprs = append(exprs, goqu.C("price").Gte(*params.MinPrice))
	}
	if params.MaxPrice != nil {
		exprs = append(exprs, goqu.C("price").Lte(*params.MaxPrice))
	}

	return exprs
}

func (a *ProductAdapter) searchDataset(params repositories.SearchParams) *goqu.SelectDataset {
	ds := a.db.From("products").
		Select(productColumns...).
		Where(searchFilter(params)...)

	switch params.SortBy {
	case entities.SortByPriceAsc:
		ds = ds.Order(goqu.C("price").Asc(), goqu.C("id").Asc())
	case entities.SortByPriceDesc:
		ds = ds.Order(goqu.C("price").Desc(), goqu.C("id").Asc())
	case entities.SortByRating:
		ds = ds.Order(goqu.C("rating").Desc(), goqu.C("review_count").Desc(), goqu.C("id").Asc())
	case entities.SortByPopularity:
		ds = ds.Order(goqu.C("review_count").Desc(), goqu.C("rating").Desc(), goqu.C("id").Asc())
	default:
		// Relevance: composite score over rating, normalized review count and
		// a raw-query name match. The raw (pre-enhancement) query is the
		// tiebreak term; id keeps equal scores deterministic.
		raw := params.RawQuery
		if raw == "" {
			raw = params.Query
		}
		score := goqu.L(
			"(rating * ? + (review_count / ?) * ? + CASE WHEN name ILIKE ? THEN ? ELSE 0 END)",
			relevanceRatingWeight,
			reviewCountNormalizer,
			relevanceReviewCountWeight,
			"%"+raw+"%",
			relevanceNameMatchWeight,
		)
		ds = ds.Order(score.Desc(), goqu.C("id").Asc())
	}

	if params.Limit > 0 {
		ds = ds.Limit(uint(params.Limit))
	}
	if params.Offset > 0 {
		ds = ds.Offset(uint(params.Offset))
	}

	return ds
}

// Search returns one page of in-stock products matching the params
func (a *ProductAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Product, error) {
	query, args, err := a.searchDataset(params).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}
	return a.queryProducts(ctx, query, args)
}

// Count returns the total match count for the same predicate Search uses
func (a *ProductAdapter) Count(ctx context.Context, params repositories.SearchParams) (int, error) {
	query, args, err := a.db.From("products").
		Select(goqu.COUNT("*")).
		Where(searchFilter(params)...).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewInternalError("failed to count products", err)
	}
	return total, nil
}

// GetByID retrieves a product by ID
func (a *ProductAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.db.From("products").
		Select(productColumns...).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	product, err := scanProduct(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}
	return product, nil
}

// Create creates a new product
func (a *ProductAdapter) Create(ctx context.Context, product *entities.Product) error {
	record, err := productRecord(product)
	if err != nil {
		return apperrors.NewInternalError("failed to encode product", err)
	}

	query, args, err := a.db.Insert("products").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}
	return nil
}

// Update updates a product
func (a *ProductAdapter) Update(ctx context.Context, product *entities.Product) error {
	record, err := productRecord(product)
	if err != nil {
		return apperrors.NewInternalError("failed to encode product", err)
	}
	delete(record, "id")
	delete(record, "created_at")
	record["updated_at"] = time.Now()

	query, args, err := a.db.Update("products").
		Set(record).
		Where(goqu.Ex{"id": product.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update product", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", product.ID))
	}
	return nil
}

// Delete deletes a product
func (a *ProductAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("products").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete product", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	return nil
}

func (a *ProductAdapter) similarDataset(ref *entities.Product, limit int) *goqu.SelectDataset {
	return a.db.From("products").
		Select(productColumns...).
		Where(
			goqu.C("category").Eq(ref.Category),
			goqu.C("id").Neq(ref.ID),
			goqu.C("in_stock").IsTrue(),
			goqu.C("price").Gte(ref.Price*similarPriceLowerFactor),
			goqu.C("price").Lte(ref.Price*similarPriceUpperFactor),
		).
		Order(goqu.C("rating").Desc(), goqu.C("review_count").Desc()).
		Limit(uint(limit))
}

// FindSimilar returns same-category in-stock products priced within the
// similarity band, excluding the reference product itself
func (a *ProductAdapter) FindSimilar(ctx context.Context, ref *entities.Product, limit int) ([]*entities.Product, error) {
	query, args, err := a.similarDataset(ref, limit).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build similar products query", err)
	}
	return a.queryProducts(ctx, query, args)
}

// TrendingByCategory returns in-stock products of one category by popularity
func (a *ProductAdapter) TrendingByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	query, args, err := a.db.From("products").
		Select(productColumns...).
		Where(goqu.C("category").Eq(category), goqu.C("in_stock").IsTrue()).
		Order(goqu.C("review_count").Desc(), goqu.C("rating").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build trending query", err)
	}
	return a.queryProducts(ctx, query, args)
}

// TopRatedByCategory returns in-stock products of one category by rating
func (a *ProductAdapter) TopRatedByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	query, args, err := a.db.From("products").
		Select(productColumns...).
		Where(goqu.C("category").Eq(category), goqu.C("in_stock").IsTrue()).
		Order(goqu.C("rating").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build top rated query", err)
	}
	return a.queryProducts(ctx, query, args)
}

// Trending returns globally trending in-stock products
func (a *ProductAdapter) Trending(ctx context.Context, limit int) ([]*entities.Product, error) {
	query, args, err := a.db.From("products").
		Select(productColumns...).
		Where(goqu.C("in_stock").IsTrue()).
		Order(goqu.C("review_count").Desc(), goqu.C("rating").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build trending query", err)
	}
	return a.queryProducts(ctx, query, args)
}

// SuggestNames returns distinct product names matching the partial query
func (a *ProductAdapter) SuggestNames(ctx context.Context, partial string, limit int) ([]string, error) {
	query, args, err := a.db.From("products").
		Select(goqu.DISTINCT("name")).
		Where(goqu.C("name").ILike("%" + partial + "%")).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build suggestions query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query suggestions", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan suggestion", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (a *ProductAdapter) queryProducts(ctx context.Context, query string, args []interface{}) ([]*entities.Product, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query products", err)
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var subcategory, imageURL, affiliateLinks sql.NullString
	var originalPrice, discountPercentage sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&product.Category,
		&subcategory,
		&product.Description,
		&product.Price,
		&originalPrice,
		&discountPercentage,
		&product.Rating,
		&product.ReviewCount,
		&imageURL,
		&product.ProductURL,
		&product.SourceWebsite,
		&product.InStock,
		&affiliateLinks,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Subcategory = subcategory.String
	product.ImageURL = imageURL.String
	if originalPrice.Valid {
		product.OriginalPrice = &originalPrice.Float64
	}
	if discountPercentage.Valid {
		product.DiscountPercentage = &discountPercentage.Float64
	}
	if affiliateLinks.Valid && affiliateLinks.String != "" {
		if err := json.Unmarshal([]byte(affiliateLinks.String), &product.AffiliateLinks); err != nil {
			return nil, fmt.Errorf("failed to decode affiliate links: %w", err)
		}
	}

	return product, nil
}

func productRecord(product *entities.Product) (goqu.Record, error) {
	var affiliateLinks interface{}
	if len(product.AffiliateLinks) > 0 {
		data, err := json.Marshal(product.AffiliateLinks)
		if err != nil {
			return nil, err
		}
		affiliateLinks = string(data)
	}

	return goqu.Record{
		"id":                  product.ID,
		"name":                product.Name,
		"brand":               product.Brand,
		"category":            product.Category,
		"subcategory":         sql.NullString{String: product.Subcategory, Valid: product.Subcategory != ""},
		"description":         product.Description,
		"price":               product.Price,
		"original_price":      product.OriginalPrice,
		"discount_percentage": product.DiscountPercentage,
		"rating":              product.Rating,
		"review_count":        product.ReviewCount,
		"image_url":           sql.NullString{String: product.ImageURL, Valid: product.ImageURL != ""},
		"product_url":         product.ProductURL,
		"source_website":      product.SourceWebsite,
		"in_stock":            product.InStock,
		"affiliate_links":     affiliateLinks,
		"created_at":          product.CreatedAt,
		"updated_at":          product.UpdatedAt,
	}, nil
}
