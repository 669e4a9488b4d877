package entities

import "time"

// AffiliateClick is an append-only record of a tracked outbound click.
// Rows are never mutated or deleted after insert.
type AffiliateClick struct {
	ID               string    `json:"id" db:"id"`
	ProductID        string    `json:"product_id" db:"product_id"`
	UserID           string    `json:"user_id,omitempty" db:"user_id"`
	Retailer         string    `json:"retailer" db:"retailer"`
	Timestamp        time.Time `json:"timestamp" db:"timestamp"`
	RevenuePotential float64   `json:"revenue_potential" db:"revenue_potential"`
}

// RetailerRevenue is one row of the per-retailer revenue aggregation
type RetailerRevenue struct {
	Retailer         string  `json:"retailer"`
	Clicks           int     `json:"clicks"`
	EstimatedRevenue float64 `json:"estimated_revenue"`
	Date             string  `json:"date"`
}

// ProductRevenue is one row of the top-performing-products aggregation
type ProductRevenue struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Clicks   int     `json:"clicks"`
	Revenue  float64 `json:"revenue"`
}
