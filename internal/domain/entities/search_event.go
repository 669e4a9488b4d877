package entities

import "time"

// SearchEvent is a per-request analytics record of a search
type SearchEvent struct {
	ID             string    `json:"id" db:"id"`
	Query          string    `json:"query" db:"query"`
	EnhancedQuery  string    `json:"enhanced_query,omitempty" db:"enhanced_query"`
	CategoryFilter string    `json:"category_filter,omitempty" db:"category_filter"`
	PriceMin       *float64  `json:"price_min,omitempty" db:"price_min"`
	PriceMax       *float64  `json:"price_max,omitempty" db:"price_max"`
	ResultCount    int       `json:"result_count" db:"result_count"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
