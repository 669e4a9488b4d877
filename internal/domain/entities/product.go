package entities

import "time"

// Product represents a catalog product snapshot. Catalog rows are owned by
// the storage layer; the search pipeline only reads them.
type Product struct {
	ID                 string            `json:"id" db:"id"`
	Name               string            `json:"name" db:"name"`
	Brand              string            `json:"brand" db:"brand"`
	Category           string            `json:"category" db:"category"`
	Subcategory        string            `json:"subcategory,omitempty" db:"subcategory"`
	Description        string            `json:"description" db:"description"`
	Price              float64           `json:"price" db:"price"`
	OriginalPrice      *float64          `json:"original_price,omitempty" db:"original_price"`
	DiscountPercentage *float64          `json:"discount_percentage,omitempty" db:"discount_percentage"`
	Rating             float64           `json:"rating" db:"rating"`
	ReviewCount        int               `json:"review_count" db:"review_count"`
	ImageURL           string            `json:"image_url,omitempty" db:"image_url"`
	ProductURL         string            `json:"product_url" db:"product_url"`
	SourceWebsite      string            `json:"source_website" db:"source_website"`
	InStock            bool              `json:"in_stock" db:"in_stock"`
	AffiliateLinks     map[string]string `json:"affiliate_links,omitempty" db:"-"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at" db:"updated_at"`
}

// Review represents a customer review for a product
type Review struct {
	ID               string     `json:"id" db:"id"`
	ProductID        string     `json:"product_id" db:"product_id"`
	ReviewerName     string     `json:"reviewer_name,omitempty" db:"reviewer_name"`
	Rating           float64    `json:"rating" db:"rating"`
	ReviewText       string     `json:"review_text" db:"review_text"`
	SentimentScore   *float64   `json:"sentiment_score,omitempty" db:"sentiment_score"`
	HelpfulVotes     int        `json:"helpful_votes" db:"helpful_votes"`
	VerifiedPurchase bool       `json:"verified_purchase" db:"verified_purchase"`
	ReviewDate       *time.Time `json:"review_date,omitempty" db:"review_date"`
	SourceWebsite    string     `json:"source_website" db:"source_website"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}
