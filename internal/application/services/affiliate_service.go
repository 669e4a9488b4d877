package services

import (
	"context"
	"fmt"
	"time"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
	"github.com/glowmart/ai-product-search/backend/internal/domain/repositories"
	"github.com/google/uuid"
	apperrors "github.com/glowmart/ai-product-search/backend/pkg/errors"
)

// Commission estimates assume an average product price of $25.
const averageProductPrice = 25.0

const (
	revenueReportWindow  = 30 * 24 * time.Hour
	revenueReportDays    = 30
	topProductLimit      = 20
	monthsPerYear        = 12
	trackingIDLength     = 8
	fallbackAffiliateURL = "https://example.com/products/%s"
)

// affiliateProgram is a retailer's affiliate enrollment: the tag appended to
// outbound links and the commission rate.
type affiliateProgram struct {
	Tag        string
	Commission float64
	BaseURL    string
}

var affiliatePrograms = map[string]affiliateProgram{
	"amazon":  {Tag: "aiprodsearch-20", Commission: 0.04, BaseURL: "https://www.amazon.com/dp/"},
	"sephora": {Tag: "aisearch", Commission: 0.05, BaseURL: "https://www.sephora.com/"},
	"target":  {Tag: "aisearch", Commission: 0.03, BaseURL: "https://www.target.com/"},
	"cvs":     {Tag: "aisearch", Commission: 0.04, BaseURL: "https://www.cvs.com/"},
	"ulta":    {Tag: "aisearch", Commission: 0.06, BaseURL: "https://www.ulta.com/"},
}

// ClickResult is returned after a tracked affiliate click.
type ClickResult struct {
	ClickID         string  `json:"click_id"`
	AffiliateURL    string  `json:"affiliate_url"`
	CommissionRate  float64 `json:"commission_rate"`
	TrackingEnabled bool    `json:"tracking_enabled"`
}

// RevenueProjections extrapolates the trailing revenue window.
type RevenueProjections struct {
	DailyAvgClicks    float64 `json:"daily_avg_clicks"`
	DailyAvgRevenue   float64 `json:"daily_avg_revenue"`
	MonthlyProjection float64 `json:"monthly_projection"`
	AnnualProjection  float64 `json:"annual_projection"`
	RevenuePerClick   float64 `json:"revenue_per_click"`
}

// RevenueReport is the assembled revenue analytics payload.
type RevenueReport struct {
	AffiliatePerformance []*entities.RetailerRevenue `json:"affiliate_performance"`
	TopProducts          []*entities.ProductRevenue  `json:"top_products"`
	RevenueProjections   RevenueProjections          `json:"revenue_projections"`
	LastUpdated          time.Time                   `json:"last_updated"`
}

// AffiliateService tracks outbound affiliate clicks and aggregates the
// revenue they are expected to generate.
type AffiliateService struct {
	clicks repositories.AffiliateClickRepository
	now    func() time.Time
}

// NewAffiliateService creates a new affiliate service.
func NewAffiliateService(clicks repositories.AffiliateClickRepository) *AffiliateService {
	return &AffiliateService{clicks: clicks, now: time.Now}
}

// TrackClick records an outbound click and returns the affiliate link data.
// Unknown retailers still get a fallback link with a zero commission so the
// click is never lost.
func (s *AffiliateService) TrackClick(ctx context.Context, productID, retailer, userID string) (*ClickResult, error) {
	if productID == "" {
		return nil, apperrors.NewValidationError("product_id is required")
	}
	if retailer == "" {
		return nil, apperrors.NewValidationError("retailer is required")
	}

	url, rate, estimate := buildAffiliateLink(productID, retailer)

	click := &entities.AffiliateClick{
		ID:               uuid.New().String(),
		ProductID:        productID,
		UserID:           userID,
		Retailer:         retailer,
		Timestamp:        s.now().UTC(),
		RevenuePotential: estimate,
	}
	if err := s.clicks.Insert(ctx, click); err != nil {
		return nil, apperrors.NewInternalError("failed to record affiliate click", err)
	}

	return &ClickResult{
		ClickID:         click.ID,
		AffiliateURL:    url,
		CommissionRate:  rate,
		TrackingEnabled: true,
	}, nil
}

// Report aggregates the trailing 30 days of affiliate clicks into
// per-retailer performance, top products, and revenue projections.
func (s *AffiliateService) Report(ctx context.Context) (*RevenueReport, error) {
	since := s.now().UTC().Add(-revenueReportWindow)

	performance, err := s.clicks.RevenueByRetailer(ctx, since)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to aggregate retailer revenue", err)
	}
	topProducts, err := s.clicks.TopProducts(ctx, since, topProductLimit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load top products", err)
	}

	var totalClicks int
	var totalRevenue float64
	for _, row := range performance {
		totalClicks += row.Clicks
		totalRevenue += row.EstimatedRevenue
	}

	projections := RevenueProjections{
		DailyAvgClicks:    float64(totalClicks) / revenueReportDays,
		DailyAvgRevenue:   totalRevenue / revenueReportDays,
		MonthlyProjection: totalRevenue,
		AnnualProjection:  totalRevenue * monthsPerYear,
	}
	if totalClicks > 0 {
		projections.RevenuePerClick = totalRevenue / float64(totalClicks)
	}

	return &RevenueReport{
		AffiliatePerformance: performance,
		TopProducts:          topProducts,
		RevenueProjections:   projections,
		LastUpdated:          s.now().UTC(),
	}, nil
}

func buildAffiliateLink(productID, retailer string) (url string, rate, estimate float64) {
	program, ok := affiliatePrograms[retailer]
	if !ok {
		return fmt.Sprintf(fallbackAffiliateURL, productID), 0, 0
	}
	trackingID := uuid.New().String()[:trackingIDLength]
	url = fmt.Sprintf("%s%s?tag=%s&ref=aisearch_%s", program.BaseURL, productID, program.Tag, trackingID)
	return url, program.Commission, averageProductPrice * program.Commission
}
