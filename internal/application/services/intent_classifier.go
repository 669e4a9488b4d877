package services

import (
	"regexp"
	"strings"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

// Ordered intent rules. The first matching pattern wins, so the order here
// is the priority order.
var intentRules = []struct {
	intent  entities.IntentType
	pattern *regexp.Regexp
}{
	{entities.IntentPriceFocused, regexp.MustCompile(`cheap|affordable|budget|deal|discount|sale`)},
	{entities.IntentQualityFocused, regexp.MustCompile(`best|top|premium|luxury|high-end`)},
	{entities.IntentBrandSpecific, regexp.MustCompile(`brand|vs|compare`)},
	{entities.IntentUrgent, regexp.MustCompile(`urgent|fast|quick|immediate`)},
	{entities.IntentGift, regexp.MustCompile(`gift|present|birthday`)},
}

var priceTokenPattern = regexp.MustCompile(`\$?\d+`)

var knownBrands = []string{"Fenty", "Sephora", "MAC", "Maybelline", "Nike", "Adidas"}

var knownCategories = []string{"makeup", "skincare", "shoes", "clothing", "supplements"}

const intentConfidence = 0.8

// IntentClassifier detects the shopping intent of a raw query using ordered
// keyword rules. It is stateless and safe for concurrent use.
type IntentClassifier struct{}

// NewIntentClassifier creates a new intent classifier.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

// Classify reads a raw query and returns its primary intent plus the
// entities extracted from the text. An empty or whitespace-only query
// classifies as general.
func (c *IntentClassifier) Classify(query string) entities.SearchIntent {
	lower := strings.ToLower(strings.TrimSpace(query))

	intent := entities.IntentGeneral
	for _, rule := range intentRules {
		if rule.pattern.MatchString(lower) {
			intent = rule.intent
			break
		}
	}

	return entities.SearchIntent{
		PrimaryIntent: intent,
		Confidence:    intentConfidence,
		Entities:      extractEntities(query, lower),
	}
}

func extractEntities(raw, lower string) entities.ExtractedEntities {
	extracted := entities.ExtractedEntities{
		PriceIndicators: priceTokenPattern.FindAllString(raw, -1),
	}
	for _, brand := range knownBrands {
		if strings.Contains(lower, strings.ToLower(brand)) {
			extracted.Brands = append(extracted.Brands, brand)
		}
	}
	for _, category := range knownCategories {
		if strings.Contains(lower, category) {
			extracted.Categories = append(extracted.Categories, category)
		}
	}
	return extracted
}
