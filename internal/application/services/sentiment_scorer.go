package services

import (
	"strings"

	"github.com/glowmart/ai-product-search/backend/internal/domain/entities"
)

var positiveWords = []string{"good", "great", "excellent", "amazing", "love", "perfect"}

var negativeWords = []string{"bad", "terrible", "awful", "hate", "worst", "disappointing"}

// SentimentScorer aggregates keyword sentiment over review texts. It is
// stateless and safe for concurrent use.
type SentimentScorer struct{}

// NewSentimentScorer creates a new sentiment scorer.
func NewSentimentScorer() *SentimentScorer {
	return &SentimentScorer{}
}

// Score counts positive and negative keyword occurrences across all review
// texts and derives an overall sentiment in [-1, 1]. A review containing the
// same keyword several times counts each occurrence. With no reviews, or no
// sentiment keywords at all, the result is neutral with zero confidence.
func (s *SentimentScorer) Score(reviews []*entities.Review) entities.SentimentResult {
	result := entities.SentimentResult{ReviewsAnalyzed: len(reviews)}
	if len(reviews) == 0 {
		return result
	}

	for _, review := range reviews {
		text := strings.ToLower(review.ReviewText)
		for _, w := range positiveWords {
			result.PositiveMentions += strings.Count(text, w)
		}
		for _, w := range negativeWords {
			result.NegativeMentions += strings.Count(text, w)
		}
	}

	total := result.PositiveMentions + result.NegativeMentions
	if total == 0 {
		return result
	}

	sentiment := float64(result.PositiveMentions-result.NegativeMentions) / float64(total)
	if sentiment > 1 {
		sentiment = 1
	}
	if sentiment < -1 {
		sentiment = -1
	}
	result.OverallSentiment = sentiment

	confidence := float64(total) / float64(len(reviews))
	if confidence > 1 {
		confidence = 1
	}
	result.Confidence = confidence

	return result
}
