package ai

import (
	"fmt"
	"strings"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

var fallbackResponses = map[models.RatingBand]string{
	models.BandPositive: "Thank you so much for your wonderful feedback! We truly appreciate your support and are delighted to hear about your positive experience. Your kind words motivate our team to continue delivering excellent service.",
	models.BandNeutral:  "Thank you for taking the time to share your feedback. We value your honest opinion and are always looking for ways to improve. Please don't hesitate to reach out if there's anything specific we can help with.",
	models.BandNegative: "Thank you for bringing this to our attention. We sincerely apologize that your experience didn't meet expectations. Your feedback is crucial for our improvement, and we're committed to addressing these concerns.",
}

var fallbackRecommendations = map[models.RatingBand][]string{
	models.BandPositive: {
		"Continue maintaining current service quality standards",
		"Consider asking satisfied customers for referrals or testimonials",
		"Identify specific aspects that led to this positive experience and replicate them",
	},
	models.BandNeutral: {
		"Follow up with customer to identify specific improvement areas",
		"Review recent service interactions for potential issues",
		"Consider implementing feedback collection at key touchpoints",
	},
	models.BandNegative: {
		"Prioritize direct outreach to resolve customer concerns",
		"Conduct internal review of processes related to this feedback",
		"Implement preventive measures to avoid similar issues",
	},
}

// FallbackResponse is the canned customer reply for rating.
func FallbackResponse(rating int) string {
	return fallbackResponses[models.BandFor(rating)]
}

// FallbackSummary describes the review without calling a model.
func FallbackSummary(rating int, review string) string {
	band := models.BandFor(rating)
	if strings.TrimSpace(review) == "" {
		return fmt.Sprintf("Customer submitted a %s rating of %d/5 stars without additional comments.", band, rating)
	}
	return fmt.Sprintf("Customer expressed %s sentiment (%d/5 stars) regarding their experience.", band, rating)
}

// FallbackRecommendations returns a fresh copy of the band's default actions.
func FallbackRecommendations(rating int) []string {
	return append([]string(nil), fallbackRecommendations[models.BandFor(rating)]...)
}

// Fallback builds a complete enrichment without any network call.
func Fallback(rating int, review string) models.Enrichment {
	return models.Enrichment{
		UserResponse:       FallbackResponse(rating),
		Summary:            FallbackSummary(rating, review),
		RecommendedActions: FallbackRecommendations(rating),
	}
}
