package ai

import (
	"fmt"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

const systemPrompt = `You are a helpful customer feedback analyst for a company. Your role is to:
1. Provide empathetic, professional responses to customer reviews
2. Summarize customer feedback concisely
3. Suggest actionable recommendations for the business

Always be professional, empathetic, and constructive. Focus on understanding the customer's experience and providing value.`

const noReviewText = "(No written review provided)"

// Generation parameters per call kind.
const (
	responseMaxTokens        = 200
	responseTemperature      = 0.7
	summaryMaxTokens         = 100
	summaryTemperature       = 0.5
	recommendationsMaxTokens = 200
	recommendationsTemp      = 0.7
)

func quoted(review string) string {
	if review == "" {
		return noReviewText
	}
	return review
}

func userResponsePrompt(rating int, review string) string {
	closing := "Express gratitude for their support"
	if rating < 4 {
		closing = "Express commitment to improvement"
	}
	return fmt.Sprintf(`A customer has submitted a %s review with a rating of %d/5 stars.

Review: "%s"

Generate a personalized, empathetic response to this customer (2-3 sentences). The response should:
- Thank them for their feedback
- Acknowledge their specific experience if mentioned
- %s

Keep the response professional and concise.`, models.BandFor(rating), rating, quoted(review), closing)
}

func summaryPrompt(rating int, review string) string {
	return fmt.Sprintf(`Summarize the following customer review in 1-2 sentences. Focus on the key points and sentiment.

Rating: %d/5 stars
Review: "%s"

If no review text is provided, create a brief summary based on the rating alone.`, rating, quoted(review))
}

func recommendationsPrompt(rating int, review string) string {
	return fmt.Sprintf(`Based on this customer feedback, suggest 2-3 specific, actionable recommendations for the business to improve or maintain customer satisfaction.

Rating: %d/5 stars
Review: "%s"

Format each recommendation as a brief, actionable item. Return only the recommendations, one per line, without numbering or bullet points.`, rating, quoted(review))
}
