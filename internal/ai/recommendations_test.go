package ai_test

import (
	"testing"

	"github.com/kiranshivaraju/reviewpulse/internal/ai"
	"github.com/stretchr/testify/assert"
)

func TestParseRecommendations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain lines", "Reply quickly\nOffer a refund", []string{"Reply quickly", "Offer a refund"}},
		{"numbered", "1. First\n2) Second\n3. Third", []string{"First", "Second", "Third"}},
		{"bullets", "- Dash\n• Dot\n* Star", []string{"Dash", "Dot", "Star"}},
		{"caps at three", "a\nb\nc\nd\ne", []string{"a", "b", "c"}},
		{"skips blanks", "\n\n  \nOnly one\n\n", []string{"Only one"}},
		{"crlf", "One\r\nTwo\r\n", []string{"One", "Two"}},
		{"markers only", "1.\n-\n*", nil},
		{"empty", "", nil},
		{"keeps inner numbers", "10. Hire 2 more agents", []string{"Hire 2 more agents"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ai.ParseRecommendations(tt.in))
		})
	}
}

func TestFallbackRecommendations_ReturnsCopy(t *testing.T) {
	a := ai.FallbackRecommendations(5)
	a[0] = "changed"
	assert.NotEqual(t, "changed", ai.FallbackRecommendations(5)[0])
	assert.Len(t, ai.FallbackRecommendations(3), 3)
}

func TestFallbackResponse_Bands(t *testing.T) {
	assert.Contains(t, ai.FallbackResponse(5), "wonderful feedback")
	assert.Contains(t, ai.FallbackResponse(4), "wonderful feedback")
	assert.Contains(t, ai.FallbackResponse(3), "taking the time")
	assert.Contains(t, ai.FallbackResponse(2), "bringing this to our attention")
	assert.Contains(t, ai.FallbackResponse(1), "bringing this to our attention")
}

func TestFallbackSummary(t *testing.T) {
	assert.Equal(t,
		"Customer submitted a positive rating of 4/5 stars without additional comments.",
		ai.FallbackSummary(4, "   "))
	assert.Equal(t,
		"Customer expressed negative sentiment (1/5 stars) regarding their experience.",
		ai.FallbackSummary(1, "bad"))
}
