package models

import "time"

const (
	MinRating = 1
	MaxRating = 5

	// MaxReviewLength is measured in characters (Unicode code points).
	MaxReviewLength = 5000

	// MaxRecommendedActions caps the AI recommendation list.
	MaxRecommendedActions = 3
)

// ReviewRecord is a single customer submission together with its AI enrichment.
// Records are created once and never mutated.
type ReviewRecord struct {
	ID                   string    `db:"id"                     json:"id"                   bson:"_id"`
	Rating               int       `db:"rating"                 json:"rating"               bson:"rating"`
	Review               string    `db:"review"                 json:"review"               bson:"review"`
	AIResponse           string    `db:"ai_response"            json:"aiResponse"           bson:"aiResponse"`
	AISummary            string    `db:"ai_summary"             json:"aiSummary"            bson:"aiSummary"`
	AIRecommendedActions []string  `db:"ai_recommended_actions" json:"aiRecommendedActions" bson:"aiRecommendedActions"`
	CreatedAt            time.Time `db:"created_at"             json:"createdAt"            bson:"createdAt"`
	ProcessedAt          time.Time `db:"processed_at"           json:"processedAt"          bson:"processedAt"`
}

// RatingBand classifies a star rating into a response tone.
type RatingBand string

const (
	BandPositive RatingBand = "positive"
	BandNeutral  RatingBand = "neutral"
	BandNegative RatingBand = "negative"
)

// BandFor returns the band for a rating: >=4 positive, 3 neutral, <=2 negative.
func BandFor(rating int) RatingBand {
	switch {
	case rating >= 4:
		return BandPositive
	case rating == 3:
		return BandNeutral
	default:
		return BandNegative
	}
}

// ValidRating reports whether r is an accepted star rating.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
