package models

// Analytics is the aggregate view over all stored reviews. It is derived on
// demand and never persisted as a source of truth.
type Analytics struct {
	AverageRating      float64        `json:"averageRating"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	TotalReviews       int            `json:"totalReviews"`
	ReviewsToday       int            `json:"reviewsToday"`
	ReviewsThisWeek    int            `json:"reviewsThisWeek"`
}
