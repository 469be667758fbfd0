// Package analytics derives aggregate review statistics from a full record set.
package analytics

import (
	"math"
	"strconv"
	"time"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// weekWindowDays is how far before today's midnight "this week" starts.
const weekWindowDays = 7

// Compute aggregates records into Analytics. now fixes the clock and its
// location decides where "today" begins. Records with out-of-range ratings
// are not counted.
// Returns a zero-filled distribution for empty input (never nil).
func Compute(records []*models.ReviewRecord, now time.Time) models.Analytics {
	out := models.Analytics{RatingDistribution: EmptyDistribution()}

	todayStart := StartOfDay(now)
	weekStart := todayStart.AddDate(0, 0, -weekWindowDays)

	sum := 0
	for _, r := range records {
		if r == nil || !models.ValidRating(r.Rating) {
			continue
		}
		out.TotalReviews++
		sum += r.Rating
		out.RatingDistribution[strconv.Itoa(r.Rating)]++

		if !r.CreatedAt.Before(todayStart) {
			out.ReviewsToday++
		}
		if !r.CreatedAt.Before(weekStart) {
			out.ReviewsThisWeek++
		}
	}

	if out.TotalReviews > 0 {
		out.AverageRating = roundOneDecimal(float64(sum) / float64(out.TotalReviews))
	}
	return out
}

// EmptyDistribution returns a distribution with every star key present.
func EmptyDistribution() map[string]int {
	dist := make(map[string]int, models.MaxRating)
	for star := models.MinRating; star <= models.MaxRating; star++ {
		dist[strconv.Itoa(star)] = 0
	}
	return dist
}

// StartOfDay returns local midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
