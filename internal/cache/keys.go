package cache

import "fmt"

const analyticsGenerationKey = "reviews:analytics:gen"

// AnalyticsKey names the analytics snapshot computed under generation gen.
func AnalyticsKey(gen int64) string {
	return fmt.Sprintf("reviews:analytics:v%d", gen)
}

// AnalyticsGenerationKey holds the counter bumped on every saved review.
func AnalyticsGenerationKey() string {
	return analyticsGenerationKey
}

func LoginAttemptKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:auth:%s", clientIP)
}

func RevokedSessionKey(sessionID string) string {
	return fmt.Sprintf("session:revoked:%s", sessionID)
}
