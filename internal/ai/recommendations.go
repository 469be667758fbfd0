package ai

import (
	"regexp"
	"strings"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// leadingMarker matches list bullets and numbering at the start of a line.
var leadingMarker = regexp.MustCompile(`^[-•*\d.)\s]+`)

// ParseRecommendations splits a completion into at most three clean actions.
// Returns nil when nothing usable remains.
func ParseRecommendations(completion string) []string {
	var out []string
	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(leadingMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == models.MaxRecommendedActions {
			break
		}
	}
	return out
}
