// Package review validates feedback submissions and orchestrates their
// enrichment, persistence and listing.
package review

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// Submission is a validated review ready for enrichment. Review is trimmed.
type Submission struct {
	Rating int
	Review string
}

// FieldError is one violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every constraint a request violated.
type ValidationError struct {
	Fields  []FieldError
	tooLong bool
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ", ")
}

// TooLong reports whether any violation is a length violation.
func (e *ValidationError) TooLong() bool { return e.tooLong }

func (e *ValidationError) add(field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

var jsonNull = []byte("null")

// DecodeSubmission parses and validates a POST /reviews body.
// Returns a *ValidationError on any violation.
func DecodeSubmission(body []byte) (Submission, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		verr := &ValidationError{}
		verr.add("body", "Request body must be a valid JSON object")
		return Submission{}, verr
	}

	verr := &ValidationError{}
	var sub Submission

	if r, ok := raw["rating"]; ok {
		sub.Rating = validateRating(r, verr)
	} else {
		verr.add("rating", "Rating is required")
	}

	if r, ok := raw["review"]; ok {
		sub.Review = validateReview(r, verr)
	} else {
		verr.add("review", "Review is required")
	}

	if err := verr.orNil(); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func validateRating(raw json.RawMessage, verr *ValidationError) int {
	var n float64
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) || json.Unmarshal(raw, &n) != nil {
		verr.add("rating", "Rating must be a number")
		return 0
	}
	if n != math.Trunc(n) {
		verr.add("rating", "Rating must be an integer")
		return 0
	}
	switch {
	case n < models.MinRating:
		verr.add("rating", fmt.Sprintf("Rating must be at least %d", models.MinRating))
	case n > models.MaxRating:
		verr.add("rating", fmt.Sprintf("Rating cannot exceed %d", models.MaxRating))
	}
	return int(n)
}

func validateReview(raw json.RawMessage, verr *ValidationError) string {
	var s string
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) || json.Unmarshal(raw, &s) != nil {
		verr.add("review", "Review must be a string")
		return ""
	}
	// Length is measured before trimming.
	if utf8.RuneCountInString(s) > models.MaxReviewLength {
		verr.add("review", fmt.Sprintf("Review cannot exceed %d characters", models.MaxReviewLength))
		verr.tooLong = true
		return ""
	}
	return strings.TrimSpace(s)
}

// ListParams filters a review listing.
type ListParams struct {
	Rating int
	From   time.Time
	To     time.Time
}

// ParseListParams reads rating, from and to. A rating that is not an integer
// in 1..5 is ignored. from and to must be RFC3339 when present.
func ParseListParams(q url.Values) (ListParams, error) {
	var p ListParams
	verr := &ValidationError{}

	if v := q.Get("rating"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && models.ValidRating(n) {
			p.Rating = n
		}
	}
	p.From = parseTime(q.Get("from"), "from", verr)
	p.To = parseTime(q.Get("to"), "to", verr)

	if !p.From.IsZero() && !p.To.IsZero() && p.To.Before(p.From) {
		verr.add("to", "to must not be before from")
	}
	if err := verr.orNil(); err != nil {
		return ListParams{}, err
	}
	return p, nil
}

func parseTime(v, field string, verr *ValidationError) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		verr.add(field, field+" must be an RFC3339 timestamp")
		return time.Time{}
	}
	return t
}
