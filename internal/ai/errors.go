package ai

import "errors"

var (
	// ErrNoCredentials means the selected provider needs an API key that is not set.
	// The server runs in fallback mode instead of failing.
	ErrNoCredentials = errors.New("ai provider credentials not configured")
	// ErrEnrichmentAborted is returned when the caller's context ends mid-enrichment.
	ErrEnrichmentAborted = errors.New("enrichment aborted")
	ErrEmptyCompletion   = errors.New("ai provider returned empty completion")
)
