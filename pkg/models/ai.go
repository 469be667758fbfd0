// Package models contains shared data models used across the reviewpulse codebase.
package models

import (
	"context"
	"errors"
)

// AIProvider is the core interface that all text generation backends implement.
// Never call specific AI providers directly; always inject this interface.
type AIProvider interface {
	// Generate returns the completion text for a single system+user prompt pair.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Name returns the provider identifier (e.g., "openai", "gemini").
	Name() string
}

// GenerationRequest is the input to a single text generation call.
type GenerationRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Enrichment is the AI-generated content attached to a review.
type Enrichment struct {
	UserResponse       string   `json:"userResponse"`
	Summary            string   `json:"summary"`
	RecommendedActions []string `json:"recommendedActions"`
}

// Errors returned by AIProvider implementations.
var (
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
)
