// Package ollama builds a provider for a local Ollama server through its
// OpenAI-compatible endpoint.
package ollama

import (
	"github.com/kiranshivaraju/reviewpulse/internal/ai/openai"
	"github.com/kiranshivaraju/reviewpulse/internal/config"
)

func NewProvider(cfg config.OllamaConfig) *openai.Provider {
	return openai.NewCompatible("ollama", cfg.BaseURL, cfg.Model, "")
}
