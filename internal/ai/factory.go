package ai

import (
	"context"
	"fmt"

	"github.com/kiranshivaraju/reviewpulse/internal/ai/anthropic"
	"github.com/kiranshivaraju/reviewpulse/internal/ai/gemini"
	"github.com/kiranshivaraju/reviewpulse/internal/ai/ollama"
	"github.com/kiranshivaraju/reviewpulse/internal/ai/openai"
	"github.com/kiranshivaraju/reviewpulse/internal/ai/vllm"
	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
)

// NewProvider constructs the appropriate AI provider based on config.
// Called once at server startup. Keyed providers without a key return
// ErrNoCredentials.
func NewProvider(ctx context.Context, cfg config.AIConfig) (models.AIProvider, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.NewProvider(cfg.Ollama), nil
	case "vllm":
		return vllm.NewProvider(cfg.VLLM), nil
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai: %w", ErrNoCredentials)
		}
		return openai.NewProvider(cfg.OpenAI), nil
	case "anthropic":
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrNoCredentials)
		}
		return anthropic.NewProvider(cfg.Anthropic), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("gemini: %w", ErrNoCredentials)
		}
		return gemini.NewProvider(ctx, cfg.Gemini, "")
	default:
		return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, anthropic, gemini, ollama, vllm", cfg.Provider)
	}
}
