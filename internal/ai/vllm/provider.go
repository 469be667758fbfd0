// Package vllm builds a provider for a vLLM server's OpenAI-compatible API.
package vllm

import (
	"github.com/kiranshivaraju/reviewpulse/internal/ai/openai"
	"github.com/kiranshivaraju/reviewpulse/internal/config"
)

func NewProvider(cfg config.VLLMConfig) *openai.Provider {
	return openai.NewCompatible("vllm", cfg.BaseURL, cfg.Model, "")
}
