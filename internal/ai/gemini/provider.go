// Package gemini implements models.AIProvider on the Google GenAI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kiranshivaraju/reviewpulse/internal/config"
	"github.com/kiranshivaraju/reviewpulse/pkg/models"
	"google.golang.org/genai"
)

type Provider struct {
	client *genai.Client
	model  string
}

// NewProvider creates a Gemini API client. baseURL overrides the endpoint and
// is empty outside tests.
func NewProvider(ctx context.Context, cfg config.GeminiConfig, baseURL string) (*Provider, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Provider{client: client, model: cfg.Model}, nil
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.System != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), gc)
	if err != nil {
		// The SDK does not always wrap the context error.
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return "", fmt.Errorf("gemini: %w: %w", models.ErrProviderUnavailable, ctxErr)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini: %w: %w", models.ErrInferenceTimeout, err)
		}
		return "", fmt.Errorf("gemini: %w: %w", models.ErrProviderUnavailable, err)
	}
	return strings.TrimSpace(resp.Text()), nil
}

var _ models.AIProvider = (*Provider)(nil)
