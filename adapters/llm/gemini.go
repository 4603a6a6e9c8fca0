package llm

import (
	"context"
	"fmt"
	"strings"

	apperrors "gosupply/internal/errors"

	genai "google.golang.org/genai"
)

// GeminiClient answers prompts through the Gemini API in JSON mode
type GeminiClient struct {
	cli         *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewGeminiClient(ctx context.Context, config Config) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, apperrors.ConfigInvalid("missing Gemini API key")
	}
	if strings.TrimSpace(config.Model) == "" {
		return nil, apperrors.ConfigInvalid("missing Gemini model")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.ExternalServiceError("gemini", err)
	}
	return &GeminiClient{
		cli:         cli,
		model:       config.Model,
		temperature: float32(config.Temperature),
		maxTokens:   int32(config.MaxTokens),
	}, nil
}

func (g *GeminiClient) Provider() string { return "gemini" }

func (g *GeminiClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       &temperature,
	}
	if g.maxTokens > 0 {
		cfg.MaxOutputTokens = g.maxTokens
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: userPrompt}}}},
		cfg,
	)
	if err != nil {
		return "", apperrors.ExternalServiceError("gemini", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.ExternalServiceError("gemini", fmt.Errorf("response missing candidates"))
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
