package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "gosupply/internal/errors"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// Config selects and configures a chat model
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIClient creates an OpenAI client from config
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, apperrors.ConfigInvalid("missing OpenAI API key")
	}
	if strings.TrimSpace(config.Model) == "" {
		return nil, apperrors.ConfigInvalid("missing OpenAI model")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAIClient{
		APIKey:      config.APIKey,
		BaseURL:     baseURL,
		Model:       config.Model,
		Timeout:     config.Timeout,
		Temperature: config.Temperature,
		MaxTokens:   config.MaxTokens,
	}, nil
}

// OpenAIClient answers chat completions in JSON mode
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

func (c *OpenAIClient) Provider() string { return "openai" }

// CompleteJSON sends one system and one user message with
// response_format json_object and returns the first choice's content.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type responseFormat struct {
		Type string `json:"type"`
	}
	type reqBody struct {
		Model          string         `json:"model"`
		Messages       []msg          `json:"messages"`
		Temperature    float64        `json:"temperature,omitempty"`
		MaxTokens      int            `json:"max_tokens,omitempty"`
		ResponseFormat responseFormat `json:"response_format"`
	}

	// JSON mode rejects prompts that never mention JSON.
	if !strings.Contains(strings.ToLower(systemPrompt), "json") {
		systemPrompt += "\n\nRespond with a single JSON object."
	}

	body := reqBody{
		Model: c.Model,
		Messages: []msg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    c.Temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", apperrors.ExternalServiceError("openai", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.ExternalServiceError("openai",
			fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(respRaw))))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", apperrors.ExternalServiceError("openai", fmt.Errorf("response missing choices"))
	}
	return decoded.Choices[0].Message.Content, nil
}
