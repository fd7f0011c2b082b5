// ABOUTME: Anthropic Messages API provider for prompt hook completions
// ABOUTME: Plain net/http + encoding/json; API key falls back to the environment

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	defaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	anthropicAPIVersion   = "2023-06-01"
	defaultMaxTokens      = 1024
)

// AnthropicConfig configures an AnthropicProvider. Zero fields get defaults.
type AnthropicConfig struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
}

// AnthropicProvider implements Provider over the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewAnthropicProvider builds a provider, reading ANTHROPIC_API_KEY from the
// environment when the config carries no key.
func NewAnthropicProvider(cfg AnthropicConfig) (*AnthropicProvider, error) {
	p := &AnthropicProvider{
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		maxTokens: cfg.MaxTokens,
		client:    &http.Client{},
	}
	if p.apiKey == "" {
		p.apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if p.apiKey == "" {
		return nil, fmt.Errorf("anthropic provider requires an API key")
	}
	if p.model == "" {
		p.model = defaultAnthropicModel
	}
	if p.baseURL == "" {
		p.baseURL = defaultAnthropicURL
	}
	if p.maxTokens == 0 {
		p.maxTokens = defaultMaxTokens
	}
	return p, nil
}

func (p *AnthropicProvider) Name() string {
	return fmt.Sprintf("Anthropic API (%s)", p.model)
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends prompt as a single user message and returns the
// concatenated text blocks of the reply.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = p.model
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: p.maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var out anthropicResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("anthropic API error (%s): %s", out.Error.Type, out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic API returned status %d", resp.StatusCode)
	}

	var sb strings.Builder
	for _, block := range out.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
