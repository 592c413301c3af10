package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	anthropicAPIVersion = "2023-06-01"
	anthropicBaseURL    = "https://api.anthropic.com/v1/messages"

	// DefaultAnthropicModel is used when no model is configured.
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"

	defaultAnthropicMaxTokens = 1024
)

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	Messages    []anthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature *float32           `json:"temperature,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicAPIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicAPIError `json:"error,omitempty"`
}

// AnthropicProvider completes prompts through the Anthropic messages
// API over plain HTTP.
type AnthropicProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewAnthropicProvider creates an Anthropic-backed provider. The
// timeout bounds each request; ctx deadlines shorten it further.
func NewAnthropicProvider(apiKey, model string, timeout time.Duration) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnthropicProvider{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    anthropicBaseURL,
		apiKey:     apiKey,
		model:      model,
	}, nil
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Complete implements Provider.
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	payload := anthropicRequest{
		Model:     p.model,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	if opts.Temperature > 0 {
		payload.Temperature = &opts.Temperature
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicAPIVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Kind: KindTransient, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Kind: KindTransient, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		kind := KindInvalidResponse
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = KindTransient
		}
		return "", &ProviderError{
			Provider: p.Name(),
			Kind:     kind,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, respBody),
		}
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", &ProviderError{Provider: p.Name(), Kind: KindInvalidResponse, Err: err}
	}
	if apiResp.Error != nil {
		return "", &ProviderError{
			Provider: p.Name(),
			Kind:     KindInvalidResponse,
			Err:      fmt.Errorf("%s: %s", apiResp.Error.Type, apiResp.Error.Message),
		}
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", &ProviderError{
			Provider: p.Name(),
			Kind:     KindInvalidResponse,
			Err:      fmt.Errorf("no text block in response"),
		}
	}
	return text, nil
}
