package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OpenRouterProvider speaks the OpenAI chat-completions protocol to
// openrouter.ai.
type OpenRouterProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	SiteURL string
	AppName string
	Client  *http.Client
}

type completionReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type apiError struct {
	Message string `json:"message"`
}

// completion covers both the blocking reply (Message) and stream frames (Delta).
type completion struct {
	Choices []struct {
		Message Message `json:"message"`
		Delta   Message `json:"delta"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

func (c completion) err() error {
	if c.Error != nil && c.Error.Message != "" {
		return errors.New(c.Error.Message)
	}
	return nil
}

func NewOpenRouterProvider(baseURL, apiKey, model, siteURL, appName string) *OpenRouterProvider {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		SiteURL: siteURL,
		AppName: appName,
		Client:  &http.Client{},
	}
}

func (p *OpenRouterProvider) post(ctx context.Context, messages []Message, stream bool) (*http.Response, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return nil, errors.New("openrouter: api key is required")
	}
	model := strings.TrimSpace(p.Model)
	if model == "" {
		return nil, errors.New("openrouter: model is required")
	}

	b, err := json.Marshal(completionReq{Model: model, Messages: messages, Stream: stream})
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(p.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	if p.SiteURL != "" {
		req.Header.Set("HTTP-Referer", p.SiteURL)
	}
	if p.AppName != "" {
		req.Header.Set("X-Title", p.AppName)
	}
	return do(p.Client, "openrouter", req)
}

func (p *OpenRouterProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := p.post(ctx, messages, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var c completion
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
		return "", fmt.Errorf("openrouter: decode: %w", err)
	}
	if err := c.err(); err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(c.Choices) == 0 {
		return "", errors.New("openrouter: empty response")
	}
	return c.Choices[0].Message.Content, nil
}

// StreamChat reads the SSE "data:" lines until [DONE].
func (p *OpenRouterProvider) StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	open := func() (*http.Response, error) { return p.post(ctx, messages, true) }
	return streamLines(ctx, "openrouter", open, decodeSSEFrame)
}

func decodeSSEFrame(line []byte) (string, bool, error) {
	data, ok := bytes.CutPrefix(bytes.TrimSpace(line), []byte("data:"))
	if !ok {
		return "", false, nil
	}
	data = bytes.TrimSpace(data)
	if string(data) == "[DONE]" {
		return "", true, nil
	}
	var c completion
	if err := json.Unmarshal(data, &c); err != nil {
		return "", false, fmt.Errorf("decode: %w", err)
	}
	if err := c.err(); err != nil {
		return "", false, err
	}
	if len(c.Choices) == 0 {
		return "", false, nil
	}
	return c.Choices[0].Delta.Content, false, nil
}
