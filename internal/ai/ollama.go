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

// OllamaProvider calls a local Ollama server's /api/chat.
type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

type ollamaReq struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// ollamaFrame is both the blocking reply and one NDJSON stream line.
type ollamaFrame struct {
	Message Message `json:"message"`
	Done    bool    `json:"done"`
	Error   string  `json:"error,omitempty"`
}

// NewOllamaProvider leaves the client without a timeout; callers bound each
// call through ctx.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3:latest"
	}
	return &OllamaProvider{BaseURL: baseURL, Model: model, Client: &http.Client{}}
}

func (p *OllamaProvider) post(ctx context.Context, messages []Message, stream bool) (*http.Response, error) {
	b, err := json.Marshal(ollamaReq{Model: p.Model, Messages: messages, Stream: stream})
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(p.BaseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(p.Client, "ollama", req)
}

func (p *OllamaProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := p.post(ctx, messages, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var f ollamaFrame
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return "", fmt.Errorf("ollama: decode: %w", err)
	}
	if f.Error != "" {
		return "", errors.New("ollama: " + f.Error)
	}
	return f.Message.Content, nil
}

// StreamChat reads Ollama's newline-delimited JSON stream.
func (p *OllamaProvider) StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	open := func() (*http.Response, error) { return p.post(ctx, messages, true) }
	return streamLines(ctx, "ollama", open, decodeNDJSONFrame)
}

func decodeNDJSONFrame(line []byte) (string, bool, error) {
	if len(bytes.TrimSpace(line)) == 0 {
		return "", false, nil
	}
	var f ollamaFrame
	if err := json.Unmarshal(line, &f); err != nil {
		return "", false, fmt.Errorf("decode: %w", err)
	}
	if f.Error != "" {
		return "", false, errors.New(f.Error)
	}
	return f.Message.Content, f.Done, nil
}
