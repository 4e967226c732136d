package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// DefaultGeminiBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// EinoProvider adapts an eino chat model to Provider and StreamProvider.
type EinoProvider struct {
	name  string
	model model.BaseChatModel
}

func NewEinoProvider(name string, m model.BaseChatModel) *EinoProvider {
	return &EinoProvider{name: name, model: m}
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewGeminiProvider builds an eino openai ChatModel pointed at Gemini.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*EinoProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return NewEinoProvider("gemini", cm), nil
}

func toSchema(messages []Message) []*schema.Message {
	out := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		role := schema.User
		switch m.Role {
		case RoleSystem:
			role = schema.System
		case RoleAssistant:
			role = schema.Assistant
		}
		out = append(out, &schema.Message{Role: role, Content: m.Content})
	}
	return out
}

func (p *EinoProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := p.model.Generate(ctx, toSchema(messages))
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s: empty response", p.name)
	}
	return resp.Content, nil
}

func (p *EinoProvider) StreamChat(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	chunks := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errs)

		sr, err := p.model.Stream(ctx, toSchema(messages))
		if err != nil {
			errs <- fmt.Errorf("%s: %w", p.name, err)
			return
		}
		if sr == nil {
			errs <- fmt.Errorf("%s: no stream", p.name)
			return
		}
		defer sr.Close()

		for {
			msg, err := sr.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				errs <- fmt.Errorf("%s: %w", p.name, err)
				return
			}
			if msg == nil || msg.Content == "" {
				continue
			}
			select {
			case chunks <- msg.Content:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return chunks, errs
}
