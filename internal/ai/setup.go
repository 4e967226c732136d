package ai

import (
	"context"
	"strings"
)

type OpenRouterConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	SiteURL string
	AppName string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

type Settings struct {
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Ollama     OllamaConfig
}

// RegisterDefaults registers the gemini, openrouter and ollama factories. A
// session model overrides the configured default model.
func RegisterDefaults(reg *Registry, s Settings) {
	reg.Register(ProviderGemini, func(ctx context.Context, model string) (Provider, error) {
		cfg := s.Gemini
		if m := strings.TrimSpace(model); m != "" {
			cfg.Model = m
		}
		return NewGeminiProvider(ctx, cfg)
	})
	reg.Register(ProviderOpenRouter, func(ctx context.Context, model string) (Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = s.OpenRouter.Model
		}
		return NewOpenRouterProvider(s.OpenRouter.BaseURL, s.OpenRouter.APIKey, m, s.OpenRouter.SiteURL, s.OpenRouter.AppName), nil
	})
	reg.Register(ProviderOllama, func(ctx context.Context, model string) (Provider, error) {
		m := strings.TrimSpace(model)
		if m == "" {
			m = s.Ollama.Model
		}
		return NewOllamaProvider(s.Ollama.BaseURL, m), nil
	})
}
