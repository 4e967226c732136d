// Package ai talks to the hosted language models that write explanations and
// legal-aid answers.
package ai

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a blocking chat completion.
type Provider interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}
