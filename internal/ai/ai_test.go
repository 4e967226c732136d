package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	reply  string
	chunks []string
	err    error
	last   []*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.last = input
	if m.err != nil {
		return nil, m.err
	}
	return &schema.Message{Role: schema.Assistant, Content: m.reply}, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.last = input
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		msgs = append(msgs, &schema.Message{Role: schema.Assistant, Content: c})
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func TestEinoProvider_ChatMapsRoles(t *testing.T) {
	fm := &fakeChatModel{reply: "answer"}
	p := NewEinoProvider("fake", fm)

	got, err := p.Chat(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if got != "answer" {
		t.Fatalf("unexpected reply %q", got)
	}
	want := []schema.RoleType{schema.System, schema.User, schema.Assistant}
	for i, m := range fm.last {
		if m.Role != want[i] {
			t.Fatalf("message %d: want role %s got %s", i, want[i], m.Role)
		}
	}
}

func TestEinoProvider_StreamChat(t *testing.T) {
	p := NewEinoProvider("fake", &fakeChatModel{chunks: []string{"Fact", "", "ual ", "Background"}})
	got, err := Collect(p.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "q"}}))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if got != "Factual Background" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestEinoProvider_StreamError(t *testing.T) {
	boom := errors.New("quota exceeded")
	p := NewEinoProvider("fake", &fakeChatModel{err: boom})
	_, err := Collect(p.StreamChat(context.Background(), nil))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

type blockingOnly struct{ reply string }

func (b blockingOnly) Chat(ctx context.Context, messages []Message) (string, error) {
	return b.reply, nil
}

func TestStream_FallsBackToChat(t *testing.T) {
	got, err := Collect(Stream(context.Background(), blockingOnly{reply: "whole"}, nil))
	if err != nil || got != "whole" {
		t.Fatalf("unexpected %q %v", got, err)
	}
}

func TestOllamaProvider_StreamChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Appeal "},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"allowed"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	got, err := Collect(p.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "q"}}))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if got != "Appeal allowed" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestOpenRouterProvider_ChatAndStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if strings.Contains(string(body), `"stream":true`) {
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
			fmt.Fprint(w, ": keep-alive\n\n")
			fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
			fmt.Fprint(w, "data: [DONE]\n\n")
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hello"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "key", "openrouter/auto", "", "")
	got, err := p.Chat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	if err != nil || got != "Hello" {
		t.Fatalf("chat: %q %v", got, err)
	}
	got, err = Collect(p.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}))
	if err != nil || got != "Hello" {
		t.Fatalf("stream: %q %v", got, err)
	}

	bad := NewOpenRouterProvider(srv.URL, "wrong", "openrouter/auto", "", "")
	if _, err := bad.Chat(context.Background(), nil); err == nil {
		t.Fatalf("expected error for rejected key")
	}
}

func TestRegistry_RoutesByName(t *testing.T) {
	reg := NewRegistry()
	RegisterDefaults(reg, Settings{Ollama: OllamaConfig{BaseURL: "http://127.0.0.1:1", Model: "llama3"}})

	p, err := reg.Get(context.Background(), " OLLAMA ", "")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	op, ok := p.(*OllamaProvider)
	if !ok || op.Model != "llama3" {
		t.Fatalf("unexpected provider %#v", p)
	}
	if _, err := reg.Get(context.Background(), "gemini", ""); err == nil {
		t.Fatalf("expected gemini without api key to fail")
	}
	if _, err := reg.Get(context.Background(), "nope", ""); err == nil {
		t.Fatalf("expected unknown provider error")
	}
	if got := strings.Join(reg.Names(), ","); got != "gemini,ollama,openrouter" {
		t.Fatalf("unexpected names %q", got)
	}
}

func TestOpenRouterProvider_StreamErrorFrame(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"partial\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"error\":{\"message\":\"rate limited\"}}\n\n")
	}))
	defer srv.Close()

	p := NewOpenRouterProvider(srv.URL, "key", "openrouter/auto", "", "")
	got, err := Collect(p.StreamChat(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}))
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if got != "partial" {
		t.Fatalf("unexpected partial reply %q", got)
	}
}
