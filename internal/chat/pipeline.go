package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/prompt"
)

type CaseInput struct {
	SessionID  string
	CaseText   string
	Question   string
	Lang       i18n.Lang
	DocumentID string
}

type AskInput struct {
	SessionID    string
	Question     string
	Lang         i18n.Lang
	DocumentID   string
	DocumentText string
}

type Result struct {
	Prediction       *classifier.Prediction `json:"prediction,omitempty"`
	UserMessage      *Message               `json:"user_message"`
	AssistantMessage *Message               `json:"assistant_message"`
}

type EventType string

const (
	EventPrediction EventType = "prediction"
	EventChunk      EventType = "chunk"
	EventDone       EventType = "done"
	EventError      EventType = "error"
)

// Event is one item of a streamed answer. A stream ends with exactly one
// done or error event.
type Event struct {
	Type       EventType
	Prediction *classifier.Prediction
	Delta      string
	Message    *Message
	Err        error
}

// turn is a validated request whose user message is already stored.
type turn struct {
	sess       *Session
	lang       i18n.Lang
	provider   ai.Provider
	messages   []ai.Message
	prediction *classifier.Prediction
	header     string
	documentID *string
	userMsg    *Message
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Service) prepareCase(ctx context.Context, userID string, in CaseInput) (*turn, error) {
	sess, err := s.GetSession(ctx, userID, in.SessionID)
	if err != nil {
		return nil, err
	}
	lang := s.langFor(sess, in.Lang)
	text := strings.TrimSpace(in.CaseText)

	pred, err := s.classifier.Predict(text)
	if err != nil {
		return nil, err
	}
	provider, err := s.providerFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	msgs, err := prompt.Build(prompt.Request{
		Lang:       lang,
		Prediction: &pred,
		CaseText:   text,
		Question:   in.Question,
	})
	if err != nil {
		return nil, err
	}

	content := text
	if q := strings.TrimSpace(in.Question); q != "" {
		content += "\n\n" + q
	}
	docID := optional(in.DocumentID)
	userMsg, err := s.append(ctx, sess, &Message{Role: RoleUser, Content: content, DocumentID: docID})
	if err != nil {
		return nil, err
	}
	return &turn{
		sess:       sess,
		lang:       lang,
		provider:   provider,
		messages:   msgs,
		prediction: &pred,
		header:     prompt.PredictionHeader(lang, pred),
		documentID: docID,
		userMsg:    userMsg,
	}, nil
}

func (s *Service) prepareAsk(ctx context.Context, userID string, in AskInput) (*turn, error) {
	sess, err := s.GetSession(ctx, userID, in.SessionID)
	if err != nil {
		return nil, err
	}
	lang := s.langFor(sess, in.Lang)
	question := strings.TrimSpace(in.Question)
	if question == "" {
		return nil, prompt.ErrEmptyRequest
	}
	provider, err := s.providerFor(ctx, sess)
	if err != nil {
		return nil, err
	}
	hist, err := s.history(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	msgs, err := prompt.Build(prompt.Request{
		Lang:     lang,
		Question: question,
		CaseText: in.DocumentText,
		History:  hist,
	})
	if err != nil {
		return nil, err
	}

	docID := optional(in.DocumentID)
	userMsg, err := s.append(ctx, sess, &Message{Role: RoleUser, Content: question, DocumentID: docID})
	if err != nil {
		return nil, err
	}
	return &turn{sess: sess, lang: lang, provider: provider, messages: msgs, documentID: docID, userMsg: userMsg}, nil
}

// finish stores the assistant reply with the prediction embedded.
func (s *Service) finish(ctx context.Context, t *turn, body string) (*Result, error) {
	m := &Message{
		Role:       RoleAssistant,
		Content:    t.header + prompt.WithDisclaimer(body, t.lang),
		DocumentID: t.documentID,
	}
	if t.prediction != nil {
		label := string(t.prediction.Label)
		conf := t.prediction.Confidence
		m.Label, m.Confidence = &label, &conf
	}
	if _, err := s.append(ctx, t.sess, m); err != nil {
		return nil, err
	}
	return &Result{Prediction: t.prediction, UserMessage: t.userMsg, AssistantMessage: m}, nil
}

func (s *Service) generate(ctx context.Context, t *turn) (*Result, error) {
	gctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	body, err := t.provider.Chat(gctx, t.messages)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return s.finish(ctx, t, body)
}

func (s *Service) stream(ctx context.Context, t *turn) <-chan Event {
	out := make(chan Event, 16)

	go func() {
		defer close(out)

		emit := func(e Event) bool {
			select {
			case out <- e:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if t.prediction != nil {
			if !emit(Event{Type: EventPrediction, Prediction: t.prediction}) {
				return
			}
		}
		if t.header != "" && !emit(Event{Type: EventChunk, Delta: t.header}) {
			return
		}

		gctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()

		chunks, errs := ai.Stream(gctx, t.provider, t.messages)
		var b strings.Builder
		for c := range chunks {
			b.WriteString(c)
			if !emit(Event{Type: EventChunk, Delta: c}) {
				cancel()
				for range chunks {
				}
				return
			}
		}
		if err := <-errs; err != nil {
			emit(Event{Type: EventError, Err: fmt.Errorf("%w: %w", ErrGeneration, err)})
			return
		}

		body := b.String()
		full := prompt.WithDisclaimer(body, t.lang)
		if tail := strings.TrimPrefix(full, body); tail != "" {
			if !emit(Event{Type: EventChunk, Delta: tail}) {
				return
			}
		}

		res, err := s.finish(ctx, t, body)
		if err != nil {
			emit(Event{Type: EventError, Err: err})
			return
		}
		emit(Event{Type: EventDone, Message: res.AssistantMessage})
	}()

	return out
}

// AnalyzeCase classifies the case text and returns the explained prediction.
func (s *Service) AnalyzeCase(ctx context.Context, userID string, in CaseInput) (*Result, error) {
	t, err := s.prepareCase(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, t)
}

// AnalyzeCaseStream validates and classifies synchronously, so request
// errors surface before the first event.
func (s *Service) AnalyzeCaseStream(ctx context.Context, userID string, in CaseInput) (<-chan Event, error) {
	t, err := s.prepareCase(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.stream(ctx, t), nil
}

// Ask answers a free-form legal question using the session as context.
func (s *Service) Ask(ctx context.Context, userID string, in AskInput) (*Result, error) {
	t, err := s.prepareAsk(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, t)
}

func (s *Service) AskStream(ctx context.Context, userID string, in AskInput) (<-chan Event, error) {
	t, err := s.prepareAsk(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.stream(ctx, t), nil
}
