// Package chat runs the case-analysis and legal-aid pipelines on top of a
// session's message history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

type Options struct {
	ContextWindowSize int
	Timeout           time.Duration
	DefaultProvider   string
	DefaultModel      string
	DefaultLanguage   i18n.Lang
}

type Service struct {
	store      Store
	registry   *ai.Registry
	classifier classifier.Predictor
	opts       Options
	now        func() time.Time
}

// clock keeps CreatedAt at the millisecond precision BSON stores, so keyset
// cursors compare equal across stores.
func clock() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

func NewService(store Store, registry *ai.Registry, clf classifier.Predictor, opts Options) *Service {
	if opts.ContextWindowSize <= 0 || opts.ContextWindowSize > 100 {
		opts.ContextWindowSize = 20
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 90 * time.Second
	}
	if opts.DefaultProvider == "" {
		opts.DefaultProvider = ai.ProviderGemini
	}
	if !opts.DefaultLanguage.Valid() {
		opts.DefaultLanguage = i18n.Default
	}
	return &Service{store: store, registry: registry, classifier: clf, opts: opts, now: clock}
}

type CreateSessionInput struct {
	Title    string
	Language i18n.Lang
	Provider string
	Model    string
}

// CreateSession opens a session and seeds it with the localized welcome.
func (s *Service) CreateSession(ctx context.Context, userID string, in CreateSessionInput) (*Session, error) {
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		provider = s.opts.DefaultProvider
	}
	if !s.registry.Has(provider) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	model := strings.TrimSpace(in.Model)
	if model == "" && provider == s.opts.DefaultProvider {
		model = s.opts.DefaultModel
	}
	lang := in.Language
	if !lang.Valid() {
		lang = s.opts.DefaultLanguage
	}

	sid, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	sess := &Session{
		ID:        sid,
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Language:  string(lang),
		Provider:  provider,
		Model:     model,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	if _, err := s.append(ctx, sess, &Message{Role: RoleAssistant, Content: i18n.T(lang, i18n.Welcome)}); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSession returns the session when userID owns it.
func (s *Service) GetSession(ctx context.Context, userID, sessionID string) (*Session, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) ListSessions(ctx context.Context, userID string, limit int) ([]Session, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListSessions(ctx, userID, limit)
}

func (s *Service) SetLanguage(ctx context.Context, userID, sessionID string, lang i18n.Lang) (*Session, error) {
	sess, err := s.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSessionLanguage(ctx, sess.ID, string(lang)); err != nil {
		return nil, err
	}
	sess.Language = string(lang)
	return sess, nil
}

func (s *Service) ListMessages(ctx context.Context, userID, sessionID string, limit int, beforeID string) ([]Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if _, err := s.GetSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx, sessionID, limit, beforeID)
}

// append assigns the ID, hash and a CreatedAt no earlier than the session's
// last message, then stores m.
func (s *Service) append(ctx context.Context, sess *Session, m *Message) (*Message, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	m.ID = id
	m.SessionID = sess.ID
	m.UserID = sess.UserID
	m.ContentHash = Hash(m.Role, m.Content)
	m.CreatedAt = s.now()

	last, err := s.store.LastMessage(ctx, sess.ID)
	switch {
	case err == nil:
		if m.CreatedAt.Before(last.CreatedAt) {
			m.CreatedAt = last.CreatedAt
		}
	case !errors.Is(err, common.ErrNotFound):
		return nil, err
	}

	if err := s.store.AppendMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) providerFor(ctx context.Context, sess *Session) (ai.Provider, error) {
	p := sess.Provider
	if p == "" {
		p = s.opts.DefaultProvider
	}
	prov, err := s.registry.Get(ctx, p, sess.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	return prov, nil
}

func (s *Service) langFor(sess *Session, requested i18n.Lang) i18n.Lang {
	if requested.Valid() {
		return requested
	}
	return i18n.Resolve(sess.Language)
}

func (s *Service) history(ctx context.Context, sessionID string) ([]ai.Message, error) {
	recent, err := s.store.ListMessages(ctx, sessionID, s.opts.ContextWindowSize, "")
	if err != nil {
		return nil, err
	}
	out := make([]ai.Message, 0, len(recent))
	for _, m := range recent {
		out = append(out, ai.Message{Role: m.Role, Content: m.Content})
	}
	return out, nil
}
