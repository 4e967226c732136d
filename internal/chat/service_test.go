package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/suPer8Hu/legal-assistant/internal/ai"
	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/prompt"
	"gorm.io/gorm"
)

type recordingProvider struct {
	mu    sync.Mutex
	last  []ai.Message
	reply string
	err   error
}

func (p *recordingProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = append([]ai.Message(nil), messages...)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *recordingProvider) lastMessages() []ai.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

type streamingProvider struct {
	recordingProvider
	chunks []string
}

func (p *streamingProvider) StreamChat(ctx context.Context, messages []ai.Message) (<-chan string, <-chan error) {
	out := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for _, c := range p.chunks {
			select {
			case out <- c:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if p.err != nil {
			errs <- p.err
		}
	}()
	return out, errs
}

type fixedClassifier struct {
	pred classifier.Prediction
	err  error
}

func (c fixedClassifier) Predict(text string) (classifier.Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return classifier.Prediction{}, classifier.ErrEmptyInput
	}
	return c.pred, c.err
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Session{}, &Message{}, &Job{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, prov ai.Provider, clf classifier.Predictor) (*Service, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	reg := ai.NewRegistry()
	reg.Register("fake", func(ctx context.Context, model string) (ai.Provider, error) {
		return prov, nil
	})
	svc := NewService(NewRepo(db), reg, clf, Options{DefaultProvider: "fake", Timeout: 5 * time.Second})
	return svc, db
}

var allowed = classifier.Prediction{Label: classifier.AppealAllowed, Confidence: 0.82}

func mustSession(t *testing.T, svc *Service, userID string, lang i18n.Lang) *Session {
	t.Helper()
	sess, err := svc.CreateSession(context.Background(), userID, CreateSessionInput{Language: lang})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return sess
}

func TestCreateSession_SeedsLocalizedWelcome(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "ok"}, fixedClassifier{pred: allowed})
	ctx := context.Background()

	sess := mustSession(t, svc, "u1", i18n.Hindi)
	if sess.Language != "hi" || sess.Provider != "fake" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	msgs, err := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected welcome only, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || msgs[0].Content != i18n.T(i18n.Hindi, i18n.Welcome) {
		t.Fatalf("unexpected welcome: %+v", msgs[0])
	}
	if !msgs[0].Verify() {
		t.Fatalf("welcome hash mismatch")
	}
}

func TestCreateSession_UnknownProvider(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{}, fixedClassifier{pred: allowed})
	_, err := svc.CreateSession(context.Background(), "u1", CreateSessionInput{Provider: "nope"})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "ok"}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	if _, err := svc.GetSession(ctx, "u2", sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if _, err := svc.ListMessages(ctx, "u2", sess.ID, 0, ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on list, got %v", err)
	}
	if _, err := svc.Ask(ctx, "u2", AskInput{SessionID: sess.ID, Question: "hi"}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on ask, got %v", err)
	}
	list, err := svc.ListSessions(ctx, "u2", 0)
	if err != nil || len(list) != 0 {
		t.Fatalf("expected no sessions for u2, got %v %v", list, err)
	}
}

func TestSetLanguage_AppliesToLaterAnswers(t *testing.T) {
	prov := &recordingProvider{reply: "உதவி"}
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	if _, err := svc.SetLanguage(ctx, "u2", sess.ID, i18n.Tamil); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign session, got %v", err)
	}
	updated, err := svc.SetLanguage(ctx, "u1", sess.ID, i18n.Tamil)
	if err != nil {
		t.Fatalf("set language: %v", err)
	}
	if updated.Language != string(i18n.Tamil) {
		t.Fatalf("unexpected language %q", updated.Language)
	}

	res, err := svc.Ask(ctx, "u1", AskInput{SessionID: sess.ID, Question: "How do I file an appeal?"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	sent := prov.lastMessages()
	if len(sent) == 0 || !strings.Contains(sent[0].Content, "Respond entirely in Tamil") {
		t.Fatalf("expected Tamil directive in system prompt, got %+v", sent)
	}
	if !strings.HasSuffix(res.AssistantMessage.Content, prompt.DisclaimerChunk(i18n.Tamil)) {
		t.Fatalf("expected Tamil disclaimer, got %q", res.AssistantMessage.Content)
	}
}

func TestAnalyzeCase_PersistsPredictionAndDisclaimer(t *testing.T) {
	prov := &recordingProvider{reply: "The lower court erred."}
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	res, err := svc.AnalyzeCase(ctx, "u1", CaseInput{SessionID: sess.ID, CaseText: "  The appellant challenges the order.  ", Lang: i18n.Hindi})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.Prediction == nil || res.Prediction.Label != classifier.AppealAllowed {
		t.Fatalf("unexpected prediction: %+v", res.Prediction)
	}

	got := res.AssistantMessage.Content
	header := prompt.PredictionHeader(i18n.Hindi, allowed)
	if !strings.HasPrefix(got, header) {
		t.Fatalf("missing header: %q", got)
	}
	chunk := prompt.DisclaimerChunk(i18n.Hindi)
	if !strings.HasSuffix(got, chunk) || strings.Count(got, chunk) != 1 {
		t.Fatalf("disclaimer must appear exactly once at the end: %q", got)
	}
	if res.AssistantMessage.Label == nil || *res.AssistantMessage.Label != "Appeal Allowed" {
		t.Fatalf("label not stored: %+v", res.AssistantMessage)
	}

	msgs, err := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected welcome, user, assistant; got %d", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "The appellant challenges the order." {
		t.Fatalf("unexpected user message: %+v", msgs[1])
	}
	if p := msgs[2].Prediction(); p == nil || p.Confidence != 0.82 {
		t.Fatalf("prediction not round-tripped: %+v", msgs[2])
	}
	for _, m := range msgs {
		if !m.Verify() {
			t.Fatalf("hash mismatch for %s", m.ID)
		}
		if m.CreatedAt.Before(msgs[0].CreatedAt) {
			t.Fatalf("messages out of order")
		}
	}

	sent := prov.lastMessages()
	if len(sent) != 2 || !strings.Contains(sent[0].Content, "Hindi") {
		t.Fatalf("unexpected prompt: %+v", sent)
	}
}

func TestAnalyzeCase_EmptyTextStoresNothing(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "x"}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	_, err := svc.AnalyzeCase(ctx, "u1", CaseInput{SessionID: sess.ID, CaseText: "   "})
	if !errors.Is(err, classifier.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	msgs, _ := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if len(msgs) != 1 {
		t.Fatalf("expected only the welcome, got %d", len(msgs))
	}
}

func TestAnalyzeCase_ModelNotLoaded(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "x"}, fixedClassifier{err: classifier.ErrModelNotLoaded})
	sess := mustSession(t, svc, "u1", i18n.English)

	_, err := svc.AnalyzeCase(context.Background(), "u1", CaseInput{SessionID: sess.ID, CaseText: "facts"})
	if !errors.Is(err, classifier.ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
}

func TestAsk_GenerationErrorKeepsUserMessage(t *testing.T) {
	prov := &recordingProvider{err: errors.New("upstream 500")}
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	_, err := svc.Ask(ctx, "u1", AskInput{SessionID: sess.ID, Question: "Can I get bail?"})
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	msgs, _ := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if len(msgs) != 2 || msgs[1].Role != RoleUser {
		t.Fatalf("expected welcome + user message, got %+v", msgs)
	}
}

func TestAsk_EmptyQuestion(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "x"}, fixedClassifier{pred: allowed})
	sess := mustSession(t, svc, "u1", i18n.English)
	_, err := svc.Ask(context.Background(), "u1", AskInput{SessionID: sess.ID, Question: " "})
	if !errors.Is(err, prompt.ErrEmptyRequest) {
		t.Fatalf("expected ErrEmptyRequest, got %v", err)
	}
}

func TestAsk_ContextWindowAndStrippedDisclaimers(t *testing.T) {
	prov := &recordingProvider{reply: "answer"}
	db := openTestDB(t)
	reg := ai.NewRegistry()
	reg.Register("fake", func(ctx context.Context, model string) (ai.Provider, error) { return prov, nil })
	svc := NewService(NewRepo(db), reg, fixedClassifier{pred: allowed}, Options{DefaultProvider: "fake", ContextWindowSize: 3})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	for i := 0; i < 3; i++ {
		if _, err := svc.Ask(ctx, "u1", AskInput{SessionID: sess.ID, Question: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("ask %d: %v", i, err)
		}
	}

	sent := prov.lastMessages()
	// system + 3 history + current question
	if len(sent) != 5 {
		t.Fatalf("expected 5 prompt messages, got %d: %+v", len(sent), sent)
	}
	if sent[len(sent)-1].Content != "q2" {
		t.Fatalf("current question should be last: %+v", sent[len(sent)-1])
	}
	for _, m := range sent[1 : len(sent)-1] {
		if strings.Contains(m.Content, i18n.T(i18n.English, i18n.Disclaimer)) {
			t.Fatalf("disclaimer leaked into history: %q", m.Content)
		}
	}
}

func TestListMessages_Pagination(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "a"}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)
	for i := 0; i < 2; i++ {
		if _, err := svc.Ask(ctx, "u1", AskInput{SessionID: sess.ID, Question: fmt.Sprintf("q%d", i)}); err != nil {
			t.Fatalf("ask: %v", err)
		}
	}

	page, err := svc.ListMessages(ctx, "u1", sess.ID, 2, "")
	if err != nil || len(page) != 2 {
		t.Fatalf("page 1: %v %d", err, len(page))
	}
	if page[0].Content != "q1" {
		t.Fatalf("expected newest two oldest first, got %q", page[0].Content)
	}
	older, err := svc.ListMessages(ctx, "u1", sess.ID, 10, page[0].ID)
	if err != nil || len(older) != 3 {
		t.Fatalf("page 2: %v %d", err, len(older))
	}
}

func TestListMessages_CursorFollowsCreatedAt(t *testing.T) {
	svc, db := newTestService(t, &recordingProvider{reply: "a"}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	// ids deliberately disagree with created_at, and two rows tie on it
	base := time.Now().UTC().Add(time.Hour).Truncate(time.Millisecond)
	rows := []struct {
		id  string
		at  time.Duration
		txt string
	}{
		{"01Z00000000000000000000005", 0, "first"},
		{"01Z00000000000000000000001", time.Second, "second"},
		{"01Z00000000000000000000004", 2 * time.Second, "third"},
		{"01Z00000000000000000000002", 2 * time.Second, "fourth"},
		{"01Z00000000000000000000003", 3 * time.Second, "fifth"},
	}
	repo := NewRepo(db)
	for _, r := range rows {
		m := &Message{
			ID:        r.id,
			SessionID: sess.ID,
			UserID:    "u1",
			Role:      RoleUser,
			Content:   r.txt,
			CreatedAt: base.Add(r.at),
		}
		m.ContentHash = Hash(m.Role, m.Content)
		if err := repo.AppendMessage(ctx, m); err != nil {
			t.Fatalf("append %s: %v", r.id, err)
		}
	}

	all, err := svc.ListMessages(ctx, "u1", sess.ID, 100, "")
	if err != nil || len(all) != len(rows)+1 {
		t.Fatalf("list all: %v %d", err, len(all))
	}

	var walked []Message
	cursor := ""
	for i := 0; i < 10; i++ {
		page, err := svc.ListMessages(ctx, "u1", sess.ID, 2, cursor)
		if err != nil {
			t.Fatalf("page %d: %v", i, err)
		}
		if len(page) == 0 {
			break
		}
		walked = append(append([]Message{}, page...), walked...)
		cursor = page[0].ID
	}
	if len(walked) != len(all) {
		t.Fatalf("walked %d messages, want %d", len(walked), len(all))
	}
	for i := range all {
		if walked[i].ID != all[i].ID {
			t.Fatalf("position %d: got %s, want %s", i, walked[i].Content, all[i].Content)
		}
	}
	if all[1].Content != "first" || all[3].Content != "fourth" || all[4].Content != "third" {
		t.Fatalf("unexpected order: %s %s %s", all[1].Content, all[3].Content, all[4].Content)
	}

	if page, err := svc.ListMessages(ctx, "u1", sess.ID, 10, "01Z99999999999999999999999"); err != nil || len(page) != 0 {
		t.Fatalf("unknown cursor: %v %d", err, len(page))
	}
}

func TestAnalyzeCaseStream_EventOrder(t *testing.T) {
	prov := &streamingProvider{chunks: []string{"Part one. ", "Part two."}}
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.Tamil)

	events, err := svc.AnalyzeCaseStream(ctx, "u1", CaseInput{SessionID: sess.ID, CaseText: "facts"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}

	var types []EventType
	var streamed strings.Builder
	var final *Message
	for ev := range events {
		types = append(types, ev.Type)
		switch ev.Type {
		case EventChunk:
			streamed.WriteString(ev.Delta)
		case EventDone:
			final = ev.Message
		case EventError:
			t.Fatalf("unexpected error event: %v", ev.Err)
		}
	}

	if types[0] != EventPrediction || types[len(types)-1] != EventDone {
		t.Fatalf("unexpected event order: %v", types)
	}
	if final == nil || final.Content != streamed.String() {
		t.Fatalf("stored content differs from streamed text: %+v vs %q", final, streamed.String())
	}
	if !strings.HasSuffix(final.Content, prompt.DisclaimerChunk(i18n.Tamil)) {
		t.Fatalf("missing Tamil disclaimer: %q", final.Content)
	}
}

func TestAskStream_ErrorEvent(t *testing.T) {
	prov := &streamingProvider{chunks: []string{"partial"}}
	prov.err = errors.New("connection reset")
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	events, err := svc.AskStream(ctx, "u1", AskInput{SessionID: sess.ID, Question: "q"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var last Event
	for ev := range events {
		last = ev
	}
	if last.Type != EventError || !errors.Is(last.Err, ErrGeneration) {
		t.Fatalf("expected generation error event, got %+v", last)
	}
	msgs, _ := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if len(msgs) != 2 {
		t.Fatalf("assistant message must not be stored on error, got %d", len(msgs))
	}
}

func TestJobs_IdempotentEnqueueAndRun(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{reply: "explained"}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	in := JobInput{SessionID: sess.ID, Kind: JobCaseAnalysis, CaseText: "facts", IdempotencyKey: "k1"}
	job, created, err := svc.EnqueueJob(ctx, "u1", in)
	if err != nil || !created {
		t.Fatalf("enqueue: %v created=%v", err, created)
	}
	again, created, err := svc.EnqueueJob(ctx, "u1", in)
	if err != nil || created || again.ID != job.ID {
		t.Fatalf("expected existing job, got %+v created=%v err=%v", again, created, err)
	}

	if _, err := svc.GetJob(ctx, "u2", job.ID); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for other user, got %v", err)
	}

	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("run: %v", err)
	}
	done, err := svc.GetJob(ctx, "u1", job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if done.Status != JobSucceeded || done.ResultMessageID == nil {
		t.Fatalf("unexpected job state: %+v", done)
	}

	// redelivery is a no-op
	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	msgs, _ := svc.ListMessages(ctx, "u1", sess.ID, 0, "")
	if len(msgs) != 3 {
		t.Fatalf("expected one analysis turn, got %d messages", len(msgs))
	}
}

func TestJobs_FailureIsRecorded(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{err: errors.New("boom")}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	job, _, err := svc.EnqueueJob(ctx, "u1", JobInput{SessionID: sess.ID, Kind: JobLegalAid, Question: "q"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := svc.RunJob(ctx, job.ID); !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
	failed, _ := svc.GetJob(ctx, "u1", job.ID)
	if failed.Status != JobFailed || failed.Error == nil {
		t.Fatalf("expected failed job with error, got %+v", failed)
	}
}

// blockingProvider holds every call until its context ends.
type blockingProvider struct{ started chan struct{} }

func (p *blockingProvider) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	close(p.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestRunJob_CancelledMidRunEndsFailed(t *testing.T) {
	prov := &blockingProvider{started: make(chan struct{})}
	svc, _ := newTestService(t, prov, fixedClassifier{pred: allowed})
	sess := mustSession(t, svc, "u1", i18n.English)

	job, _, err := svc.EnqueueJob(context.Background(), "u1", JobInput{SessionID: sess.ID, Kind: JobLegalAid, Question: "q"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.RunJob(ctx, job.ID) }()
	<-prov.started
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	got, err := svc.GetJob(context.Background(), "u1", job.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != JobFailed {
		t.Fatalf("expected failed job after cancellation, got %s", got.Status)
	}
}

func TestEnqueueJob_Validation(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	if _, _, err := svc.EnqueueJob(ctx, "u1", JobInput{SessionID: sess.ID, Kind: JobCaseAnalysis}); !errors.Is(err, classifier.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, _, err := svc.EnqueueJob(ctx, "u1", JobInput{SessionID: sess.ID, Kind: JobLegalAid}); !errors.Is(err, prompt.ErrEmptyRequest) {
		t.Fatalf("expected ErrEmptyRequest, got %v", err)
	}
}

func TestFindJobByKey(t *testing.T) {
	svc, _ := newTestService(t, &recordingProvider{}, fixedClassifier{pred: allowed})
	ctx := context.Background()
	sess := mustSession(t, svc, "u1", i18n.English)

	job, created, err := svc.EnqueueJob(ctx, "u1", JobInput{SessionID: sess.ID, Kind: JobCaseAnalysis, CaseText: "facts", IdempotencyKey: "k1"})
	if err != nil || !created {
		t.Fatalf("enqueue: %v created=%v", err, created)
	}
	got, err := svc.FindJobByKey(ctx, "u1", "k1")
	if err != nil || got.ID != job.ID {
		t.Fatalf("find: %v %+v", err, got)
	}
	for _, tc := range []struct{ user, key string }{{"u2", "k1"}, {"u1", "k2"}, {"u1", " "}} {
		if _, err := svc.FindJobByKey(ctx, tc.user, tc.key); !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("%s/%q: expected ErrJobNotFound, got %v", tc.user, tc.key, err)
		}
	}
}
