package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/prompt"
)

type JobInput struct {
	SessionID      string
	Kind           JobKind
	CaseText       string
	Question       string
	Lang           i18n.Lang
	DocumentID     string
	IdempotencyKey string
}

// EnqueueJob records a queued job. With an idempotency key already used by
// the same user, the existing job is returned and created is false.
func (s *Service) EnqueueJob(ctx context.Context, userID string, in JobInput) (*Job, bool, error) {
	sess, err := s.GetSession(ctx, userID, in.SessionID)
	if err != nil {
		return nil, false, err
	}

	caseText := strings.TrimSpace(in.CaseText)
	question := strings.TrimSpace(in.Question)
	switch in.Kind {
	case JobCaseAnalysis:
		if caseText == "" {
			return nil, false, classifier.ErrEmptyInput
		}
	case JobLegalAid:
		if question == "" {
			return nil, false, prompt.ErrEmptyRequest
		}
	default:
		return nil, false, fmt.Errorf("chat: unknown job kind %q", in.Kind)
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, false, err
	}
	now := s.now()
	job := &Job{
		ID:             id,
		UserID:         userID,
		SessionID:      sess.ID,
		Kind:           in.Kind,
		Prompt:         caseText,
		Question:       question,
		Language:       string(s.langFor(sess, in.Lang)),
		DocumentID:     optional(in.DocumentID),
		IdempotencyKey: optional(strings.TrimSpace(in.IdempotencyKey)),
		Status:         JobQueued,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.store.CreateJobOrGetExisting(ctx, job)
}

func (s *Service) GetJob(ctx context.Context, userID, jobID string) (*Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// FindJobByKey returns the caller's job recorded under an idempotency key.
func (s *Service) FindJobByKey(ctx context.Context, userID, key string) (*Job, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrJobNotFound
	}
	job, err := s.store.GetJobByIdempotencyKey(ctx, userID, key)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// jobWriteTimeout bounds each job status write.
const jobWriteTimeout = 10 * time.Second

// detached returns a context for status writes that survives cancellation
// of ctx, so a job interrupted by shutdown still ends failed.
func detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), jobWriteTimeout)
}

// RunJob executes a queued job on behalf of its owner. Jobs that already
// finished are left alone so redelivered messages are harmless.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	wctx, cancel := detached(ctx)
	defer cancel()

	job, err := s.store.GetJob(wctx, jobID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	if job.Status == JobSucceeded || job.Status == JobFailed {
		return nil
	}
	if err := s.store.UpdateJobStatusRunning(wctx, job.ID); err != nil {
		return err
	}

	lang := i18n.Resolve(job.Language)
	docID := ""
	if job.DocumentID != nil {
		docID = *job.DocumentID
	}

	var res *Result
	switch job.Kind {
	case JobCaseAnalysis:
		res, err = s.AnalyzeCase(ctx, job.UserID, CaseInput{
			SessionID:  job.SessionID,
			CaseText:   job.Prompt,
			Question:   job.Question,
			Lang:       lang,
			DocumentID: docID,
		})
	case JobLegalAid:
		res, err = s.Ask(ctx, job.UserID, AskInput{
			SessionID:    job.SessionID,
			Question:     job.Question,
			Lang:         lang,
			DocumentID:   docID,
			DocumentText: job.Prompt,
		})
	default:
		err = fmt.Errorf("chat: unknown job kind %q", job.Kind)
	}

	mctx, mcancel := detached(ctx)
	defer mcancel()
	if err != nil {
		if markErr := s.store.MarkJobFailed(mctx, job.ID, err.Error()); markErr != nil {
			slog.ErrorContext(ctx, "mark job failed", "job_id", job.ID, "err", markErr)
		}
		return err
	}
	return s.store.MarkJobSucceeded(mctx, job.ID, res.AssistantMessage.ID)
}
