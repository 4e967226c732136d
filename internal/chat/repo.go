package chat

import (
	"context"
	"errors"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/common"
	"gorm.io/gorm"
)

// Repo is the gorm Store.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, s *Session) error {
	return common.FromGorm(r.db.WithContext(ctx).Create(s).Error)
}

func (r *Repo) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &s, nil
}

func (r *Repo) ListSessions(ctx context.Context, userID string, limit int) ([]Session, error) {
	var out []Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return out, nil
}

func (r *Repo) UpdateSessionLanguage(ctx context.Context, id, lang string) error {
	res := r.db.WithContext(ctx).Model(&Session{}).Where("id = ?", id).
		Updates(map[string]any{"language": lang, "updated_at": time.Now()})
	if res.Error != nil {
		return common.FromGorm(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *Repo) AppendMessage(ctx context.Context, m *Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Model(&Session{}).Where("id = ?", m.SessionID).
			Update("updated_at", m.CreatedAt).Error
	})
	return common.FromGorm(err)
}

func (r *Repo) LastMessage(ctx context.Context, sessionID string) (*Message, error) {
	var m Message
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		First(&m).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &m, nil
}

func (r *Repo) ListMessages(ctx context.Context, sessionID string, limit int, beforeID string) ([]Message, error) {
	q := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		Limit(limit)
	if beforeID != "" {
		var cursor Message
		err := r.db.WithContext(ctx).
			Select("id", "created_at").
			Where("id = ? AND session_id = ?", beforeID, sessionID).
			First(&cursor).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Message{}, nil
		}
		if err != nil {
			return nil, common.FromGorm(err)
		}
		// keyset on the same (created_at, id) order as the sort
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var msgs []Message
	if err := q.Find(&msgs).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	reverse(msgs)
	return msgs, nil
}

func reverse(msgs []Message) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *Job) error {
	return common.FromGorm(r.db.WithContext(ctx).Create(job).Error)
}

func (r *Repo) GetJob(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &j, nil
}

func (r *Repo) UpdateJobStatusRunning(ctx context.Context, id string) error {
	return common.FromGorm(r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Updates(map[string]any{"status": JobRunning, "updated_at": time.Now()}).Error)
}

func (r *Repo) MarkJobSucceeded(ctx context.Context, id, messageID string) error {
	return common.FromGorm(r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            JobSucceeded,
			"result_message_id": messageID,
			"error":             nil,
			"updated_at":        time.Now(),
		}).Error)
}

func (r *Repo) MarkJobFailed(ctx context.Context, id, errMsg string) error {
	return common.FromGorm(r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            JobFailed,
			"error":             errMsg,
			"result_message_id": nil,
			"updated_at":        time.Now(),
		}).Error)
}

func (r *Repo) getJobByUserAndKey(ctx context.Context, userID, key string) (*Job, error) {
	var job Job
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *Repo) GetJobByIdempotencyKey(ctx context.Context, userID, key string) (*Job, error) {
	job, err := r.getJobByUserAndKey(ctx, userID, key)
	if err != nil {
		return nil, common.FromGorm(err)
	}
	return job, nil
}

func (r *Repo) CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error) {
	if job.IdempotencyKey == nil || *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
		if err := r.CreateJob(ctx, job); err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	err := r.db.WithContext(ctx).Create(job).Error
	if err == nil {
		return job, true, nil
	}

	existing, getErr := r.getJobByUserAndKey(ctx, job.UserID, *job.IdempotencyKey)
	if getErr == nil {
		return existing, false, nil
	}
	if errors.Is(getErr, gorm.ErrRecordNotFound) {
		return nil, false, common.FromGorm(err)
	}
	return nil, false, common.FromGorm(getErr)
}
