package chat

import "context"

// Store is the chat history backend. Implementations report missing records
// as common.ErrNotFound and lost connections as common.ErrDatabaseUnavailable.
type Store interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]Session, error)
	UpdateSessionLanguage(ctx context.Context, id, lang string) error

	// AppendMessage inserts m and bumps the session's UpdatedAt.
	AppendMessage(ctx context.Context, m *Message) error
	LastMessage(ctx context.Context, sessionID string) (*Message, error)
	// ListMessages returns up to limit messages that sort before beforeID
	// in (created_at, id) order, oldest first. An empty beforeID starts at
	// the newest message; an unknown one yields no messages.
	ListMessages(ctx context.Context, sessionID string, limit int, beforeID string) ([]Message, error)

	CreateJob(ctx context.Context, job *Job) error
	// CreateJobOrGetExisting returns the existing job when (user, key) is
	// already taken; created reports which case happened.
	CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	GetJobByIdempotencyKey(ctx context.Context, userID, key string) (*Job, error)
	UpdateJobStatusRunning(ctx context.Context, id string) error
	MarkJobSucceeded(ctx context.Context, id, messageID string) error
	MarkJobFailed(ctx context.Context, id, errMsg string) error
}
