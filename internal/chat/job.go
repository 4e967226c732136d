package chat

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

type JobKind string

const (
	JobCaseAnalysis JobKind = "case_analysis"
	JobLegalAid     JobKind = "legal_aid"
)

type Job struct {
	ID string `gorm:"primaryKey;size:26" bson:"_id" json:"id"` // ULID length

	UserID    string `gorm:"size:26;not null;index:uniq_job_user_idempo,unique,priority:1" bson:"user_id" json:"-"`
	SessionID string `gorm:"size:26;index;not null" bson:"session_id" json:"session_id"`

	Kind     JobKind `gorm:"type:varchar(16);not null" bson:"kind" json:"kind"`
	Prompt   string  `gorm:"type:text" bson:"prompt" json:"-"`
	Question string  `gorm:"type:text" bson:"question" json:"-"`
	Language string  `gorm:"type:varchar(8)" bson:"language" json:"language"`

	DocumentID *string `gorm:"size:26" bson:"document_id,omitempty" json:"document_id,omitempty"`

	IdempotencyKey *string `gorm:"type:varchar(128);index:uniq_job_user_idempo,unique,priority:2" bson:"idempotency_key,omitempty" json:"idempotency_key,omitempty"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" bson:"status" json:"status"`

	// Filled when succeeded
	ResultMessageID *string `gorm:"size:26" bson:"result_message_id,omitempty" json:"result_message_id"`

	// Filled when failed
	Error *string `gorm:"type:text" bson:"error,omitempty" json:"error"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
