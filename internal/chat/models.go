package chat

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/classifier"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Session struct {
	ID        string    `gorm:"primaryKey;size:26" bson:"_id" json:"session_id"`
	UserID    string    `gorm:"size:26;index:idx_chat_session_user_updated,priority:1;not null" bson:"user_id" json:"-"`
	Title     string    `gorm:"type:varchar(200)" bson:"title" json:"title"`
	Language  string    `gorm:"type:varchar(8);not null" bson:"language" json:"language"`
	Provider  string    `gorm:"type:varchar(32);not null" bson:"provider" json:"provider"`
	Model     string    `gorm:"type:varchar(64)" bson:"model" json:"model"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"index:idx_chat_session_user_updated,priority:2" bson:"updated_at" json:"updated_at"`
}

func (Session) TableName() string { return "chat_sessions" }

// Message is immutable once appended.
type Message struct {
	ID          string    `gorm:"primaryKey;size:26" bson:"_id" json:"id"`
	SessionID   string    `gorm:"size:26;not null;index:idx_chat_msg_session_created,priority:1" bson:"session_id" json:"session_id"`
	UserID      string    `gorm:"size:26;not null;index" bson:"user_id" json:"-"`
	Role        string    `gorm:"type:varchar(16);not null" bson:"role" json:"role"`
	Content     string    `gorm:"type:text;not null" bson:"content" json:"content"`
	ContentHash string    `gorm:"type:char(64);not null" bson:"content_hash" json:"content_hash"`
	Label       *string   `gorm:"type:varchar(32)" bson:"label,omitempty" json:"label,omitempty"`
	Confidence  *float64  `bson:"confidence,omitempty" json:"confidence,omitempty"`
	DocumentID  *string   `gorm:"size:26" bson:"document_id,omitempty" json:"document_id,omitempty"`
	CreatedAt   time.Time `gorm:"index:idx_chat_msg_session_created,priority:2" bson:"created_at" json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }

// Hash is the integrity hash stored with every message.
func Hash(role, content string) string {
	sum := sha256.Sum256([]byte(role + content))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether the stored hash still matches role and content.
func (m *Message) Verify() bool {
	return m.ContentHash == Hash(m.Role, m.Content)
}

func (m *Message) Prediction() *classifier.Prediction {
	if m.Label == nil || m.Confidence == nil {
		return nil
	}
	return &classifier.Prediction{Label: classifier.Label(*m.Label), Confidence: *m.Confidence}
}
