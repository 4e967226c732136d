package document

import "time"

type Document struct {
	ID          string    `gorm:"primaryKey;size:26" bson:"_id" json:"id"`
	UserID      string    `gorm:"size:26;index;not null" bson:"user_id" json:"-"`
	FileName    string    `gorm:"type:varchar(255);not null" bson:"file_name" json:"file_name"`
	ContentType string    `gorm:"type:varchar(128)" bson:"content_type" json:"content_type"`
	Size        int64     `gorm:"not null" bson:"size" json:"size"`
	StoragePath string    `gorm:"type:varchar(512);not null" bson:"storage_path" json:"-"`
	Format      string    `gorm:"type:varchar(16);not null" bson:"format" json:"format"`
	TextLength  int       `gorm:"not null" bson:"text_length" json:"text_length"`
	ChunkCount  int       `gorm:"not null" bson:"chunk_count" json:"chunk_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

func (Document) TableName() string { return "documents" }

type Chunk struct {
	ID         string `gorm:"primaryKey;size:26" bson:"_id" json:"id"`
	DocumentID string `gorm:"size:26;not null;index:idx_doc_chunk,priority:1" bson:"document_id" json:"document_id"`
	Index      int    `gorm:"column:chunk_index;not null;index:idx_doc_chunk,priority:2" bson:"index" json:"index"`
	Content    string `gorm:"type:text;not null" bson:"content" json:"content"`
}

func (Chunk) TableName() string { return "doc_chunks" }
