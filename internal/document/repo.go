package document

import (
	"context"

	"github.com/suPer8Hu/legal-assistant/internal/common"
	"gorm.io/gorm"
)

type Store interface {
	CreateDocument(ctx context.Context, d *Document, chunks []Chunk) error
	GetDocument(ctx context.Context, id string) (*Document, error)
	ListChunks(ctx context.Context, documentID string) ([]Chunk, error)
}

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateDocument(ctx context.Context, d *Document, chunks []Chunk) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.CreateInBatches(chunks, 100).Error
	})
	return common.FromGorm(err)
}

func (r *Repo) GetDocument(ctx context.Context, id string) (*Document, error) {
	var d Document
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return &d, nil
}

func (r *Repo) ListChunks(ctx context.Context, documentID string) ([]Chunk, error) {
	var out []Chunk
	if err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("chunk_index ASC").
		Find(&out).Error; err != nil {
		return nil, common.FromGorm(err)
	}
	return out, nil
}
