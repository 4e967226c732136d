package mongostore

import (
	"context"
	"log/slog"

	"github.com/suPer8Hu/legal-assistant/internal/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ document.Store = (*Store)(nil)

// CreateDocument inserts the document and then its chunks. Standalone
// servers have no transactions, so a failed chunk insert removes the
// document again.
func (s *Store) CreateDocument(ctx context.Context, d *document.Document, chunks []document.Chunk) error {
	if _, err := s.col(colDocs).InsertOne(ctx, d); err != nil {
		return mapErr(err)
	}
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]any, len(chunks))
	for i := range chunks {
		docs[i] = chunks[i]
	}
	if _, err := s.col(colChunks).InsertMany(ctx, docs); err != nil {
		if _, delErr := s.col(colChunks).DeleteMany(ctx, bson.M{"document_id": d.ID}); delErr != nil {
			slog.WarnContext(ctx, "cleanup chunks", "document_id", d.ID, "err", delErr)
		}
		if _, delErr := s.col(colDocs).DeleteOne(ctx, bson.M{"_id": d.ID}); delErr != nil {
			slog.WarnContext(ctx, "cleanup document", "document_id", d.ID, "err", delErr)
		}
		return mapErr(err)
	}
	return nil
}

func (s *Store) GetDocument(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	if err := s.col(colDocs).FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (s *Store) ListChunks(ctx context.Context, documentID string) ([]document.Chunk, error) {
	cur, err := s.col(colChunks).Find(ctx,
		bson.M{"document_id": documentID},
		options.Find().SetSort(bson.D{{Key: "index", Value: 1}}),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	out := []document.Chunk{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}
