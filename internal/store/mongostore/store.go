// Package mongostore is the MongoDB backend for users, chat history,
// documents and jobs.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DefaultDatabase = "court_chat_db"

const (
	colUsers    = "users"
	colSessions = "chat_sessions"
	colMessages = "messages"
	colJobs     = "jobs"
	colDocs     = "documents"
	colChunks   = "doc_chunks"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, pings the primary and ensures indexes.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", mapErr(err))
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %v", common.ErrDatabaseUnavailable, err)
	}

	s := &Store{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return mapErr(s.client.Ping(ctx, readpref.Primary()))
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	idx := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colSessions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}}},
		},
		colMessages: {
			{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		},
		colJobs: {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
			},
		},
		colDocs: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		colChunks: {
			{Keys: bson.D{{Key: "document_id", Value: 1}, {Key: "index", Value: 1}}},
		},
	}
	for name, models := range idx {
		if _, err := s.col(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongostore: indexes on %s: %w", name, mapErr(err))
		}
	}
	return nil
}

// mapErr translates driver errors onto the shared sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrNotFound
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %v", common.ErrDatabaseUnavailable, err)
	}
	return err
}
