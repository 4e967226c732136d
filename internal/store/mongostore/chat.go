package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/chat"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ chat.Store = (*Store)(nil)

func (s *Store) CreateSession(ctx context.Context, sess *chat.Session) error {
	_, err := s.col(colSessions).InsertOne(ctx, sess)
	return mapErr(err)
}

func (s *Store) GetSession(ctx context.Context, id string) (*chat.Session, error) {
	var sess chat.Session
	if err := s.col(colSessions).FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		return nil, mapErr(err)
	}
	return &sess, nil
}

func (s *Store) ListSessions(ctx context.Context, userID string, limit int) ([]chat.Session, error) {
	cur, err := s.col(colSessions).Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	out := []chat.Session{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (s *Store) UpdateSessionLanguage(ctx context.Context, id, lang string) error {
	res, err := s.col(colSessions).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"language": lang, "updated_at": time.Now()}},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (s *Store) AppendMessage(ctx context.Context, m *chat.Message) error {
	if _, err := s.col(colMessages).InsertOne(ctx, m); err != nil {
		return mapErr(err)
	}
	_, err := s.col(colSessions).UpdateOne(ctx,
		bson.M{"_id": m.SessionID},
		bson.M{"$set": bson.M{"updated_at": m.CreatedAt}},
	)
	return mapErr(err)
}

func (s *Store) LastMessage(ctx context.Context, sessionID string) (*chat.Message, error) {
	var m chat.Message
	err := s.col(colMessages).FindOne(ctx,
		bson.M{"session_id": sessionID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	).Decode(&m)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}

func (s *Store) ListMessages(ctx context.Context, sessionID string, limit int, beforeID string) ([]chat.Message, error) {
	filter := bson.M{"session_id": sessionID}
	if beforeID != "" {
		var cursor chat.Message
		err := s.col(colMessages).FindOne(ctx, bson.M{"_id": beforeID, "session_id": sessionID}).Decode(&cursor)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []chat.Message{}, nil
		}
		if err != nil {
			return nil, mapErr(err)
		}
		filter["$or"] = bson.A{
			bson.M{"created_at": bson.M{"$lt": cursor.CreatedAt}},
			bson.M{"created_at": cursor.CreatedAt, "_id": bson.M{"$lt": cursor.ID}},
		}
	}
	cur, err := s.col(colMessages).Find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, mapErr(err)
	}
	msgs := []chat.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, mapErr(err)
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *Store) CreateJob(ctx context.Context, job *chat.Job) error {
	_, err := s.col(colJobs).InsertOne(ctx, job)
	return mapErr(err)
}

func (s *Store) CreateJobOrGetExisting(ctx context.Context, job *chat.Job) (*chat.Job, bool, error) {
	if job.IdempotencyKey != nil && *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
	}
	_, err := s.col(colJobs).InsertOne(ctx, job)
	if err == nil {
		return job, true, nil
	}
	if job.IdempotencyKey == nil || !mongo.IsDuplicateKeyError(err) {
		return nil, false, mapErr(err)
	}

	existing, err := s.GetJobByIdempotencyKey(ctx, job.UserID, *job.IdempotencyKey)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Store) GetJobByIdempotencyKey(ctx context.Context, userID, key string) (*chat.Job, error) {
	var j chat.Job
	if err := s.col(colJobs).FindOne(ctx, bson.M{
		"user_id":         userID,
		"idempotency_key": key,
	}).Decode(&j); err != nil {
		return nil, mapErr(err)
	}
	return &j, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*chat.Job, error) {
	var j chat.Job
	if err := s.col(colJobs).FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return nil, mapErr(err)
	}
	return &j, nil
}

func (s *Store) UpdateJobStatusRunning(ctx context.Context, id string) error {
	_, err := s.col(colJobs).UpdateOne(ctx,
		bson.M{"_id": id, "status": chat.JobQueued},
		bson.M{"$set": bson.M{"status": chat.JobRunning, "updated_at": time.Now()}},
	)
	return mapErr(err)
}

func (s *Store) MarkJobSucceeded(ctx context.Context, id, messageID string) error {
	_, err := s.col(colJobs).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"status": chat.JobSucceeded, "result_message_id": messageID, "updated_at": time.Now()},
			"$unset": bson.M{"error": ""},
		},
	)
	return mapErr(err)
}

func (s *Store) MarkJobFailed(ctx context.Context, id, errMsg string) error {
	_, err := s.col(colJobs).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":   bson.M{"status": chat.JobFailed, "error": errMsg, "updated_at": time.Now()},
			"$unset": bson.M{"result_message_id": ""},
		},
	)
	return mapErr(err)
}

