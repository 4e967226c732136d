package mongostore

import (
	"context"
	"time"

	"github.com/suPer8Hu/legal-assistant/internal/auth"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ auth.UserStore = (*Store)(nil)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.col(colUsers).InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrDuplicateUser
		}
		return mapErr(err)
	}
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.col(colUsers).FindOne(ctx, bson.M{"username": username}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.col(colUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := s.col(colUsers).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now()}},
	)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
