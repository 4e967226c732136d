// Package redisstore keeps login session records in Redis.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "legal:session:"

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) SaveSession(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionPrefix+jti, userID, ttl).Err()
}

// LookupSession reports ok=false for a missing or expired record.
func (s *Store) LookupSession(ctx context.Context, jti string) (string, bool, error) {
	uid, err := s.rdb.Get(ctx, sessionPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return uid, true, nil
}

func (s *Store) DeleteSession(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, sessionPrefix+jti).Err()
}
