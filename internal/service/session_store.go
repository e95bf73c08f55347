package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore is the allow-list of live session ids. A signed token whose
// session id is missing here has been revoked.
type SessionStore interface {
	Save(ctx context.Context, patientID int64, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, patientID int64, sessionID string) (bool, error)
	Revoke(ctx context.Context, patientID int64, sessionID string) error
	RevokeAll(ctx context.Context, patientID int64) error
}

type redisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) SessionStore {
	return &redisSessionStore{client: client}
}

func sessionKey(patientID int64, sessionID string) string {
	return fmt.Sprintf("session:%d:%s", patientID, sessionID)
}

func (s *redisSessionStore) Save(ctx context.Context, patientID int64, sessionID string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionKey(patientID, sessionID), "valid", ttl).Err()
}

func (s *redisSessionStore) Exists(ctx context.Context, patientID int64, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(patientID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, patientID int64, sessionID string) error {
	return s.client.Del(ctx, sessionKey(patientID, sessionID)).Err()
}

// RevokeAll drops every session of a patient, e.g. when the account is deleted.
func (s *redisSessionStore) RevokeAll(ctx context.Context, patientID int64) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("session:%d:*", patientID), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}
