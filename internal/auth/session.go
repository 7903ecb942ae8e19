package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	mem "swasthsetu/pkg/memcache"
)

type SessionData struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore tracks live sessions by token id. A missing session means the
// token was revoked or has expired.
type SessionStore interface {
	Create(ctx context.Context, tokenID string, data SessionData, ttl time.Duration) error
	Get(ctx context.Context, tokenID string) (*SessionData, error)
	Delete(ctx context.Context, tokenID string) error
}

const sessionPrefix = "session:"

type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Create(ctx context.Context, tokenID string, data SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+tokenID, payload, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, tokenID string) (*SessionData, error) {
	val, err := s.client.Get(ctx, sessionPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, sessionPrefix+tokenID).Err()
}

// MemorySessionStore keeps sessions in process; used when Redis is not configured.
type MemorySessionStore struct {
	tokens mem.TokenStore
}

func NewMemorySessionStore(tokens mem.TokenStore) *MemorySessionStore {
	return &MemorySessionStore{tokens: tokens}
}

func (s *MemorySessionStore) Create(_ context.Context, tokenID string, data SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.tokens.Set(sessionPrefix+tokenID, string(payload), ttl)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, tokenID string) (*SessionData, error) {
	val, ok := s.tokens.Peek(sessionPrefix + tokenID)
	if !ok {
		return nil, nil
	}

	var data SessionData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, tokenID string) error {
	s.tokens.Delete(sessionPrefix + tokenID)
	return nil
}
