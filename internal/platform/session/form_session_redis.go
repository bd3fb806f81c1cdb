// Package session provides a Redis-backed store for admin form sessions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

// FormSessionRedis implements usecase.FormSessionRepository using Redis.
// Each session is one JSON value whose TTL follows the session's ExpiresAt.
type FormSessionRedis struct {
	client *redis.Client
	prefix string
}

var _ usecase.FormSessionRepository = (*FormSessionRedis)(nil)

// NewFormSessionRedis creates a new FormSessionRedis instance.
func NewFormSessionRedis(client *redis.Client, prefix string) *FormSessionRedis {
	return &FormSessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *FormSessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Create persists a new session to Redis.
func (r *FormSessionRedis) Create(ctx context.Context, s *entity.FormSession) error {
	return r.put(ctx, s)
}

// FindByID retrieves a session by its ID.
func (r *FormSessionRedis) FindByID(ctx context.Context, id string) (*entity.FormSession, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrFormSessionNotFound
		}
		return nil, err
	}

	var s entity.FormSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form session: %w", err)
	}
	if s.IsExpired() {
		return nil, usecase.ErrFormSessionNotFound
	}
	return &s, nil
}

// Save overwrites the session and refreshes its TTL.
func (r *FormSessionRedis) Save(ctx context.Context, s *entity.FormSession) error {
	return r.put(ctx, s)
}

// Delete removes a session by ID.
func (r *FormSessionRedis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.sessionKey(id)).Err()
}

// DeleteExpired removes expired sessions (handled by Redis TTL).
func (r *FormSessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *FormSessionRedis) put(ctx context.Context, s *entity.FormSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal form session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("form session already expired")
	}

	return r.client.Set(ctx, r.sessionKey(s.ID), data, ttl).Err()
}
