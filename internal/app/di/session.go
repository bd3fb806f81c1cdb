// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	companyadapters "matka_backend/internal/feature/companies/adapters"
	"matka_backend/internal/feature/companies/usecase"
	"matka_backend/internal/platform/session"
)

// FormSessionStore is a FormSessionRepository that can purge expired sessions.
type FormSessionStore interface {
	usecase.FormSessionRepository
	DeleteExpired(ctx context.Context) (int64, error)
}

// NewFormSessionRepository creates a FormSessionStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the database.
func NewFormSessionRepository(rdb *redis.Client, db *gorm.DB) FormSessionStore {
	if rdb != nil {
		return session.NewFormSessionRedis(rdb, "form_session")
	}
	return companyadapters.NewFormSessionGorm(db)
}
