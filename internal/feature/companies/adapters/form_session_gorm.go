package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

// formSessionGorm stores form sessions in the database. It is used when
// Redis is not available.
type formSessionGorm struct {
	db *gorm.DB
}

var _ usecase.FormSessionRepository = (*formSessionGorm)(nil)

// NewFormSessionGorm creates a new instance of formSessionGorm.
func NewFormSessionGorm(db *gorm.DB) *formSessionGorm {
	return &formSessionGorm{db: db}
}

// Create persists a new form session.
func (r *formSessionGorm) Create(ctx context.Context, s *entity.FormSession) error {
	m, err := FormSessionModelFromEntity(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// FindByID retrieves a session that has not expired yet.
func (r *formSessionGorm) FindByID(ctx context.Context, id string) (*entity.FormSession, error) {
	var m FormSessionModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrFormSessionNotFound
		}
		return nil, err
	}
	return m.ToEntity()
}

// Save overwrites the session row.
func (r *formSessionGorm) Save(ctx context.Context, s *entity.FormSession) error {
	m, err := FormSessionModelFromEntity(s)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes a session by ID.
func (r *formSessionGorm) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&FormSessionModel{}, "id = ?", id).Error
}

// DeleteExpired removes all expired sessions and returns how many were deleted.
func (r *formSessionGorm) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&FormSessionModel{})
	return result.RowsAffected, result.Error
}
