// Package adapters provides repository implementations for the companies feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"matka_backend/internal/feature/companies/domain/entity"
	"matka_backend/internal/feature/companies/usecase"
)

// companyGorm is a GORM implementation of the CompanyRepository interface.
type companyGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure companyGorm implements CompanyRepository.
var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyRepository creates a new instance of companyGorm.
func NewCompanyRepository(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// Create inserts a company. CreatedAt is filled in by GORM and the ID by the model hook.
func (r *companyGorm) Create(ctx context.Context, fields entity.CompanyFields) (string, error) {
	m := companyModelFromFields(fields)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

// Update overwrites every editable column and stamps updated_at.
// A map is used so that cleared optional fields are written as empty strings.
func (r *companyGorm) Update(ctx context.Context, id string, fields entity.CompanyFields) error {
	result := r.db.WithContext(ctx).
		Model(&CompanyModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          fields.Name,
			"ticket_number": fields.TicketNumber,
			"opening_time":  fields.OpeningTime,
			"closing_time":  fields.ClosingTime,
			"jodi_info":     fields.JodiInfo,
			"panel_info":    fields.PanelInfo,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company by ID.
func (r *companyGorm) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&CompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCompanyNotFound
	}
	return nil
}

// FindByID retrieves a company by ID.
func (r *companyGorm) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	var m CompanyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	c := m.ToEntity()
	return &c, nil
}

// FetchAll returns every company, newest first.
func (r *companyGorm) FetchAll(ctx context.Context) ([]entity.Company, error) {
	var rows []CompanyModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Company, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}
