package adapters

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"matka_backend/internal/feature/companies/domain/entity"
)

// CompanyModel is the GORM model for the companies table.
type CompanyModel struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Name         string     `gorm:"size:255;not null"`
	TicketNumber string     `gorm:"size:64;not null"`
	OpeningTime  string     `gorm:"size:5;not null"`
	ClosingTime  string     `gorm:"size:5;not null"`
	JodiInfo     string     `gorm:"type:text"`
	PanelInfo    string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"index;not null"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for GORM.
func (CompanyModel) TableName() string {
	return "companies"
}

// BeforeCreate assigns a UUID when the row has no ID yet.
func (m *CompanyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToEntity converts the GORM model to a domain entity.
func (m *CompanyModel) ToEntity() entity.Company {
	return entity.Company{
		ID:           m.ID,
		Name:         m.Name,
		TicketNumber: m.TicketNumber,
		OpeningTime:  m.OpeningTime,
		ClosingTime:  m.ClosingTime,
		JodiInfo:     m.JodiInfo,
		PanelInfo:    m.PanelInfo,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// companyModelFromFields builds a new row from the form fields.
func companyModelFromFields(f entity.CompanyFields) *CompanyModel {
	return &CompanyModel{
		Name:         f.Name,
		TicketNumber: f.TicketNumber,
		OpeningTime:  f.OpeningTime,
		ClosingTime:  f.ClosingTime,
		JodiInfo:     f.JodiInfo,
		PanelInfo:    f.PanelInfo,
	}
}
