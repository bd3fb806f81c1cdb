package adapters

import (
	"encoding/json"
	"fmt"
	"time"

	"matka_backend/internal/feature/companies/domain/entity"
)

// FormSessionModel is the GORM model for the form_sessions table.
// The draft, field errors and pending toast are stored as one JSON document.
type FormSessionModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	EditingID string    `gorm:"size:36"`
	State     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (FormSessionModel) TableName() string {
	return "form_sessions"
}

// formSessionState is the JSON payload of FormSessionModel.State.
type formSessionState struct {
	Draft       entity.CompanyFields `json:"draft"`
	FieldErrors map[string]string    `json:"fieldErrors,omitempty"`
	Flash       *entity.Toast        `json:"flash,omitempty"`
}

// ToEntity converts the GORM model to a domain entity.
func (m *FormSessionModel) ToEntity() (*entity.FormSession, error) {
	var st formSessionState
	if m.State != "" {
		if err := json.Unmarshal([]byte(m.State), &st); err != nil {
			return nil, fmt.Errorf("failed to unmarshal form session state: %w", err)
		}
	}
	return &entity.FormSession{
		ID:          m.ID,
		EditingID:   m.EditingID,
		Draft:       st.Draft,
		FieldErrors: st.FieldErrors,
		Flash:       st.Flash,
		CreatedAt:   m.CreatedAt,
		ExpiresAt:   m.ExpiresAt,
	}, nil
}

// FormSessionModelFromEntity converts a domain entity to a GORM model.
func FormSessionModelFromEntity(s *entity.FormSession) (*FormSessionModel, error) {
	b, err := json.Marshal(formSessionState{Draft: s.Draft, FieldErrors: s.FieldErrors, Flash: s.Flash})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal form session state: %w", err)
	}
	return &FormSessionModel{
		ID:        s.ID,
		EditingID: s.EditingID,
		State:     string(b),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}, nil
}
