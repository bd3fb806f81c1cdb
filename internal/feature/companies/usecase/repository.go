package usecase

import (
	"context"

	"matka_backend/internal/feature/companies/domain/entity"
)

// CompanyRepository abstracts the companies collection.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CompanyRepository interface {
	// Create stores a new company and returns its store-assigned ID.
	// The store sets CreatedAt.
	Create(ctx context.Context, fields entity.CompanyFields) (string, error)

	// Update overwrites the editable fields of a company. The store sets UpdatedAt.
	// Returns ErrCompanyNotFound if no company has the given ID.
	Update(ctx context.Context, id string, fields entity.CompanyFields) error

	// Delete removes a company. No page or route exposes it.
	Delete(ctx context.Context, id string) error

	// FindByID retrieves a single company.
	FindByID(ctx context.Context, id string) (*entity.Company, error)

	// FetchAll returns every company ordered by CreatedAt descending.
	FetchAll(ctx context.Context) ([]entity.Company, error)
}

// FormSessionRepository abstracts the persistence of admin form sessions.
type FormSessionRepository interface {
	// Create persists a new form session.
	Create(ctx context.Context, s *entity.FormSession) error

	// FindByID retrieves a session. Missing or expired sessions yield ErrFormSessionNotFound.
	FindByID(ctx context.Context, id string) (*entity.FormSession, error)

	// Save overwrites an existing session.
	Save(ctx context.Context, s *entity.FormSession) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error
}
