package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"matka_backend/internal/feature/companies/domain/entity"
)

const (
	// DefaultFormSessionTTL is how long an idle form session is kept.
	DefaultFormSessionTTL = 24 * time.Hour
)

// FormView is everything the admin form page needs for one render.
type FormView struct {
	Session   *entity.FormSession
	Companies []entity.Company
	// AtCapacity is true when the cap is reached and nothing is being edited;
	// the page then shows the company chooser instead of the form.
	AtCapacity bool
}

// FormUsecase implements the admin form: validation, the company cap,
// create/update and the per-session edit state.
type FormUsecase struct {
	companies CompanyRepository
	sessions  FormSessionRepository
	ttl       time.Duration

	// inFlight holds the IDs of sessions with a submission in progress.
	inFlight sync.Map
}

// NewFormUsecase creates a FormUsecase. A non-positive ttl uses DefaultFormSessionTTL.
func NewFormUsecase(companies CompanyRepository, sessions FormSessionRepository, ttl time.Duration) *FormUsecase {
	if ttl <= 0 {
		ttl = DefaultFormSessionTTL
	}
	return &FormUsecase{companies: companies, sessions: sessions, ttl: ttl}
}

// List returns all companies ordered by CreatedAt descending.
func (u *FormUsecase) List(ctx context.Context) ([]entity.Company, error) {
	cs, err := u.companies.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return cs, nil
}

// Save validates the fields and writes them to the store.
// With an empty editingID a new company is created, unless MaxCompanies
// already exist. Otherwise the company with that ID is updated.
// It returns the ID of the written company.
//
// The cap is checked against a fresh read right before the write, so two
// concurrent creators can still exceed it.
func (u *FormUsecase) Save(ctx context.Context, fields entity.CompanyFields, editingID string) (string, error) {
	if verr := Validate(fields); verr != nil {
		return "", verr
	}

	if editingID != "" {
		if err := u.companies.Update(ctx, editingID, fields); err != nil {
			if errors.Is(err, ErrCompanyNotFound) {
				return "", err
			}
			slog.Error("failed to update company", "id", editingID, "error", err)
			return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		return editingID, nil
	}

	existing, err := u.companies.FetchAll(ctx)
	if err != nil {
		slog.Error("failed to count companies", "error", err)
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if len(existing) >= entity.MaxCompanies {
		return "", ErrCapacityReached
	}

	id, err := u.companies.Create(ctx, fields)
	if err != nil {
		slog.Error("failed to create company", "name", fields.Name, "error", err)
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return id, nil
}

// OpenSession loads the form session with the given ID, or starts a new one
// when the ID is empty, unknown or expired. Every open extends the expiry.
func (u *FormUsecase) OpenSession(ctx context.Context, id string) (*entity.FormSession, error) {
	now := time.Now()
	if id != "" {
		s, err := u.sessions.FindByID(ctx, id)
		if err == nil {
			s.ExpiresAt = now.Add(u.ttl)
			return s, nil
		}
		if !errors.Is(err, ErrFormSessionNotFound) {
			return nil, err
		}
	}

	s := &entity.FormSession{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create form session: %w", err)
	}
	return s, nil
}

// SaveSession persists the session state.
func (u *FormUsecase) SaveSession(ctx context.Context, s *entity.FormSession) error {
	return u.sessions.Save(ctx, s)
}

// View builds the page state for a session. A failed fetch is reported as a
// toast and an empty list rather than an error.
func (u *FormUsecase) View(ctx context.Context, s *entity.FormSession) FormView {
	cs, err := u.List(ctx)
	if err != nil {
		slog.Error("failed to fetch companies", "error", err)
		s.Flash = &entity.Toast{Title: "Error", Description: "Failed to fetch companies", Destructive: true}
		cs = nil
	}
	return FormView{
		Session:    s,
		Companies:  cs,
		AtCapacity: len(cs) >= entity.MaxCompanies && !s.IsEditing(),
	}
}

// Submit saves the draft of a session. On success the edit target and draft
// are cleared; on failure they are kept so the user can correct and resubmit.
// A second Submit for the same session while one is running returns
// ErrSubmitInProgress without touching the session.
func (u *FormUsecase) Submit(ctx context.Context, s *entity.FormSession, fields entity.CompanyFields) error {
	if _, busy := u.inFlight.LoadOrStore(s.ID, struct{}{}); busy {
		return ErrSubmitInProgress
	}
	defer u.inFlight.Delete(s.ID)

	s.Draft = fields
	s.FieldErrors = nil

	editing := s.IsEditing()
	if _, err := u.Save(ctx, fields, s.EditingID); err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			s.FieldErrors = verr.Fields
		case errors.Is(err, ErrCapacityReached):
			s.Flash = &entity.Toast{Title: "Limit Reached", Description: "You can only add up to 3 companies", Destructive: true}
		default:
			s.Flash = &entity.Toast{Title: "Error", Description: "Failed to save company. Please try again.", Destructive: true}
		}
		return err
	}

	if editing {
		s.Flash = &entity.Toast{Title: "Success", Description: "Company updated successfully!"}
	} else {
		s.Flash = &entity.Toast{Title: "Success", Description: "Company added successfully!"}
	}
	s.EditingID = ""
	s.Draft = entity.CompanyFields{}
	return nil
}

// SelectForEdit copies the company's editable fields into the draft and makes
// it the edit target.
func (u *FormUsecase) SelectForEdit(s *entity.FormSession, c entity.Company) {
	s.Draft = c.Fields()
	s.EditingID = c.ID
	s.FieldErrors = nil
}

// Edit looks up a company by ID and selects it for editing.
func (u *FormUsecase) Edit(ctx context.Context, s *entity.FormSession, id string) error {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.SelectForEdit(s, *c)
	return nil
}

// CancelEdit clears the edit target and resets the draft.
func (u *FormUsecase) CancelEdit(s *entity.FormSession) {
	s.EditingID = ""
	s.Draft = entity.CompanyFields{}
	s.FieldErrors = nil
}
