package entity

import "time"

// Toast is a one-shot notification shown on the next render of the form page.
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

// FormSession is the working state of one admin form: the draft being typed,
// the company being edited (if any), field errors from the last submit and a
// pending toast. It is keyed by a cookie and owned by the session store.
type FormSession struct {
	ID          string            // Session identifier (UUID), stored in the browser cookie
	EditingID   string            // ID of the company being edited; empty when adding
	Draft       CompanyFields     // Current form values
	FieldErrors map[string]string // Field name -> validation message from the last submit
	Flash       *Toast            // Pending notification, cleared once rendered
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// IsEditing reports whether the session has an active edit target.
func (s *FormSession) IsEditing() bool {
	return s.EditingID != ""
}

// IsExpired returns true if the session has passed its expiration time.
func (s *FormSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// TakeFlash returns the pending toast and clears it.
func (s *FormSession) TakeFlash() *Toast {
	t := s.Flash
	s.Flash = nil
	return t
}
