package usecase

import (
	"unicode/utf8"

	"matka_backend/internal/feature/companies/domain/entity"
)

const (
	// minNameLength is the minimum number of characters in a company name.
	minNameLength = 2
)

// Field names used as keys in ValidationError.Fields. They match the form
// input names and the JSON API.
const (
	FieldName         = "name"
	FieldTicketNumber = "ticketNumber"
	FieldOpeningTime  = "openingTime"
	FieldClosingTime  = "closingTime"
)

// Validate checks the form fields before anything is sent to the store.
// JodiInfo and PanelInfo are unconstrained.
func Validate(f entity.CompanyFields) *ValidationError {
	errs := map[string]string{}
	if utf8.RuneCountInString(f.Name) < minNameLength {
		errs[FieldName] = "Company name must be at least 2 characters"
	}
	if f.TicketNumber == "" {
		errs[FieldTicketNumber] = "Ticket number is required"
	}
	if f.OpeningTime == "" {
		errs[FieldOpeningTime] = "Opening time is required"
	}
	if f.ClosingTime == "" {
		errs[FieldClosingTime] = "Closing time is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
