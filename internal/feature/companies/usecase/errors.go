// Package usecase implements the admin form logic for the companies feature.
package usecase

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrCapacityReached is returned when a new company is submitted while
	// MaxCompanies already exist and no edit is active.
	ErrCapacityReached = errors.New("company limit reached")

	// ErrCompanyNotFound is returned when a company cannot be found by ID.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrSaveFailed wraps store errors raised while creating or updating a company.
	ErrSaveFailed = errors.New("failed to save company")

	// ErrFetchFailed wraps store errors raised while listing companies.
	ErrFetchFailed = errors.New("failed to fetch companies")

	// ErrSubmitInProgress is returned when a form session submits again
	// before its previous submission has finished.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrFormSessionNotFound is returned when a form session cannot be found or has expired.
	ErrFormSessionNotFound = errors.New("form session not found")
)

// ValidationError carries field-level messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
