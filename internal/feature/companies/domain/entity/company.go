// Package entity defines the domain models for the companies feature.
package entity

import "time"

// MaxCompanies is the number of companies the form page allows before it
// switches to edit-only mode. The store itself does not enforce it.
const MaxCompanies = 3

// Company represents a business listed on the display page.
type Company struct {
	ID           string     // Store-assigned identifier (UUID), immutable
	Name         string     // Display name, matched against the preference order
	TicketNumber string     // Free-form ticket number
	OpeningTime  string     // "HH:MM" 24-hour
	ClosingTime  string     // "HH:MM" 24-hour
	JodiInfo     string     // Optional
	PanelInfo    string     // Optional
	CreatedAt    time.Time  // Set once by the store on creation
	UpdatedAt    *time.Time // Set by the store on every update (nil until the first update)
}

// Fields returns the editable part of the company.
func (c Company) Fields() CompanyFields {
	return CompanyFields{
		Name:         c.Name,
		TicketNumber: c.TicketNumber,
		OpeningTime:  c.OpeningTime,
		ClosingTime:  c.ClosingTime,
		JodiInfo:     c.JodiInfo,
		PanelInfo:    c.PanelInfo,
	}
}

// CompanyFields holds the user-editable fields of a company, i.e. the
// contents of the admin form.
type CompanyFields struct {
	Name         string
	TicketNumber string
	OpeningTime  string
	ClosingTime  string
	JodiInfo     string
	PanelInfo    string
}
