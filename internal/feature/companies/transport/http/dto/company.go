// Package dto defines data transfer objects for the companies HTTP API.
package dto

import (
	"time"

	"matka_backend/internal/feature/companies/domain/entity"
)

// CompanyRequest is the body of POST /api/companies and PUT /api/companies/:id.
// Field rules are enforced by the usecase so that the API and the form page
// report the same messages.
type CompanyRequest struct {
	Name         string `json:"name"`
	TicketNumber string `json:"ticketNumber"`
	OpeningTime  string `json:"openingTime"`
	ClosingTime  string `json:"closingTime"`
	JodiInfo     string `json:"jodiInfo"`
	PanelInfo    string `json:"panelInfo"`
}

// ToFields converts the request to domain form fields.
func (r CompanyRequest) ToFields() entity.CompanyFields {
	return entity.CompanyFields{
		Name:         r.Name,
		TicketNumber: r.TicketNumber,
		OpeningTime:  r.OpeningTime,
		ClosingTime:  r.ClosingTime,
		JodiInfo:     r.JodiInfo,
		PanelInfo:    r.PanelInfo,
	}
}

// CompanyResponse represents a company in API responses.
type CompanyResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	TicketNumber string     `json:"ticketNumber"`
	OpeningTime  string     `json:"openingTime"`
	ClosingTime  string     `json:"closingTime"`
	JodiInfo     string     `json:"jodiInfo,omitempty"`
	PanelInfo    string     `json:"panelInfo,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// NewCompanyResponse converts a domain entity to its API representation.
func NewCompanyResponse(c entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		TicketNumber: c.TicketNumber,
		OpeningTime:  c.OpeningTime,
		ClosingTime:  c.ClosingTime,
		JodiInfo:     c.JodiInfo,
		PanelInfo:    c.PanelInfo,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// SaveResponse is returned after a successful create or update.
type SaveResponse struct {
	ID string `json:"id"`
}
