// Package dto defines data transfer objects for the display HTTP API.
package dto

import "matka_backend/internal/feature/display/usecase"

// CardResponse is one company card in display order.
type CardResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TicketNumber string `json:"ticketNumber"`
	OpeningTime  string `json:"openingTime"`
	ClosingTime  string `json:"closingTime"`
	JodiInfo     string `json:"jodiInfo,omitempty"`
	PanelInfo    string `json:"panelInfo,omitempty"`
	Gradient     string `json:"gradient"`
}

// DisplayResponse is the body of GET /api/companies/display and of each
// "companies" event on GET /api/companies/stream.
type DisplayResponse struct {
	State     string         `json:"state"`
	Count     int            `json:"count"`
	Companies []CardResponse `json:"companies"`
}

// NewDisplayResponse converts a display view to its API representation.
func NewDisplayResponse(v usecase.View) DisplayResponse {
	cards := make([]CardResponse, 0, len(v.Cards))
	for _, c := range v.Cards {
		cards = append(cards, CardResponse{
			ID:           c.ID,
			Name:         c.Name,
			TicketNumber: c.TicketNumber,
			OpeningTime:  c.OpeningTime,
			ClosingTime:  c.ClosingTime,
			JodiInfo:     c.JodiInfo,
			PanelInfo:    c.PanelInfo,
			Gradient:     c.Gradient,
		})
	}
	return DisplayResponse{State: v.State.String(), Count: len(cards), Companies: cards}
}
