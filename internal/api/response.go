// Package api holds the JSON envelopes shared by the HTTP handlers.
package api

// ErrorResponse is returned with every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned when a submission fails field validation.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}
