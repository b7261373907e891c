package models

// MessageResponse is the body of endpoints that only report an outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
//
// Code is stable and meant for programmatic matching; Detail is a
// human-readable message that never contains internal details.
type ErrorResponse struct {
	Code   string       `json:"code"`
	Detail string       `json:"detail"`
	Fields []FieldError `json:"fields,omitempty"`
}

// FieldError describes a single request field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// WelcomeResponse is returned by the root endpoint.
type WelcomeResponse struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Username string `json:"username,omitempty"`
}
