package dto

// ErrorResponse is the structured error body returned on authentication and
// authorization failures.
type ErrorResponse struct {
	Details string `json:"details"`
}
