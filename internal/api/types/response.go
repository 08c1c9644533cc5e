// internal/api/types/response.go
package types

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse carries a confirmation message, e.g. after a delete.
type MessageResponse struct {
	Message string `json:"message"`
}
