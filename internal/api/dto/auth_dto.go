package dto

// LoginRequest payload for credential login.
type LoginRequest struct {
	Email    string `json:"correoInstitucional"`
	Password string `json:"password"`
}

// LoginResponse mirrors the frontend session contract.
type LoginResponse struct {
	Token              string           `json:"token"`
	Type               string           `json:"type"`
	RequiresCompletion bool             `json:"requiresCompletion"`
	User               *AccountResponse `json:"user,omitempty"`
}

// LogoutResponse reports best-effort session termination.
type LogoutResponse struct {
	Message          string `json:"message"`
	UserEmail        string `json:"userEmail,omitempty"`
	TokenInvalidated bool   `json:"tokenInvalidated"`
	Timestamp        int64  `json:"timestamp"`
}

// TokenStatusResponse is the introspection payload.
type TokenStatusResponse struct {
	IsValid   bool   `json:"isValid"`
	IsRevoked bool   `json:"isBlacklisted"`
	UserEmail string `json:"userEmail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
