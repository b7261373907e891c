package models

// RegisterRequest carries the data needed to create an account.
type RegisterRequest struct {
	Email         string        `json:"email" validate:"required,email,max=255"`
	Username      string        `json:"username" validate:"required,min=3,max=50"`
	Password      string        `json:"password" validate:"required,min=8,max=100"`
	FullName      *string       `json:"full_name,omitempty" validate:"omitempty,max=255"`
	PhoneNumber   *string       `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	RiskTolerance RiskTolerance `json:"risk_tolerance,omitempty" validate:"omitempty,oneof=conservative moderate aggressive"`
}

// LoginRequest is a credential pair. It is consumed once and never stored.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest carries a refresh token to be exchanged for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ChangePasswordRequest replaces the password of the current principal.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=100"`
}
