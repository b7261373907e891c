package models

import "time"

// RiskTolerance is the investment risk profile attached to a user account.
type RiskTolerance string

const (
	Conservative RiskTolerance = "conservative"
	Moderate     RiskTolerance = "moderate"
	Aggressive   RiskTolerance = "aggressive"
)

// IsValid reports whether r is one of the known risk profiles.
func (r RiskTolerance) IsValid() bool {
	switch r {
	case Conservative, Moderate, Aggressive:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// It is the principal resolved for every authenticated request.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login name. It is the "sub" claim of every
	// token issued for the user.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user.
	Email string `json:"email"`

	// HashedPassword is the salted bcrypt digest of the password.
	// It is never serialised.
	HashedPassword string `json:"-"`

	// FullName is the optional display name.
	FullName *string `json:"full_name,omitempty"`

	// PhoneNumber is an optional contact number.
	PhoneNumber *string `json:"phone_number,omitempty"`

	// IsActive is false for disabled accounts. Inactive users cannot log in
	// and their tokens are rejected.
	IsActive bool `json:"is_active"`

	// IsAdmin grants access to administrative endpoints.
	IsAdmin bool `json:"is_admin"`

	// RiskTolerance is the investment risk profile of the user.
	RiskTolerance RiskTolerance `json:"risk_tolerance"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification, if any.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// LastLogin is the timestamp of the last successful JSON login.
	LastLogin *time.Time `json:"last_login"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserResponse is the public representation of a [User].
type UserResponse struct {
	ID            int64         `json:"id"`
	Email         string        `json:"email"`
	Username      string        `json:"username"`
	FullName      *string       `json:"full_name"`
	PhoneNumber   *string       `json:"phone_number"`
	RiskTolerance RiskTolerance `json:"risk_tolerance"`
	IsActive      bool          `json:"is_active"`
	IsAdmin       bool          `json:"is_admin"`
	CreatedAt     time.Time     `json:"created_at"`
	LastLogin     *time.Time    `json:"last_login"`
}

// NewUserResponse strips credential data from u.
func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.UserID,
		Email:         u.Email,
		Username:      u.Username,
		FullName:      u.FullName,
		PhoneNumber:   u.PhoneNumber,
		RiskTolerance: u.RiskTolerance,
		IsActive:      u.IsActive,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
		LastLogin:     u.LastLogin,
	}
}
