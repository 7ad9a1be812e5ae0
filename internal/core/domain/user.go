package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrInvalidLink = errors.New("invalid link")
var ErrNoVerificationPending = errors.New("there is no verification token")
var ErrNoProfilePhoto = errors.New("there is no profile photo")
var ErrUnauthenticated = errors.New("unauthenticated")
var ErrInvalidToken = errors.New("invalid token")
var ErrForbidden = errors.New("access forbidden")
var ErrMailDelivery = errors.New("mail delivery failed")

// User models an identity in the system. PasswordHash and the one-time
// token fields are internal state; they never serialize into an
// outward-facing response.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// One-time tokens. Empty means no token outstanding.
	// VerificationToken is set between registration (or a lazy re-issue at
	// login) and a successful email verification; ResetPasswordToken only
	// while a password reset is in flight. Issuing a new token always
	// replaces the previous one.
	VerificationToken  string `json:"-"`
	ResetPasswordToken string `json:"-"`

	// ProfilePhoto holds the stored file name, empty when none is set.
	ProfilePhoto string `json:"profile_photo,omitempty"`
}

// ValidRole reports whether s belongs to the closed role enumeration.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleUser
}
