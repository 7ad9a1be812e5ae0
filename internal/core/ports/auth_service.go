package ports

import "context"

// RegisterInput is the payload for creating a new identity.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// ResetPasswordInput consumes an outstanding reset token.
type ResetPasswordInput struct {
	UserID      string
	Token       string
	NewPassword string
}

// AuthAck is a message-only acknowledgement (no access token).
type AuthAck struct {
	Message string
}

// LoginResult is either an access token (verified account) or a
// pending-verification message with an empty token.
type LoginResult struct {
	AccessToken string
	Message     string
}

// Pending reports whether login was acknowledged without granting access.
func (r *LoginResult) Pending() bool { return r.AccessToken == "" }

// AuthService orchestrates the credential lifecycle: registration with
// email-verification gating, login, and the forgot/reset-password flow.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthAck, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*AuthAck, error)
	ValidateResetLink(ctx context.Context, userID, token string) (*AuthAck, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) (*AuthAck, error)
	VerifyEmail(ctx context.Context, userID, token string) (*AuthAck, error)
}
