package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// Stable user-facing messages. The pending-verification message is shared by
// registration and login so an unverified account gets the same
// acknowledgement on both paths.
const (
	MsgVerificationSent = "a verification link has been sent to your email, please verify your account"
	MsgResetLinkSent    = "a reset password link has been sent to your email, please check your inbox"
	MsgValidLink        = "valid link"
	MsgPasswordReset    = "password reset successfully, please log in"
	MsgEmailVerified    = "your email has been verified, please log in to your account"
)

// AuthService implements the credential lifecycle: registration with
// email-verification gating, login, and the forgot/reset-password flow.
type AuthService struct {
	users        ports.UserRepository
	hasher       *PasswordHasher
	tokens       *TokenManager
	mailer       ports.Mailer
	appDomain    string
	clientDomain string
	log          zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher *PasswordHasher,
	tokens *TokenManager,
	mailer ports.Mailer,
	appDomain, clientDomain string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		mailer:       mailer,
		appDomain:    appDomain,
		clientDomain: clientDomain,
		log:          log,
	}
}

// Register creates an unverified identity and mails a verification link.
// It never returns an access token: unverified accounts cannot obtain one.
// If the mail send fails the identity stays durably saved and the error is
// surfaced; a later login re-triggers the verification mail.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthAck, error) {
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:          in.Username,
		Email:             in.Email,
		PasswordHash:      hash,
		Role:              domain.RoleUser,
		IsVerified:        false,
		VerificationToken: newOneTimeToken(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")

	if err := s.sendVerificationMail(ctx, created); err != nil {
		return nil, err
	}
	return &ports.AuthAck{Message: MsgVerificationSent}, nil
}

// Login verifies credentials and issues an access token for verified
// accounts. Unknown email and wrong password produce the identical error.
// An unverified account gets the verification mail (re-)sent and the same
// pending acknowledgement as registration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		if user.VerificationToken == "" {
			user.VerificationToken = newOneTimeToken()
			user.UpdatedAt = time.Now().UTC()
			if user, err = s.users.Save(ctx, user); err != nil {
				return nil, fmt.Errorf("login: %w", err)
			}
		}
		if err := s.sendVerificationMail(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", user.ID).Msg("login pending verification")
		return &ports.LoginResult{Message: MsgVerificationSent}, nil
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return &ports.LoginResult{AccessToken: token}, nil
}

// RequestPasswordReset regenerates the reset token unconditionally and
// mails the new link; any previously issued reset link stops working.
// Unlike login, an unknown email is reported as such.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*ports.AuthAck, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("request password reset: %w", err)
	}

	user.ResetPasswordToken = newOneTimeToken()
	user.UpdatedAt = time.Now().UTC()
	if user, err = s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("request password reset: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password/%s/%s", s.clientDomain, user.ID, user.ResetPasswordToken)
	if err := s.mailer.Send(ctx, user.Email, ports.MailResetLink, ports.MailData{Username: user.Username, Link: link}); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send reset mail")
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return &ports.AuthAck{Message: MsgResetLinkSent}, nil
}

// ValidateResetLink checks a reset link without consuming it, so a client
// can pre-validate before showing the reset form.
func (s *AuthService) ValidateResetLink(ctx context.Context, userID, token string) (*ports.AuthAck, error) {
	if _, err := s.findByResetLink(ctx, userID, token); err != nil {
		return nil, err
	}
	return &ports.AuthAck{Message: MsgValidLink}, nil
}

// ResetPassword consumes an outstanding reset token: the new password is
// hashed and stored, and the token is cleared unconditionally so it can
// never succeed twice.
func (s *AuthService) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) (*ports.AuthAck, error) {
	user, err := s.findByResetLink(ctx, in.UserID, in.Token)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("reset password: hash password: %w", err)
	}

	user.PasswordHash = hash
	user.ResetPasswordToken = ""
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return &ports.AuthAck{Message: MsgPasswordReset}, nil
}

// VerifyEmail consumes the verification token: the account becomes verified
// and the token slot is cleared.
func (s *AuthService) VerifyEmail(ctx context.Context, userID, token string) (*ports.AuthAck, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("verify email: %w", err)
	}

	if user.VerificationToken == "" {
		return nil, domain.ErrNoVerificationPending
	}
	if user.VerificationToken != token {
		return nil, domain.ErrInvalidLink
	}

	user.IsVerified = true
	user.VerificationToken = ""
	user.UpdatedAt = time.Now().UTC()
	if _, err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("verify email: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("email verified")
	return &ports.AuthAck{Message: MsgEmailVerified}, nil
}

// findByResetLink applies the shared matching rule of ValidateResetLink and
// ResetPassword: a missing user, an empty reset slot, and a token mismatch
// are all reported as the same invalid-link outcome.
func (s *AuthService) findByResetLink(ctx context.Context, userID, token string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidLink
		}
		return nil, fmt.Errorf("reset link: %w", err)
	}
	if user.ResetPasswordToken == "" || user.ResetPasswordToken != token {
		return nil, domain.ErrInvalidLink
	}
	return user, nil
}

func (s *AuthService) sendVerificationMail(ctx context.Context, user *domain.User) error {
	link := fmt.Sprintf("%s/api/users/verify-email/%s/%s", s.appDomain, user.ID, user.VerificationToken)
	if err := s.mailer.Send(ctx, user.Email, ports.MailVerificationLink, ports.MailData{Username: user.Username, Link: link}); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send verification mail")
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

// newOneTimeToken returns 32 random bytes hex-encoded. One-time tokens are
// single-slot: regeneration or consumption invalidates the previous value,
// and there is no expiry timer.
func newOneTimeToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b) // crypto/rand.Read does not fail on supported platforms
	return hex.EncodeToString(b)
}
