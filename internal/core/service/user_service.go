package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// UserService implements the guarded account surface. Role is never touched
// here: no user-facing operation can promote or demote an identity.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	photos ports.PhotoStore
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, photos ports.PhotoStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, photos: photos, log: log}
}

func (s *UserService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

// UpdateCurrentUser changes the display name and/or password of the calling
// identity. Empty fields are left unchanged; a new password is re-hashed.
func (s *UserService) UpdateCurrentUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Save(ctx, user)
}

// DeleteUser removes the target identity. Only the identity itself or an
// admin may do so.
func (s *UserService) DeleteUser(ctx context.Context, targetID string, actor ports.Actor) error {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if actor.ID != target.ID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Str("user_id", target.ID).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// SetProfilePhoto stores the uploaded file and records its name on the
// identity, replacing (and removing) any previous photo.
func (s *UserService) SetProfilePhoto(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Prefix with the owner id so two accounts uploading the same file
	// name never collide in the store.
	stored := user.ID + "-" + filename
	if err := s.photos.Save(stored, content); err != nil {
		return nil, fmt.Errorf("set profile photo: %w", err)
	}

	if user.ProfilePhoto != "" && user.ProfilePhoto != stored {
		if err := s.photos.Remove(user.ProfilePhoto); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to remove previous profile photo")
		}
	}

	user.ProfilePhoto = stored
	user.UpdatedAt = time.Now().UTC()
	return s.users.Save(ctx, user)
}

// RemoveProfilePhoto deletes the stored file and clears the reference.
func (s *UserService) RemoveProfilePhoto(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.ProfilePhoto == "" {
		return nil, domain.ErrNoProfilePhoto
	}

	if err := s.photos.Remove(user.ProfilePhoto); err != nil {
		return nil, fmt.Errorf("remove profile photo: %w", err)
	}

	user.ProfilePhoto = ""
	user.UpdatedAt = time.Now().UTC()
	return s.users.Save(ctx, user)
}
