package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoplane/commerce-api/internal/core/domain"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

type stubPhotoStore struct {
	files map[string]string
	err   error
}

func newStubPhotoStore() *stubPhotoStore {
	return &stubPhotoStore{files: make(map[string]string)}
}

func (s *stubPhotoStore) Save(name string, content io.Reader) error {
	if s.err != nil {
		return s.err
	}
	b, _ := io.ReadAll(content)
	s.files[name] = string(b)
	return nil
}

func (s *stubPhotoStore) Remove(name string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.files[name]; !ok {
		return errors.New("no such file")
	}
	delete(s.files, name)
	return nil
}

func seedUser(repo *stubUserRepo, email, role string) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		Username:     "seed",
		Email:        email,
		PasswordHash: "$2a$04$seedseedseedseedseedsu",
		Role:         role,
		IsVerified:   true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	})
	return u
}

func newTestUserService(repo *stubUserRepo, photos *stubPhotoStore) *UserService {
	return NewUserService(repo, NewPasswordHasher(4), photos, zerolog.Nop())
}

func TestUserService_UpdateCurrentUser_RehashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com", domain.RoleUser)
	svc := newTestUserService(repo, newStubPhotoStore())

	updated, err := svc.UpdateCurrentUser(context.Background(), u.ID, ports.UpdateUserInput{
		Username: "renamed", Password: "newpass2",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Username != "renamed" {
		t.Fatalf("username not updated: %q", updated.Username)
	}
	if updated.PasswordHash == "newpass2" || updated.PasswordHash == u.PasswordHash {
		t.Fatalf("password must be re-hashed")
	}
	if !NewPasswordHasher(4).Verify("newpass2", updated.PasswordHash) {
		t.Fatalf("new hash must verify against the new password")
	}
}

func TestUserService_UpdateCurrentUser_CannotChangeRole(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com", domain.RoleUser)
	svc := newTestUserService(repo, newStubPhotoStore())

	updated, err := svc.UpdateCurrentUser(context.Background(), u.ID, ports.UpdateUserInput{Username: "x"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Role != domain.RoleUser {
		t.Fatalf("update must not touch role, got %q", updated.Role)
	}
}

func TestUserService_DeleteUser_Authorization(t *testing.T) {
	tests := []struct {
		name    string
		actor   func(target *domain.User, admin *domain.User) ports.Actor
		wantErr error
	}{
		{
			name:  "self delete allowed",
			actor: func(target, _ *domain.User) ports.Actor { return ports.Actor{ID: target.ID, Role: domain.RoleUser} },
		},
		{
			name:  "admin delete allowed",
			actor: func(_, admin *domain.User) ports.Actor { return ports.Actor{ID: admin.ID, Role: domain.RoleAdmin} },
		},
		{
			name:    "other user forbidden",
			actor:   func(_, _ *domain.User) ports.Actor { return ports.Actor{ID: "someone-else", Role: domain.RoleUser} },
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubUserRepo()
			target := seedUser(repo, "target@example.com", domain.RoleUser)
			admin := seedUser(repo, "admin@example.com", domain.RoleAdmin)
			svc := newTestUserService(repo, newStubPhotoStore())

			err := svc.DeleteUser(context.Background(), target.ID, tc.actor(target, admin))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if _, err := repo.FindByID(context.Background(), target.ID); !errors.Is(err, domain.ErrUserNotFound) {
				t.Fatalf("target must be gone, got %v", err)
			}
		})
	}
}

func TestUserService_DeleteUser_MissingTarget(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newStubPhotoStore())

	err := svc.DeleteUser(context.Background(), "missing", ports.Actor{ID: "x", Role: domain.RoleAdmin})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ProfilePhoto_SetReplacesPrevious(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com", domain.RoleUser)
	photos := newStubPhotoStore()
	svc := newTestUserService(repo, photos)

	if _, err := svc.SetProfilePhoto(context.Background(), u.ID, "first.png", strings.NewReader("img1")); err != nil {
		t.Fatalf("set photo failed: %v", err)
	}
	updated, err := svc.SetProfilePhoto(context.Background(), u.ID, "second.png", strings.NewReader("img2"))
	if err != nil {
		t.Fatalf("replace photo failed: %v", err)
	}

	if updated.ProfilePhoto != u.ID+"-second.png" {
		t.Fatalf("expected %s-second.png, got %q", u.ID, updated.ProfilePhoto)
	}
	if _, ok := photos.files[u.ID+"-first.png"]; ok {
		t.Fatalf("previous photo file must be removed")
	}
	if photos.files[u.ID+"-second.png"] != "img2" {
		t.Fatalf("new photo content not stored")
	}
}

func TestUserService_ProfilePhoto_RemoveWithoutPhoto(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com", domain.RoleUser)
	svc := newTestUserService(repo, newStubPhotoStore())

	if _, err := svc.RemoveProfilePhoto(context.Background(), u.ID); !errors.Is(err, domain.ErrNoProfilePhoto) {
		t.Fatalf("expected ErrNoProfilePhoto, got %v", err)
	}
}

func TestUserService_ProfilePhoto_Remove(t *testing.T) {
	repo := newStubUserRepo()
	u := seedUser(repo, "a@example.com", domain.RoleUser)
	photos := newStubPhotoStore()
	svc := newTestUserService(repo, photos)

	if _, err := svc.SetProfilePhoto(context.Background(), u.ID, "pic.png", strings.NewReader("img")); err != nil {
		t.Fatalf("set photo failed: %v", err)
	}
	updated, err := svc.RemoveProfilePhoto(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if updated.ProfilePhoto != "" {
		t.Fatalf("photo reference must be cleared")
	}
	if len(photos.files) != 0 {
		t.Fatalf("photo file must be deleted")
	}
}
