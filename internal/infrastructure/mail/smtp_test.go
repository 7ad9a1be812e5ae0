package mail

import (
	"strings"
	"testing"

	"github.com/shoplane/commerce-api/internal/core/ports"
)

func TestRenderMail_VerificationEmbedsLink(t *testing.T) {
	subject, body, err := renderMail(ports.MailVerificationLink, ports.MailData{
		Username: "carla",
		Link:     "http://localhost:8080/api/users/verify-email/u1/abc",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if subject == "" {
		t.Fatal("subject must not be empty")
	}
	if !strings.Contains(body, "carla") {
		t.Fatalf("body must address the user: %q", body)
	}
	if !strings.Contains(body, "http://localhost:8080/api/users/verify-email/u1/abc") {
		t.Fatalf("body must embed the verification link: %q", body)
	}
}

func TestRenderMail_ResetEmbedsLink(t *testing.T) {
	_, body, err := renderMail(ports.MailResetLink, ports.MailData{
		Username: "carla",
		Link:     "http://localhost:3000/reset-password/u1/abc",
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(body, "http://localhost:3000/reset-password/u1/abc") {
		t.Fatalf("body must embed the reset link: %q", body)
	}
}

func TestRenderMail_LoginNoticeHasNoLink(t *testing.T) {
	_, body, err := renderMail(ports.MailLoginNotice, ports.MailData{Username: "carla"})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(body, "<a ") {
		t.Fatalf("login notice must not carry a link: %q", body)
	}
}

func TestRenderMail_UnknownKind(t *testing.T) {
	if _, _, err := renderMail(ports.MailKind("nonsense"), ports.MailData{}); err == nil {
		t.Fatal("expected an error for an unknown mail kind")
	}
}
