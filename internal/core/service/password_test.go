package service

import "testing"

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	h := NewPasswordHasher(4) // min cost keeps the test fast

	h1, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same plaintext must differ (salted)")
	}
	if !h.Verify("secret1", h1) || !h.Verify("secret1", h2) {
		t.Fatalf("both hashes must verify against the original plaintext")
	}
}

func TestPasswordHasher_VerifyRejectsWrongPassword(t *testing.T) {
	h := NewPasswordHasher(4)

	hash, err := h.Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h.Verify("battery-staple", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestPasswordHasher_MalformedHashIsFalse(t *testing.T) {
	h := NewPasswordHasher(4)

	for _, bad := range []string{"", "not-a-bcrypt-hash", "$2a$xx$garbage"} {
		if h.Verify("anything", bad) {
			t.Fatalf("malformed hash %q must not verify", bad)
		}
	}
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	h := NewPasswordHasher(99)
	if _, err := h.Hash("p"); err != nil {
		t.Fatalf("hasher with clamped cost must still hash: %v", err)
	}
}
