package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	hashed, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if !strings.HasPrefix(hashed, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", hashed)
	}

	if !h.Verify("secret123", hashed) {
		t.Fatalf("expected password to verify against its own hash")
	}
	if h.Verify("secret124", hashed) {
		t.Fatalf("expected different password to fail verification")
	}
}

func TestVerify_EmptyStoredHash(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	if h.Verify("anything", "") {
		t.Fatalf("empty stored hash must never verify")
	}
}

func TestVerify_UnknownFormat(t *testing.T) {
	t.Parallel()

	h := NewHasher()
	for _, stored := range []string{
		"plaintext",
		"$md5$abcdef",
		"$argon2id$",
		"$argon2id$v=19$garbage",
	} {
		if h.Verify("secret123", stored) {
			t.Fatalf("stored hash %q must not verify", stored)
		}
	}
}

func TestVerify_LegacyBcryptHash(t *testing.T) {
	t.Parallel()

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}

	h := NewHasher()
	if !h.Verify("secret123", string(legacy)) {
		t.Fatalf("legacy bcrypt hash must still verify")
	}
	if h.Verify("wrong", string(legacy)) {
		t.Fatalf("wrong password must not verify against legacy hash")
	}
}

func TestNeedsUpgrade(t *testing.T) {
	t.Parallel()

	h := NewHasher()

	fresh, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h.NeedsUpgrade(fresh) {
		t.Fatalf("freshly hashed credential must not need an upgrade")
	}

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	if !h.NeedsUpgrade(string(legacy)) {
		t.Fatalf("bcrypt hash must be flagged for upgrade")
	}

	if h.NeedsUpgrade("") {
		t.Fatalf("empty hash must not be flagged for upgrade")
	}
	if h.NeedsUpgrade("$unknown$format") {
		t.Fatalf("unrecognized hash must not be flagged for upgrade")
	}
}

func TestNeedsUpgrade_WeakerArgon2Params(t *testing.T) {
	t.Parallel()

	weak := &argon2Scheme{time: 1, memory: 8 * 1024, threads: 1, keyLen: 32, saltLen: 16}
	stored, err := weak.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	h := NewHasher()
	if !h.Verify("secret123", stored) {
		t.Fatalf("weak-parameter hash must still verify")
	}
	if !h.NeedsUpgrade(stored) {
		t.Fatalf("weak-parameter hash must be flagged for upgrade")
	}
}
