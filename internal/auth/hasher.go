// Package auth implements the credential and token core: password hashing
// with scheme migration, and issuing/verifying signed access tokens.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// verdict is the outcome of checking a password against one stored hash.
type verdict int

const (
	verdictMatch verdict = iota
	verdictMismatch
	// verdictUnknownFormat means the scheme does not recognize the stored
	// hash at all; the caller should try the next scheme in the chain.
	verdictUnknownFormat
)

// scheme is one supported hash family. Verify must never panic; anything it
// cannot make sense of is a mismatch or an unknown format, not an error.
type scheme interface {
	Name() string
	Recognizes(stored string) bool
	Hash(password string) (string, error)
	Verify(password, stored string) verdict
}

// Hasher turns plaintext secrets into stored hashes and verifies them against
// every scheme this application has ever written. The first scheme in the
// chain is the preferred one; the rest exist so that accounts created under
// older schemes keep working and get upgraded on their next login.
type Hasher struct {
	preferred scheme
	legacy    []scheme
}

// NewHasher returns a Hasher preferring argon2id with bcrypt as the legacy
// scheme. Hashes produced by either verify; only argon2id is written for new
// credentials unless argon2id itself fails.
func NewHasher() *Hasher {
	return &Hasher{
		preferred: defaultArgon2Scheme(),
		legacy:    []scheme{&bcryptScheme{cost: bcrypt.DefaultCost}},
	}
}

// Hash hashes password with the preferred scheme. If the preferred scheme
// fails (the only realistic cause is the system entropy source), it falls
// back to the legacy schemes rather than refusing to create the credential.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := h.preferred.Hash(password)
	if err == nil {
		return hashed, nil
	}
	for _, s := range h.legacy {
		if hashed, ferr := s.Hash(password); ferr == nil {
			return hashed, nil
		}
	}
	return "", fmt.Errorf("hash password: %w", err)
}

// Verify reports whether password matches the stored hash. An empty stored
// hash, an unrecognized format, or any internal failure all count as a
// non-match; authentication fails closed instead of surfacing an error.
func (h *Hasher) Verify(password, stored string) bool {
	if stored == "" {
		return false
	}
	for _, s := range h.chain() {
		switch s.Verify(password, stored) {
		case verdictMatch:
			return true
		case verdictMismatch:
			return false
		case verdictUnknownFormat:
			continue
		}
	}
	return false
}

// NeedsUpgrade reports whether the stored hash should be replaced with one
// produced by the preferred scheme. Unrecognized formats return false; they
// will simply never verify.
func (h *Hasher) NeedsUpgrade(stored string) bool {
	if stored == "" {
		return false
	}
	if h.preferred.Recognizes(stored) {
		if a, ok := h.preferred.(*argon2Scheme); ok {
			return a.weakerThanCurrent(stored)
		}
		return false
	}
	for _, s := range h.legacy {
		if s.Recognizes(stored) {
			return true
		}
	}
	return false
}

func (h *Hasher) chain() []scheme {
	return append([]scheme{h.preferred}, h.legacy...)
}

// --- argon2id ---

type argon2Scheme struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

func defaultArgon2Scheme() *argon2Scheme {
	return &argon2Scheme{
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
}

const argon2Prefix = "$argon2id$"

func (a *argon2Scheme) Name() string { return "argon2id" }

func (a *argon2Scheme) Recognizes(stored string) bool {
	return strings.HasPrefix(stored, argon2Prefix)
}

func (a *argon2Scheme) Hash(password string) (string, error) {
	salt := make([]byte, a.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.time, a.memory, a.threads, a.keyLen)

	// PHC string format: $argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.memory, a.time, a.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (a *argon2Scheme) Verify(password, stored string) verdict {
	if !a.Recognizes(stored) {
		return verdictUnknownFormat
	}
	// A recognized prefix with an unparsable body is a mismatch, not a
	// format miss: no other scheme could ever match it either.
	memory, time, threads, salt, want, ok := parseArgon2(stored)
	if !ok {
		return verdictMismatch
	}
	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) == 1 {
		return verdictMatch
	}
	return verdictMismatch
}

// weakerThanCurrent reports whether the stored hash was produced with cheaper
// parameters than the scheme is configured with now.
func (a *argon2Scheme) weakerThanCurrent(stored string) bool {
	memory, time, threads, _, _, ok := parseArgon2(stored)
	if !ok {
		return false
	}
	return memory < a.memory || time < a.time || threads < a.threads
}

func parseArgon2(stored string) (memory, time uint32, threads uint8, salt, hash []byte, ok bool) {
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return 0, 0, 0, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return 0, 0, 0, nil, nil, false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return 0, 0, 0, nil, nil, false
	}
	return memory, time, threads, salt, hash, true
}

// --- bcrypt (legacy) ---

type bcryptScheme struct {
	cost int
}

func (b *bcryptScheme) Name() string { return "bcrypt" }

func (b *bcryptScheme) Recognizes(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

func (b *bcryptScheme) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (b *bcryptScheme) Verify(password, stored string) verdict {
	if !b.Recognizes(stored) {
		return verdictUnknownFormat
	}
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err == nil {
		return verdictMatch
	}
	// Corrupt hashes and genuine mismatches both fail closed.
	return verdictMismatch
}
