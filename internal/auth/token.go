package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vignesh-a-nt07/fullstack-devops-project/internal/models"
)

// ErrInvalidToken covers every way a token can fail to decode: bad signature,
// wrong algorithm, malformed structure, or past expiry. There is no revoked
// state; a token is valid until it expires.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in an access token. The subject is the
// user's id in decimal string form.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and decodes signed access tokens.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
// defaultTTL applies when Issue is called with a zero ttl.
func NewTokenService(secret []byte, defaultTTL time.Duration) *TokenService {
	return &TokenService{secret: secret, defaultTTL: defaultTTL}
}

// Issue creates a signed HS256 token for the given user expiring after ttl
// (or the configured default when ttl is zero).
func (t *TokenService) Issue(userID int64, role models.Role, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = t.defaultTTL
	}
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Decode verifies the token's signature and expiry and returns its claims,
// or ErrInvalidToken on any failure.
func (t *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
