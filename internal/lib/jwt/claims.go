// Package jwt issues and validates the signed tokens that carry a logged-in
// user's identity between requests.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims carries the user identity inside the token.
type CustomClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Maker generates and parses identity tokens.
type Maker interface {
	GenerateToken(username, role string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl signs tokens with a shared secret key.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker builds a MakerImpl from the secret key and token lifetime.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
