// Package password isolates credential storage and comparison behind a
// Verifier so the hashing scheme can change without touching the handlers.
//
// The wired default is the plain scheme: passwords are stored and compared
// verbatim, which is the historical contract of this service. Bcrypt is
// available via the "bcrypt" scheme name.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Compare when the password does not match.
var ErrMismatch = errors.New("password mismatch")

// Verifier turns a raw password into its stored form and checks a raw
// password against a stored one.
type Verifier interface {
	Hash(raw string) (string, error)
	Compare(stored, raw string) error
}

// New returns the Verifier for the given scheme name.
func New(scheme string) (Verifier, error) {
	switch scheme {
	case "", "plain":
		return Plain{}, nil
	case "bcrypt":
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("password: unknown scheme %q", scheme)
	}
}

// Plain stores passwords verbatim and compares by string equality.
type Plain struct{}

// Hash returns raw unchanged.
func (Plain) Hash(raw string) (string, error) {
	return raw, nil
}

// Compare reports ErrMismatch unless stored equals raw.
func (Plain) Compare(stored, raw string) error {
	if stored != raw {
		return ErrMismatch
	}
	return nil
}

// Bcrypt stores bcrypt hashes.
type Bcrypt struct{}

// Hash returns the bcrypt hash of raw at the default cost.
func (Bcrypt) Hash(raw string) (string, error) {
	const op = "password.Bcrypt.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare checks raw against the stored bcrypt hash.
func (Bcrypt) Compare(stored, raw string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(raw)); err != nil {
		return ErrMismatch
	}
	return nil
}
