// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"scribe/config"
	"scribe/internal/domain/service"
	"scribe/internal/errors"
)

const (
	defaultMinPasswordLength = 8
	// bcrypt only reads the first 72 bytes of the input.
	defaultMaxPasswordLength = 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
	maxLength int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:      bcrypt.DefaultCost,
		minLength: defaultMinPasswordLength,
		maxLength: defaultMaxPasswordLength,
	}
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		if cfg.PasswordStrength.MinLength > 0 {
			hasher.minLength = cfg.PasswordStrength.MinLength
		}
		if cfg.PasswordStrength.MaxLength > 0 {
			hasher.maxLength = cfg.PasswordStrength.MaxLength
		}
	}

	return hasher
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash. A malformed hash
// compares as a mismatch rather than an error.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks a candidate password against the configured
// length bounds.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.minLength {
		return errors.Errorf("password must be at least %d characters long", h.minLength)
	}
	if len(password) > h.maxLength {
		return errors.Errorf("password must be at most %d characters long", h.maxLength)
	}

	return nil
}
