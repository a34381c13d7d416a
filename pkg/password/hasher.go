// Package password provides credential hashing and complexity checks for the
// admin services. Hashes are produced before a credential ever reaches the
// identity store; plaintext is never persisted.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher defines the interface for password hashing implementations
type Hasher interface {
	// Hash hashes a password
	Hash(password string) (string, error)

	// Verify checks if the provided password matches the stored hash
	Verify(password, hashedPassword string) (bool, error)
}

// BcryptHasher implements Hasher using bcrypt
type BcryptHasher struct{}

// NewBcryptHasher creates a new bcrypt-based hasher
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash implements Hasher.Hash
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// Verify implements Hasher.Verify
func (h *BcryptHasher) Verify(password, hashedPassword string) (bool, error) {
	if password == "" || hashedPassword == "" {
		return false, errors.New("password and hashed password cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil // Password doesn't match, but not an error
		}
		return false, err // Some other error occurred
	}

	return true, nil
}
