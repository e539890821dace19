package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash of the given plaintext password using
// the default cost. The returned string is safe to persist.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// PasswordMatches reports whether the plaintext password matches the stored
// bcrypt hash. Any comparison failure, including a malformed hash, reports
// false rather than an error so that callers can treat it as a plain
// credential mismatch.
func PasswordMatches(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
