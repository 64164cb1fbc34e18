package secrets

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Suhanikhatrii/user-data-requisition/internal/domain"
)

// Hash creates a bcrypt hash of the provided password.
// The returned value is opaque to callers; only Verify can interpret it.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", domain.NewValidationError("password", "password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password", "password is too long")
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify checks if a plaintext password matches a bcrypt hash.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
