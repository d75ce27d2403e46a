package parental

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprout/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongPassword = errors.New("wrong parent password")
	ErrNoPassword    = errors.New("no parent password set")
	ErrEmptyPassword = errors.New("parent password must not be empty")
)

// HashPassword hashes a parent password with bcrypt.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing parent password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies password against the stored settings. A legacy
// plaintext password still verifies; upgrade is true when the caller should
// replace it with a hash.
func CheckPassword(p domain.ParentSettings, password string) (upgrade bool, err error) {
	switch {
	case p.PasswordHash != "":
		if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
			return false, ErrWrongPassword
		}
		return false, nil
	case p.Password != "":
		if subtle.ConstantTimeCompare([]byte(p.Password), []byte(password)) != 1 {
			return false, ErrWrongPassword
		}
		return true, nil
	default:
		return false, ErrNoPassword
	}
}
