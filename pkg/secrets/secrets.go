// Package secrets issues API keys and checks them against stored bcrypt hashes.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "applicant-records/pkg/domain-errors"
)

// keyBytes of entropy give a 43 character URL-safe key.
const keyBytes = 32

// DefaultCost is the bcrypt cost used for API key hashes.
const DefaultCost = bcrypt.DefaultCost

func GenerateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate api key")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// HashKey hashes key at the given bcrypt cost. Costs outside bcrypt's range
// are rejected rather than silently clamped.
func HashKey(key string, cost int) (string, error) {
	switch {
	case key == "":
		return "", dErrors.New(dErrors.CodeValidation, "api key cannot be empty")
	case cost < bcrypt.MinCost || cost > bcrypt.MaxCost:
		return "", dErrors.New(dErrors.CodeValidation, "bcrypt cost out of range")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", dErrors.New(dErrors.CodeValidation, "api key is longer than 72 bytes")
	}
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash api key")
	}
	return string(hashed), nil
}

// VerifyKey returns nil when key matches hash, an unauthorized error when it
// does not, and an internal error when hash is malformed.
func VerifyKey(key, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return dErrors.New(dErrors.CodeUnauthorized, "api key does not match")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify api key")
	}
}

// IsHash reports whether s parses as a bcrypt hash.
func IsHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
