package httpapi

import (
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns a plaintext password into its stored digest.
// The choice of algorithm stays at this boundary; the services only
// ever see the digest.
type PasswordHasher func(plaintext string) (string, error)

// BcryptPassword hashes with bcrypt at the default cost.
func BcryptPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// SHA512Password hashes with a single unsalted SHA-512 round. Kept for
// compatibility with records written by earlier deployments; prefer
// BcryptPassword for new wiring.
func SHA512Password(plaintext string) (string, error) {
	sum := sha512.Sum512([]byte(plaintext))
	return hex.EncodeToString(sum[:]), nil
}
