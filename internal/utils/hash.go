package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted bcrypt hash from a plaintext password using
// the given cost factor.
//
// bcrypt generates a fresh random salt on every call, so hashing the same
// plaintext twice yields two different encoded values. The salt and cost are
// embedded in the returned string, so no extra state is needed to verify.
//
// Parameters:
//
//	plaintext - the password to hash; never stored or logged
//	cost      - bcrypt cost factor (work parameter)
//
// Returns:
//
//	string - the encoded bcrypt hash
//	error  - non-nil if the cost is out of range or hashing fails
//
// Example usage:
//
//	hash, err := utils.HashPassword("longpassword1", 10)
func HashPassword(plaintext string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the given bcrypt hash.
//
// The comparison re-derives the hash with the salt embedded in hash and
// compares in constant time, so the running time does not depend on where
// a mismatch occurs.
//
// Returns true iff the password matches; any bcrypt error (including a
// malformed hash) is reported as a non-match.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
