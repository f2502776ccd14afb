package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost matches the work factor used for existing hashes.
const PasswordCost = 10

func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash.
// A malformed hash is treated as a mismatch.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
