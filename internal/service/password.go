package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost for new and changed passwords. Hashes made
// at other costs (seed data uses 10) still verify because bcrypt stores the
// cost in the hash.
const PasswordCost = 12

// MinPasswordLength applies to registration and password changes
const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes
const MaxPasswordLength = 72

// HashPassword hashes a password at the given bcrypt cost
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
