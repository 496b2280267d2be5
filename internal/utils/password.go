package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

const passwordSpecials = `!@#$%^&*()_+-=[]{}|;:,.<>?/`

// CheckPasswordPolicy validates a signup password: at least 8
// characters with at least one letter, one digit and one special
// character. It returns a user-facing message for the first rule that
// fails, or "" when the password is acceptable.
func CheckPasswordPolicy(plain string) string {
	if len(plain) < 8 {
		return "password must be at least 8 characters long"
	}
	var hasLetter, hasDigit, hasSpecial bool
	for _, r := range plain {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		}
	}
	if !hasDigit {
		return "password must contain at least one numeral"
	}
	if !hasLetter {
		return "password must contain at least one letter"
	}
	if !hasSpecial {
		return "password must contain at least one special character"
	}
	return ""
}
