// internal/auth/password.go
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// bcrypt only accepts this many bytes
	MaxPasswordBytes = 72
)

// HashPassword hashes with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "abc12345": {},
	"letmein1": {}, "trustno1": {}, "superman": {}, "11111111": {}, "00000000": {},
	"passw0rd": {}, "whatever": {}, "starwars": {}, "dragon123": {}, "monkey123": {},
}

// ValidatePassword applies the password policy. attrs are user attributes
// (email, names) the password must not resemble. All violations are returned.
func ValidatePassword(password string, attrs ...string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		problems = append(problems, fmt.Sprintf("This password is too long. It must contain at most %d bytes.", MaxPasswordBytes))
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		problems = append(problems, "This password is entirely numeric.")
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		problems = append(problems, "This password is too common.")
	}
	if attr, ok := similarTo(password, attrs); ok {
		problems = append(problems, fmt.Sprintf("The password is too similar to the %s.", attr))
	}
	return problems
}

func similarTo(password string, attrs []string) (string, bool) {
	pw := strings.ToLower(password)
	if len(pw) < 3 {
		return "", false
	}
	for _, a := range attrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if at := strings.IndexByte(a, '@'); at > 0 {
			a = a[:at]
		}
		if len(a) < 3 {
			continue
		}
		if strings.Contains(pw, a) || strings.Contains(a, pw) {
			return "personal information", true
		}
	}
	return "", false
}
