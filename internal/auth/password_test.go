// internal/auth/password_test.go
package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Correct-Horse-42")
	require.NoError(t, err)
	assert.NotEqual(t, "Correct-Horse-42", hash)
	assert.True(t, CheckPassword(hash, "Correct-Horse-42"))
	assert.False(t, CheckPassword(hash, "correct-horse-42"))
	assert.False(t, CheckPassword("not-a-hash", "Correct-Horse-42"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attrs    []string
		problems int
	}{
		{"strong", "Correct-Horse-42", []string{"jane@example.com", "Jane", "Doe"}, 0},
		{"too short", "Ab1!", nil, 1},
		{"numeric", "1234567890123", nil, 1},
		{"common and numeric", "12345678", nil, 2},
		{"common", "password123", nil, 1},
		{"looks like email", "janedoe-2024", []string{"janedoe@example.com"}, 1},
		{"contains first name", "Jonathan-Secret", []string{"x@example.com", "jonathan", ""}, 1},
		{"empty", "", nil, 1},
		{"73 bytes", strings.Repeat("Ab1-", 18) + "x", nil, 1},
		{"72 bytes", strings.Repeat("Ab1-", 18), nil, 0},
		{"multibyte over limit", strings.Repeat("ж", 37), nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, ValidatePassword(tt.password, tt.attrs...), tt.problems)
		})
	}
}

func TestLongestAllowedPasswordHashes(t *testing.T) {
	pw := strings.Repeat("Ab1-", MaxPasswordBytes/4)
	require.Empty(t, ValidatePassword(pw))

	hash, err := HashPassword(pw)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, pw))
}
