package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!pass", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!pass", hash)

	require.True(t, VerifyPassword(hash, "s3cret!pass"))
	require.False(t, VerifyPassword(hash, "s3cret!pASS"))
	require.False(t, VerifyPassword("not-a-hash", "s3cret!pass"))
}

func TestCheckPasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"ok", "abc123!xyz", ""},
		{"ok with symbols", "P@ssw0rd-2026", ""},
		{"too short", "a1!", "password must be at least 8 characters long"},
		{"no digit", "abcdefg!", "password must contain at least one numeral"},
		{"no letter", "1234567!", "password must contain at least one letter"},
		{"no special", "abcd1234", "password must contain at least one special character"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, CheckPasswordPolicy(tc.password))
		})
	}
}
