package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testPassword      = "SecurePassword123!"
	testWrongPassword = "WrongPassword456!"
)

func TestHashPassword_Argon2idFormat(t *testing.T) {
	// Act
	hash, err := HashPassword(testPassword)

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"))
	assert.False(t, NeedsRehash(hash))
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	hash1, err1 := HashPassword(testPassword)
	hash2, err2 := HashPassword(testPassword)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotEqual(t, hash1, hash2, "same password should produce different hashes")
}

func TestVerifyPassword_Argon2id(t *testing.T) {
	testCases := []struct {
		name        string
		password    string
		candidate   string
		expectMatch bool
	}{
		{name: "correct_password", password: testPassword, candidate: testPassword, expectMatch: true},
		{name: "incorrect_password", password: testPassword, candidate: testWrongPassword},
		{name: "case_sensitive", password: "Password123", candidate: "password123"},
		{name: "whitespace_matters", password: "Password123 ", candidate: "Password123"},
		{name: "unicode", password: "Şifre123!", candidate: "Şifre123!", expectMatch: true},
		{name: "empty", password: "", candidate: "", expectMatch: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			hash, err := HashPassword(tc.password)
			require.NoError(t, err)

			// Act
			match, err := VerifyPassword(tc.candidate, hash)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectMatch, match)
		})
	}
}

func TestVerifyPassword_LegacyBcrypt(t *testing.T) {
	// Arrange
	legacy, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	// Act
	match, err := VerifyPassword(testPassword, string(legacy))
	require.NoError(t, err)
	mismatch, err := VerifyPassword(testWrongPassword, string(legacy))
	require.NoError(t, err)

	// Assert
	assert.True(t, match)
	assert.False(t, mismatch)
	assert.True(t, NeedsRehash(string(legacy)))
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	invalidHashes := []string{
		"",
		"plain-text-not-hash",
		"$invalid$format$",
		"$argon2id$v=19$m=65536",
		"$argon2id$v=19$m=65536$corrupted",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$2a$10$short",
	}

	for _, invalidHash := range invalidHashes {
		t.Run(invalidHash, func(t *testing.T) {
			match, err := VerifyPassword(testPassword, invalidHash)

			assert.Error(t, err)
			assert.False(t, match)
		})
	}
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword(testPassword)
	}
}
