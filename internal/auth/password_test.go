package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ublog-dev/ublog/internal/models"
)

func TestHashPasswordRoundtrip(t *testing.T) {
	creds, err := HashPassword("abc123", "")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(creds.Salt)
	require.NoError(t, err)
	assert.Len(t, raw, SaltBytes)
	assert.Len(t, creds.Password, sha256.Size*2)

	user := &models.User{Password: creds.Password, Salt: creds.Salt}
	assert.True(t, VerifyPlaintext(user, "abc123"))
	assert.False(t, VerifyPlaintext(user, "wrong"))
	assert.False(t, VerifyPlaintext(user, ""))
}

func TestHashPasswordDeterministic(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)

	first, err := HashPassword("hunter2", salt)
	require.NoError(t, err)
	second, err := HashPassword("hunter2", salt)
	require.NoError(t, err)
	assert.Equal(t, first.Password, second.Password)

	other, err := HashPassword("hunter3", salt)
	require.NoError(t, err)
	assert.NotEqual(t, first.Password, other.Password)
}

func TestHashPasswordInvalidSalt(t *testing.T) {
	tests := []struct {
		name string
		salt string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"too short", base64.StdEncoding.EncodeToString([]byte("1234"))},
		{"too long", base64.StdEncoding.EncodeToString([]byte("123456789abcdef"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword("abc123", tt.salt)
			assert.ErrorIs(t, err, ErrInvalidSalt)
		})
	}
}

func TestVerifyChallenge(t *testing.T) {
	creds, err := HashPassword("abc123", "")
	require.NoError(t, err)
	user := &models.User{Password: creds.Password, Salt: creds.Salt}

	challenge := []byte("nonce-1234")
	attempt := sha256.Sum256(append(
		[]byte(hex.EncodeToString([]byte(user.Password))),
		hex.EncodeToString(challenge)...))

	assert.True(t, VerifyChallenge(user, attempt[:], challenge))
	assert.False(t, VerifyChallenge(user, attempt[:], []byte("other-nonce")))
	assert.False(t, VerifyChallenge(user, []byte("garbage"), challenge))
}
