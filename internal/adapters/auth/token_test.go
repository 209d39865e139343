package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-123", "a@b.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTCodec_VerifyRejectsBadToken(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	_, err := codec.Verify("not-a-jwt")
	assert.Error(t, err)

	other := NewJWTCodec("different-secret")
	token, err := other.Issue("user-123", "a@b.com", time.Hour)
	require.NoError(t, err)
	_, err = codec.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_VerifyRejectsExpired(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue("user-123", "a@b.com", -time.Minute)
	require.NoError(t, err)
	_, err = codec.Verify(token)
	assert.Error(t, err)
}
