package auth_test

import (
	"testing"
	"time"

	"civicalert/backend/internal/auth"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestSignAndVerifyToken(t *testing.T) {
	token, err := auth.SignToken("user-1", testSecret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := auth.VerifyToken(token, testSecret)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := auth.SignToken("user-1", testSecret, time.Hour)
	assert.NoError(t, err)

	_, err = auth.VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := auth.SignToken("user-1", testSecret, -time.Minute)
	assert.NoError(t, err)

	_, err = auth.VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := auth.VerifyToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.VerifyToken("", testSecret)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, auth.CheckPassword("s3cret-password", hash))
	assert.False(t, auth.CheckPassword("wrong-password", hash))
	assert.False(t, auth.CheckPassword("", hash))
}
