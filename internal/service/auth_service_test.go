package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-do-not-use"

func newAuthEnv(t *testing.T) AuthService {
	t.Helper()
	store := newMemStore()
	return NewAuthService(&memUserRepo{store}, testJWTSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthEnv(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	token, logged, err := svc.Login(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Empty(t, logged.PasswordHash)

	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "training-calendar", claims.Issuer)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "pw1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other Ada", "ada@example.com", "pw2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthEnv(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "correct horse")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "battery staple")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
