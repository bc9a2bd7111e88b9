package service

import (
	"context"
	"testing"
	"time"

	"wellnest/backend/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	ctx := context.Background()
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, testJWTSecret, time.Hour)

	user, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "Lose weight")
	require.NoError(t, err)
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "Lose weight", user.Goal)
	assert.Empty(t, user.PasswordHash)

	// The stored hash is never the raw password.
	stored, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice Again", "alice@example.com", "otherpassword", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	registered, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, registered.ID.Hex(), claims["uid"])
	assert.Equal(t, string(domain.RoleUser), claims["role"])
}

func TestLogin_WrongCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret, time.Hour)

	_, err := svc.Register(ctx, "Alice", "alice@example.com", "password123", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}
