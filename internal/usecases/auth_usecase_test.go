package usecases

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserStore()
	auth := NewAuthUsecase(users, "secret")
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, "owner@example.com", "hunter2boogaloo"))

	// Duplicate email rejected
	assert.Error(t, auth.Register(ctx, "owner@example.com", "another"))

	token, err := auth.Login(ctx, "owner@example.com", "hunter2boogaloo")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.NotEmpty(t, claims["user_id"])
	assert.Equal(t, "user", claims["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newFakeUserStore()
	auth := NewAuthUsecase(users, "secret")
	ctx := context.Background()

	require.NoError(t, auth.Register(ctx, "owner@example.com", "hunter2boogaloo"))

	_, err := auth.Login(ctx, "owner@example.com", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = auth.Login(ctx, "ghost@example.com", "hunter2boogaloo")
	assert.EqualError(t, err, "invalid credentials")
}

func TestEnsureAdminIdempotent(t *testing.T) {
	users := newFakeUserStore()
	auth := NewAuthUsecase(users, "secret")
	ctx := context.Background()

	require.NoError(t, auth.EnsureAdmin(ctx, "root@example.com", "rootpassword"))
	require.NoError(t, auth.EnsureAdmin(ctx, "root@example.com", "rootpassword"))

	admin, err := users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.Len(t, users.byID, 1)
}
