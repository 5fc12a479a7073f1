package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/community-tournaments/models"
	"github.com/Dosada05/community-tournaments/repositories"
)

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	secret := []byte("secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	store := repositories.NewMemoryStore()
	player := &models.Player{ID: "p1", Username: "alice"}
	require.NoError(t, store.Players.Create(ctx, player))

	auth := NewAuthService(store.Players, string(hash), secret, clockwork.NewRealClock())

	_, err = auth.AdminLogin(ctx, "wrong")
	require.ErrorIs(t, err, ErrAuthInvalidCredentials)

	token, err := auth.AdminLogin(ctx, "hunter2")
	require.NoError(t, err)
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	token, err = auth.PlayerToken(ctx, "p1")
	require.NoError(t, err)
	claims = jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return secret, nil })
	require.NoError(t, err)
	assert.Equal(t, "p1", claims["sub"])
	assert.Equal(t, "player", claims["role"])

	_, err = auth.PlayerToken(ctx, "ghost")
	require.ErrorIs(t, err, models.ErrPlayerNotFound)

	disabled := NewAuthService(store.Players, "", secret, clockwork.NewRealClock())
	_, err = disabled.AdminLogin(ctx, "hunter2")
	require.ErrorIs(t, err, ErrAdminLoginDisabled)
}
