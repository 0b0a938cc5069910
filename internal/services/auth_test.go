package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/logger"
)

func newTestAuth(t *testing.T, env *testEnv) AuthService {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return NewAuthService(log, env.personRepo, env.roleRepo, "test-secret", time.Hour)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)
	ctx := context.Background()

	role := env.seedRole(t, "admin")
	person := env.seedPerson(t, role.ID, "lab", "ada")

	token, loggedIn, err := auth.Login(ctx, "ada", "secret")
	require.NoError(t, err)
	require.Equal(t, person.ID, loggedIn.ID)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, person.ID, claims.PersonID)
	require.Equal(t, "admin", claims.Role)
	require.NotEmpty(t, claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)

	role := env.seedRole(t, "admin")
	env.seedPerson(t, role.ID, "lab", "ada")

	_, _, err := auth.Login(context.Background(), "ada", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownPerson(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)

	_, _, err := auth.Login(context.Background(), "nobody", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsForgedSignature(t *testing.T) {
	env := newTestEnv(t)
	auth := newTestAuth(t, env)

	role := env.seedRole(t, "admin")
	env.seedPerson(t, role.ID, "lab", "ada")

	token, _, err := auth.Login(context.Background(), "ada", "secret")
	require.NoError(t, err)

	log, err := logger.New("development")
	require.NoError(t, err)
	other := NewAuthService(log, env.personRepo, env.roleRepo, "different-secret", time.Hour)

	_, err = other.ParseToken(token)
	require.Error(t, err)
}
