package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreateRoleReturnsExistingRowOnDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.roles.Create(ctx, "admin", "full access")
	require.NoError(t, err)

	second, err := env.roles.Create(ctx, "admin", "different description")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "full access", second.Description)
}

func TestUpdateRoleNameCollisionConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedRole(t, "admin")
	guest := env.seedRole(t, "guest")

	taken := "admin"
	_, err := env.roles.Update(ctx, guest.ID, types.RolePatch{Name: &taken})
	require.ErrorIs(t, err, types.ErrConflict)
}

func TestDeleteRoleWithPersonsConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	env.seedPerson(t, role.ID, "lab", "ada")

	err := env.roles.Delete(ctx, role.ID)
	require.ErrorIs(t, err, types.ErrConflict)
}
