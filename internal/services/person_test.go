package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreatePersonDuplicateLoginConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	env.seedPerson(t, role.ID, "lab", "ada")

	_, err := env.persons.Create(ctx, "Grace", "Hopper", role.ID, "navy", "ada", "pw")
	require.ErrorIs(t, err, types.ErrConflict)
}

func TestCreatePersonUnknownRoleRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.persons.Create(context.Background(), "Ada", "Lovelace", 999, "lab", "ada", "pw")
	require.True(t, types.IsValidation(err), "unknown role should fail validation, got %v", err)
}

func TestCreatePersonOverlongLoginRejected(t *testing.T) {
	env := newTestEnv(t)
	role := env.seedRole(t, "researcher")

	_, err := env.persons.Create(context.Background(), "Ada", "Lovelace", role.ID, "lab", "a-login-longer-than-twenty", "pw")
	require.True(t, types.IsValidation(err), "overlong login should fail validation, got %v", err)
}

func TestUpdatePersonLoginCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	env.seedPerson(t, role.ID, "lab", "ada")
	grace := env.seedPerson(t, role.ID, "navy", "grace")

	taken := "ada"
	_, err := env.persons.Update(ctx, grace.ID, types.PersonPatch{Login: &taken})
	require.ErrorIs(t, err, types.ErrConflict)
}

func TestUpdatePersonSameLoginIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	ada := env.seedPerson(t, role.ID, "lab", "ada")

	same := "ada"
	org := "observatory"
	updated, err := env.persons.Update(ctx, ada.ID, types.PersonPatch{Login: &same, Organization: &org})
	require.NoError(t, err)
	require.Equal(t, "ada", updated.Login)
	require.Equal(t, "observatory", updated.Organization)
}

func TestDeletePersonWithPredictionsConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")

	_, err := env.predictions.Create(ctx, 500, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)

	err = env.persons.Delete(ctx, person.ID)
	require.ErrorIs(t, err, types.ErrConflict)
}

func TestGrantRoleToOrganization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	oldRole := env.seedRole(t, "guest")
	newRole := env.seedRole(t, "researcher")

	a := env.seedPerson(t, oldRole.ID, "lab", "a")
	b := env.seedPerson(t, oldRole.ID, "lab", "b")
	alreadyThere := env.seedPerson(t, newRole.ID, "lab", "c")
	outsider := env.seedPerson(t, oldRole.ID, "factory", "d")

	updated, err := env.persons.GrantRoleToOrganization(ctx, "lab", newRole.ID)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	for _, id := range []uint{a.ID, b.ID, alreadyThere.ID} {
		person, err := env.persons.GetByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, newRole.ID, person.RoleID)
	}

	untouched, err := env.persons.GetByID(ctx, outsider.ID)
	require.NoError(t, err)
	require.Equal(t, oldRole.ID, untouched.RoleID)
}

func TestGrantRoleUnknownRoleRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.persons.GrantRoleToOrganization(context.Background(), "lab", 999)
	require.True(t, types.IsValidation(err), "unknown role should fail validation, got %v", err)
}
