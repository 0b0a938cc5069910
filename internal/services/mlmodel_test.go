package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreateModelReturnsExistingRowOnDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.models.Create(ctx, "gbt-tensile", "boosted trees")
	require.NoError(t, err)

	second, err := env.models.Create(ctx, "gbt-tensile", "other")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "boosted trees", second.Description)
}

func TestDeleteModelWithPredictionsConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")

	_, err := env.predictions.Create(ctx, 500, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)

	err = env.models.Delete(ctx, model.ID)
	require.ErrorIs(t, err, types.ErrConflict)
}
