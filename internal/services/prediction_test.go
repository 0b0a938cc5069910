package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreatePredictionClampsNegativePropValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")

	prediction, err := env.predictions.Create(ctx, -42, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, prediction.PropValue)
}

func TestCreatePredictionChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")

	_, err := env.predictions.Create(ctx, 500, "steel", 999, "hot", person.ID)
	require.True(t, types.IsValidation(err), "unknown model should fail validation, got %v", err)

	_, err = env.predictions.Create(ctx, 500, "steel", model.ID, "hot", 999)
	require.True(t, types.IsValidation(err), "unknown person should fail validation, got %v", err)
}

func TestListPredictionsByElement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")
	iron := env.seedElement(t, "Iron", 26, "Fe")

	withIron, err := env.predictions.Create(ctx, 500, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)
	_, err = env.predictions.Create(ctx, 510, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)

	_, err = env.compositions.AddElementToPrediction(ctx, withIron.ID, iron.ID, 97.5)
	require.NoError(t, err)

	matched, err := env.predictions.ListByElement(ctx, iron.ID)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, withIron.ID, matched[0].ID)
}

func TestUpdatePredictionPatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")

	prediction, err := env.predictions.Create(ctx, 500, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)

	category := "cast iron"
	negative := -1.0
	updated, err := env.predictions.Update(ctx, prediction.ID, types.PredictionPatch{
		Category:  &category,
		PropValue: &negative,
	})
	require.NoError(t, err)
	require.Equal(t, "cast iron", updated.Category)
	require.Equal(t, 0.0, updated.PropValue)
	// untouched fields survive the patch
	require.Equal(t, "hot", updated.RollingType)
}

func TestDeletePredictionRemovesCompositionRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")
	iron := env.seedElement(t, "Iron", 26, "Fe")

	prediction, err := env.predictions.Create(ctx, 500, "steel", model.ID, "hot", person.ID)
	require.NoError(t, err)
	_, err = env.compositions.AddElementToPrediction(ctx, prediction.ID, iron.ID, 97.5)
	require.NoError(t, err)

	require.NoError(t, env.predictions.Delete(ctx, prediction.ID))

	refs, err := env.predicElemRepo.CountByElement(ctx, nil, iron.ID)
	require.NoError(t, err)
	require.Zero(t, refs)
}
