package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestAddElementPercentageOutOfRangeRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	for _, pct := range []float64{0, -1, 100.001, 150} {
		_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, pct)
		require.Truef(t, types.IsValidation(err), "percentage %v: expected validation error, got %v", pct, err)
	}

	// nothing was written by the rejected attempts
	shares, err := env.compositions.ListAlloyElements(ctx, alloy.ID)
	require.NoError(t, err)
	require.Empty(t, shares)
}

func TestAddElementDuplicatePreservesStoredPercentage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, 10.5)
	require.NoError(t, err)

	_, err = env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, 20)
	require.True(t, types.IsValidation(err), "duplicate pair should be rejected, got %v", err)

	shares, err := env.compositions.ListAlloyElements(ctx, alloy.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	require.Equal(t, 10.5, shares[0].Percentage)
}

func TestAddElementUnknownParentOrElement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.AddElementToAlloy(ctx, 999, element.ID, 50)
	require.True(t, types.IsValidation(err), "unknown alloy should fail validation, got %v", err)

	_, err = env.compositions.AddElementToAlloy(ctx, alloy.ID, 999, 50)
	require.True(t, types.IsValidation(err), "unknown element should fail validation, got %v", err)
}

func TestRemoveAbsentAssociationFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	err := env.compositions.RemoveElementFromAlloy(ctx, alloy.ID, element.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestRemoveAssociationThenListIsEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, 95.5)
	require.NoError(t, err)
	require.NoError(t, env.compositions.RemoveElementFromAlloy(ctx, alloy.ID, element.ID))

	shares, err := env.compositions.ListAlloyElements(ctx, alloy.ID)
	require.NoError(t, err)
	require.Empty(t, shares)
}

func TestListAlloyElementsReturnsFlatRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	iron := env.seedElement(t, "Iron", 26, "Fe")
	carbon := env.seedElement(t, "Carbon", 6, "C")

	_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, iron.ID, 98.2)
	require.NoError(t, err)
	_, err = env.compositions.AddElementToAlloy(ctx, alloy.ID, carbon.ID, 1.8)
	require.NoError(t, err)

	shares, err := env.compositions.ListAlloyElements(ctx, alloy.ID)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	bySymbol := map[string]types.ElementShare{}
	for _, share := range shares {
		bySymbol[share.ElementSymbol] = share
	}
	require.Equal(t, 98.2, bySymbol["Fe"].Percentage)
	require.Equal(t, "Iron", bySymbol["Fe"].ElementName)
	require.Equal(t, 26, bySymbol["Fe"].ElementAtomicNumber)
	require.Equal(t, 1.8, bySymbol["C"].Percentage)
}

func TestCreateAlloyWithElementsRollsBackOnBadShare(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	iron := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.CreateAlloyWithElements(ctx, 500, "steel", "hot", patent.ID, []ElementPercentage{
		{ElementID: iron.ID, Percentage: 50},
		{ElementID: iron.ID, Percentage: 30}, // duplicate pair fails mid-iteration
	})
	require.Error(t, err)

	// parent and first composition row both rolled back
	alloys, listErr := env.alloys.ListByPatent(ctx, patent.ID)
	require.NoError(t, listErr)
	require.Empty(t, alloys)

	refs, countErr := env.alloyElemRepo.CountByElement(ctx, nil, iron.ID)
	require.NoError(t, countErr)
	require.Zero(t, refs)
}

func TestCreateAlloyWithElementsCapsSingleShare(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	iron := env.seedElement(t, "Iron", 26, "Fe")

	alloy, err := env.compositions.CreateAlloyWithElements(ctx, 500, "steel", "hot", patent.ID, []ElementPercentage{
		{ElementID: iron.ID, Percentage: 150},
	})
	require.NoError(t, err)

	shares, err := env.compositions.ListAlloyElements(ctx, alloy.ID)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	require.Equal(t, 99.999, shares[0].Percentage)
}

func TestCreatePredictionWithElements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")
	iron := env.seedElement(t, "Iron", 26, "Fe")
	carbon := env.seedElement(t, "Carbon", 6, "C")

	prediction, err := env.compositions.CreatePredictionWithElements(ctx, 612.3, "steel", model.ID, "cold", person.ID, []ElementPercentage{
		{ElementID: iron.ID, Percentage: 97.5},
		{ElementID: carbon.ID, Percentage: 2.5},
	})
	require.NoError(t, err)

	shares, err := env.compositions.ListPredictionElements(ctx, prediction.ID)
	require.NoError(t, err)
	require.Len(t, shares, 2)
}

func TestCreatePredictionWithElementsRollsBackOnUnknownElement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	role := env.seedRole(t, "researcher")
	person := env.seedPerson(t, role.ID, "lab", "ada")
	model := env.seedModel(t, "gbt-tensile")
	iron := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.CreatePredictionWithElements(ctx, 612.3, "steel", model.ID, "cold", person.ID, []ElementPercentage{
		{ElementID: iron.ID, Percentage: 97.5},
		{ElementID: 999, Percentage: 2.5},
	})
	require.True(t, types.IsValidation(err), "unknown element should fail validation, got %v", err)

	predictions, listErr := env.predictions.ListByPerson(ctx, person.ID)
	require.NoError(t, listErr)
	require.Empty(t, predictions)

	refs, countErr := env.predicElemRepo.CountByElement(ctx, nil, iron.ID)
	require.NoError(t, countErr)
	require.Zero(t, refs)
}
