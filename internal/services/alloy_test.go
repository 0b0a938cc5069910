package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreateAlloyClampsNegativePropValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)

	alloy, err := env.alloys.Create(ctx, -12.5, "steel", "hot", patent.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, alloy.PropValue)

	stored, err := env.alloys.GetByID(ctx, alloy.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, stored.PropValue)
}

func TestUpdateAlloyClampsNegativePropValue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)

	bad := -3.0
	updated, err := env.alloys.Update(ctx, alloy.ID, types.AlloyPatch{PropValue: &bad})
	require.NoError(t, err)
	require.Equal(t, 0.0, updated.PropValue)
}

func TestCreateAlloyUnknownPatentRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.alloys.Create(context.Background(), 100, "steel", "hot", 999)
	require.True(t, types.IsValidation(err), "expected validation error, got %v", err)
}

func TestAlloyListPaginationIsExact(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)

	created := make([]uint, 0, 25)
	for i := 0; i < 25; i++ {
		alloy, err := env.alloys.Create(ctx, float64(i), "steel", "hot", patent.ID)
		require.NoError(t, err)
		created = append(created, alloy.ID)
	}

	page, err := env.alloys.List(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)
	for i, alloy := range page {
		require.Equal(t, created[10+i], alloy.ID)
	}

	tail, err := env.alloys.List(ctx, 20, 100)
	require.NoError(t, err)
	require.Len(t, tail, 5)
}

func TestAlloyListEmptyIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.alloys.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Empty(t, page)
}

func TestDeleteAlloyRemovesCompositionRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, 95.5)
	require.NoError(t, err)

	require.NoError(t, env.alloys.Delete(ctx, alloy.ID))

	_, err = env.alloys.GetByID(ctx, alloy.ID)
	require.ErrorIs(t, err, types.ErrNotFound)

	refs, err := env.alloyElemRepo.CountByElement(ctx, nil, element.ID)
	require.NoError(t, err)
	require.Zero(t, refs)
}

func TestDeletePatentWithAlloysConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	patent := env.seedPatent(t)
	env.seedAlloy(t, patent.ID)

	err := env.patents.Delete(ctx, patent.ID)
	require.ErrorIs(t, err, types.ErrConflict)
}
