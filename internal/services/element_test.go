package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

func TestCreateElementReturnsExistingRowOnDuplicateSymbol(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.elements.Create(ctx, "Iron", 26, "Fe")
	require.NoError(t, err)

	second, err := env.elements.Create(ctx, "IronAgain", 26, "Fe")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "Iron", second.Name)
}

func TestCreateElementRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.elements.Create(ctx, "Iron", 26, "Iron")
	require.True(t, types.IsValidation(err), "overlong symbol should fail validation, got %v", err)

	_, err = env.elements.Create(ctx, "", 26, "Fe")
	require.True(t, types.IsValidation(err), "empty name should fail validation, got %v", err)

	_, err = env.elements.Create(ctx, "Iron", 0, "Fe")
	require.True(t, types.IsValidation(err), "non-positive atomic number should fail validation, got %v", err)
}

func TestGetElementBySymbolMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.elements.GetBySymbol(context.Background(), "Xx")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteElementReferencedByCompositionConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patent := env.seedPatent(t)
	alloy := env.seedAlloy(t, patent.ID)
	element := env.seedElement(t, "Iron", 26, "Fe")

	_, err := env.compositions.AddElementToAlloy(ctx, alloy.ID, element.ID, 95.5)
	require.NoError(t, err)

	err = env.elements.Delete(ctx, element.ID)
	require.ErrorIs(t, err, types.ErrConflict)

	// still retrievable after the refused delete
	_, err = env.elements.GetByID(ctx, element.ID)
	require.NoError(t, err)
}

func TestDeleteElementMissing(t *testing.T) {
	env := newTestEnv(t)

	err := env.elements.Delete(context.Background(), 4242)
	require.ErrorIs(t, err, types.ErrNotFound)
}
