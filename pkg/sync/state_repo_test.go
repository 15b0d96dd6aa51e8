package sync

import (
	"context"
	"testing"

	"github.com/forecal/forecal/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateRepository_LoadToken_Empty(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewStateRepository(db)

	token, err := repo.LoadToken(context.Background(), "primary")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestStateRepository_SaveAndLoadToken(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "primary", "token-1"))

	token, err := repo.LoadToken(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)

	// Saving again overwrites the existing row.
	require.NoError(t, repo.SaveToken(ctx, "primary", "token-2"))
	token, err = repo.LoadToken(ctx, "primary")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)

	// Tokens are kept per calendar.
	other, err := repo.LoadToken(ctx, "team-calendar")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestStateRepository_ClearToken(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	repo := NewStateRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "primary", "token-1"))
	require.NoError(t, repo.SaveToken(ctx, "primary", ""))

	token, err := repo.LoadToken(ctx, "primary")
	require.NoError(t, err)
	assert.Empty(t, token)
}
