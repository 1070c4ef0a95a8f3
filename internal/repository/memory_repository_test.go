package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askai/client/internal/repository"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()

	_, err := repo.GetCredential(ctx, "cli")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.SaveCredential(ctx, "cli", "tok-1"))
	require.NoError(t, repo.SaveCredential(ctx, "other", "tok-2"))

	token, err := repo.GetCredential(ctx, "cli")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	require.NoError(t, repo.DeleteCredential(ctx, "cli"))
	require.NoError(t, repo.DeleteCredential(ctx, "cli"))

	_, err = repo.GetCredential(ctx, "cli")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	token, err = repo.GetCredential(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}
