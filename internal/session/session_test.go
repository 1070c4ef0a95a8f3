package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askai/client/internal/repository"
)

type failingStore struct{ repository.CredentialRepository }

func (failingStore) GetCredential(context.Context, string) (string, error) {
	return "", errors.New("database is locked")
}

func TestSession_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := New(repository.NewMemoryRepository(), "view-1")

	assert.Equal(t, "", s.Token(ctx))
	assert.Error(t, s.Set(ctx, ""))

	require.NoError(t, s.Set(ctx, "tok-1"))
	assert.Equal(t, "tok-1", s.Token(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, "", s.Token(ctx))
}

func TestSession_ClearIf(t *testing.T) {
	ctx := context.Background()
	s := New(repository.NewMemoryRepository(), "view-1")
	require.NoError(t, s.Set(ctx, "new-token"))

	cleared, err := s.ClearIf(ctx, "old-token")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Equal(t, "new-token", s.Token(ctx))

	cleared, err = s.ClearIf(ctx, "new-token")
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Equal(t, "", s.Token(ctx))

	cleared, err = s.ClearIf(ctx, "new-token")
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestSession_StoreFailureReadsAsSignedOut(t *testing.T) {
	s := New(failingStore{repository.NewMemoryRepository()}, "view-1")
	assert.Equal(t, "", s.Token(context.Background()))
}
