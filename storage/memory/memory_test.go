package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignwala/sessiongate/storage"
)

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, ok, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, storage.KeyAccessToken, "tok"))
	require.NoError(t, s.Set(ctx, storage.KeyIsLoggedIn, "true"))

	value, ok, err := s.Get(ctx, storage.KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", value)

	require.NoError(t, s.Delete(ctx, storage.SessionKeys()...))

	_, ok, err = s.Get(ctx, storage.KeyIsLoggedIn)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Set(ctx, storage.KeyUserType, "user"))
	require.NoError(t, s.Set(ctx, storage.KeyUserType, "admin"))

	value, ok, err := s.Get(ctx, storage.KeyUserType)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "admin", value)
}

func TestDeleteMissingKeyIsNoError(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Delete(context.Background(), "never-set"))
}
