package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Revoke(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	revoked, err := s.IsSessionRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.RevokeSession(ctx, "a", time.Hour))

	revoked, err = s.IsSessionRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStore_RevocationLapses(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.RevokeSession(ctx, "a", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	revoked, err := s.IsSessionRevoked(ctx, "a")
	require.NoError(t, err)
	assert.False(t, revoked)

	// A later revocation sweeps the stale entry
	require.NoError(t, s.RevokeSession(ctx, "b", time.Hour))
	assert.NotContains(t, s.(*MemoryStore).revoked, "a")
}

func TestMemoryStore_BearerToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.BearerToken(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveBearerToken(ctx, "a", "backend-jwt", time.Hour))
	bearer, ok, err := s.BearerToken(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "backend-jwt", bearer)

	require.NoError(t, s.RevokeSession(ctx, "a", time.Hour))
	_, ok, err = s.BearerToken(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_BearerLapses(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.SaveBearerToken(ctx, "a", "backend-jwt", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := s.BearerToken(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}
