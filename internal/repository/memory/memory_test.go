package memory

import (
	"testing"
	"time"

	"tajwid-pintar-be/internal/entity"
	"tajwid-pintar-be/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Minute)
	s := entity.NewChatSession("s1", time.Now())
	repo.Save(s)

	got, ok := repo.Get("s1")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = repo.Get("s2")
	assert.False(t, ok)
}

func TestLockoutRepository(t *testing.T) {
	repo := NewLockoutRepository(time.Minute)
	ctx := t.Context()

	state, err := repo.Load(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, auth.State{}, state)

	locked := auth.State{LockUntil: time.Date(2025, 1, 1, 0, 0, 30, 0, time.UTC)}
	require.NoError(t, repo.Save(ctx, "client", locked))
	state, err = repo.Load(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, locked, state)

	require.NoError(t, repo.Save(ctx, "client", auth.State{}))
	assert.Zero(t, repo.cache.ItemCount())
}
