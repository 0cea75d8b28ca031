package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synastry-service/models"
)

func profile(id, username string, created time.Time) models.Profile {
	return models.Profile{
		ID:        id,
		Username:  username,
		BirthDate: "1990-01-01",
		BirthTime: "12:00",
		Gender:    models.GenderWoman,
		CreatedAt: created,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, profile("b", "bob", base.Add(time.Hour))))
	require.NoError(t, s.Create(ctx, profile("a", "alice", base)))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a"), ErrNotFound)

	// username is free again after delete
	require.NoError(t, s.Create(ctx, profile("c", "Alice", base)))
}

func TestMemoryStoreUniqueUsername(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Create(ctx, profile("a", "alice", time.Time{})))
	assert.ErrorIs(t, s.Create(ctx, profile("b", "ALICE", time.Time{})), ErrAlreadyExists)
	assert.ErrorIs(t, s.Create(ctx, profile("a", "other", time.Time{})), ErrAlreadyExists)
	assert.Error(t, s.Create(ctx, profile("", "nobody", time.Time{})))
}

func TestMemoryStoreCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.Create(ctx, profile("a", "alice", time.Time{})), context.Canceled)
	_, err := s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
