package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNoteRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store lists empty", func(t *testing.T) {
		repo := NewNoteRepository(newTestKV(t))

		notes, err := repo.List(ctx)
		require.NoError(t, err)
		require.NotNil(t, notes)
		require.Empty(t, notes)
	})

	t.Run("save prepends newest first", func(t *testing.T) {
		repo := NewNoteRepository(newTestKV(t))

		first, err := repo.Save(ctx, "First", "content one", "finance", []string{"ref1"})
		require.NoError(t, err)
		second, err := repo.Save(ctx, "Second", "content two", "technology", nil)
		require.NoError(t, err)

		notes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		require.Equal(t, second.ID, notes[0].ID)
		require.Equal(t, first.ID, notes[1].ID)
		require.Equal(t, []string{"ref1"}, notes[1].References)
		require.NotEqual(t, first.ID, second.ID)
		require.False(t, first.CreatedAt.IsZero())
	})

	t.Run("get by id", func(t *testing.T) {
		repo := NewNoteRepository(newTestKV(t))

		saved, err := repo.Save(ctx, "Title", "content", "default", nil)
		require.NoError(t, err)

		got, err := repo.Get(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, "Title", got.Title)

		missing, err := repo.Get(ctx, "no-such-id")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		repo := NewNoteRepository(newTestKV(t))

		keep, err := repo.Save(ctx, "Keep", "content", "default", nil)
		require.NoError(t, err)
		drop, err := repo.Save(ctx, "Drop", "content", "default", nil)
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, drop.ID))

		notes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.Equal(t, keep.ID, notes[0].ID)

		// Deleting an unknown ID is a no-op.
		require.NoError(t, repo.Delete(ctx, "no-such-id"))
	})

	t.Run("corrupt value reads as empty", func(t *testing.T) {
		kv := newTestKV(t)
		require.NoError(t, kv.Set(ctx, KeyNotes, []byte("{not json")))

		repo := NewNoteRepository(kv)
		notes, err := repo.List(ctx)
		require.NoError(t, err)
		require.Empty(t, notes)
	})
}

func TestResearchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewResearchRepository(newTestKV(t))

	first, err := repo.Save(ctx, "AI chips", "raw research", "technology")
	require.NoError(t, err)
	second, err := repo.Save(ctx, "Rates outlook", "more research", "finance")
	require.NoError(t, err)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, second.ID, items[0].ID)

	got, err := repo.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "AI chips", got.Title)

	require.NoError(t, repo.Delete(ctx, first.ID))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, second.ID, items[0].ID)
}
