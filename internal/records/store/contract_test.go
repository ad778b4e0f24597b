package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applicant-records/internal/records/models"
	"applicant-records/internal/records/store"
)

// runNoteStoreContract exercises the behaviour every NoteStore backend shares.
// The store must start without notes.
func runNoteStoreContract(t *testing.T, notes store.NoteStore) {
	ctx := context.Background()

	t.Run("find on an empty collection returns an empty slice", func(t *testing.T) {
		all, err := notes.Find(ctx, store.Filter{})
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	first := &models.Note{ApplicantID: "a1", NoteID: "note_aaaaaaaa", Content: "hello"}
	second := &models.Note{ApplicantID: "a2", NoteID: "note_bbbbbbbb", Content: "world"}

	t.Run("insert assigns an identity", func(t *testing.T) {
		require.NoError(t, notes.Insert(ctx, first))
		require.NoError(t, notes.Insert(ctx, second))
		assert.False(t, first.ID.IsZero())
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("find filters by applicant", func(t *testing.T) {
		got, err := notes.Find(ctx, store.ByApplicant("a1"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, *first, got[0])

		none, err := notes.Find(ctx, store.ByApplicant("nobody"))
		require.NoError(t, err)
		assert.Empty(t, none)

		all, err := notes.Find(ctx, store.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("update distinguishes matched from modified", func(t *testing.T) {
		res, err := notes.UpdateContent(ctx, first.NoteID, "hello")
		require.NoError(t, err)
		assert.Equal(t, store.UpdateResult{Matched: 1, Modified: 0}, res)

		res, err = notes.UpdateContent(ctx, first.NoteID, "changed")
		require.NoError(t, err)
		assert.Equal(t, store.UpdateResult{Matched: 1, Modified: 1}, res)

		got, err := notes.Find(ctx, store.ByApplicant("a1"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "changed", got[0].Content)

		res, err = notes.UpdateContent(ctx, "note_missing0", "x")
		require.NoError(t, err)
		assert.Equal(t, store.UpdateResult{}, res)
	})

	t.Run("update to empty content is a change", func(t *testing.T) {
		res, err := notes.UpdateContent(ctx, second.NoteID, "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Modified)
	})

	t.Run("delete removes one note", func(t *testing.T) {
		n, err := notes.Delete(ctx, first.NoteID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = notes.Delete(ctx, first.NoteID)
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := notes.Find(ctx, store.ByApplicant("a1"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("duplicate note ids act on the first match only", func(t *testing.T) {
		dupA := &models.Note{ApplicantID: "a3", NoteID: "note_dddddddd", Content: "one"}
		dupB := &models.Note{ApplicantID: "a3", NoteID: "note_dddddddd", Content: "two"}
		require.NoError(t, notes.Insert(ctx, dupA))
		require.NoError(t, notes.Insert(ctx, dupB))

		n, err := notes.Delete(ctx, "note_dddddddd")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		left, err := notes.Find(ctx, store.ByApplicant("a3"))
		require.NoError(t, err)
		assert.Len(t, left, 1)
	})
}
