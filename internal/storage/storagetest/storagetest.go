// Package storagetest is a behavioural suite shared by every
// storage.Provider implementation.
package storagetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

// Factory returns an initialised, empty store. It should register its own
// cleanup with t.
type Factory func(t *testing.T) storage.Provider

// Run executes the suite, each case against a fresh store
func Run(t *testing.T, newStore Factory) {
	t.Run("Profile", func(t *testing.T) { testProfile(t, newStore(t)) })
	t.Run("CapsuleRoundTrip", func(t *testing.T) { testCapsuleRoundTrip(t, newStore(t)) })
	t.Run("AddDuplicate", func(t *testing.T) { testAddDuplicate(t, newStore(t)) })
	t.Run("Update", func(t *testing.T) { testUpdate(t, newStore(t)) })
	t.Run("SoftDelete", func(t *testing.T) { testSoftDelete(t, newStore(t)) })
	t.Run("Ordering", func(t *testing.T) { testOrdering(t, newStore(t)) })
	t.Run("FindByPrefix", func(t *testing.T) { testFindByPrefix(t, newStore(t)) })
	t.Run("SchemaStatus", func(t *testing.T) { testSchemaStatus(t, newStore(t)) })
}

var base = time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

// Record builds a capsule unlocking the given number of days after a fixed
// reference date
func Record(title string, days int, media ...models.Media) models.Record {
	return models.Record{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   "message for " + title,
		Media:     media,
		UnlockAt:  base.Add(time.Duration(days) * 24 * time.Hour),
		CreatedAt: base,
	}
}

func testProfile(t *testing.T, s storage.Provider) {
	_, err := s.GetProfile()
	require.ErrorIs(t, err, storage.ErrNotFound)

	first := models.Profile{ID: "prof_1", Name: "Alex", Email: "alex@example.com", CreatedAt: base}
	require.NoError(t, s.SaveProfile(first))

	got, err := s.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Email, got.Email)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))

	second := models.Profile{ID: "prof_2", Name: "Sam", Email: "sam@example.com", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, s.SaveProfile(second))

	got, err = s.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, "prof_2", got.ID, "saving replaces the single profile")
}

func testCapsuleRoundTrip(t *testing.T, s storage.Provider) {
	rec := Record("Anniversary", 365,
		models.Media{Kind: models.MediaImage, Ref: "first-date.jpg"},
		models.Media{Kind: models.MediaVideo, Ref: "toast.mp4"},
	)
	require.NoError(t, s.AddCapsule(rec))

	got, err := s.GetCapsule(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, rec.Message, got.Message)
	assert.Equal(t, rec.Media, got.Media, "media order is preserved")
	assert.True(t, rec.UnlockAt.Equal(got.UnlockAt))
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.DeletedAt)

	_, err = s.GetCapsule("missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testAddDuplicate(t *testing.T, s storage.Provider) {
	rec := Record("Once", 1)
	require.NoError(t, s.AddCapsule(rec))
	assert.ErrorIs(t, s.AddCapsule(rec), storage.ErrAlreadyExists)
}

func testUpdate(t *testing.T, s storage.Provider) {
	rec := Record("Draft", 10, models.Media{Kind: models.MediaImage, Ref: "a.png"})
	assert.ErrorIs(t, s.UpdateCapsule(rec), storage.ErrNotFound)

	require.NoError(t, s.AddCapsule(rec))
	rec.Title = "Final"
	rec.Media = []models.Media{{Kind: models.MediaVideo, Ref: "b.webm"}}
	require.NoError(t, s.UpdateCapsule(rec))

	got, err := s.GetCapsule(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, rec.Media, got.Media)
}

func testSoftDelete(t *testing.T, s storage.Provider) {
	rec := Record("Secret", 30)
	require.NoError(t, s.AddCapsule(rec))

	require.NoError(t, s.DeleteCapsule(rec.ID))

	_, err := s.GetCapsule(rec.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	active, err := s.GetAllCapsules(false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := s.GetAllCapsules(true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].DeletedAt)
	_, err = time.Parse(time.RFC3339, *all[0].DeletedAt)
	assert.NoError(t, err, "deleted_at is RFC3339")

	assert.ErrorIs(t, s.DeleteCapsule(rec.ID), storage.ErrAlreadyDeleted)
	assert.ErrorIs(t, s.DeleteCapsule("missing"), storage.ErrNotFound)

	require.NoError(t, s.RestoreCapsule(rec.ID))
	got, err := s.GetCapsule(rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DeletedAt)

	assert.ErrorIs(t, s.RestoreCapsule(rec.ID), storage.ErrNotDeleted)
	assert.ErrorIs(t, s.RestoreCapsule("missing"), storage.ErrNotFound)
}

func testOrdering(t *testing.T, s storage.Provider) {
	later := Record("Later", 100)
	sooner := Record("Sooner", 5)
	past := Record("Past", -1)
	for _, r := range []models.Record{later, sooner, past} {
		require.NoError(t, s.AddCapsule(r))
	}

	all, err := s.GetAllCapsules(false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Past", "Sooner", "Later"}, []string{all[0].Title, all[1].Title, all[2].Title})
}

func testFindByPrefix(t *testing.T, s storage.Provider) {
	a := Record("A", 1)
	a.ID = "aaaa1111-0000-0000-0000-000000000000"
	b := Record("B", 2)
	b.ID = "aaaa2222-0000-0000-0000-000000000000"
	require.NoError(t, s.AddCapsule(a))
	require.NoError(t, s.AddCapsule(b))

	got, err := storage.FindCapsule(s, "aaaa1", false)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = storage.FindCapsule(s, "aaaa", false)
	assert.ErrorIs(t, err, storage.ErrAmbiguousID)

	_, err = storage.FindCapsule(s, "zzzz", false)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.DeleteCapsule(a.ID))
	_, err = storage.FindCapsule(s, "aaaa1", false)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err = storage.FindCapsule(s, "aaaa1", true)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}

func testSchemaStatus(t *testing.T, s storage.Provider) {
	st, err := s.SchemaStatus()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, st.Current, 1)
	assert.Equal(t, 0, st.Pending())
}
