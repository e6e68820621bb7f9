package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferMediaKind(t *testing.T) {
	tests := []struct {
		ref     string
		want    MediaKind
		wantErr bool
	}{
		{"beach.jpg", MediaImage, false},
		{"/home/me/Pictures/Cake.PNG", MediaImage, false},
		{"https://example.com/a/b.webp?size=large", MediaImage, false},
		{"clip.mov", MediaVideo, false},
		{"https://cdn.example.com/v.mp4#t=10", MediaVideo, false},
		{"notes.txt", "", true},
		{"noextension", "", true},
		{"  ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := InferMediaKind(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMedia)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sampleRecord(unlockAt time.Time) Record {
	return Record{
		ID:        "c1",
		Title:     "Message to Future Me",
		Message:   "Hello future me",
		Media:     []Media{{Kind: MediaImage, Ref: "a.jpg"}, {Kind: MediaVideo, Ref: "b.mp4"}},
		UnlockAt:  unlockAt,
		CreatedAt: unlockAt.Add(-48 * time.Hour),
	}
}

func TestResolve_Locked(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	c := Resolve(sampleRecord(now.Add(time.Hour)), now)

	locked, ok := c.(LockedCapsule)
	require.True(t, ok, "expected LockedCapsule, got %T", c)
	assert.False(t, c.IsUnlocked())
	assert.True(t, locked.HasMessage)
	assert.Equal(t, 2, locked.MediaCount)
	assert.Equal(t, 1, locked.Images)
	assert.Equal(t, 1, locked.Videos)
	assert.Equal(t, 1, locked.Remaining(now).Hours)
}

func TestResolve_Unlocked(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rec := sampleRecord(now)
	c := Resolve(rec, now)

	unlocked, ok := c.(UnlockedCapsule)
	require.True(t, ok, "expected UnlockedCapsule, got %T", c)
	assert.Equal(t, rec.Message, unlocked.Message)
	assert.Equal(t, rec.Media, unlocked.Media)

	// the resolved view does not alias the record
	unlocked.Media[0].Ref = "changed.jpg"
	assert.Equal(t, "a.jpg", rec.Media[0].Ref)
}

func TestResolve_ZeroUnlockDate(t *testing.T) {
	c := Resolve(Record{ID: "x", Title: "broken"}, time.Now())
	assert.True(t, c.IsUnlocked())
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	recs := []Record{
		sampleRecord(now.Add(24 * time.Hour)),
		sampleRecord(now.Add(-24 * time.Hour)),
		{ID: "c3", Title: "text only", Message: "hi", UnlockAt: now.Add(time.Minute)},
	}

	assert.Equal(t, Stats{Total: 3, Locked: 2, Unlocked: 1, WithMedia: 2}, ComputeStats(recs, now))
	assert.Len(t, ResolveAll(recs, now), 3)
}

func TestChips(t *testing.T) {
	rec := sampleRecord(time.Now())
	assert.Equal(t, []string{"Message", "Photo", "Video"}, rec.Chips())

	assert.Nil(t, Record{}.Chips())
	assert.Equal(t, []string{"Photo"}, Record{Media: []Media{{Kind: MediaImage, Ref: "x.png"}}}.Chips())
}
