// Package demo provides a small set of sample capsules for `capsule init --demo`.
package demo

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timecapsule/internal/models"
)

const day = 24 * time.Hour

const futureMeLetter = `Dear Future Me,

I hope this message finds you well and happy. As I write this, I'm sitting by the window on a rainy afternoon, thinking about all the dreams we have.

Remember to be kind to yourself. Every step forward, no matter how small, is still progress.

With love,
Your Past Self 💜`

// Capsules returns the sample capsules with unlock dates relative to now:
// three still locked and one that opened yesterday.
func Capsules(now time.Time) []models.Record {
	now = now.UTC()
	return []models.Record{
		{
			ID:        uuid.NewString(),
			Title:     "Message to Future Me",
			Message:   futureMeLetter,
			Media:     []models.Media{{Kind: models.MediaImage, Ref: "photos/rainy-window.jpg"}},
			UnlockAt:  now.Add(30 * day),
			CreatedAt: now,
		},
		{
			ID:      uuid.NewString(),
			Title:   "Our Anniversary Memories 💕",
			Message: "Happy anniversary! Look how far we've come.",
			Media: []models.Media{
				{Kind: models.MediaImage, Ref: "photos/first-date.jpg"},
				{Kind: models.MediaVideo, Ref: "videos/wedding-toast.mp4"},
			},
			UnlockAt:  now.Add(365 * day),
			CreatedAt: now,
		},
		{
			ID:        uuid.NewString(),
			Title:     "Birthday Surprise for Sarah",
			Message:   "Happy birthday, Sarah! We planned this one a whole year ago. 🎂",
			Media:     []models.Media{{Kind: models.MediaImage, Ref: "photos/party.png"}},
			UnlockAt:  now.Add(-day),
			CreatedAt: now.Add(-365 * day),
		},
		{
			ID:        uuid.NewString(),
			Title:     "Graduation Day Reflections",
			Message:   "Whatever comes next, remember the late nights were worth it.",
			UnlockAt:  now.Add(180 * day),
			CreatedAt: now,
		},
	}
}
