package models

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/julianstephens/timecapsule/internal/countdown"
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// ErrUnsupportedMedia is returned for references whose extension is neither
// a known image nor a known video format
var ErrUnsupportedMedia = errors.New("unsupported media type")

var mediaExtensions = map[string]MediaKind{
	".png":  MediaImage,
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".gif":  MediaImage,
	".webp": MediaImage,
	".mp4":  MediaVideo,
	".mov":  MediaVideo,
	".webm": MediaVideo,
}

// Media is a reference to a photo or video attached to a capsule. Ref is a
// local path or a URL; the file itself is never copied.
type Media struct {
	Kind MediaKind `json:"kind" toml:"kind"`
	Ref  string    `json:"ref" toml:"ref"`
}

// InferMediaKind derives the kind of a reference from its extension.
// Query strings and fragments on URLs are ignored.
func InferMediaKind(ref string) (MediaKind, error) {
	clean := strings.TrimSpace(ref)
	if clean == "" {
		return "", fmt.Errorf("%w: empty reference", ErrUnsupportedMedia)
	}
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	ext := strings.ToLower(path.Ext(clean))
	kind, ok := mediaExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMedia, ref)
	}
	return kind, nil
}

// NewMedia builds a Media value with its kind inferred from ref
func NewMedia(ref string) (Media, error) {
	kind, err := InferMediaKind(ref)
	if err != nil {
		return Media{}, err
	}
	return Media{Kind: kind, Ref: strings.TrimSpace(ref)}, nil
}

// Record is the stored form of a capsule. Whether it is locked is never
// stored; use Resolve to get a Capsule for a given instant.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Media     []Media   `json:"media,omitempty"`
	UnlockAt  time.Time `json:"unlock_at"`
	CreatedAt time.Time `json:"created_at"`
	DeletedAt *string   `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Capsule is either a LockedCapsule or an UnlockedCapsule
type Capsule interface {
	CapsuleID() string
	CapsuleTitle() string
	UnlockTime() time.Time
	Created() time.Time
	IsUnlocked() bool

	sealed()
}

// LockedCapsule exposes only what may be shown before the unlock date
type LockedCapsule struct {
	ID         string
	Title      string
	UnlockAt   time.Time
	CreatedAt  time.Time
	HasMessage bool
	MediaCount int
	Images     int
	Videos     int
}

func (c LockedCapsule) CapsuleID() string     { return c.ID }
func (c LockedCapsule) CapsuleTitle() string  { return c.Title }
func (c LockedCapsule) UnlockTime() time.Time { return c.UnlockAt }
func (c LockedCapsule) Created() time.Time    { return c.CreatedAt }
func (c LockedCapsule) IsUnlocked() bool      { return false }
func (LockedCapsule) sealed()                 {}

// Remaining returns the countdown to the unlock date at now
func (c LockedCapsule) Remaining(now time.Time) countdown.Remaining {
	return countdown.Compute(c.UnlockAt, now)
}

// UnlockedCapsule carries the full contents
type UnlockedCapsule struct {
	ID        string
	Title     string
	UnlockAt  time.Time
	CreatedAt time.Time
	Message   string
	Media     []Media
}

func (c UnlockedCapsule) CapsuleID() string     { return c.ID }
func (c UnlockedCapsule) CapsuleTitle() string  { return c.Title }
func (c UnlockedCapsule) UnlockTime() time.Time { return c.UnlockAt }
func (c UnlockedCapsule) Created() time.Time    { return c.CreatedAt }
func (c UnlockedCapsule) IsUnlocked() bool      { return true }
func (UnlockedCapsule) sealed()                 {}

// Resolve returns the view of rec that is allowed at now
func Resolve(rec Record, now time.Time) Capsule {
	if countdown.IsUnlocked(rec.UnlockAt, now) {
		media := make([]Media, len(rec.Media))
		copy(media, rec.Media)
		return UnlockedCapsule{
			ID:        rec.ID,
			Title:     rec.Title,
			UnlockAt:  rec.UnlockAt,
			CreatedAt: rec.CreatedAt,
			Message:   rec.Message,
			Media:     media,
		}
	}

	images, videos := CountMedia(rec.Media)
	return LockedCapsule{
		ID:         rec.ID,
		Title:      rec.Title,
		UnlockAt:   rec.UnlockAt,
		CreatedAt:  rec.CreatedAt,
		HasMessage: strings.TrimSpace(rec.Message) != "",
		MediaCount: len(rec.Media),
		Images:     images,
		Videos:     videos,
	}
}

// ResolveAll resolves every record at the same instant
func ResolveAll(recs []Record, now time.Time) []Capsule {
	out := make([]Capsule, 0, len(recs))
	for _, r := range recs {
		out = append(out, Resolve(r, now))
	}
	return out
}

// CountMedia returns the number of images and videos in media
func CountMedia(media []Media) (images, videos int) {
	for _, m := range media {
		switch m.Kind {
		case MediaImage:
			images++
		case MediaVideo:
			videos++
		}
	}
	return images, videos
}

// Stats summarises a set of capsules for the dashboard
type Stats struct {
	Total     int
	Locked    int
	Unlocked  int
	WithMedia int
}

// ComputeStats counts capsules by state at now
func ComputeStats(recs []Record, now time.Time) Stats {
	var s Stats
	for _, r := range recs {
		s.Total++
		if countdown.IsUnlocked(r.UnlockAt, now) {
			s.Unlocked++
		} else {
			s.Locked++
		}
		if len(r.Media) > 0 {
			s.WithMedia++
		}
	}
	return s
}

// Chips lists the content labels shown on a capsule card
func (r Record) Chips() []string {
	var chips []string
	if strings.TrimSpace(r.Message) != "" {
		chips = append(chips, "Message")
	}
	images, videos := CountMedia(r.Media)
	if images > 0 {
		chips = append(chips, "Photo")
	}
	if videos > 0 {
		chips = append(chips, "Video")
	}
	return chips
}
