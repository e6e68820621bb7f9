// Package exchange moves capsules in and out of a TOML file so they can be
// copied between stores or kept under version control.
package exchange

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported export version")
	ErrInvalidEntry       = errors.New("invalid capsule entry")
)

type Document struct {
	Version    int       `toml:"version"`
	ExportedAt time.Time `toml:"exported_at"`
	Capsules   []Entry   `toml:"capsules"`
}

type Entry struct {
	ID        string         `toml:"id"`
	Title     string         `toml:"title"`
	Message   string         `toml:"message,multiline"`
	UnlockAt  time.Time      `toml:"unlock_at"`
	CreatedAt time.Time      `toml:"created_at"`
	Media     []models.Media `toml:"media,omitempty"`
}

// Encode writes recs as a version 1 document
func Encode(w io.Writer, recs []models.Record, now time.Time) error {
	doc := Document{
		Version:    constants.ExportVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		Capsules:   make([]Entry, 0, len(recs)),
	}
	for _, r := range recs {
		doc.Capsules = append(doc.Capsules, Entry{
			ID:        r.ID,
			Title:     r.Title,
			Message:   r.Message,
			UnlockAt:  r.UnlockAt.UTC(),
			CreatedAt: r.CreatedAt.UTC(),
			Media:     r.Media,
		})
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(doc)
}

// Decode reads and validates a document. Entries without an id get a new
// one; a missing created_at becomes now.
func Decode(r io.Reader, now time.Time) ([]models.Record, error) {
	var doc Document
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse export file: %w", err)
	}
	if doc.Version != constants.ExportVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, doc.Version)
	}

	recs := make([]models.Record, 0, len(doc.Capsules))
	for i, e := range doc.Capsules {
		rec, err := e.record(now)
		if err != nil {
			return nil, fmt.Errorf("capsule %d: %w", i+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (e Entry) record(now time.Time) (models.Record, error) {
	if strings.TrimSpace(e.Title) == "" {
		return models.Record{}, fmt.Errorf("%w: title is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Message) == "" {
		return models.Record{}, fmt.Errorf("%w: message is required", ErrInvalidEntry)
	}
	if e.UnlockAt.IsZero() {
		return models.Record{}, fmt.Errorf("%w: unlock_at is required", ErrInvalidEntry)
	}
	if len(e.Media) > constants.MaxMediaPerCapsule {
		return models.Record{}, fmt.Errorf("%w: at most %d media items", ErrInvalidEntry, constants.MaxMediaPerCapsule)
	}

	media := make([]models.Media, 0, len(e.Media))
	for _, m := range e.Media {
		kind, err := models.InferMediaKind(m.Ref)
		if err != nil {
			return models.Record{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
		if m.Kind != "" && m.Kind != kind {
			return models.Record{}, fmt.Errorf("%w: %s is %s, not %s", ErrInvalidEntry, m.Ref, kind, m.Kind)
		}
		media = append(media, models.Media{Kind: kind, Ref: m.Ref})
	}

	rec := models.Record{
		ID:        e.ID,
		Title:     strings.TrimSpace(e.Title),
		Message:   e.Message,
		Media:     media,
		UnlockAt:  e.UnlockAt.UTC(),
		CreatedAt: e.CreatedAt.UTC(),
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		rec.CreatedAt = now.UTC()
	}
	return rec, nil
}

// Export writes every active capsule in store to path and returns the count
func Export(store storage.Provider, path string, now time.Time) (int, error) {
	recs, err := store.GetAllCapsules(false)
	if err != nil {
		return 0, fmt.Errorf("failed to read capsules: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, recs, now); err != nil {
		return 0, fmt.Errorf("failed to encode capsules: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(recs), nil
}

// Result counts what Import did
type Result struct {
	Added   int
	Skipped int
}

// Import adds the capsules in path to store. Capsules whose id already
// exists, deleted or not, are skipped.
func Import(store storage.Provider, path string, now time.Time) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Decode(f, now)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, rec := range recs {
		err := store.AddCapsule(rec)
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, storage.ErrAlreadyExists):
			res.Skipped++
		default:
			return res, fmt.Errorf("failed to import %q: %w", rec.Title, err)
		}
	}
	return res, nil
}
