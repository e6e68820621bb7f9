package storage

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/timecapsule/internal/models"
)

// FindCapsule resolves a full id or a unique id prefix, the way ids are
// shown abbreviated by `capsule list`. Soft deleted capsules only match
// when includeDeleted is set.
func FindCapsule(p Provider, idOrPrefix string, includeDeleted bool) (models.Record, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return models.Record{}, fmt.Errorf("capsule id: %w", ErrNotFound)
	}

	rec, err := p.GetCapsule(idOrPrefix)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Record{}, err
	}

	all, err := p.GetAllCapsules(includeDeleted)
	if err != nil {
		return models.Record{}, err
	}
	var matches []models.Record
	for _, r := range all {
		if r.ID == idOrPrefix {
			return r, nil
		}
		if strings.HasPrefix(r.ID, idOrPrefix) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return models.Record{}, fmt.Errorf("capsule %s: %w", idOrPrefix, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return models.Record{}, fmt.Errorf("%w: %s matches %d capsules", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}

// SortByUnlock orders records by unlock date, then title
func SortByUnlock(recs []models.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].UnlockAt.Equal(recs[j].UnlockAt) {
			return recs[i].UnlockAt.Before(recs[j].UnlockAt)
		}
		return recs[i].Title < recs[j].Title
	})
}

// ShortID is the abbreviated id shown in listings
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
