package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

const capsuleColumns = "id, title, message, unlock_at, created_at, deleted_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapsule(row rowScanner) (models.Record, error) {
	var r models.Record
	var deletedAt sql.NullString

	if err := row.Scan(&r.ID, &r.Title, &r.Message, &r.UnlockAt, &r.CreatedAt, &deletedAt); err != nil {
		return models.Record{}, err
	}
	r.UnlockAt = r.UnlockAt.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	if deletedAt.Valid {
		r.DeletedAt = &deletedAt.String
	}
	return r, nil
}

func (s *Store) exists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS (SELECT 1 FROM capsules WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check capsule existence: %w", err)
	}
	return exists, nil
}

func (s *Store) AddCapsule(rec models.Record) error {
	exists, err := s.exists(rec.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("capsule with id %s: %w", rec.ID, storage.ErrAlreadyExists)
	}
	return s.save(rec)
}

func (s *Store) UpdateCapsule(rec models.Record) error {
	exists, err := s.exists(rec.ID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("capsule with id %s: %w", rec.ID, storage.ErrNotFound)
	}
	return s.save(rec)
}

func (s *Store) save(rec models.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var deletedAt sql.NullString
	if rec.DeletedAt != nil {
		deletedAt = sql.NullString{String: *rec.DeletedAt, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT INTO capsules (`+capsuleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			message = EXCLUDED.message,
			unlock_at = EXCLUDED.unlock_at,
			created_at = EXCLUDED.created_at,
			deleted_at = EXCLUDED.deleted_at`,
		rec.ID, rec.Title, rec.Message, rec.UnlockAt.UTC(), rec.CreatedAt.UTC(), deletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save capsule: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM capsule_media WHERE capsule_id = $1", rec.ID); err != nil {
		return fmt.Errorf("failed to clear capsule media: %w", err)
	}
	for i, m := range rec.Media {
		if _, err := tx.Exec("INSERT INTO capsule_media (capsule_id, position, kind, ref) VALUES ($1, $2, $3, $4)",
			rec.ID, i, string(m.Kind), m.Ref); err != nil {
			return fmt.Errorf("failed to save capsule media: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetCapsule(id string) (models.Record, error) {
	row := s.db.QueryRow("SELECT "+capsuleColumns+" FROM capsules WHERE id = $1 AND deleted_at IS NULL", id)
	rec, err := scanCapsule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("capsule with id %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Record{}, err
	}

	media, err := s.mediaFor(id)
	if err != nil {
		return models.Record{}, err
	}
	rec.Media = media[id]
	return rec, nil
}

func (s *Store) GetAllCapsules(includeDeleted bool) ([]models.Record, error) {
	query := "SELECT " + capsuleColumns + " FROM capsules"
	if !includeDeleted {
		query += " WHERE deleted_at IS NULL"
	}
	query += " ORDER BY unlock_at, title"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.Record
	for rows.Next() {
		rec, err := scanCapsule(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	media, err := s.mediaFor("")
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].Media = media[recs[i].ID]
	}
	storage.SortByUnlock(recs)
	return recs, nil
}

func (s *Store) mediaFor(id string) (map[string][]models.Media, error) {
	query := "SELECT capsule_id, kind, ref FROM capsule_media"
	var args []any
	if id != "" {
		query += " WHERE capsule_id = $1"
		args = append(args, id)
	}
	query += " ORDER BY capsule_id, position"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load capsule media: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Media)
	for rows.Next() {
		var capsuleID, kind, ref string
		if err := rows.Scan(&capsuleID, &kind, &ref); err != nil {
			return nil, err
		}
		out[capsuleID] = append(out[capsuleID], models.Media{Kind: models.MediaKind(kind), Ref: ref})
	}
	return out, rows.Err()
}

func (s *Store) deletedAt(id string) (sql.NullString, error) {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM capsules WHERE id = $1", id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return deletedAt, fmt.Errorf("capsule with id %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return deletedAt, fmt.Errorf("failed to check capsule existence: %w", err)
	}
	return deletedAt, nil
}

func (s *Store) DeleteCapsule(id string) error {
	deletedAt, err := s.deletedAt(id)
	if err != nil {
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("capsule with id %s is %w", id, storage.ErrAlreadyDeleted)
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE capsules SET deleted_at = $1 WHERE id = $2", stamp, id)
	return err
}

func (s *Store) RestoreCapsule(id string) error {
	deletedAt, err := s.deletedAt(id)
	if err != nil {
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore capsule %s: %w", id, storage.ErrNotDeleted)
	}

	_, err = s.db.Exec("UPDATE capsules SET deleted_at = NULL WHERE id = $1", id)
	return err
}
