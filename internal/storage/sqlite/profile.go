package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/storage"
)

func (s *Store) GetProfile() (models.Profile, error) {
	var p models.Profile
	var createdAt string
	err := s.db.QueryRow("SELECT id, name, email, created_at FROM profile LIMIT 1").
		Scan(&p.ID, &p.Name, &p.Email, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, fmt.Errorf("profile: %w", storage.ErrNotFound)
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to read profile: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Profile{}, fmt.Errorf("profile has invalid created_at: %w", err)
	}
	return p, nil
}

// SaveProfile replaces the stored profile
func (s *Store) SaveProfile(p models.Profile) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM profile"); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO profile (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.Email, formatTime(p.CreatedAt)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return tx.Commit()
}
