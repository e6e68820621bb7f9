package storage

import (
	"errors"

	"github.com/julianstephens/timecapsule/internal/migration"
	"github.com/julianstephens/timecapsule/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrAlreadyDeleted = errors.New("already deleted")
	ErrNotDeleted     = errors.New("not deleted")
	ErrNotInitialized = errors.New("storage not initialized")
	ErrAmbiguousID    = errors.New("ambiguous capsule id")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Capsules
	AddCapsule(models.Record) error
	GetCapsule(id string) (models.Record, error)
	// GetAllCapsules returns capsules ordered by unlock date, soonest
	// first. Soft deleted capsules are included only when asked for.
	GetAllCapsules(includeDeleted bool) ([]models.Record, error)
	UpdateCapsule(models.Record) error
	DeleteCapsule(id string) error
	RestoreCapsule(id string) error

	// Schema
	SchemaStatus() (migration.Status, error)

	// Utils
	GetConfigPath() string
}
