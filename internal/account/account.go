// Package account implements the local registration and login rules.
// There is no real authentication: passwords are checked for strength and
// then discarded.
package account

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/segmentio/ksuid"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/models"
)

const profileIDPrefix = "prof_"

var (
	ErrNameRequired   = errors.New("name is required")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrWeakPassword   = errors.New("password does not meet the requirements")
	ErrNoProfile      = errors.New("no profile registered")
	ErrUnknownAccount = errors.New("no account with that email")
)

// Strength records which password rules are met
type Strength struct {
	HasLength bool
	HasUpper  bool
	HasNumber bool
}

// CheckPassword evaluates password against the strength rules
func CheckPassword(password string) Strength {
	var s Strength
	s.HasLength = utf8.RuneCountInString(password) >= constants.MinPasswordLength
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			s.HasUpper = true
		case r >= '0' && r <= '9':
			s.HasNumber = true
		}
	}
	return s
}

// OK reports whether every rule is met
func (s Strength) OK() bool {
	return s.HasLength && s.HasUpper && s.HasNumber
}

// Requirement is one line of the password checklist
type Requirement struct {
	Met  bool
	Text string
}

// Checklist returns the rules in display order
func (s Strength) Checklist() []Requirement {
	return []Requirement{
		{Met: s.HasLength, Text: fmt.Sprintf("At least %d characters", constants.MinPasswordLength)},
		{Met: s.HasUpper, Text: "One uppercase letter"},
		{Met: s.HasNumber, Text: "One number"},
	}
}

// ValidateEmail does a shape check: something before a single @ and a
// dotted domain after it.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") || strings.ContainsAny(email, " \t") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// Registration holds the sign-up form fields
type Registration struct {
	Name     string
	Email    string
	Password string
}

// Validate returns the first problem with the form, if any
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if !CheckPassword(r.Password).OK() {
		return ErrWeakPassword
	}
	return nil
}

// Submittable reports whether the submit action should be enabled
func (r Registration) Submittable() bool {
	return r.Validate() == nil
}

// Profile validates the form and creates the profile to store
func (r Registration) Profile(now time.Time) (models.Profile, error) {
	if err := r.Validate(); err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		ID:        NewProfileID(),
		Name:      strings.TrimSpace(r.Name),
		Email:     NormalizeEmail(r.Email),
		CreatedAt: now.UTC(),
	}, nil
}

// NewProfileID returns a sortable, prefixed profile identifier
func NewProfileID() string {
	return profileIDPrefix + ksuid.New().String()
}

// NormalizeEmail trims and lowercases an address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login matches email against the stored profile. A nil profile means no
// one has registered yet.
func Login(profile *models.Profile, email string) (models.Profile, error) {
	if profile == nil {
		return models.Profile{}, ErrNoProfile
	}
	if err := ValidateEmail(email); err != nil {
		return models.Profile{}, err
	}
	if NormalizeEmail(profile.Email) != NormalizeEmail(email) {
		return models.Profile{}, ErrUnknownAccount
	}
	return *profile, nil
}

// Greeting is the dashboard header line
func Greeting(p models.Profile) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "there"
	} else if first, _, ok := strings.Cut(name, " "); ok {
		name = first
	}
	return fmt.Sprintf("Hello, %s 👋", name)
}
