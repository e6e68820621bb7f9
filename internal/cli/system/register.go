package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecapsule/internal/account"
	"github.com/julianstephens/timecapsule/internal/cli"
	"github.com/julianstephens/timecapsule/internal/storage"
)

// RegisterCmd creates the local profile, replacing any existing one. The
// password is only checked for strength; it is never stored.
type RegisterCmd struct {
	Name     string `arg:"" help:"Your name."`
	Email    string `arg:"" help:"Your email address."`
	Password string `hidden:"" env:"CAPSULE_PASSWORD" help:"Password, prompted for when omitted."`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	reg := account.Registration{Name: c.Name, Email: c.Email, Password: c.Password}

	// report name and email problems before asking for a password
	if strings.TrimSpace(reg.Name) == "" {
		return account.ErrNameRequired
	}
	if err := account.ValidateEmail(reg.Email); err != nil {
		return err
	}

	if reg.Password == "" {
		pw, err := promptPassword()
		if err != nil {
			return err
		}
		reg.Password = pw
	}
	if err := reg.Validate(); err != nil {
		if errors.Is(err, account.ErrWeakPassword) {
			return fmt.Errorf("%w: %s", err, missingRequirements(reg.Password))
		}
		return err
	}

	existing, err := ctx.Store.GetProfile()
	hasExisting := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read profile: %w", err)
	}

	profile, err := reg.Profile(ctx.Clock())
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if hasExisting && existing.Email != profile.Email {
		ctx.Printf("Replaced the profile for %s.\n", existing.Email)
	}
	ctx.Println("Welcome to Time Capsule! ✨")
	ctx.Println(account.Greeting(profile))
	return nil
}

func promptPassword() (string, error) {
	var pw string
	err := huh.NewInput().
		Title("Password").
		Description("At least 8 characters, one uppercase letter and one number.").
		EchoMode(huh.EchoModePassword).
		Validate(func(s string) error {
			if !account.CheckPassword(s).OK() {
				return fmt.Errorf("needs %s", missingRequirements(s))
			}
			return nil
		}).
		Value(&pw).
		Run()
	if err != nil {
		return "", fmt.Errorf("password prompt: %w", err)
	}
	return pw, nil
}

func missingRequirements(pw string) string {
	var missing []string
	for _, r := range account.CheckPassword(pw).Checklist() {
		if !r.Met {
			missing = append(missing, strings.ToLower(r.Text))
		}
	}
	return strings.Join(missing, ", ")
}
