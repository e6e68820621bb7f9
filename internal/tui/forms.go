package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecapsule/internal/account"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/countdown"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

// customDate is the lock date option that reads the date input instead of
// a preset
const customDate = "custom"

type LoginFormModel struct {
	Email string
}

type RegisterFormModel struct {
	Name     string
	Email    string
	Password string
}

func (fm *RegisterFormModel) Registration() account.Registration {
	return account.Registration{Name: fm.Name, Email: fm.Email, Password: fm.Password}
}

// CapsuleFormModel backs all three wizard steps so values survive moving
// between them
type CapsuleFormModel struct {
	Title   string
	Message string
	// Media is one reference per line
	Media     string
	QuickDate string
	Date      string
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
		return nil
	}
}

func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&fm.Email).
				Validate(account.ValidateEmail),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewRegisterForm(fm *RegisterFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(notEmpty("name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&fm.Email).
				Validate(account.ValidateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(func(s string) error {
					if !account.CheckPassword(s).OK() {
						return account.ErrWeakPassword
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// parseMedia splits one reference per line, skipping blank lines
func parseMedia(s string) ([]models.Media, error) {
	var media []models.Media
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m, err := models.NewMedia(line)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	if len(media) > constants.MaxMediaPerCapsule {
		return nil, fmt.Errorf("%w: max %d", wizard.ErrTooManyMedia, constants.MaxMediaPerCapsule)
	}
	return media, nil
}

// unlockDate resolves the lock date step to a time
func unlockDate(fm *CapsuleFormModel, now time.Time, loc *time.Location) (time.Time, error) {
	if fm.QuickDate != "" && fm.QuickDate != customDate {
		return wizard.QuickDate(fm.QuickDate, now)
	}
	if strings.TrimSpace(fm.Date) == "" {
		return time.Time{}, errors.New("pick a date or a quick option")
	}
	return countdown.ParseTarget(fm.Date, loc)
}

func NewStepForm(step wizard.Step, fm *CapsuleFormModel) *huh.Form {
	var group *huh.Group
	switch step {
	case wizard.StepTitle:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Give your capsule a name").
				Placeholder("Letter to myself in 2030").
				CharLimit(constants.MaxTitleLength).
				Value(&fm.Title).
				Validate(notEmpty("title")),
		)
	case wizard.StepMemory:
		group = huh.NewGroup(
			huh.NewText().
				Title("Write your message").
				Placeholder("Dear future me...").
				Value(&fm.Message).
				Validate(notEmpty("message")),
			huh.NewText().
				Title("Photos & videos").
				Description(fmt.Sprintf("One path or URL per line, up to %d", constants.MaxMediaPerCapsule)).
				Lines(3).
				Value(&fm.Media).
				Validate(func(s string) error {
					_, err := parseMedia(s)
					return err
				}),
		)
	default:
		options := make([]huh.Option[string], 0, len(constants.QuickDates)+1)
		for _, q := range constants.QuickDates {
			options = append(options, huh.NewOption(q.Label, q.Key))
		}
		options = append(options, huh.NewOption("Pick a date", customDate))
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("When should it unlock?").
				Options(options...).
				Value(&fm.QuickDate),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, used with \"Pick a date\"").
				Value(&fm.Date),
		)
	}
	return huh.NewForm(group).WithTheme(huh.ThemeDracula())
}
