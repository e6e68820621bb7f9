// Package wizard holds the state of the three step capsule creation form:
// title, memory (message and media), and lock date.
package wizard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/models"
)

type Step int

const (
	StepTitle Step = iota + 1
	StepMemory
	StepLockDate
)

// Steps lists the steps in order
var Steps = []Step{StepTitle, StepMemory, StepLockDate}

func (s Step) String() string {
	switch s {
	case StepTitle:
		return "Title"
	case StepMemory:
		return "Memory"
	case StepLockDate:
		return "Lock Date"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

func (s Step) valid() bool {
	return s >= StepTitle && s <= StepLockDate
}

var (
	ErrStepIncomplete = errors.New("step is incomplete")
	ErrInvalidStep    = errors.New("invalid step")
	ErrTooManyMedia   = errors.New("too many media items")
	ErrUnlockInPast   = errors.New("unlock date must be in the future")
	ErrTitleTooLong   = errors.New("title is too long")
	ErrUnknownPreset  = errors.New("unknown quick date")
	ErrMediaIndex     = errors.New("media index out of range")
)

// Wizard is the in-progress capsule. The zero value is not usable; call New.
type Wizard struct {
	Title    string
	Message  string
	Media    []models.Media
	UnlockAt time.Time

	step Step
}

func New() *Wizard {
	return &Wizard{step: StepTitle}
}

// Current returns the step being edited
func (w *Wizard) Current() Step {
	return w.step
}

// Complete reports whether the required field of step is filled in
func (w *Wizard) Complete(step Step) bool {
	switch step {
	case StepTitle:
		return strings.TrimSpace(w.Title) != ""
	case StepMemory:
		return strings.TrimSpace(w.Message) != ""
	case StepLockDate:
		return !w.UnlockAt.IsZero()
	default:
		return false
	}
}

// AllComplete reports whether the capsule can be sealed
func (w *Wizard) AllComplete() bool {
	for _, s := range Steps {
		if !w.Complete(s) {
			return false
		}
	}
	return true
}

// Next advances one step. It refuses to leave a step whose required field
// is empty. On the last step it is a no-op.
func (w *Wizard) Next() error {
	if !w.Complete(w.step) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, w.step)
	}
	if w.step < StepLockDate {
		w.step++
	}
	return nil
}

// Back moves to the previous step, staying on the first one
func (w *Wizard) Back() {
	if w.step > StepTitle {
		w.step--
	}
}

// GoTo jumps to step. Going back is always allowed; going forward requires
// every step before the target to be complete.
func (w *Wizard) GoTo(step Step) error {
	if !step.valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStep, int(step))
	}
	if step <= w.step {
		w.step = step
		return nil
	}
	for s := StepTitle; s < step; s++ {
		if !w.Complete(s) {
			return fmt.Errorf("%w: %s", ErrStepIncomplete, s)
		}
	}
	w.step = step
	return nil
}

// SetTitle validates and stores the title
func (w *Wizard) SetTitle(title string) error {
	if len([]rune(title)) > constants.MaxTitleLength {
		return fmt.Errorf("%w: max %d characters", ErrTitleTooLong, constants.MaxTitleLength)
	}
	w.Title = title
	return nil
}

// AddMedia attaches a reference, inferring its kind
func (w *Wizard) AddMedia(ref string) error {
	if len(w.Media) >= constants.MaxMediaPerCapsule {
		return fmt.Errorf("%w: max %d", ErrTooManyMedia, constants.MaxMediaPerCapsule)
	}
	m, err := models.NewMedia(ref)
	if err != nil {
		return err
	}
	w.Media = append(w.Media, m)
	return nil
}

// RemoveMedia drops the item at index i
func (w *Wizard) RemoveMedia(i int) error {
	if i < 0 || i >= len(w.Media) {
		return fmt.Errorf("%w: %d", ErrMediaIndex, i)
	}
	w.Media = append(w.Media[:i], w.Media[i+1:]...)
	return nil
}

// SetUnlockDate picks the unlock date, which must be after now
func (w *Wizard) SetUnlockDate(at, now time.Time) error {
	if !at.After(now) {
		return ErrUnlockInPast
	}
	w.UnlockAt = at
	return nil
}

// ClearUnlockDate deselects the date
func (w *Wizard) ClearUnlockDate() {
	w.UnlockAt = time.Time{}
}

// ApplyQuickDate sets the unlock date to one of the presets relative to now
func (w *Wizard) ApplyQuickDate(key string, now time.Time) error {
	at, err := QuickDate(key, now)
	if err != nil {
		return err
	}
	return w.SetUnlockDate(at, now)
}

// QuickDate resolves a preset key ("1w", "1m", "6m", "1y", "5y") to a time
// the given number of whole days after now.
func QuickDate(key string, now time.Time) (time.Time, error) {
	for _, q := range constants.QuickDates {
		if q.Key == key {
			return now.Add(time.Duration(q.Days) * 24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
}

// Build produces the record to persist. now becomes its creation time and
// the unlock date is rechecked against it.
func (w *Wizard) Build(now time.Time) (models.Record, error) {
	for _, s := range Steps {
		if !w.Complete(s) {
			return models.Record{}, fmt.Errorf("%w: %s", ErrStepIncomplete, s)
		}
	}
	if !w.UnlockAt.After(now) {
		return models.Record{}, ErrUnlockInPast
	}

	media := make([]models.Media, len(w.Media))
	copy(media, w.Media)

	return models.Record{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(w.Title),
		Message:   w.Message,
		Media:     media,
		UnlockAt:  w.UnlockAt.UTC(),
		CreatedAt: now.UTC(),
	}, nil
}

// Preview is the summary card shown on the lock date step
type Preview struct {
	Title    string
	Unlocks  string
	Contents string
}

// Preview summarises the capsule. Unlocks is empty until a date is chosen.
func (w *Wizard) Preview() Preview {
	p := Preview{
		Title:    strings.TrimSpace(w.Title),
		Contents: Contents(w.Media),
	}
	if !w.UnlockAt.IsZero() {
		p.Unlocks = w.UnlockAt.Format(constants.LongDateFormat)
	}
	return p
}

// Contents describes a capsule's payload, e.g. "Message, 2 photo(s)"
func Contents(media []models.Media) string {
	var b strings.Builder
	b.WriteString("Message")
	images, videos := models.CountMedia(media)
	if images > 0 {
		fmt.Fprintf(&b, ", %d photo(s)", images)
	}
	if videos > 0 {
		fmt.Fprintf(&b, ", %d video(s)", videos)
	}
	return b.String()
}
