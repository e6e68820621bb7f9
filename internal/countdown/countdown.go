package countdown

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/timecapsule/internal/constants"
)

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// ErrInvalidTarget is returned when an unlock date cannot be parsed
var ErrInvalidTarget = errors.New("invalid unlock date")

// Remaining is the whole number of days, hours, minutes and seconds left
// before a target time. When Unlocked is set all units are zero.
type Remaining struct {
	Days     int
	Hours    int
	Minutes  int
	Seconds  int
	Unlocked bool
}

// Unit is a single labelled countdown value
type Unit struct {
	Value int
	Label string
}

// Padded renders the value with at least two digits
func (u Unit) Padded() string {
	return fmt.Sprintf("%02d", u.Value)
}

// Compute returns the time left between now and target.
//
// A zero target is treated as already unlocked, which is also what callers
// get for a date that failed to parse upstream.
func Compute(target, now time.Time) Remaining {
	if target.IsZero() {
		return Remaining{Unlocked: true}
	}

	diff := target.Sub(now).Milliseconds()
	if diff <= 0 {
		return Remaining{Unlocked: true}
	}

	return Remaining{
		Days:    int(diff / msPerDay),
		Hours:   int((diff % msPerDay) / msPerHour),
		Minutes: int((diff % msPerHour) / msPerMinute),
		Seconds: int((diff % msPerMinute) / msPerSecond),
	}
}

// IsUnlocked reports whether target has been reached at now
func IsUnlocked(target, now time.Time) bool {
	return Compute(target, now).Unlocked
}

// Units returns the four display units in order
func (r Remaining) Units() []Unit {
	return []Unit{
		{Value: r.Days, Label: "Days"},
		{Value: r.Hours, Label: "Hours"},
		{Value: r.Minutes, Label: "Minutes"},
		{Value: r.Seconds, Label: "Seconds"},
	}
}

// Compact renders the short card form, e.g. "29d 23h 59m"
func (r Remaining) Compact() string {
	if r.Unlocked {
		return UnlockedLabel
	}
	return fmt.Sprintf("%dd %dh %dm", r.Days, r.Hours, r.Minutes)
}

// String renders all four units, e.g. "01d 01h 01m 01s"
func (r Remaining) String() string {
	if r.Unlocked {
		return UnlockedLabel
	}
	parts := make([]string, 0, 4)
	for _, u := range r.Units() {
		parts = append(parts, u.Padded()+strings.ToLower(u.Label[:1]))
	}
	return strings.Join(parts, " ")
}

// UnlockedLabel is shown in place of the units once a capsule can be opened
const UnlockedLabel = "✨ Ready to unlock!"

// ParseTarget parses an unlock date given as RFC3339, "YYYY-MM-DDTHH:MM" or
// "YYYY-MM-DD" (midnight in loc).
func ParseTarget(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidTarget)
	}
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (expected RFC3339 or YYYY-MM-DD)", ErrInvalidTarget, s)
}
