package countdown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   Remaining
	}{
		{
			name:   "one of each unit",
			target: now.Add(90_061_000 * time.Millisecond),
			want:   Remaining{Days: 1, Hours: 1, Minutes: 1, Seconds: 1},
		},
		{
			name:   "exactly now is unlocked",
			target: now,
			want:   Remaining{Unlocked: true},
		},
		{
			name:   "past target is unlocked",
			target: now.Add(-24 * time.Hour),
			want:   Remaining{Unlocked: true},
		},
		{
			name:   "sub-second remainder is floored",
			target: now.Add(1999 * time.Millisecond),
			want:   Remaining{Seconds: 1},
		},
		{
			name:   "less than a second left is still locked",
			target: now.Add(500 * time.Millisecond),
			want:   Remaining{},
		},
		{
			name:   "thirty days",
			target: now.Add(30 * 24 * time.Hour),
			want:   Remaining{Days: 30},
		},
		{
			name:   "just under a day",
			target: now.Add(24*time.Hour - time.Second),
			want:   Remaining{Hours: 23, Minutes: 59, Seconds: 59},
		},
		{
			name:   "zero target is unlocked",
			target: time.Time{},
			want:   Remaining{Unlocked: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.target, now))
		})
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	now := time.Now()
	for _, d := range []time.Duration{-time.Millisecond, -time.Hour, -400 * 24 * time.Hour} {
		r := Compute(now.Add(d), now)
		require.True(t, r.Unlocked)
		assert.Zero(t, r.Days)
		assert.Zero(t, r.Hours)
		assert.Zero(t, r.Minutes)
		assert.Zero(t, r.Seconds)
	}
}

func TestRemainingFormatting(t *testing.T) {
	r := Remaining{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}

	assert.Equal(t, "1d 2h 3m", r.Compact())
	assert.Equal(t, "01d 02h 03m 04s", r.String())

	units := r.Units()
	require.Len(t, units, 4)
	assert.Equal(t, "Days", units[0].Label)
	assert.Equal(t, "04", units[3].Padded())

	unlocked := Remaining{Unlocked: true}
	assert.Equal(t, UnlockedLabel, unlocked.Compact())
	assert.Equal(t, UnlockedLabel, unlocked.String())
}

func TestParseTarget(t *testing.T) {
	loc := time.UTC

	got, err := ParseTarget("2027-01-02T03:04:05Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 2, 3, 4, 5, 0, time.UTC), got)

	got, err = ParseTarget("2027-01-02", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 2, 0, 0, 0, 0, loc), got)

	got, err = ParseTarget(" 2027-01-02T09:30 ", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2027, 1, 2, 9, 30, 0, 0, loc), got)

	for _, bad := range []string{"", "tomorrow", "2027-13-01", "02/01/2027"} {
		_, err := ParseTarget(bad, loc)
		assert.True(t, errors.Is(err, ErrInvalidTarget), "input %q", bad)
	}
}
