package viewer

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/tui/components/countdown"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

var start = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)

func record(unlock time.Time) models.Record {
	return models.Record{
		ID:        "c1",
		Title:     "Letter",
		Message:   "Dear future me",
		Media:     []models.Media{{Kind: models.MediaImage, Ref: "beach.png"}},
		UnlockAt:  unlock,
		CreatedAt: start.Add(-24 * time.Hour),
	}
}

func TestLockedShowsCountdownOnly(t *testing.T) {
	clk := &fakeClock{now: start}
	m := New(record(start.Add(2*time.Hour)), clk.Now, time.UTC, rand.New(rand.NewSource(1)))
	m, cmd := m.Start()
	require.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "This capsule is sealed")
	assert.Contains(t, view, "Hours")
	assert.Contains(t, view, "Message, 1 photo(s)")
	assert.NotContains(t, view, "Dear future me")
}

func TestUnlockedRevealsAfterDelay(t *testing.T) {
	clk := &fakeClock{now: start}
	m := New(record(start.Add(-time.Hour)), clk.Now, time.UTC, rand.New(rand.NewSource(1)))
	m.Width, m.Height = 80, 10

	m, cmd := m.Start()
	require.NotNil(t, cmd)
	assert.False(t, m.Revealed())
	assert.NotContains(t, m.View(), "Dear future me")

	m, cmd = m.Update(revealMsg{ID: m.id, Tag: m.tag})
	require.NotNil(t, cmd)
	assert.True(t, m.Revealed())
	assert.True(t, m.ConfettiActive())

	view := m.View()
	assert.Contains(t, view, "Memory Unlocked")
	assert.Contains(t, view, "Dear future me")
	assert.Contains(t, view, "beach.png")
	assert.Contains(t, view, "Created on")

	m, _ = m.Update(hideConfettiMsg{ID: m.id, Tag: m.tag})
	assert.False(t, m.ConfettiActive())
	assert.Contains(t, m.View(), "Dear future me")
}

func TestCountdownReachingZeroReveals(t *testing.T) {
	clk := &fakeClock{now: start}
	m := New(record(start.Add(time.Second)), clk.Now, time.UTC, rand.New(rand.NewSource(1)))
	m, _ = m.Start()
	require.False(t, m.Capsule().IsUnlocked())

	clk.now = start.Add(2 * time.Second)
	m, cmd := m.Update(countdown.UnlockedMsg{ID: m.timer.ID()})
	require.NotNil(t, cmd, "reveal is scheduled")
	assert.True(t, m.Capsule().IsUnlocked())
	assert.False(t, m.Revealed())
}

func TestStopDropsPendingReveal(t *testing.T) {
	clk := &fakeClock{now: start}
	m := New(record(start.Add(-time.Hour)), clk.Now, time.UTC, nil)
	m, _ = m.Start()
	tag := m.tag

	m = m.Stop()
	m, cmd := m.Update(revealMsg{ID: m.id, Tag: tag})
	assert.Nil(t, cmd)
	assert.False(t, m.Revealed())
}

func TestForeignUnlockIgnored(t *testing.T) {
	clk := &fakeClock{now: start}
	m := New(record(start.Add(time.Hour)), clk.Now, time.UTC, nil)
	m, _ = m.Start()

	_, cmd := m.Update(countdown.UnlockedMsg{ID: -1})
	assert.Nil(t, cmd)
}

func TestDatesRenderInLocation(t *testing.T) {
	clk := &fakeClock{now: start}
	pacific := time.FixedZone("PDT", -7*3600)

	locked := New(record(time.Date(2026, 5, 21, 3, 0, 0, 0, time.UTC)), clk.Now, pacific, nil)
	locked, _ = locked.Start()
	assert.Contains(t, locked.View(), "Unlocks on May 20, 2026")

	rec := record(start.Add(-time.Hour))
	rec.CreatedAt = time.Date(2026, 5, 19, 2, 0, 0, 0, time.UTC)
	unlocked := New(rec, clk.Now, pacific, nil)
	unlocked.Width, unlocked.Height = 80, 10
	unlocked, _ = unlocked.Start()
	unlocked, _ = unlocked.Update(revealMsg{ID: unlocked.id, Tag: unlocked.tag})
	assert.Contains(t, unlocked.View(), "Created on May 18, 2026")
}
