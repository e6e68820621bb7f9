// Package viewer shows a single capsule. Locked capsules show a live
// countdown; unlocked ones are revealed after a short pause with confetti.
// When the countdown runs out while the viewer is open the capsule is
// resolved again and revealed in place.
package viewer

import (
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/tui/components/confetti"
	"github.com/julianstephens/timecapsule/internal/tui/components/countdown"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

type revealMsg struct {
	ID  int
	Tag int
}

type hideConfettiMsg struct {
	ID  int
	Tag int
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	sealedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	badgeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	messageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2).
			Width(60)
	mediaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("79"))
)

var lastID int64

type Model struct {
	Width  int
	Height int

	record   models.Record
	capsule  models.Capsule
	clock    func() time.Time
	loc      *time.Location
	timer    countdown.Model
	confetti confetti.Model
	revealed bool
	id       int
	tag      int
}

// New resolves rec at clock(). Dates render in loc (time.Local when nil).
// rng seeds the confetti; nil picks a random seed.
func New(rec models.Record, clock func() time.Time, loc *time.Location, rng *rand.Rand) Model {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	m := Model{
		record:   rec,
		clock:    clock,
		loc:      loc,
		confetti: confetti.NewDefault(rng),
		id:       int(atomic.AddInt64(&lastID, 1)),
	}
	m.capsule = models.Resolve(rec, clock())
	m.timer = countdown.New(rec.UnlockAt, countdown.Full)
	m.timer.Now = clock
	return m
}

func (m Model) Capsule() models.Capsule { return m.capsule }

func (m Model) Revealed() bool { return m.revealed }

func (m Model) ConfettiActive() bool { return m.confetti.Active() }

// Start begins the countdown for a locked capsule or schedules the reveal
// of an unlocked one
func (m Model) Start() (Model, tea.Cmd) {
	m.tag++
	m.revealed = false
	if !m.capsule.IsUnlocked() {
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Start()
		return m, cmd
	}
	return m, m.after(constants.RevealDelay, revealMsg{ID: m.id, Tag: m.tag})
}

// Stop drops every pending tick, frame and timer
func (m Model) Stop() Model {
	m.tag++
	m.timer = m.timer.Stop()
	m.confetti = m.confetti.Stop()
	return m
}

func (m Model) after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case countdown.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case countdown.UnlockedMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.capsule = models.Resolve(m.record, m.clock())
		if !m.capsule.IsUnlocked() {
			return m, nil
		}
		return m.Start()

	case revealMsg:
		if msg.ID != m.id || msg.Tag != m.tag {
			return m, nil
		}
		m.revealed = true
		m.confetti.Width, m.confetti.Height = m.Width, m.Height
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Start()
		return m, tea.Batch(cmd, m.after(constants.ConfettiDuration, hideConfettiMsg{ID: m.id, Tag: m.tag}))

	case hideConfettiMsg:
		if msg.ID != m.id || msg.Tag != m.tag {
			return m, nil
		}
		m.confetti = m.confetti.Stop()
		return m, nil

	case confetti.FrameMsg:
		var cmd tea.Cmd
		m.confetti, cmd = m.confetti.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch c := m.capsule.(type) {
	case models.LockedCapsule:
		return m.lockedView(c)
	case models.UnlockedCapsule:
		if !m.revealed {
			return lipgloss.JoinVertical(lipgloss.Center, "", sealedStyle.Render("Opening your capsule…"))
		}
		view := m.unlockedView(c)
		if m.confetti.Active() {
			return lipgloss.JoinVertical(lipgloss.Left, m.confetti.View(), view)
		}
		return view
	}
	return ""
}

func (m Model) lockedView(c models.LockedCapsule) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(c.Title),
		sealedStyle.Render("🔒 This capsule is sealed"),
		"",
		m.timer.View(),
		"",
		dimStyle.Render("Unlocks on "+c.UnlockAt.In(m.loc).Format(constants.LongDateFormat)),
		dimStyle.Render("Contains "+contents(c)),
	)
}

func contents(c models.LockedCapsule) string {
	media := make([]models.Media, 0, c.MediaCount)
	for range c.Images {
		media = append(media, models.Media{Kind: models.MediaImage})
	}
	for range c.Videos {
		media = append(media, models.Media{Kind: models.MediaVideo})
	}
	return wizard.Contents(media)
}

func (m Model) unlockedView(c models.UnlockedCapsule) string {
	lines := []string{
		badgeStyle.Render("✨ Memory Unlocked"),
		titleStyle.Render(c.Title),
		dimStyle.Render("Created on " + c.CreatedAt.In(m.loc).Format(constants.LongDateFormat)),
		"",
		messageStyle.Render(c.Message),
	}
	if len(c.Media) > 0 {
		refs := make([]string, len(c.Media))
		for i, md := range c.Media {
			icon := "🖼"
			if md.Kind == models.MediaVideo {
				icon = "🎬"
			}
			refs[i] = mediaStyle.Render(icon + "  " + md.Ref)
		}
		lines = append(lines, "", strings.Join(refs, "\n"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
