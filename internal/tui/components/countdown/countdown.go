// Package countdown is the live countdown widget. Each widget has an id and
// a tag; ticks carry both, and Stop bumps the tag so ticks already in flight
// are dropped instead of re-arming.
package countdown

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/constants"
	cd "github.com/julianstephens/timecapsule/internal/countdown"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg asks the widget with ID to recompute
type TickMsg struct {
	ID   int
	Tag  int
	Time time.Time
}

// UnlockedMsg is sent once when the target is reached while mounted
type UnlockedMsg struct {
	ID int
}

type Style int

const (
	// Full shows four boxed units
	Full Style = iota
	// Compact is the single line "29d 23h 59m" used on cards
	Compact
)

var (
	unitStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1).
			Align(lipgloss.Center).
			Width(9)

	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	readyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

type Model struct {
	Target   time.Time
	Style    Style
	Interval time.Duration
	// Now defaults to time.Now
	Now func() time.Time

	remaining cd.Remaining
	id        int
	tag       int
	running   bool
}

func New(target time.Time, style Style) Model {
	return Model{
		Target:   target,
		Style:    style,
		Interval: constants.TickInterval,
		Now:      time.Now,
		id:       nextID(),
	}
}

func (m Model) ID() int { return m.id }

func (m Model) Remaining() cd.Remaining { return m.remaining }

func (m Model) Running() bool { return m.running }

func (m Model) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Start computes the current value and arms the first tick. An already
// unlocked target arms nothing.
func (m Model) Start() (Model, tea.Cmd) {
	m.tag++
	m.remaining = cd.Compute(m.Target, m.now())
	if m.remaining.Unlocked {
		m.running = false
		return m, nil
	}
	m.running = true
	return m, m.tick()
}

// Stop invalidates pending ticks; none of them will update or re-arm
func (m Model) Stop() Model {
	m.tag++
	m.running = false
	return m
}

func (m Model) tick() tea.Cmd {
	id, tag := m.id, m.tag
	interval := m.Interval
	if interval <= 0 {
		interval = constants.TickInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Tag: tag, Time: t}
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tm, ok := msg.(TickMsg)
	if !ok || tm.ID != m.id || tm.Tag != m.tag || !m.running {
		return m, nil
	}

	m.remaining = cd.Compute(m.Target, m.now())
	if m.remaining.Unlocked {
		m.running = false
		id := m.id
		return m, func() tea.Msg { return UnlockedMsg{ID: id} }
	}
	return m, m.tick()
}

func (m Model) View() string {
	if m.remaining.Unlocked {
		return readyStyle.Render(cd.UnlockedLabel)
	}
	if m.Style == Compact {
		return m.remaining.Compact()
	}

	boxes := make([]string, 0, 4)
	for _, u := range m.remaining.Units() {
		boxes = append(boxes, unitStyle.Render(
			lipgloss.JoinVertical(lipgloss.Center, valueStyle.Render(u.Padded()), labelStyle.Render(u.Label)),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
