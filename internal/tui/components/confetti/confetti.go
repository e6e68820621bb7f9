// Package confetti draws falling confetti over a fixed-size area.
package confetti

import (
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/constants"
)

const (
	frameInterval = 80 * time.Millisecond
	fallDuration  = 3 * time.Second
	maxDelay      = 500 * time.Millisecond
)

// Colors is the confetti palette
var Colors = []lipgloss.Color{"#a855f7", "#ec4899", "#f59e0b", "#10b981", "#3b82f6"}

var glyphs = []rune{'■', '●', '▲', '◆'}

type Piece struct {
	// X is the horizontal position as a fraction of the width
	X     float64
	Delay time.Duration
	Color lipgloss.Color
	Glyph rune
}

// FrameMsg advances the animation of the model with ID
type FrameMsg struct {
	ID      int
	Tag     int
	Elapsed time.Duration
}

type Model struct {
	Width  int
	Height int

	pieces  []Piece
	elapsed time.Duration
	active  bool
	id      int
	tag     int
}

var lastID int64

// New lays out pieces using rng so a fixed seed gives a fixed picture
func New(rng *rand.Rand, count int) Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	pieces := make([]Piece, count)
	for i := range pieces {
		pieces[i] = Piece{
			X:     rng.Float64(),
			Delay: time.Duration(rng.Int63n(int64(maxDelay))),
			Color: Colors[rng.Intn(len(Colors))],
			Glyph: glyphs[rng.Intn(len(glyphs))],
		}
	}
	return Model{pieces: pieces, id: int(atomic.AddInt64(&lastID, 1))}
}

// NewDefault uses the standard piece count
func NewDefault(rng *rand.Rand) Model {
	return New(rng, constants.ConfettiPieces)
}

func (m Model) Pieces() []Piece { return m.pieces }

func (m Model) Active() bool { return m.active }

// Start restarts the fall from the top
func (m Model) Start() (Model, tea.Cmd) {
	m.tag++
	m.elapsed = 0
	m.active = true
	return m, m.frame(0)
}

// Stop hides the confetti and drops pending frames
func (m Model) Stop() Model {
	m.tag++
	m.active = false
	return m
}

func (m Model) frame(elapsed time.Duration) tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return FrameMsg{ID: id, Tag: tag, Elapsed: elapsed + frameInterval}
	})
}

// done reports whether every piece has landed
func (m Model) done() bool {
	return m.elapsed >= fallDuration+maxDelay
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	fm, ok := msg.(FrameMsg)
	if !ok || fm.ID != m.id || fm.Tag != m.tag || !m.active {
		return m, nil
	}
	m.elapsed = fm.Elapsed
	if m.done() {
		return m, nil
	}
	return m, m.frame(m.elapsed)
}

// row returns the line a piece is on, or -1 when it is not visible
func (m Model) row(p Piece) int {
	t := m.elapsed - p.Delay
	if t < 0 || t >= fallDuration || m.Height <= 0 {
		return -1
	}
	return int(float64(m.Height) * float64(t) / float64(fallDuration))
}

func (m Model) View() string {
	if !m.active || m.Width <= 0 || m.Height <= 0 {
		return ""
	}

	grid := make([][]string, m.Height)
	for y := range grid {
		grid[y] = make([]string, m.Width)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}
	for _, p := range m.pieces {
		y := m.row(p)
		if y < 0 {
			continue
		}
		x := int(p.X * float64(m.Width))
		if x >= m.Width {
			x = m.Width - 1
		}
		grid[y][x] = lipgloss.NewStyle().Foreground(p.Color).Render(string(p.Glyph))
	}

	lines := make([]string, m.Height)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
