// Package hero renders the landing page shown before anyone has signed in.
package hero

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/tui/components/hourglass"
)

type Feature struct {
	Icon        string
	Title       string
	Description string
	Color       lipgloss.Color
}

var Features = []Feature{
	{
		Icon:        "✉",
		Title:       "Create a Capsule",
		Description: "Write a letter, upload photos, or record a video message for your future self or loved ones.",
		Color:       lipgloss.Color("141"),
	},
	{
		Icon:        "🔒",
		Title:       "Lock Until the Future",
		Description: "Choose when your capsule unlocks, tomorrow, next year, or decades from now.",
		Color:       lipgloss.Color("79"),
	},
	{
		Icon:        "🎁",
		Title:       "Relive the Memory",
		Description: "When the time comes, unlock your capsule and experience the magic of your past self.",
		Color:       lipgloss.Color("220"),
	},
}

const Quote = "\"Memories are timeless treasures of the heart\""

var (
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	taglineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	quoteStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245"))
	actionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	cardStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(30)
)

type Model struct {
	Width     int
	hourglass hourglass.Model
}

func New() Model {
	return Model{hourglass: hourglass.New(hourglass.Large)}
}

// Hourglass exposes the animation so the owner can start and route its ticks
func (m Model) Hourglass() hourglass.Model { return m.hourglass }

func (m Model) WithHourglass(h hourglass.Model) Model {
	m.hourglass = h
	return m
}

func card(f Feature) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(f.Color).Render(f.Icon + "  " + f.Title)
	return cardStyle.BorderForeground(f.Color).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", f.Description),
	)
}

// Cards lays the feature cards side by side, or stacked when narrow
func (m Model) Cards() string {
	cards := make([]string, len(Features))
	for i, f := range Features {
		cards[i] = card(f)
	}
	if m.Width > 0 && m.Width < lipgloss.Width(cards[0])*len(cards) {
		return lipgloss.JoinVertical(lipgloss.Center, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		m.hourglass.View(),
		"",
		headlineStyle.Render("Preserve Today's Memories for Tomorrow"),
		taglineStyle.Render("Seal letters, photos, and videos in a digital time capsule."),
		"",
		actionStyle.Render("[r] Start your capsule   [l] Sign in"),
		"",
		m.Cards(),
		"",
		quoteStyle.Render(Quote),
	)
}
