// Package hourglass is the sand-timer animation shown while a capsule is
// sealed or a form is submitting.
package hourglass

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Size int

const (
	Small Size = iota
	Large
)

var small = spinner.Spinner{
	Frames: []string{"⏳", "⌛"},
	FPS:    time.Second / 2,
}

var large = spinner.Spinner{
	Frames: []string{
		" _____ \n \\###/ \n  \\#/  \n  / \\  \n /   \\ \n‾‾‾‾‾‾‾",
		" _____ \n \\ ##/ \n  \\#/  \n  /.\\  \n / # \\ \n‾‾‾‾‾‾‾",
		" _____ \n \\  #/ \n  \\#/  \n  /.\\  \n /###\\ \n‾‾‾‾‾‾‾",
		" _____ \n \\   / \n  \\ /  \n  /#\\  \n /###\\ \n‾‾‾‾‾‾‾",
	},
	FPS: time.Second / 3,
}

var sandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

type Model struct {
	spinner spinner.Model
	size    Size
}

func New(size Size) Model {
	frames := small
	if size == Large {
		frames = large
	}
	return Model{
		spinner: spinner.New(spinner.WithSpinner(frames), spinner.WithStyle(sandStyle)),
		size:    size,
	}
}

func (m Model) Size() Size { return m.size }

// Tick starts the animation; it loops until the owner stops forwarding
// messages to Update
func (m Model) Tick() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.spinner.View()
}
