package tui

import "github.com/charmbracelet/lipgloss"

var (
	brandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Bold(true).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	greetingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	statStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2).
			Align(lipgloss.Center)

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	metStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("79"))

	stepActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	stepDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("79"))
	stepTodoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("141")).
			Padding(0, 2)
)
