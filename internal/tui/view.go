package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/account"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/router"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.route.Page {
	case router.PageHome:
		content = m.hero.View()
	case router.PageLogin:
		content = m.viewLogin()
	case router.PageRegister:
		content = m.viewRegister()
	case router.PageDashboard:
		content = m.viewDashboard()
	case router.PageCreate:
		content = m.viewCreate()
	case router.PageCapsule:
		content = m.viewer.View()
	}

	parts := []string{m.viewNavbar()}
	if m.toast != "" {
		parts = append(parts, toastStyle.Render(m.toast))
	}
	parts = append(parts, docStyle.Render(content), m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewNavbar() string {
	type link struct {
		title string
		route router.Route
	}
	links := []link{{"Home", router.Home}}
	if m.user != nil {
		links = append(links, link{"Dashboard", router.Dashboard}, link{"New Capsule", router.Create})
	} else {
		links = append(links, link{"Sign in", router.Login}, link{"Get Started", router.Register})
	}

	tabs := []string{brandStyle.Render("⏳ Time Capsule")}
	for _, l := range links {
		if m.route.Page == l.route.Page {
			tabs = append(tabs, activeTabStyle.Render(l.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(l.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewFormError() string {
	if m.formError == "" {
		return ""
	}
	return dangerStyle.Render("✗ " + m.formError)
}

func (m Model) viewSubmitting(label string) string {
	return lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", mutedStyle.Render(label))
}

func (m Model) viewLogin() string {
	lines := []string{greetingStyle.Render("Welcome back"), mutedStyle.Render("Sign in to open your capsules"), ""}
	if m.form != nil {
		lines = append(lines, m.form.View())
	}
	lines = append(lines, m.viewFormError())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewRegister() string {
	lines := []string{greetingStyle.Render("Create your account"), mutedStyle.Render("Start preserving memories"), ""}
	if m.submitting {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, m.viewSubmitting("Creating account..."))...)
	}
	if m.form != nil {
		lines = append(lines, m.form.View())
	}
	if m.registerForm != nil {
		lines = append(lines, viewChecklist(m.registerForm.Password))
		if m.registerForm.Registration().Submittable() {
			lines = append(lines, "", metStyle.Render("Ready to create your account"))
		}
	}
	lines = append(lines, m.viewFormError())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func viewChecklist(password string) string {
	items := account.CheckPassword(password).Checklist()
	lines := make([]string, len(items))
	for i, r := range items {
		if r.Met {
			lines[i] = metStyle.Render("✓ " + r.Text)
		} else {
			lines[i] = mutedStyle.Render("○ " + r.Text)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewDashboard() string {
	greeting := ""
	if m.user != nil {
		greeting = account.Greeting(*m.user)
	}
	stats := models.ComputeStats(m.capsules, m.now())
	boxes := []string{
		statStyle.Render(fmt.Sprintf("%d\nTotal", stats.Total)),
		statStyle.Render(fmt.Sprintf("%d\nLocked", stats.Locked)),
		statStyle.Render(fmt.Sprintf("%d\nUnlocked", stats.Unlocked)),
		statStyle.Render(fmt.Sprintf("%d\nWith Media", stats.WithMedia)),
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		greetingStyle.Render(greeting),
		mutedStyle.Render("Your memories, waiting for their moment"),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		"",
		m.list.View(),
		m.viewFormError(),
	)
}

// viewSteps renders the step indicator, marking completed steps
func (m Model) viewSteps() string {
	parts := make([]string, 0, len(wizard.Steps))
	for _, s := range wizard.Steps {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s == m.wizard.Current():
			parts = append(parts, stepActiveStyle.Render("● "+label))
		case m.wizard.Complete(s):
			parts = append(parts, stepDoneStyle.Render("✓ "+label))
		default:
			parts = append(parts, stepTodoStyle.Render("○ "+label))
		}
	}
	return strings.Join(parts, mutedStyle.Render(" ─ "))
}

func (m Model) viewCreate() string {
	if m.wizard == nil {
		return ""
	}
	lines := []string{greetingStyle.Render("Create a Time Capsule"), m.viewSteps(), ""}
	if m.submitting {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, m.viewSubmitting("Sealing your capsule..."))...)
	}
	if m.form != nil {
		lines = append(lines, m.form.View())
	}
	if m.wizard.Current() == wizard.StepLockDate {
		lines = append(lines, m.viewPreview())
	}
	lines = append(lines, m.viewFormError())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewPreview() string {
	w := *m.wizard
	if at, err := unlockDate(m.capsuleForm, m.now(), m.loc); err == nil {
		w.UnlockAt = at
	}
	p := w.Preview()
	unlocks := p.Unlocks
	if unlocks == "" {
		unlocks = "Pick a date"
	}
	return previewStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		greetingStyle.Render(p.Title),
		"Unlocks: "+unlocks,
		"Contents: "+p.Contents,
	))
}
