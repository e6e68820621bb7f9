// Package capsulelist is the dashboard list of capsule cards.
package capsulelist

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/countdown"
	"github.com/julianstephens/timecapsule/internal/models"
)

// OpenCapsuleMsg asks the owner to show a capsule
type OpenCapsuleMsg struct {
	ID string
}

// CreateCapsuleMsg asks the owner to open the creation wizard
type CreateCapsuleMsg struct{}

// DeleteCapsuleMsg asks the owner to soft delete a capsule
type DeleteCapsuleMsg struct {
	ID string
}

// RefreshMsg redraws the cards so compact countdowns stay current
type RefreshMsg struct {
	ID  int
	Tag int
}

type Item struct {
	Record models.Record
}

func (i Item) FilterValue() string { return i.Record.Title }

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	selectedStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("213")).
			PaddingLeft(1)
	normalStyle   = lipgloss.NewStyle().PaddingLeft(2)
	lockedBadge   = lipgloss.NewStyle().Foreground(lipgloss.Color("141")).Render("🔒 Locked")
	unlockedBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("79")).Render("🔓 Unlocked")
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237")).Padding(0, 1)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(1, 2)
)

type delegate struct {
	clock func() time.Time
	loc   *time.Location
}

func (d delegate) Height() int                             { return 3 }
func (d delegate) Spacing() int                            { return 1 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Card renders one capsule as of now, with dates in loc
func Card(rec models.Record, now time.Time, loc *time.Location) string {
	badge := lockedBadge
	unlocked := countdown.IsUnlocked(rec.UnlockAt, now)
	if unlocked {
		badge = unlockedBadge
	}

	chips := make([]string, 0, 3)
	for _, c := range rec.Chips() {
		chips = append(chips, chipStyle.Render(c))
	}

	date := "Unlocks " + rec.UnlockAt.In(loc).Format(constants.DisplayDateFormat)
	if unlocked {
		date = "Unlocked " + rec.UnlockAt.In(loc).Format(constants.DisplayDateFormat)
	} else {
		date += " · " + countdown.Compute(rec.UnlockAt, now).Compact()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(rec.Title)+"  "+badge,
		strings.Join(chips, " "),
		dimStyle.Render(date),
	)
}

func (d delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(Item)
	if !ok {
		return
	}
	card := Card(i.Record, d.clock(), d.loc)
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render(card))
		return
	}
	fmt.Fprint(w, normalStyle.Render(card))
}

type KeyMap struct {
	Open   key.Binding
	Create key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Create: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new capsule"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

var lastID int64

type Model struct {
	list  list.Model
	keys  KeyMap
	clock func() time.Time
	id    int
	tag   int
}

// New builds the list; clock defaults to time.Now and loc to time.Local
func New(recs []models.Record, clock func() time.Time, loc *time.Location, width, height int) Model {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	l := list.New(items(recs), delegate{clock: clock, loc: loc}, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Create, keys.Delete}
	}

	return Model{
		list:  l,
		keys:  keys,
		clock: clock,
		id:    int(atomic.AddInt64(&lastID, 1)),
	}
}

func items(recs []models.Record) []list.Item {
	out := make([]list.Item, len(recs))
	for i, r := range recs {
		out[i] = Item{Record: r}
	}
	return out
}

func (m *Model) SetCapsules(recs []models.Record) {
	m.list.SetItems(items(recs))
}

func (m Model) Len() int { return len(m.list.Items()) }

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

func (m Model) Keys() KeyMap { return m.keys }

// Start arms the once-a-second redraw
func (m Model) Start() (Model, tea.Cmd) {
	m.tag++
	return m, m.refresh()
}

// Stop drops any pending redraw
func (m Model) Stop() Model {
	m.tag++
	return m
}

func (m Model) refresh() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(constants.TickInterval, func(time.Time) tea.Msg {
		return RefreshMsg{ID: id, Tag: tag}
	})
}

// Selected returns the highlighted capsule, if any
func (m Model) Selected() (models.Record, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Record{}, false
	}
	return i.Record, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshMsg:
		if msg.ID != m.id || msg.Tag != m.tag {
			return m, nil
		}
		return m, m.refresh()

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Create):
			return m, func() tea.Msg { return CreateCapsuleMsg{} }
		case key.Matches(msg, m.keys.Open):
			if rec, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenCapsuleMsg{ID: rec.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if rec, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteCapsuleMsg{ID: rec.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return emptyStyle.Render("No capsules yet.\nPress 'n' to create your first time capsule.")
	}
	return m.list.View()
}
