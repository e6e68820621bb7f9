// Package tui is the interactive capsule app: a landing page, sign in and
// registration, the dashboard, the creation wizard, and the capsule viewer.
package tui

import (
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/router"
	"github.com/julianstephens/timecapsule/internal/storage"
	"github.com/julianstephens/timecapsule/internal/tui/components/capsulelist"
	"github.com/julianstephens/timecapsule/internal/tui/components/hero"
	"github.com/julianstephens/timecapsule/internal/tui/components/hourglass"
	"github.com/julianstephens/timecapsule/internal/tui/components/viewer"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

const toastDuration = 3 * time.Second

type Options struct {
	// Route is the starting path; empty picks one from whether a profile
	// exists
	Route         string
	Now           func() time.Time
	Location      *time.Location
	SealDelay     time.Duration
	RegisterDelay time.Duration
	// Rand seeds the confetti; nil uses a random seed
	Rand *rand.Rand
}

type Model struct {
	store    storage.Provider
	now      func() time.Time
	loc      *time.Location
	rng      *rand.Rand
	route    router.Route
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int

	// profile is the registered user; user is set once signed in
	profile *models.Profile
	user    *models.Profile

	hero     hero.Model
	list     capsulelist.Model
	viewer   viewer.Model
	capsules []models.Record

	form         *huh.Form
	formError    string
	loginForm    *LoginFormModel
	registerForm *RegisterFormModel
	capsuleForm  *CapsuleFormModel
	wizard       *wizard.Wizard

	submitting    bool
	spinner       hourglass.Model
	sealDelay     time.Duration
	registerDelay time.Duration

	toast    string
	toastTag int

	initCmd tea.Cmd
}

// NewModel loads the profile and opens the starting route. A registered
// profile is signed in automatically.
func NewModel(store storage.Provider, opts Options) (Model, error) {
	m := Model{
		store:         store,
		now:           opts.Now,
		loc:           opts.Location,
		rng:           opts.Rand,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		hero:          hero.New(),
		spinner:       hourglass.New(hourglass.Small),
		sealDelay:     opts.SealDelay,
		registerDelay: opts.RegisterDelay,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.sealDelay <= 0 {
		m.sealDelay = constants.SealDelay
	}
	if m.registerDelay <= 0 {
		m.registerDelay = constants.RegisterDelay
	}
	m.list = capsulelist.New(nil, m.now, m.loc, 0, 0)

	profile, err := store.GetProfile()
	switch {
	case err == nil:
		m.profile = &profile
		m.user = &profile
	case !errors.Is(err, storage.ErrNotFound):
		return Model{}, err
	}

	start, err := router.Start(opts.Route, m.profile != nil)
	if err != nil {
		return Model{}, err
	}
	m, m.initCmd = m.navigate(start)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

func (m Model) Route() router.Route { return m.route }

func (m Model) User() *models.Profile { return m.user }

func (m Model) Toast() string { return m.toast }

func (m Model) FormError() string { return m.formError }

func (m Model) Submitting() bool { return m.submitting }

// onForm reports whether keys belong to a huh form
func (m Model) onForm() bool {
	switch m.route.Page {
	case router.PageLogin, router.PageRegister, router.PageCreate:
		return m.form != nil
	}
	return false
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.ForceQuit, m.keys.Help}
	switch m.route.Page {
	case router.PageHome:
		keys = append(keys, m.keys.Register, m.keys.Login)
		if m.user != nil {
			keys = append(keys, m.keys.Enter)
		}
	case router.PageDashboard:
		lk := m.list.Keys()
		keys = append(keys, lk.Open, lk.Create, lk.Delete, m.keys.Logout)
	case router.PageCapsule:
		keys = append(keys, m.keys.Back)
	case router.PageCreate, router.PageLogin, router.PageRegister:
		keys = append(keys, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.ForceQuit, m.keys.Help, m.keys.Back}
	pages := []key.Binding{m.keys.Register, m.keys.Login, m.keys.Dashboard, m.keys.Logout}

	var actions []key.Binding
	switch m.route.Page {
	case router.PageDashboard:
		lk := m.list.Keys()
		actions = []key.Binding{lk.Open, lk.Create, lk.Delete}
	case router.PageCreate:
		actions = []key.Binding{m.keys.Step1, m.keys.Step2, m.keys.Step3}
	}
	return [][]key.Binding{global, pages, actions}
}

// stopPage drops the tickers of the page being left
func (m Model) stopPage() Model {
	switch m.route.Page {
	case router.PageDashboard:
		m.list = m.list.Stop()
	case router.PageCapsule:
		m.viewer = m.viewer.Stop()
	}
	return m
}

// navigate switches to r. Pages that need a profile redirect to sign in, or
// to registration when no one has registered yet.
func (m Model) navigate(r router.Route) (Model, tea.Cmd) {
	m = m.stopPage()
	if r.RequiresProfile() && m.user == nil {
		if m.profile == nil {
			r = router.Register
		} else {
			r = router.Login
		}
	}

	logger.Debug("navigate", "route", r.Path())
	m.route = r
	m.form = nil
	m.formError = ""

	switch r.Page {
	case router.PageHome:
		return m, m.hero.Hourglass().Tick()

	case router.PageLogin:
		m.loginForm = &LoginFormModel{}
		m.form = NewLoginForm(m.loginForm)
		return m, m.form.Init()

	case router.PageRegister:
		m.registerForm = &RegisterFormModel{}
		m.form = NewRegisterForm(m.registerForm)
		return m, m.form.Init()

	case router.PageDashboard:
		if err := m.reloadCapsules(); err != nil {
			logger.Error("failed to load capsules", "error", err)
			m.formError = err.Error()
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Start()
		return m, cmd

	case router.PageCreate:
		m.wizard = wizard.New()
		m.capsuleForm = &CapsuleFormModel{}
		m.form = NewStepForm(m.wizard.Current(), m.capsuleForm)
		return m, m.form.Init()

	case router.PageCapsule:
		rec, err := storage.FindCapsule(m.store, r.ID, false)
		if err != nil {
			logger.Warn("capsule not found", "id", r.ID, "error", err)
			m, cmd := m.navigate(router.Dashboard)
			return m.showToast("Capsule not found", cmd)
		}
		m.route = router.Capsule(rec.ID)
		m.viewer = viewer.New(rec, m.now, m.loc, m.rng)
		m.viewer.Width, m.viewer.Height = m.width, m.contentHeight()
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Start()
		return m, cmd
	}
	return m, nil
}

func (m *Model) reloadCapsules() error {
	recs, err := m.store.GetAllCapsules(false)
	if err != nil {
		return err
	}
	storage.SortByUnlock(recs)
	m.capsules = recs
	m.list.SetCapsules(recs)
	return nil
}

func (m Model) contentHeight() int {
	h := m.height - 6
	if h < 0 {
		return 0
	}
	return h
}
