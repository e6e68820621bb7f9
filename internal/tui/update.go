package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timecapsule/internal/account"
	"github.com/julianstephens/timecapsule/internal/constants"
	"github.com/julianstephens/timecapsule/internal/logger"
	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/router"
	"github.com/julianstephens/timecapsule/internal/tui/components/capsulelist"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

// sealDoneMsg fires when the simulated seal delay is over
type sealDoneMsg struct{}

// registerDoneMsg fires when the simulated registration delay is over
type registerDoneMsg struct {
	profile models.Profile
}

type clearToastMsg struct {
	tag int
}

func (m Model) showToast(text string, cmd tea.Cmd) (Model, tea.Cmd) {
	m.toastTag++
	m.toast = text
	tag := m.toastTag
	expire := tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{tag: tag} })
	return m, tea.Batch(cmd, expire)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.hero.Width = msg.Width
		m.list.SetSize(msg.Width-4, m.contentHeight()-4)
		m.viewer.Width, m.viewer.Height = msg.Width, m.contentHeight()
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width-4, 72))
		}
		return m, nil

	case clearToastMsg:
		if msg.tag == m.toastTag {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		if m.submitting {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.route.Page == router.PageHome {
			h, cmd := m.hero.Hourglass().Update(msg)
			m.hero = m.hero.WithHourglass(h)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case sealDoneMsg:
		return m.finishSeal()

	case registerDoneMsg:
		return m.finishRegister(msg.profile)

	case capsulelist.OpenCapsuleMsg:
		return m.navigate(router.Capsule(msg.ID))

	case capsulelist.CreateCapsuleMsg:
		return m.navigate(router.Create)

	case capsulelist.DeleteCapsuleMsg:
		if err := m.store.DeleteCapsule(msg.ID); err != nil {
			logger.Error("failed to delete capsule", "id", msg.ID, "error", err)
			return m.showToast("Could not delete capsule: "+err.Error(), nil)
		}
		if err := m.reloadCapsules(); err != nil {
			m.formError = err.Error()
		}
		return m.showToast("Capsule deleted", nil)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.submitting {
			return m, nil
		}
		if m.onForm() {
			return m.updateFormKeys(msg)
		}
		return m.updateKeys(msg)
	}

	return m.forward(msg)
}

// forward hands any other message to the component that owns the page
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route.Page {
	case router.PageDashboard:
		m.list, cmd = m.list.Update(msg)
	case router.PageCapsule:
		m.viewer, cmd = m.viewer.Update(msg)
	case router.PageLogin, router.PageRegister, router.PageCreate:
		if m.form != nil && !m.submitting {
			return m.updateForm(msg)
		}
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.route.Page {
	case router.PageHome:
		switch {
		case key.Matches(msg, m.keys.Register):
			return m.navigate(router.Register)
		case key.Matches(msg, m.keys.Login):
			return m.navigate(router.Login)
		case key.Matches(msg, m.keys.Enter):
			return m.navigate(router.Dashboard)
		}
		return m, nil

	case router.PageCapsule:
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Dashboard) {
			return m.navigate(router.Dashboard)
		}
		return m, nil

	case router.PageDashboard:
		if key.Matches(msg, m.keys.Logout) {
			m.user = nil
			m, cmd := m.navigate(router.Home)
			return m.showToast("Signed out", cmd)
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		if m.route.Page == router.PageCreate {
			if m.wizard.Current() > wizard.StepTitle {
				m.syncWizard()
				m.wizard.Back()
				return m.openStep()
			}
			return m.navigate(router.Dashboard)
		}
		return m.navigate(router.Home)
	}

	if m.route.Page == router.PageCreate {
		for i, b := range []key.Binding{m.keys.Step1, m.keys.Step2, m.keys.Step3} {
			if key.Matches(msg, b) {
				return m.jumpToStep(wizard.Steps[i])
			}
		}
	}
	return m.updateForm(msg)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var next tea.Cmd
		switch m.route.Page {
		case router.PageLogin:
			m, next = m.submitLogin()
		case router.PageRegister:
			m, next = m.submitRegister()
		case router.PageCreate:
			m, next = m.submitStep()
		}
		cmds = append(cmds, next)
	case huh.StateAborted:
		if m.route.Page == router.PageCreate {
			return m.navigate(router.Dashboard)
		}
		return m.navigate(router.Home)
	}
	return m, tea.Batch(cmds...)
}

// reopen keeps the user in a form after a failed submission
func (m Model) reopen(err error) (Model, tea.Cmd) {
	m.formError = err.Error()
	if m.form != nil {
		m.form.State = huh.StateNormal
	}
	return m, nil
}

func (m Model) submitLogin() (Model, tea.Cmd) {
	p, err := account.Login(m.profile, m.loginForm.Email)
	if err != nil {
		return m.reopen(err)
	}
	m.user = &p
	m, cmd := m.navigate(router.Dashboard)
	return m.showToast("Welcome back! ✨", cmd)
}

func (m Model) submitRegister() (Model, tea.Cmd) {
	p, err := m.registerForm.Registration().Profile(m.now())
	if err != nil {
		return m.reopen(err)
	}
	m.formError = ""
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick(), tea.Tick(m.registerDelay, func(time.Time) tea.Msg {
		return registerDoneMsg{profile: p}
	}))
}

func (m Model) finishRegister(p models.Profile) (tea.Model, tea.Cmd) {
	m.submitting = false
	if err := m.store.SaveProfile(p); err != nil {
		logger.Error("failed to save profile", "error", err)
		return m.reopen(err)
	}
	m.profile = &p
	m.user = &p
	m, cmd := m.navigate(router.Dashboard)
	return m.showToast("Welcome to Time Capsule! ✨", cmd)
}

// syncWizard copies whatever the form holds into the wizard without
// failing, so jumping between steps keeps completed fields
func (m *Model) syncWizard() {
	fm := m.capsuleForm
	_ = m.wizard.SetTitle(fm.Title)
	m.wizard.Message = fm.Message
	if media, err := parseMedia(fm.Media); err == nil {
		m.wizard.Media = media
	}
	if at, err := unlockDate(fm, m.now(), m.loc); err == nil {
		_ = m.wizard.SetUnlockDate(at, m.now())
	}
}

// applyStep validates the current step's fields into the wizard
func (m *Model) applyStep() error {
	fm := m.capsuleForm
	now := m.now()
	switch m.wizard.Current() {
	case wizard.StepTitle:
		return m.wizard.SetTitle(fm.Title)
	case wizard.StepMemory:
		media, err := parseMedia(fm.Media)
		if err != nil {
			return err
		}
		m.wizard.Message = fm.Message
		m.wizard.Media = nil
		for _, md := range media {
			if err := m.wizard.AddMedia(md.Ref); err != nil {
				return err
			}
		}
		return nil
	case wizard.StepLockDate:
		at, err := unlockDate(fm, now, m.loc)
		if err != nil {
			m.wizard.ClearUnlockDate()
			return err
		}
		return m.wizard.SetUnlockDate(at, now)
	}
	return nil
}

// submitStep runs when a step's form completes: it advances to the next
// step, or starts sealing on the last one
func (m Model) submitStep() (Model, tea.Cmd) {
	if err := m.applyStep(); err != nil {
		return m.reopen(err)
	}
	if m.wizard.Current() < wizard.StepLockDate {
		if err := m.wizard.Next(); err != nil {
			return m.reopen(err)
		}
		return m.openStep()
	}
	if _, err := m.wizard.Build(m.now()); err != nil {
		return m.reopen(err)
	}
	m.formError = ""
	m.submitting = true
	return m, tea.Batch(m.spinner.Tick(), tea.Tick(m.sealDelay, func(time.Time) tea.Msg {
		return sealDoneMsg{}
	}))
}

func (m Model) openStep() (Model, tea.Cmd) {
	m.formError = ""
	m.form = NewStepForm(m.wizard.Current(), m.capsuleForm)
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width-4, 72))
	}
	return m, m.form.Init()
}

func (m Model) jumpToStep(step wizard.Step) (tea.Model, tea.Cmd) {
	m.syncWizard()
	if err := m.wizard.GoTo(step); err != nil {
		m.formError = err.Error()
		return m, nil
	}
	return m.openStep()
}

func (m Model) finishSeal() (tea.Model, tea.Cmd) {
	m.submitting = false
	rec, err := m.wizard.Build(m.now())
	if err != nil {
		return m.reopen(err)
	}
	if err := m.store.AddCapsule(rec); err != nil {
		logger.Error("failed to seal capsule", "error", err)
		return m.reopen(err)
	}
	logger.Info("capsule sealed", "id", rec.ID, "unlock_at", rec.UnlockAt)
	m, cmd := m.navigate(router.Dashboard)
	return m.showToast(fmt.Sprintf("Capsule sealed! ✨ Your memory will unlock on %s",
		rec.UnlockAt.In(m.loc).Format(constants.LongDateFormat)), cmd)
}
