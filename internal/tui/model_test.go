package tui

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/models"
	"github.com/julianstephens/timecapsule/internal/router"
	"github.com/julianstephens/timecapsule/internal/storage/sqlite"
	"github.com/julianstephens/timecapsule/internal/tui/components/capsulelist"
	"github.com/julianstephens/timecapsule/internal/wizard"
)

var now = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)

var ada = models.Profile{ID: "prof_1", Name: "Ada Lovelace", Email: "ada@example.com", CreatedAt: now}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "capsule.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newModel(t *testing.T, store *sqlite.Store, route string) Model {
	t.Helper()
	m, err := NewModel(store, Options{
		Route:    route,
		Now:      func() time.Time { return now },
		Location: time.UTC,
		Rand:     rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartRoute(t *testing.T) {
	store := newStore(t)

	m := newModel(t, store, "")
	assert.Equal(t, router.Home, m.Route())
	assert.Nil(t, m.User())

	m = newModel(t, store, "/dashboard")
	assert.Equal(t, router.Register, m.Route(), "no profile yet")

	require.NoError(t, store.SaveProfile(ada))

	m = newModel(t, store, "")
	assert.Equal(t, router.Dashboard, m.Route())
	require.NotNil(t, m.User())
	assert.Contains(t, m.View(), "Hello, Ada 👋")

	m = newModel(t, store, "/create")
	assert.Equal(t, router.Create, m.Route())
}

func TestUnknownStartRoute(t *testing.T) {
	_, err := NewModel(newStore(t), Options{Route: "/nope"})
	assert.ErrorIs(t, err, router.ErrUnknownRoute)
}

func TestLogoutAndLogin(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	m := newModel(t, store, "")

	m, _ = update(t, m, keyRunes("o"))
	assert.Equal(t, router.Home, m.Route())
	assert.Nil(t, m.User())
	assert.Equal(t, "Signed out", m.Toast())

	m, _ = m.navigate(router.Dashboard)
	require.Equal(t, router.Login, m.Route(), "known profile signs in instead of registering")

	m.loginForm.Email = "someone@else.com"
	m, _ = m.submitLogin()
	assert.Equal(t, router.Login, m.Route())
	assert.Contains(t, m.FormError(), "no account")

	m.loginForm.Email = "ADA@example.com "
	m, _ = m.submitLogin()
	assert.Equal(t, router.Dashboard, m.Route())
	require.NotNil(t, m.User())
	assert.Equal(t, "ada@example.com", m.User().Email)
}

func TestRegister(t *testing.T) {
	store := newStore(t)
	m := newModel(t, store, "/register")

	m.registerForm.Name = "Grace Hopper"
	m.registerForm.Email = "grace@example.com"
	m.registerForm.Password = "weak"
	m, _ = m.submitRegister()
	assert.False(t, m.Submitting())
	assert.NotEmpty(t, m.FormError())
	assert.Contains(t, m.View(), "○ One uppercase letter")
	assert.NotContains(t, m.View(), "Ready to create your account")

	m.registerForm.Password = "Str0ngPass"
	assert.Contains(t, m.View(), "Ready to create your account")
	m, cmd := m.submitRegister()
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())
	assert.Contains(t, m.View(), "Creating account")

	p, err := m.registerForm.Registration().Profile(now)
	require.NoError(t, err)
	m, _ = update(t, m, registerDoneMsg{profile: p})

	assert.False(t, m.Submitting())
	assert.Equal(t, router.Dashboard, m.Route())
	assert.Equal(t, "Welcome to Time Capsule! ✨", m.Toast())

	stored, err := store.GetProfile()
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", stored.Name)
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	m := newModel(t, newStore(t), "/register")
	m.submitting = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, router.Register, m.Route())
}

func TestCreateWizard(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	m := newModel(t, store, "/create")
	require.Equal(t, wizard.StepTitle, m.wizard.Current())

	m, _ = m.submitStep()
	assert.Equal(t, wizard.StepTitle, m.wizard.Current(), "empty title does not advance")
	assert.Contains(t, m.FormError(), "incomplete")

	m.capsuleForm.Title = "Letter to 2027"
	m, _ = m.submitStep()
	require.Equal(t, wizard.StepMemory, m.wizard.Current())
	assert.Empty(t, m.FormError())

	m, _ = m.submitStep()
	assert.Equal(t, wizard.StepMemory, m.wizard.Current(), "empty message does not advance")

	m.capsuleForm.Message = "Dear future me"
	m.capsuleForm.Media = "beach.png\n\nclip.mp4"
	m, _ = m.submitStep()
	require.Equal(t, wizard.StepLockDate, m.wizard.Current())
	assert.Contains(t, m.View(), "✓ 1 Title")

	m.capsuleForm.QuickDate = "1w"
	assert.Contains(t, m.View(), "Message, 1 photo(s), 1 video(s)")

	m, cmd := m.submitStep()
	require.NotNil(t, cmd)
	assert.True(t, m.Submitting())
	assert.Contains(t, m.View(), "Sealing your capsule")

	m, _ = update(t, m, sealDoneMsg{})
	assert.Equal(t, router.Dashboard, m.Route())
	assert.Equal(t, "Capsule sealed! ✨ Your memory will unlock on May 27, 2026", m.Toast())

	recs, err := store.GetAllCapsules(false)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Letter to 2027", recs[0].Title)
	assert.True(t, recs[0].UnlockAt.Equal(now.Add(7*24*time.Hour)))
	assert.Len(t, recs[0].Media, 2)
}

func TestCreateWizardRejectsPastDate(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	m := newModel(t, store, "/create")

	m.capsuleForm.Title = "t"
	m.capsuleForm.Message = "m"
	m, _ = m.submitStep()
	m, _ = m.submitStep()
	require.Equal(t, wizard.StepLockDate, m.wizard.Current())

	m.capsuleForm.QuickDate = customDate
	m.capsuleForm.Date = "2020-01-01"
	m, _ = m.submitStep()
	assert.False(t, m.Submitting())
	assert.Contains(t, m.FormError(), "future")
}

func TestCreateWizardNavigation(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	m := newModel(t, store, "/create")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3"), Alt: true})
	assert.Equal(t, wizard.StepTitle, m.wizard.Current())
	assert.NotEmpty(t, m.FormError())

	m.capsuleForm.Title = "Trip"
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2"), Alt: true})
	assert.Equal(t, wizard.StepMemory, m.wizard.Current())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, wizard.StepTitle, m.wizard.Current())
	assert.Equal(t, "Trip", m.capsuleForm.Title)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, router.Dashboard, m.Route())
}

func seedCapsules(t *testing.T, store *sqlite.Store) {
	t.Helper()
	require.NoError(t, store.AddCapsule(models.Record{
		ID: "locked-1", Title: "Sealed", Message: "secret",
		UnlockAt: now.Add(48 * time.Hour), CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, store.AddCapsule(models.Record{
		ID: "open-1", Title: "Opened", Message: "hello past",
		UnlockAt: now.Add(-48 * time.Hour), CreatedAt: now.Add(-72 * time.Hour),
	}))
}

func TestDashboardAndViewer(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	seedCapsules(t, store)
	m := newModel(t, store, "")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Sealed")
	assert.Contains(t, view, "Opened")
	assert.Contains(t, view, "With Media")

	m, cmd := update(t, m, capsulelist.OpenCapsuleMsg{ID: "locked-1"})
	require.NotNil(t, cmd)
	assert.Equal(t, router.Capsule("locked-1"), m.Route())
	assert.Contains(t, m.View(), "This capsule is sealed")
	assert.NotContains(t, m.View(), "secret")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, router.Dashboard, m.Route())
}

func TestViewerByPrefixAndMissing(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	seedCapsules(t, store)

	m := newModel(t, store, "/capsule/open")
	assert.Equal(t, router.Capsule("open-1"), m.Route())

	m = newModel(t, store, "/capsule/missing")
	assert.Equal(t, router.Dashboard, m.Route())
	assert.Equal(t, "Capsule not found", m.Toast())
}

func TestDeleteFromDashboard(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveProfile(ada))
	seedCapsules(t, store)
	m := newModel(t, store, "")

	m, _ = update(t, m, capsulelist.DeleteCapsuleMsg{ID: "open-1"})
	assert.Equal(t, "Capsule deleted", m.Toast())
	assert.Equal(t, 1, m.list.Len())

	deleted, err := store.GetAllCapsules(true)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)
}

func TestToastExpires(t *testing.T) {
	m := newModel(t, newStore(t), "")
	m, _ = m.showToast("first", nil)
	stale := m.toastTag
	m, _ = m.showToast("second", nil)

	m, _ = update(t, m, clearToastMsg{tag: stale})
	assert.Equal(t, "second", m.Toast())

	m, _ = update(t, m, clearToastMsg{tag: m.toastTag})
	assert.Empty(t, m.Toast())
}

func TestQuit(t *testing.T) {
	m := newModel(t, newStore(t), "")
	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m = newModel(t, newStore(t), "/register")
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
