package account

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/timecapsule/internal/models"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"", Strength{}},
		{"short1A", Strength{HasUpper: true, HasNumber: true}},
		{"alllowercase", Strength{HasLength: true}},
		{"ALLUPPERCASE", Strength{HasLength: true, HasUpper: true}},
		{"Password1", Strength{HasLength: true, HasUpper: true, HasNumber: true}},
		{"ÄÖÜäöüß12", Strength{HasLength: true, HasNumber: true}},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			got := CheckPassword(tt.password)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.HasLength && tt.want.HasUpper && tt.want.HasNumber, got.OK())
		})
	}
}

func TestChecklist(t *testing.T) {
	list := CheckPassword("Password").Checklist()
	require.Len(t, list, 3)
	assert.True(t, list[0].Met)
	assert.True(t, list[1].Met)
	assert.False(t, list[2].Met)
	assert.Equal(t, "At least 8 characters", list[0].Text)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"alex@example.com", "  a.b+c@mail.example.org ", "x@y.io"}
	invalid := []string{"", "alex", "alex@", "@example.com", "alex@example", "alex@example.", "a@b@c.com", "a b@c.com", "alex@.com"}

	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}
	for _, e := range invalid {
		assert.ErrorIs(t, ValidateEmail(e), ErrInvalidEmail, e)
	}
}

func TestRegistration(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	r := Registration{Name: "Alex Rivera", Email: "Alex@Example.com", Password: "weak"}
	assert.False(t, r.Submittable())
	assert.ErrorIs(t, r.Validate(), ErrWeakPassword)

	r.Name = " "
	assert.ErrorIs(t, r.Validate(), ErrNameRequired)

	r.Name = "Alex Rivera"
	r.Password = "Sunrise2026"
	require.True(t, r.Submittable())

	p, err := r.Profile(now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "prof_"))
	assert.Equal(t, "alex@example.com", p.Email)
	assert.Equal(t, now, p.CreatedAt)
	assert.NotEqual(t, p.ID, NewProfileID())
}

func TestLogin(t *testing.T) {
	p := &models.Profile{ID: "prof_1", Name: "Alex", Email: "alex@example.com"}

	_, err := Login(nil, "alex@example.com")
	assert.ErrorIs(t, err, ErrNoProfile)

	_, err = Login(p, "sam@example.com")
	assert.ErrorIs(t, err, ErrUnknownAccount)

	_, err = Login(p, "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	got, err := Login(p, " ALEX@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "prof_1", got.ID)
}

func TestGreeting(t *testing.T) {
	assert.Equal(t, "Hello, Alex 👋", Greeting(models.Profile{Name: "Alex Rivera"}))
	assert.Equal(t, "Hello, there 👋", Greeting(models.Profile{}))
}
