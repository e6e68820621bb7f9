package hero

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewShowsFeatureCards(t *testing.T) {
	view := New().View()

	for _, f := range Features {
		assert.Contains(t, view, f.Title)
	}
	assert.Contains(t, view, "Preserve Today's Memories")
	assert.Contains(t, view, Quote)
}

func TestCardsStackWhenNarrow(t *testing.T) {
	wide := Model{Width: 200}.Cards()
	narrow := Model{Width: 40}.Cards()

	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
}
