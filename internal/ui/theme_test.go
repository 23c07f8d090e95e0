package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunsimp/imhere/internal/journal"
)

func TestTierTextKeepsValue(t *testing.T) {
	for _, n := range []int{1, 5, 10} {
		assert.Contains(t, TierText(n), "/10")
	}
	assert.Contains(t, TierText(7), "7/10")
}

func TestTodoLineMarksCompletion(t *testing.T) {
	assert.Contains(t, TodoLine("Walk", true), IconDone)
	assert.Contains(t, TodoLine("Walk", true), "Walk")
	assert.Equal(t, IconOpen+" Walk", TodoLine("Walk", false))
}

func TestTabIcons(t *testing.T) {
	seen := map[string]bool{}
	for _, tab := range journal.Tabs {
		icon := TabIcon(tab)
		assert.NotEqual(t, IconJournal, icon, "tab %s", tab)
		assert.False(t, seen[icon], "duplicate icon for %s", tab)
		seen[icon] = true
	}
	assert.Equal(t, IconJournal, TabIcon("unknown"))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0b9c3f1e", ShortID("0b9c3f1e-7d2a-4c55-9a77-0f3c2d1e4b6a"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestUseSwitchesPalette(t *testing.T) {
	t.Cleanup(func() { Use(journal.ThemeLight) })
	Use(journal.ThemeLight)
	light := Title.GetForeground()
	Use(journal.ThemeDark)
	assert.NotEqual(t, light, Title.GetForeground())
}
