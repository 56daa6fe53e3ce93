package status

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestStatus_ShowsWindowAndFocus(t *testing.T) {
	m := New()
	m.Set(Snapshot{FirstIndex: 24, NumOfItems: 21, DataSize: 60, Focused: 40, Offset: 49, MaxScroll: 79, Phase: "idle", Wrap: "on", Selected: -1})
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "window 24+21/60")
	assert.Contains(t, out, "focus 40")
	assert.Contains(t, out, "scroll 49/79")
	assert.NotContains(t, out, "paused")
	assert.NotContains(t, out, "selected")
}

func TestStatus_ShowsSelection(t *testing.T) {
	m := New()
	m.Set(Snapshot{Focused: 3, Selected: 7, Phase: "idle"})
	assert.Contains(t, ansi.Strip(m.View()), "selected 7")
}

func TestStatus_PausedShowsSpinner(t *testing.T) {
	m := New()
	m.SetSpinner("*")
	m.Set(Snapshot{Focused: -1, Selected: -1, Paused: 2, Phase: "awaitingRender"})
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "focus -")
	assert.Contains(t, out, "* paused×2")
}

func TestStatus_FitsWidth(t *testing.T) {
	m := New()
	m.SetWidth(30)
	m.SetHint("[?] help")
	m.Set(Snapshot{DataSize: 1000000, Phase: "idle"})
	assert.LessOrEqual(t, lipgloss.Width(m.View()), 30)
}
