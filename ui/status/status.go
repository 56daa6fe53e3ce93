// Package status provides the bottom status bar of the vnav host. It shows
// the render window, the focused index, the scroll position and the
// navigation state.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vnav/style"
)

// Snapshot is everything the bar displays. The host fills it every frame.
type Snapshot struct {
	FirstIndex int
	NumOfItems int
	DataSize   int
	Focused    int // -1 when focus is outside the list
	Selected   int // -1 when nothing was picked
	Offset     int
	MaxScroll  int
	Phase      string
	Wrap       string
	Paused     int
	Layout     string // "3×vertical" etc.
}

// Model is the status bar state. Drive it via setters; it has no Update loop.
type Model struct {
	snap    Snapshot
	width   int
	spinner string
	hint    string
}

// New returns an empty bar.
func New() Model { return Model{snap: Snapshot{Focused: -1, Selected: -1}} }

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) { m.width = w }

// Set replaces the displayed values.
func (m *Model) Set(s Snapshot) { m.snap = s }

// SetSpinner sets the rendered spinner shown while paused.
func (m *Model) SetSpinner(s string) { m.spinner = s }

// SetHint sets the right-aligned key hint.
func (m *Model) SetHint(h string) { m.hint = h }

// View renders one line, truncated to the bar width.
func (m Model) View() string {
	s := m.snap
	focused := "-"
	if s.Focused >= 0 {
		focused = fmt.Sprint(s.Focused)
	}

	parts := []string{
		field("window", fmt.Sprintf("%d+%d/%d", s.FirstIndex, s.NumOfItems, s.DataSize)),
		field("focus", focused),
		field("scroll", fmt.Sprintf("%d/%d", s.Offset, s.MaxScroll)),
		field("wrap", s.Wrap),
		field("grid", s.Layout),
		style.StatusPhase.Render(s.Phase),
	}
	if s.Selected >= 0 {
		parts = append(parts, field("selected", fmt.Sprint(s.Selected)))
	}
	if s.Paused > 0 {
		p := style.StatusPause.Render(fmt.Sprintf("paused×%d", s.Paused))
		if m.spinner != "" {
			p = m.spinner + " " + p
		}
		parts = append(parts, p)
	}
	left := strings.Join(parts, style.HelpSeparator.Render(" │ "))

	line := left
	if m.hint != "" && m.width > 0 {
		gap := m.width - lipgloss.Width(left) - lipgloss.Width(m.hint) - 1
		if gap >= 2 {
			line = left + strings.Repeat(" ", gap) + m.hint
		}
	}
	if m.width > 0 {
		line = ansi.Truncate(line, m.width-1, "…")
	}
	return style.StatusBar.Render(line)
}

func field(label, value string) string {
	return style.StatusLabel.Render(label+" ") + style.StatusValue.Render(value)
}
