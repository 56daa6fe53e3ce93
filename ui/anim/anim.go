// Package anim provides the gradient spinner shown in the status bar while
// navigation is paused.
//
// Features:
//   - Braille-dot spinner with a gradient that bounces between two colors
//   - Pre-rendered frame cache, rebuilt only when the colors change
//   - Per-instance tick IDs so several spinners never cross-talk
package anim

import (
	"image/color"
	"math"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vnav/style"
)

// ---------------------------------------------------------------------------
// Constants & package-level state
// ---------------------------------------------------------------------------

const (
	fps           = 20
	frameDuration = time.Second / fps
)

// frames is the Braille-dot spinner sequence.
var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var idCounter atomic.Int64

// ---------------------------------------------------------------------------
// TickMsg
// ---------------------------------------------------------------------------

// TickMsg advances the spinner with the matching ID by one frame.
type TickMsg struct {
	ID int64
}

// ---------------------------------------------------------------------------
// Opts
// ---------------------------------------------------------------------------

// Opts configures the spinner.
type Opts struct {
	// Label is rendered to the right of the glyph.
	Label string

	// GradColorA and GradColorB default to the theme gradient.
	GradColorA color.Color
	GradColorB color.Color
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model follows the Bubble Tea component pattern: value receiver
// Update/View, pointer receiver mutators.
type Model struct {
	id       int64
	opts     Opts
	spinning bool
	ticking  bool
	frame    int
	cache    []string
}

// New creates a stopped spinner.
func New(opts Opts) Model {
	if opts.GradColorA == nil {
		opts.GradColorA = style.GradColorA
	}
	if opts.GradColorB == nil {
		opts.GradColorB = style.GradColorB
	}
	m := Model{id: idCounter.Add(1), opts: opts}
	m.cache = m.buildCache()
	return m
}

// ID returns the tick ID of the spinner.
func (m Model) ID() int64 { return m.id }

// Update advances the frame on each TickMsg addressed to this spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id {
		return m, nil
	}
	m.ticking = false
	if !m.spinning {
		return m, nil
	}
	m.frame = (m.frame + 1) % len(frames)
	return m, m.Tick()
}

// View renders the current frame, or "" when stopped.
func (m Model) View() string {
	if !m.spinning {
		return ""
	}
	glyph := m.cache[m.frame%len(m.cache)]
	if m.opts.Label == "" {
		return glyph
	}
	return glyph + " " + style.StatusPause.Render(m.opts.Label)
}

// ---------------------------------------------------------------------------
// Public API
// ---------------------------------------------------------------------------

// Start begins the animation and returns the first tick, or nil when a tick
// is already pending.
func (m *Model) Start() tea.Cmd {
	m.spinning = true
	return m.Tick()
}

// Stop halts the animation. The pending tick, if any, is absorbed by Update.
func (m *Model) Stop() { m.spinning = false }

// IsSpinning reports whether the animation is running.
func (m Model) IsSpinning() bool { return m.spinning }

// SetLabel changes the label text.
func (m *Model) SetLabel(s string) { m.opts.Label = s }

// SetColors replaces the gradient and rebuilds the frame cache.
func (m *Model) SetColors(a, b color.Color) {
	m.opts.GradColorA, m.opts.GradColorB = a, b
	m.cache = m.buildCache()
}

// Tick schedules the next frame.
func (m *Model) Tick() tea.Cmd {
	if m.ticking || !m.spinning {
		return nil
	}
	m.ticking = true
	id := m.id
	return tea.Tick(frameDuration, func(time.Time) tea.Msg {
		return TickMsg{ID: id}
	})
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func (m Model) buildCache() []string {
	n := len(frames)
	out := make([]string, n)
	for i, glyph := range frames {
		// Sine oscillation so the gradient bounces instead of wrapping.
		t := (math.Sin(math.Pi*float64(i)/float64(n-1)) + 1) / 2
		c := style.LerpColor(m.opts.GradColorA, m.opts.GradColorB, t)
		out[i] = lipgloss.NewStyle().Foreground(c).Render(glyph)
	}
	return out
}
