// Package toast provides auto-dismissing notifications for the vnav host:
// selections, mode toggles, config errors and navigation outcomes that focus
// alone does not show.
package toast

import (
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vnav/style"
	"github.com/miosa/osa-vnav/ui/spatial"
)

// Level classifies toast severity.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

const (
	maxToasts = 3
	toastTTL  = 3 * time.Second

	// navigationKey coalesces navigation notices into one line.
	navigationKey = "navigation"
)

type toast struct {
	key     string
	message string
	level   Level
	expiry  time.Time
}

// Model manages a queue of auto-dismissing toasts.
type Model struct {
	queue []toast
	now   func() time.Time
}

// New creates an empty Model. A nil clock uses time.Now.
func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{now: now}
}

// Add enqueues a toast. The oldest are dropped beyond maxToasts.
func (m *Model) Add(message string, level Level) {
	m.Replace("", message, level)
}

// Addf is Add with formatting.
func (m *Model) Addf(level Level, format string, args ...any) {
	m.Add(fmt.Sprintf(format, args...), level)
}

// Replace enqueues a toast that supersedes any visible toast with the same
// key. An empty key never supersedes.
func (m *Model) Replace(key, message string, level Level) {
	if key != "" {
		m.queue = slices.DeleteFunc(m.queue, func(t toast) bool { return t.key == key })
	}
	m.queue = append(m.queue, toast{
		key:     key,
		message: message,
		level:   level,
		expiry:  m.now().Add(toastTTL),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// Navigation queues a notice for a move whose outcome focus does not show:
// a wrap to the opposite edge, or a scroll toward an item that is not
// rendered yet. prev and next are the navigator states around the move. It
// reports whether a notice was queued.
func (m *Model) Navigation(prev, next spatial.State) bool {
	if next == prev {
		return false
	}
	switch {
	case next.Last.IsWrapped && next.Last != prev.Last:
		m.Replace(navigationKey, fmt.Sprintf("wrapped to #%d", next.Last.Index), Info)
	case next.Phase == spatial.AwaitingRender && next.Pending != prev.Pending:
		m.Replace(navigationKey, fmt.Sprintf("scrolling to #%d", next.Pending), Info)
	default:
		return false
	}
	return true
}

// Tick prunes expired toasts.
func (m *Model) Tick() {
	now := m.now()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
}

// Len returns the number of visible toasts.
func (m Model) Len() int { return len(m.queue) }

// HasToasts reports whether any toasts are visible.
func (m Model) HasToasts() bool { return len(m.queue) > 0 }

// View renders the toasts as right-aligned lines.
func (m Model) View(width int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, col := iconColor(t.level)
		rendered := lipgloss.NewStyle().Foreground(col).Render(fmt.Sprintf(" %s %s ", icon, t.message))
		pad := max(0, width-lipgloss.Width(rendered))
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func iconColor(level Level) (string, color.Color) {
	switch level {
	case Warning:
		return "⚠", style.Warning
	case Error:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
