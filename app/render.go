package app

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"

	"github.com/miosa/osa-vnav/style"
	"github.com/miosa/osa-vnav/ui/common"
	"github.com/miosa/osa-vnav/ui/vlist"
)

// ---------------------------------------------------------------------------
// Grid
// ---------------------------------------------------------------------------

// segment is one card line placed on a canvas row.
type segment struct {
	x    int
	text string
}

// cardState selects the style of a card.
type cardState int

const (
	cardIdle cardState = iota
	cardFocused
	cardDisabled
	cardSelected
)

// cardSize returns the on-screen width and height of one card.
func cardSize(m vlist.Metrics) (w, h int) {
	if m.Orientation == vlist.Horizontal {
		return m.Primary.ItemSize, m.Secondary.ItemSize
	}
	return m.Secondary.ItemSize, m.Primary.ItemSize
}

// screenPos maps a slot position to viewport coordinates at offset.
func screenPos(p vlist.Position, o vlist.Orientation, rtl bool, offset int) (x, y int) {
	switch {
	case o == vlist.Vertical:
		return p.X, p.Y - offset
	case rtl:
		return p.X + offset, p.Y
	default:
		return p.X - offset, p.Y
	}
}

// cardLines renders a card as exactly h lines of width w.
func cardLines(c card, w, h int, st cardState) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	s := style.Card
	switch st {
	case cardFocused:
		s = style.CardFocused
	case cardDisabled:
		s = style.CardDisabled
	case cardSelected:
		s = style.CardSelected
	}
	title := ansi.Truncate(c.Title, w, "…")
	out := s.Width(w).Height(h).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(title)
	lines := strings.Split(out, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	return lines
}

// renderGrid draws the visible slots of the list into width × height cells.
func renderGrid(e *engine, width, height, selected int) []string {
	m := e.list.Metrics()
	w, h := cardSize(m)
	offset := e.scroll.Offset()
	focused := e.focused()

	rows := make([][]segment, height)
	for _, slot := range e.list.Slots() {
		x, y := screenPos(slot.Position, m.Orientation, e.list.RTL(), offset)
		if y >= height || y+h <= 0 || x >= width || x+w <= 0 {
			continue
		}
		st := cardIdle
		switch {
		case slot.Index == focused:
			st = cardFocused
		case e.disabled(slot.Index):
			st = cardDisabled
		case slot.Index == selected:
			st = cardSelected
		}
		for i, line := range cardLines(slot.Node, w, h, st) {
			if row := y + i; row >= 0 && row < height {
				rows[row] = append(rows[row], segment{x: x, text: line})
			}
		}
	}

	out := make([]string, height)
	for i, segs := range rows {
		out[i] = composeRow(segs, width)
	}
	if e.registry.Current() == e.nodes.PlaceholderID() && height > 0 {
		out[0] = style.PlaceholderBorder(width)
	}
	return out
}

// composeRow lays non-overlapping segments onto one row of width cells,
// clipping at both edges.
func composeRow(segs []segment, width int) string {
	slices.SortFunc(segs, func(a, b segment) int { return a.x - b.x })
	var sb strings.Builder
	cursor := 0
	for _, s := range segs {
		sw := ansi.StringWidth(s.text)
		if s.x+sw <= cursor || s.x >= width {
			continue
		}
		text, x := s.text, s.x
		if x < cursor {
			text = ansi.Cut(text, cursor-x, sw)
			x = cursor
		}
		if x+ansi.StringWidth(text) > width {
			text = ansi.Truncate(text, width-x, "")
		}
		sb.WriteString(strings.Repeat(" ", x-cursor))
		sb.WriteString(text)
		cursor = x + ansi.StringWidth(text)
	}
	if cursor < width {
		sb.WriteString(strings.Repeat(" ", width-cursor))
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Chrome
// ---------------------------------------------------------------------------

// buttonLabel describes a toolbar button together with the setting it shows.
func buttonLabel(name string, e *engine) string {
	switch name {
	case "wrap":
		return "wrap:" + e.cfg.Wrap
	case "orientation":
		return e.list.Config().Orientation.String()
	case "rtl":
		if e.cfg.RTL {
			return "rtl"
		}
		return "ltr"
	case "theme":
		return style.CurrentThemeName
	case "grow":
		return "+"
	case "shrink":
		return "−"
	case "help":
		return "?"
	}
	return name
}

func renderToolbar(e *engine, width int) string {
	current := e.registry.Current()
	parts := []string{style.Title("vnav")}
	for i, name := range e.toolbar.buttons {
		label := buttonLabel(name, e)
		if e.toolbar.id(i) == current {
			parts = append(parts, style.ToolbarActive.Render(label))
		} else {
			parts = append(parts, style.ToolbarButton.Render(label))
		}
	}
	line := ansi.Truncate(strings.Join(parts, " "), max(0, width-1), "…")
	return style.Toolbar.Width(width).Render(line)
}

// joinScrollbar attaches the scrollbar along the scrolling axis.
func joinScrollbar(rows []string, bar string, o vlist.Orientation, width int) string {
	if o == vlist.Horizontal {
		if bar == "" {
			bar = strings.Repeat(" ", width)
		}
		return strings.Join(rows, "\n") + "\n" + bar
	}
	cells := strings.Split(bar, "\n")
	for i := range rows {
		c := " "
		if bar != "" && i < len(cells) {
			c = cells[i]
		}
		rows[i] += c
	}
	return strings.Join(rows, "\n")
}

// overlayRight pastes block onto the bottom right of rows.
func overlayRight(rows []string, block string, width int) {
	if block == "" {
		return
	}
	lines := strings.Split(block, "\n")
	start := max(0, len(rows)-len(lines))
	for i, line := range lines {
		r := start + i
		if r >= len(rows) {
			break
		}
		lw := min(ansi.StringWidth(line), width)
		line = ansi.Truncate(line, lw, "")
		rows[r] = ansi.Truncate(rows[r], width-lw, "") + line
	}
}

// ---------------------------------------------------------------------------
// Help
// ---------------------------------------------------------------------------

const helpNotes = `
Focus moves with the D-pad. When the next item is outside the rendered
window the list scrolls first and focus follows once the item exists.
Input is ignored while navigation is paused.
`

// helpCache keeps the last rendered help so glamour runs only when the width
// or theme changes.
type helpCache struct {
	width int
	theme string
	out   string
}

func (h *helpCache) render(keys KeyMap, width int) string {
	if h.out != "" && h.width == width && h.theme == style.CurrentThemeName {
		return h.out
	}
	md := "# Keys\n\n" + common.KeyTable(keys.HelpBindings()...) + "\n" + helpNotes
	out := md
	glamourStyle := "dark"
	if !style.IsDark() {
		glamourStyle = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := r.Render(md); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	h.width, h.theme, h.out = width, style.CurrentThemeName, out
	return out
}

func renderHelp(h *helpCache, keys KeyMap, width, height int) string {
	inner := max(20, min(width-6, 72))
	body := h.render(keys, inner)
	box := style.ModalBorder.Render(
		style.ModalTitle.Render("Help") + "\n" + body + "\n" +
			style.Hint.Render(fmt.Sprintf("%s close", keys.Escape.Help().Key)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
