package style

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults. Updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	CardBgColor        color.Color = lipgloss.Color("#1F2937")
	CardFocusBgColor   color.Color = lipgloss.Color("#312E81")
	CardFocusTextColor color.Color = lipgloss.Color("#FFFFFF")
	PlaceholderColor   color.Color = lipgloss.Color("#F59E0B")

	StatusBgColor  color.Color = lipgloss.Color("#111827")
	ToolbarBgColor color.Color = lipgloss.Color("#111827")
	ModalBgColor   color.Color = lipgloss.Color("#111827")

	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style
	Hint      lipgloss.Style

	// -------------------------------------------------------------------------
	// Grid cards
	// -------------------------------------------------------------------------

	Card         lipgloss.Style // idle item
	CardFocused  lipgloss.Style // item holding focus
	CardDisabled lipgloss.Style // item that cannot take focus
	CardSelected lipgloss.Style // item picked with enter
	CardIndex    lipgloss.Style // index label inside a card

	// -------------------------------------------------------------------------
	// Toolbar
	// -------------------------------------------------------------------------

	Toolbar       lipgloss.Style
	ToolbarButton lipgloss.Style
	ToolbarActive lipgloss.Style // button holding focus

	// -------------------------------------------------------------------------
	// Status bar
	// -------------------------------------------------------------------------

	StatusBar   lipgloss.Style
	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style
	StatusPhase lipgloss.Style
	StatusPause lipgloss.Style

	// -------------------------------------------------------------------------
	// Help / keys
	// -------------------------------------------------------------------------

	HelpKey       lipgloss.Style // key binding display
	HelpDesc      lipgloss.Style // key description
	HelpSeparator lipgloss.Style

	// -------------------------------------------------------------------------
	// Modal
	// -------------------------------------------------------------------------

	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	// -------------------------------------------------------------------------
	// Scrollbar
	// -------------------------------------------------------------------------

	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	CardBgColor = t.CardBg
	CardFocusBgColor = t.CardFocusBg
	CardFocusTextColor = t.CardFocusText
	PlaceholderColor = t.Placeholder
	StatusBgColor = t.StatusBg
	ToolbarBgColor = t.ToolbarBg
	ModalBgColor = t.ModalBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// NextTheme returns the theme after the current one in ThemeNames order.
func NextTheme() string {
	for i, n := range ThemeNames {
		if n == CurrentThemeName {
			return ThemeNames[(i+1)%len(ThemeNames)]
		}
	}
	return ThemeNames[0]
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Hint = lipgloss.NewStyle().Foreground(Dim)

	Card = lipgloss.NewStyle().
		Background(CardBgColor).
		Foreground(Muted)
	CardFocused = lipgloss.NewStyle().
		Background(CardFocusBgColor).
		Foreground(CardFocusTextColor).
		Bold(true)
	CardDisabled = lipgloss.NewStyle().
		Background(CardBgColor).
		Foreground(Dim).
		Strikethrough(true)
	CardSelected = lipgloss.NewStyle().
		Background(CardBgColor).
		Foreground(Success).
		Bold(true)
	CardIndex = lipgloss.NewStyle().Foreground(Secondary)

	Toolbar = lipgloss.NewStyle().Background(ToolbarBgColor).PaddingLeft(1)
	ToolbarButton = lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
	ToolbarActive = lipgloss.NewStyle().
		Foreground(CardFocusTextColor).
		Background(Primary).
		Bold(true).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().Background(StatusBgColor).Foreground(Muted).PaddingLeft(1)
	StatusLabel = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	StatusPhase = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	StatusPause = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ModalBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)
	ModalTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}

// PlaceholderBorder returns the outline drawn where the placeholder sits.
func PlaceholderBorder(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(PlaceholderColor).Render(strings.Repeat("┄", width))
}
