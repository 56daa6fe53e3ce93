package style

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

// LerpColor linearly interpolates between two colors at position t in [0,1].
func LerpColor(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()

	// RGBA() returns values in [0, 65535]. Convert to [0, 255].
	lerp := func(x, y uint32) uint8 {
		v := float64(x>>8)*(1-t) + float64(y>>8)*t
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: lerp(ar, br),
		G: lerp(ag, bg),
		B: lerp(ab, bb),
		A: lerp(aa, ba),
	}
}

// Hex converts a color to "#RRGGBB". Alpha is ignored.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}

// GradientText renders text with a left-to-right color gradient, one rune
// at a time.
func GradientText(text string, from, to color.Color, bold bool) string {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return ""
	}
	base := lipgloss.NewStyle().Bold(bold)
	if n == 1 {
		return base.Foreground(from).Render(text)
	}

	var sb strings.Builder
	for i, r := range runes {
		c := LerpColor(from, to, float64(i)/float64(n-1))
		sb.WriteString(base.Foreground(c).Render(string(r)))
	}
	return sb.String()
}

// Title renders s in the theme gradient, bold.
func Title(s string) string {
	return GradientText(s, GradColorA, GradColorB, true)
}

// Ramp returns n colors evenly spaced along the theme gradient.
func Ramp(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = LerpColor(GradColorA, GradColorB, t)
	}
	return out
}
