package common

import (
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-vnav/style"
)

// KeyHelp renders a one-line key-binding help for the status bar. Each
// binding is rendered as "[key] description"; disabled bindings are omitted.
func KeyHelp(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		k := b.Help().Key
		if k == "" {
			k = strings.Join(b.Keys(), "/")
		}
		parts = append(parts, style.HelpKey.Render("["+k+"]")+style.HelpDesc.Render(" "+b.Help().Desc))
	}
	return strings.Join(parts, style.HelpSeparator.Render("  ·  "))
}

// KeyTable renders bindings as a markdown table for the help overlay.
func KeyTable(bindings ...key.Binding) string {
	var sb strings.Builder
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		sb.WriteString("| `" + strings.Join(b.Keys(), "` `") + "` | " + b.Help().Desc + " |\n")
	}
	return sb.String()
}
