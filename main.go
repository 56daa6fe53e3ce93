package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/osa-vnav/app"
	"github.com/miosa/osa-vnav/config"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for state isolation (~/.osa/profiles/<name>)")
	configFlag := flag.String("config", "", "Settings file (default <profile>/vnav.toml)")
	themeFlag := flag.String("theme", "", "Theme override: dark, light, catppuccin, tokyo-night")
	debugFlag := flag.Bool("debug", false, "Write debug logs to <profile>/vnav.log")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vnav %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	if *profileFlag != "" {
		app.ProfileDir = filepath.Join(home, ".osa", "profiles", *profileFlag)
	} else {
		app.ProfileDir = filepath.Join(home, ".osa")
	}
	os.MkdirAll(app.ProfileDir, 0755)

	logger, closeLog := openLogger(*debugFlag)
	defer closeLog()

	path := *configFlag
	if path == "" {
		path = filepath.Join(app.ProfileDir, config.Filename)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vnav: %v (using defaults)\n", err)
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	// An empty theme follows the terminal background.
	if cfg.Theme == "" {
		if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
			cfg.Theme = "dark"
		} else {
			cfg.Theme = "light"
		}
	}

	m, err := app.New(cfg, app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "vnav: %v\n", err)
		os.Exit(1)
	}

	// In bubbletea v2, alt screen and mouse mode are configured on the View
	// returned by the model. Pass no options here.
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "vnav: %v\n", err)
		os.Exit(1)
	}
}

// openLogger returns a text logger writing to <profile>/vnav.log when debug
// is on, and a discarding logger otherwise.
func openLogger(debug bool) (*slog.Logger, func()) {
	if !debug {
		return slog.New(slog.DiscardHandler), func() {}
	}
	f, err := os.OpenFile(filepath.Join(app.ProfileDir, "vnav.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vnav: log: %v\n", err)
		return slog.New(slog.DiscardHandler), func() {}
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }
}
