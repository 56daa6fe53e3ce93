// Package config holds the persistent settings of the vnav demo host. Files
// are TOML (<profileDir>/vnav.toml) or YAML, picked by extension.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/miosa/osa-vnav/style"
	"github.com/miosa/osa-vnav/ui/focus"
	"github.com/miosa/osa-vnav/ui/spatial"
	"github.com/miosa/osa-vnav/ui/vlist"
)

// Filename is the default config file inside the profile directory.
const Filename = "vnav.toml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config is the on-disk settings file.
type Config struct {
	Theme string `toml:"theme" yaml:"theme" json:"theme"`

	// Dataset
	DataSize      int `toml:"data_size" yaml:"data_size" json:"data_size"`
	DisabledEvery int `toml:"disabled_every" yaml:"disabled_every" json:"disabled_every"` // every Nth item is disabled, 0 for none

	// Layout
	Orientation   string `toml:"orientation" yaml:"orientation" json:"orientation"`
	ItemMinWidth  int    `toml:"item_min_width" yaml:"item_min_width" json:"item_min_width"`
	ItemMinHeight int    `toml:"item_min_height" yaml:"item_min_height" json:"item_min_height"`
	Spacing       int    `toml:"spacing" yaml:"spacing" json:"spacing"`
	Overhang      int    `toml:"overhang" yaml:"overhang" json:"overhang"`
	RTL           bool   `toml:"rtl" yaml:"rtl" json:"rtl"`

	// Navigation
	Wrap       string `toml:"wrap" yaml:"wrap" json:"wrap"`
	EnterTo    string `toml:"enter_to" yaml:"enter_to" json:"enter_to"`
	Accelerate bool   `toml:"accelerate" yaml:"accelerate" json:"accelerate"`

	// Scrolling
	Animate       bool `toml:"animate" yaml:"animate" json:"animate"`
	ScrollMillis  int  `toml:"scroll_ms" yaml:"scroll_ms" json:"scroll_ms"`
	GestureIdleMs int  `toml:"gesture_idle_ms" yaml:"gesture_idle_ms" json:"gesture_idle_ms"`
	WheelLines    int  `toml:"wheel_lines" yaml:"wheel_lines" json:"wheel_lines"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Theme:         "dark",
		DataSize:      1000,
		DisabledEvery: 0,
		Orientation:   vlist.Vertical.String(),
		ItemMinWidth:  16,
		ItemMinHeight: 3,
		Spacing:       1,
		Overhang:      vlist.DefaultOverhang,
		Wrap:          spatial.WrapOff.String(),
		EnterTo:       focus.EnterLastFocused.String(),
		Accelerate:    true,
		Animate:       true,
		ScrollMillis:  180,
		GestureIdleMs: 250,
		WheelLines:    3,
	}
}

// Load reads path and overlays it on Default. A missing file yields the
// defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml", "":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Default(), fmt.Errorf("%w: unsupported file type %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Theme != "" {
		if _, ok := style.Themes[c.Theme]; !ok {
			bad("unknown theme %q", c.Theme)
		}
	}
	if c.DataSize < 0 {
		bad("data_size must not be negative, got %d", c.DataSize)
	}
	if c.DisabledEvery < 0 {
		bad("disabled_every must not be negative, got %d", c.DisabledEvery)
	}
	if _, err := c.orientation(); err != nil {
		bad("%v", err)
	}
	if c.ItemMinWidth <= 0 || c.ItemMinHeight <= 0 {
		bad("item size must be positive, got %dx%d", c.ItemMinWidth, c.ItemMinHeight)
	}
	if c.Spacing < 0 {
		bad("spacing must not be negative, got %d", c.Spacing)
	}
	if c.Overhang < vlist.MinOverhang {
		bad("overhang must be at least %d, got %d", vlist.MinOverhang, c.Overhang)
	}
	if _, err := spatial.ParseWrapMode(c.Wrap); err != nil {
		bad("%v", err)
	}
	if _, err := focus.ParseEnterTo(c.EnterTo); err != nil {
		bad("%v", err)
	}
	if c.ScrollMillis < 0 || c.GestureIdleMs < 0 {
		bad("durations must not be negative")
	}
	if c.WheelLines <= 0 {
		bad("wheel_lines must be positive, got %d", c.WheelLines)
	}
	return errors.Join(errs...)
}

// List returns the list layout settings.
func (c Config) List() vlist.Config {
	o, _ := c.orientation()
	return vlist.Config{
		Orientation: o,
		ItemSize:    vlist.ItemSize{MinWidth: c.ItemMinWidth, MinHeight: c.ItemMinHeight},
		Spacing:     c.Spacing,
		Overhang:    c.Overhang,
		RTL:         c.RTL,
	}
}

// Navigation returns the reducer options.
func (c Config) Navigation() spatial.Options {
	w, _ := spatial.ParseWrapMode(c.Wrap)
	return spatial.Options{Wrap: w, Animate: c.Animate}
}

// Enter returns the container entry rule.
func (c Config) Enter() focus.EnterTo {
	e, _ := focus.ParseEnterTo(c.EnterTo)
	return e
}

// ScrollDuration returns the animated scroll duration.
func (c Config) ScrollDuration() time.Duration {
	return time.Duration(c.ScrollMillis) * time.Millisecond
}

// GestureIdle returns the wheel quiet period that ends a gesture.
func (c Config) GestureIdle() time.Duration {
	return time.Duration(c.GestureIdleMs) * time.Millisecond
}

// Disabled reports whether index is disabled by DisabledEvery. Item 0 is
// never disabled so the list always has a default element.
func (c Config) Disabled(index int) bool {
	return c.DisabledEvery > 0 && index > 0 && index%c.DisabledEvery == 0
}

func (c Config) orientation() (vlist.Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(c.Orientation)) {
	case "", "vertical":
		return vlist.Vertical, nil
	case "horizontal":
		return vlist.Horizontal, nil
	}
	return vlist.Vertical, fmt.Errorf("unknown orientation %q", c.Orientation)
}
