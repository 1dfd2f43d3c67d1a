// Package config loads skyscape settings from an optional TOML file and
// resolves the startup capabilities the core is built with.
package config

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"skyscape/internal/particle"
	"skyscape/internal/scheduler"
	"skyscape/internal/typing"
)

var (
	ErrUnknownDevice       = errors.New("unknown device class")
	ErrUnknownHiddenPolicy = errors.New("unknown hidden policy")
	ErrUnknownLayer        = errors.New("unknown layer")
	ErrUnknownKey          = errors.New("unknown configuration key")
	ErrInvalid             = errors.New("invalid configuration")
)

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct{ time.Duration }

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Typing configures the typewriter line.
type Typing struct {
	Lines       []string `toml:"lines"`
	Start       Duration `toml:"start"`
	TypeDelay   Duration `toml:"type_delay"`
	DeleteDelay Duration `toml:"delete_delay"`
	Hold        Duration `toml:"hold"`
	Gap         Duration `toml:"gap"`
}

// CountsByDevice holds the population table.
type CountsByDevice struct {
	Desktop particle.Counts `toml:"desktop"`
	Mobile  particle.Counts `toml:"mobile"`
}

// Config is the full file format.
type Config struct {
	Device         string         `toml:"device"`
	ReducedMotion  bool           `toml:"reduced_motion"`
	HiddenPolicy   string         `toml:"hidden_policy"`
	Layers         []string       `toml:"layers"`
	ResizeDebounce Duration       `toml:"resize_debounce"`
	FPS            int            `toml:"fps"`
	Width          int            `toml:"width"`
	Height         int            `toml:"height"`
	ThemeFile      string         `toml:"theme_file"`
	Typing         Typing         `toml:"typing"`
	Counts         CountsByDevice `toml:"counts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Device:         "auto",
		HiddenPolicy:   "stars",
		Layers:         []string{"star", "nebula", "cloud", "interactive"},
		ResizeDebounce: Duration{scheduler.DefaultQuiet},
		FPS:            30,
		Width:          1280,
		Height:         720,
		ThemeFile:      "skyscape_theme.json",
		Typing: Typing{
			Lines: []string{
				"Loves programming",
				"Passionate about music & web development",
				"Living to learn and to create value",
				"Music will always come first",
				"Grab Python or C++ and play along",
			},
			Start:       Duration{time.Second},
			TypeDelay:   Duration{60 * time.Millisecond},
			DeleteDelay: Duration{40 * time.Millisecond},
			Hold:        Duration{2 * time.Second},
			Gap:         Duration{500 * time.Millisecond},
		},
		Counts: CountsByDevice{
			Desktop: particle.DefaultCounts(particle.Desktop),
			Mobile:  particle.DefaultCounts(particle.Mobile),
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if _, err := parseDevice(c.Device); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.LayerKinds(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.ResizeDebounce.Duration < 0 {
		return fmt.Errorf("%w: negative resize_debounce", ErrInvalid)
	}
	for _, n := range []particle.Counts{c.Counts.Desktop, c.Counts.Mobile} {
		if n.Stars < 0 || n.Nebula < 0 || n.Clouds < 0 || n.Interactive < 0 {
			return fmt.Errorf("%w: negative particle count", ErrInvalid)
		}
	}
	return nil
}

// Capabilities are resolved once at startup and frozen for the process.
type Capabilities struct {
	Device        particle.Device
	ReducedMotion bool
}

// Resolve turns the configured device class into a concrete one. "auto"
// picks mobile on phone operating systems.
func (c Config) Resolve() (Capabilities, error) {
	d, err := parseDevice(c.Device)
	if err != nil {
		return Capabilities{}, err
	}
	return Capabilities{Device: d, ReducedMotion: c.ReducedMotion}, nil
}

func parseDevice(s string) (particle.Device, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		if runtime.GOOS == "android" || runtime.GOOS == "ios" {
			return particle.Mobile, nil
		}
		return particle.Desktop, nil
	case "desktop":
		return particle.Desktop, nil
	case "mobile":
		return particle.Mobile, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDevice, s)
}

// Policy parses HiddenPolicy.
func (c Config) Policy() (scheduler.HiddenPolicy, error) {
	switch strings.ToLower(c.HiddenPolicy) {
	case "", "stars":
		return scheduler.HideStars, nil
	case "all":
		return scheduler.HideAll, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownHiddenPolicy, c.HiddenPolicy)
}

// LayerKinds parses Layers into stacking order, dropping duplicates.
func (c Config) LayerKinds() ([]particle.Kind, error) {
	var enabled [len(particle.Kinds)]bool
	for _, name := range c.Layers {
		k, ok := parseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
		}
		enabled[k] = true
	}
	var ks []particle.Kind
	for _, k := range particle.Kinds {
		if enabled[k] {
			ks = append(ks, k)
		}
	}
	return ks, nil
}

func parseKind(s string) (particle.Kind, bool) {
	for _, k := range particle.Kinds {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return 0, false
}

// CountsFor returns the population table row of d.
func (c Config) CountsFor(d particle.Device) particle.Counts {
	if d == particle.Mobile {
		return c.Counts.Mobile
	}
	return c.Counts.Desktop
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Options converts the typing section for the typewriter.
func (t Typing) Options() typing.Options {
	return typing.Options{
		Lines:       t.Lines,
		Start:       t.Start.Duration,
		TypeDelay:   t.TypeDelay.Duration,
		DeleteDelay: t.DeleteDelay.Duration,
		Hold:        t.Hold.Duration,
		Gap:         t.Gap.Duration,
	}
}
