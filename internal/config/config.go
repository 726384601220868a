// Package config resolves ranger-drop configuration once at startup.
//
// Every source is a flat key/value Settings provider using the option names
// ranger itself uses (tmux_dropdown_percent, ...). Precedence (highest to
// lowest):
//  1. Environment variables (RANGER_DROP_*, OTEL_EXPORTER_OTLP_*)
//  2. Config file
//  3. ranger rc.conf "set" lines
//  4. Built-in defaults
//
// Config file search order:
//  1. the --config flag
//  2. .ranger-drop.yaml in current directory
//  3. ~/.config/ranger-drop/config.yaml
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Option names shared by every source.
const (
	KeyAnimate       = "tmux_dropdown_animate"
	KeyDuration      = "tmux_dropdown_duration"
	KeyPercent       = "tmux_dropdown_percent"
	KeyRangerCommand = "ranger_command"
	KeyLogLevel      = "log_level"
	KeyLogSink       = "log_sink"
	KeyLogFile       = "log_file"
	KeyOTELEndpoint  = "otel_endpoint"
	KeyOTELHeaders   = "otel_headers"
)

// Config holds all ranger-drop configuration.
type Config struct {
	// Dropdown behaviour
	Animate    bool
	DurationMS int
	Percent    int

	// RangerCommand is the ranger executable, a name looked up in $PATH or a path.
	RangerCommand string

	// Logging
	LogLevel string
	LogSink  string // "file", "stderr" or "none"
	LogFile  string // empty selects the default state-dir log

	// OTEL
	OTELEndpoint string
	OTELHeaders  string // Comma-separated key=value pairs

	// Duration is DurationMS as a time.Duration (set after loading).
	Duration time.Duration

	// Sources lists the files that contributed settings, lowest precedence first.
	Sources []string
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Animate:       true,
		DurationMS:    100,
		Percent:       60,
		RangerCommand: "ranger",
		LogLevel:      "info",
		LogSink:       "file",
		Duration:      100 * time.Millisecond,
	}
}

// Apply overlays layers onto c, later layers winning, and validates the
// result. Unknown keys are ignored: rc.conf carries every ranger setting.
func (c *Config) Apply(layers ...Settings) error {
	lookup := func(key string) (string, bool) {
		var (
			val   string
			found bool
		)
		for _, l := range layers {
			if v, ok := l.Lookup(key); ok {
				val, found = v, true
			}
		}
		return strings.TrimSpace(val), found
	}

	if v, ok := lookup(KeyAnimate); ok {
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", KeyAnimate, err)
		}
		c.Animate = b
	}
	if v, ok := lookup(KeyDuration); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", KeyDuration, v)
		}
		c.DurationMS = n
	}
	if v, ok := lookup(KeyPercent); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", KeyPercent, v)
		}
		c.Percent = n
	}
	if v, ok := lookup(KeyRangerCommand); ok && v != "" {
		c.RangerCommand = v
	}
	if v, ok := lookup(KeyLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(KeyLogSink); ok && v != "" {
		c.LogSink = strings.ToLower(v)
	}
	if v, ok := lookup(KeyLogFile); ok {
		c.LogFile = v
	}
	if v, ok := lookup(KeyOTELEndpoint); ok {
		c.OTELEndpoint = v
	}
	if v, ok := lookup(KeyOTELHeaders); ok {
		c.OTELHeaders = v
	}

	c.Duration = time.Duration(c.DurationMS) * time.Millisecond
	return c.Validate()
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Percent < 0 || c.Percent > 100 {
		return fmt.Errorf("%s: %d is outside 0-100", KeyPercent, c.Percent)
	}
	if c.DurationMS < 0 {
		return fmt.Errorf("%s: %d must not be negative", KeyDuration, c.DurationMS)
	}
	if c.RangerCommand == "" {
		return fmt.Errorf("%s: must not be empty", KeyRangerCommand)
	}
	switch c.LogSink {
	case "file", "stderr", "none":
	default:
		return fmt.Errorf("%s: unknown sink %q (supported: file, stderr, none)", KeyLogSink, c.LogSink)
	}
	return nil
}

// parseBool accepts what ranger accepts for booleans plus the usual
// yes/no/on/off spellings.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return b, nil
}
