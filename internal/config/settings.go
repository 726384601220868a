package config

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// Settings is a key/value source of options.
type Settings interface {
	Lookup(key string) (string, bool)
}

// Map is a Settings backed by a map.
type Map map[string]string

// Lookup returns the value stored under key.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// envKeys maps environment variables to option names.
var envKeys = map[string]string{
	"RANGER_DROP_ANIMATE":         KeyAnimate,
	"RANGER_DROP_DURATION":        KeyDuration,
	"RANGER_DROP_PERCENT":         KeyPercent,
	"RANGER_DROP_COMMAND":         KeyRangerCommand,
	"RANGER_DROP_LOG_LEVEL":       KeyLogLevel,
	"RANGER_DROP_LOG_SINK":        KeyLogSink,
	"RANGER_DROP_LOG_FILE":        KeyLogFile,
	"OTEL_EXPORTER_OTLP_ENDPOINT": KeyOTELEndpoint,
	"OTEL_EXPORTER_OTLP_HEADERS":  KeyOTELHeaders,
}

// Env reads options from the environment. Empty variables are skipped.
func Env() Map {
	m := Map{}
	for env, key := range envKeys {
		if v := os.Getenv(env); v != "" {
			m[key] = v
		}
	}
	return m
}

// ParseYAML reads a flat YAML mapping of option names to scalar values.
func ParseYAML(data []byte) (Map, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	m := Map{}
	for k, v := range raw {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("%s: expected a scalar value", k)
		case nil:
			m[k] = ""
		default:
			m[k] = fmt.Sprint(v)
		}
	}
	return m, nil
}

// ParseRC reads the "set <option> <value>" lines of a ranger rc.conf.
// Lines ranger would reject (unbalanced quotes, missing value) are skipped.
func ParseRC(data []byte) Map {
	m := Map{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellquote.Split(line)
		if err != nil || len(words) < 3 || words[0] != "set" {
			continue
		}
		m[words[1]] = strings.Join(words[2:], " ")
	}
	return m
}

// rcPath returns the ranger rc.conf to read.
func rcPath() string {
	if p := os.Getenv("RANGER_DROP_RC"); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ranger", "rc.conf")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "ranger", "rc.conf")
	}
	return ""
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile(explicit string) (string, []byte, error) {
	// 1. --config
	if explicit != "" {
		data, err := os.ReadFile(explicit)
		if err != nil {
			return "", nil, err
		}
		return explicit, data, nil
	}

	// 2. Current directory
	if data, err := os.ReadFile(".ranger-drop.yaml"); err == nil {
		return ".ranger-drop.yaml", data, nil
	}

	// 3. ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "ranger-drop", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, os.ErrNotExist
}
