package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points every config location at an empty temp dir so the
// developer's own ranger and ranger-drop files never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("RANGER_DROP_RC", "")
	for env := range envKeys {
		t.Setenv(env, "")
	}
	chdir(t, dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if !cfg.Animate {
		t.Errorf("Animate: got false, want true")
	}
	if cfg.DurationMS != 100 {
		t.Errorf("DurationMS: got %d, want %d", cfg.DurationMS, 100)
	}
	if cfg.Duration != 100*time.Millisecond {
		t.Errorf("Duration: got %s, want %s", cfg.Duration, 100*time.Millisecond)
	}
	if cfg.Percent != 60 {
		t.Errorf("Percent: got %d, want %d", cfg.Percent, 60)
	}
	if cfg.RangerCommand != "ranger" {
		t.Errorf("RangerCommand: got %q, want %q", cfg.RangerCommand, "ranger")
	}
	if cfg.LogSink != "file" {
		t.Errorf("LogSink: got %q, want %q", cfg.LogSink, "file")
	}
}

func TestLoad_NoSources(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(cfg.Sources) != 0 {
		t.Errorf("Sources: got %v, want none", cfg.Sources)
	}
	if cfg.Percent != 60 {
		t.Errorf("Percent: got %d, want default 60", cfg.Percent)
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(dir, "xdg", "ranger", "rc.conf"), `
# ranger settings
set preview_images true
set tmux_dropdown_percent 40
set tmux_dropdown_duration 300
set tmux_dropdown_animate false
`)
	writeFile(t, filepath.Join(dir, ".ranger-drop.yaml"), `
tmux_dropdown_duration: 800
ranger_command: /opt/ranger/bin/ranger
`)
	t.Setenv("RANGER_DROP_ANIMATE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Percent != 40 {
		t.Errorf("Percent: got %d, want 40 from rc.conf", cfg.Percent)
	}
	if cfg.DurationMS != 800 || cfg.Duration != 800*time.Millisecond {
		t.Errorf("Duration: got %d / %s, want 800 from yaml", cfg.DurationMS, cfg.Duration)
	}
	if cfg.RangerCommand != "/opt/ranger/bin/ranger" {
		t.Errorf("RangerCommand: got %q", cfg.RangerCommand)
	}
	if !cfg.Animate {
		t.Errorf("Animate: env must override rc.conf")
	}
	if len(cfg.Sources) != 2 {
		t.Errorf("Sources: got %v, want rc.conf and yaml", cfg.Sources)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "tmux_dropdown_percent: 25\nlog_sink: stderr\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Percent != 25 {
		t.Errorf("Percent: got %d, want 25", cfg.Percent)
	}
	if cfg.LogSink != "stderr" {
		t.Errorf("LogSink: got %q, want stderr", cfg.LogSink)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestLoad_RCOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "elsewhere.conf")
	writeFile(t, path, "set tmux_dropdown_percent 90\n")
	t.Setenv("RANGER_DROP_RC", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Percent != 90 {
		t.Errorf("Percent: got %d, want 90", cfg.Percent)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
		want string
	}{
		{"percent too high", "RANGER_DROP_PERCENT", "101", "outside 0-100"},
		{"percent negative", "RANGER_DROP_PERCENT", "-1", "outside 0-100"},
		{"percent not a number", "RANGER_DROP_PERCENT", "half", "invalid integer"},
		{"duration negative", "RANGER_DROP_DURATION", "-5", "must not be negative"},
		{"animate not a bool", "RANGER_DROP_ANIMATE", "sometimes", "invalid boolean"},
		{"unknown sink", "RANGER_DROP_LOG_SINK", "syslog", "unknown sink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.env, tt.val)

			_, err := Load("")
			if err == nil {
				t.Fatalf("expected error for %s=%s", tt.env, tt.val)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_YAMLRejectsNestedValues(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".ranger-drop.yaml"), "tmux_dropdown_percent:\n  value: 3\n")

	if _, err := Load(""); err == nil {
		t.Fatal("expected error for nested yaml value")
	}
}

func TestParseRC(t *testing.T) {
	m := ParseRC([]byte(`
set tmux_dropdown_percent 45
  set tmux_dropdown_animate   true
# set tmux_dropdown_duration 999
map Q quit
set ranger_command '/home/u/my tools/ranger'
set broken "unterminated
set novalue
`))

	want := Map{
		"tmux_dropdown_percent": "45",
		"tmux_dropdown_animate": "true",
		"ranger_command":        "/home/u/my tools/ranger",
	}
	if len(m) != len(want) {
		t.Fatalf("ParseRC: got %v, want %v", m, want)
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("ParseRC[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"True", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"on", true, false},
		{"false", false, false},
		{"0", false, false},
		{"NO", false, false},
		{"off", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBool(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBool(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBool(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
