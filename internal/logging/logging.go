// Package logging builds the slog logger for ranger-drop.
//
// ranger-drop runs from tmux key bindings where stderr is invisible, so the
// default sink is a rotating file under the XDG state directory.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Sink string

const (
	SinkFile   Sink = "file"
	SinkStderr Sink = "stderr"
	SinkNone   Sink = "none"
)

const (
	app         = "ranger-drop"
	maxSizeMB   = 5
	maxBackups  = 3
	maxAgeDays  = 14
	logFileName = "ranger-drop.log"
)

// Options selects level, sink and file. Zero values pick the defaults:
// info, file, DefaultFile().
type Options struct {
	Level   string
	Sink    Sink
	File    string
	Version string

	// Stderr replaces os.Stderr for SinkStderr.
	Stderr io.Writer
}

// Init builds a logger from opts and installs it as slog's default.
// The returned func closes the log file, if any.
func Init(opts Options) (*slog.Logger, func() error, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	w, closeFn, err := resolveWriter(opts)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With(
		slog.String("app", app),
		slog.String("version", opts.Version),
		slog.Int("pid", os.Getpid()),
	)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// DefaultFile is $XDG_STATE_HOME/ranger-drop/ranger-drop.log, falling back
// to ~/.local/state.
func DefaultFile() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, app, logFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", app, logFileName), nil
}

func parseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("logging: invalid level %q", value)
}

func resolveWriter(opts Options) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch opts.Sink {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		if opts.Stderr != nil {
			return opts.Stderr, noop, nil
		}
		return os.Stderr, noop, nil
	case SinkFile, "":
		path := strings.TrimSpace(opts.File)
		if path == "" {
			var err error
			if path, err = DefaultFile(); err != nil {
				return nil, nil, err
			}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q", opts.Sink)
	}
}
