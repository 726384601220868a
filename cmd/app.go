package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/timvw/ranger-drop/internal/config"
	"github.com/timvw/ranger-drop/internal/drop"
	"github.com/timvw/ranger-drop/internal/logging"
	"github.com/timvw/ranger-drop/internal/mux"
	telem "github.com/timvw/ranger-drop/internal/otel"
	"github.com/timvw/ranger-drop/internal/session"
)

const shutdownTimeout = 2 * time.Second

// app carries everything a command needs for one invocation.
type app struct {
	cfg     *config.Config
	logFile string
	logger  *slog.Logger
	tel     *telem.Telemetry
	client  *mux.Client
	store   session.Store

	closeLog func() error
}

// setup resolves config, logging, tmux and telemetry, in that order.
// Outside tmux it returns *mux.EnvironmentError before touching anything.
func setup(cmd *cobra.Command) (*app, error) {
	// Load configuration: defaults -> rc.conf -> config file -> env vars.
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logFile := cfg.LogFile
	if cfg.LogSink == string(logging.SinkFile) && logFile == "" {
		if logFile, err = logging.DefaultFile(); err != nil {
			return nil, err
		}
	}
	logger, closeLog, err := logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		Sink:    logging.Sink(cfg.LogSink),
		File:    logFile,
		Version: Version,
	})
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logger = logger.With(slog.String("cmd", cmd.Name()))
	logger.Debug("config loaded", slog.Any("sources", cfg.Sources))

	a := &app{cfg: cfg, logFile: logFile, logger: logger, closeLog: closeLog}

	tmux, err := mux.Detect(logger)
	if err != nil {
		logger.Debug("skipping", slog.Any("reason", err))
		a.close()
		return nil, err
	}
	a.client = mux.NewClient(tmux)
	a.store = session.NewTmuxStore(a.client)

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	a.tel, err = telem.Init(cmd.Context(), telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		logger.Warn("otel init failed", slog.Any("err", err))
	}
	return a, nil
}

// close flushes telemetry and the log file. It runs after the command's
// context may already be cancelled, so it uses its own deadline.
func (a *app) close() {
	if a.tel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.tel.Shutdown(ctx); err != nil {
			a.logger.Warn("otel shutdown failed", slog.Any("err", err))
		}
		cancel()
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

func (a *app) metrics() *telem.Metrics {
	if a.tel == nil {
		return nil
	}
	return a.tel.Metrics
}

// controller builds the drop controller for the configured ranger binary.
func (a *app) controller() (*drop.Controller, error) {
	ranger, err := exec.LookPath(a.cfg.RangerCommand)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.KeyRangerCommand, err)
	}
	c := drop.New(*a.cfg, drop.LaunchCommand(ranger), a.client, a.store, procFinder())
	c.Logger = a.logger
	c.Metrics = a.metrics()
	if a.tel != nil {
		c.Tracer = a.tel.Tracer
	}
	return c, nil
}
