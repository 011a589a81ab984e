package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/sweepfile"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Trial output goes to
// outW; logs, trial stderr, and the optimize summary go to errW.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if cfg.SweepPath != "" {
		sweep, err := sweepfile.Load(ctx, cfg.SweepPath)
		if err != nil {
			// A failure to load the sweep file is a fatal startup error.
			panic(fmt.Errorf("failed to load sweep file: %w", err))
		}
		cfg.Command = sweep.Command
		cfg.Strategy = sweep.Strategy
		cfg.Count = sweep.Count
		cfg.Space = sweep.Space
		if sweep.Workers > 0 {
			cfg.Workers = sweep.Workers
		}
		logger.Debug("Sweep file loaded.", "path", cfg.SweepPath, "strategy", cfg.Strategy)
	}

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: cfg,
	}
}
