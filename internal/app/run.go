package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/runner"
	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/scheduler"
	"github.com/vk/argsweep/internal/sink"
)

// Run executes one full sweep based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cfg := a.config
	runID := uuid.NewString()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a.logger.Info("Sweep starting.",
		"run_id", runID,
		"strategy", cfg.Strategy,
		"count", cfg.Count,
		"workers", cfg.Workers,
		"seed", seed,
	)

	smp, err := sampler.New(cfg.Strategy, cfg.Space, cfg.Count, seed)
	if err != nil {
		return err
	}

	var out sink.Sink
	if cfg.OutputJSON {
		out = sink.NewBuffer(a.outW)
	} else {
		out = sink.NewStream(a.outW, a.errW)
	}

	var best *sink.BestTracker
	if cfg.Strategy.Adaptive() {
		best = sink.NewBestTracker(cfg.Strategy == sampler.Maximize)
	}

	sched := scheduler.New(scheduler.Config{
		Template: cfg.Command,
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     out,
		Workers:  cfg.Workers,
		Rate:     cfg.Rate,
		Best:     best,
	})

	runErr := sched.Run(ctx)
	if runErr != nil {
		var execErr *runner.ExecError
		if errors.As(runErr, &execErr) {
			// The command itself could not run, so buffered output would
			// describe a sweep that never happened. Discard it.
			a.logger.Error("Sweep aborted.", "run_id", runID, "error", runErr)
			return runErr
		}
		// An unparsable objective still leaves completed trials worth
		// reporting.
		if err := out.Flush(); err != nil {
			a.logger.Error("Failed to flush results.", "error", err)
		}
		a.logger.Error("Sweep aborted.", "run_id", runID, "error", runErr)
		return runErr
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}

	if best != nil {
		a.reportBest(best)
	}

	a.logger.Info("Sweep finished.", "run_id", runID)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// reportBest prints the optimize summary to the error stream so it never
// mixes with trial output.
func (a *App) reportBest(best *sink.BestTracker) {
	assigned, value, ok := best.Best()
	if !ok {
		return
	}
	parts := make([]string, 0, len(assigned))
	for _, name := range a.config.Space.Names() {
		parts = append(parts, fmt.Sprintf("%s=%s", name, assigned[name]))
	}
	fmt.Fprintf(a.errW, "best objective %g with %s\n", value, strings.Join(parts, " "))
	a.logger.Info("Best trial.", "objective", value, "args", assigned)
}
