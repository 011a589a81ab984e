package scheduler

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/space"
)

type job struct {
	step       int
	assignment space.Assignment
}

// runStatic is the policy for repeat, grid, random, and quasirandom: the
// sequence is drawn eagerly and distributed to free workers. Steps are
// assigned here, in submission order, before any fan-out happens.
func (s *Scheduler) runStatic(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var jobs []job
	for {
		a, ok := s.cfg.Sampler.Next()
		if !ok {
			break
		}
		jobs = append(jobs, job{step: len(jobs), assignment: a})
	}
	logger.Info("Dispatching trials.", "count", len(jobs), "workers", s.cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	jobCh := make(chan job)

	g.Go(func() error {
		defer close(jobCh)
		for _, j := range jobs {
			if err := s.wait(ctx); err != nil {
				return err
			}
			select {
			case jobCh <- j:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < s.cfg.Workers; i++ {
		g.Go(func() error {
			for j := range jobCh {
				rec, err := s.cfg.Runner.Run(ctx, s.cfg.Template, j.step, j.assignment)
				if err != nil {
					return err
				}
				if err := s.cfg.Sink.Record(rec); err != nil {
					return err
				}
				logger.Debug("Trial completed.", "step", j.step, "returncode", rec.ReturnCode)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Debug("Run aborted.", "error", err)
		return err
	}
	logger.Debug("Run completed.")
	return nil
}
