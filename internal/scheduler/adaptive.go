package scheduler

import (
	"context"
	"sync"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/space"
	"github.com/vk/argsweep/internal/trial"
)

type outcome struct {
	assignment space.Assignment
	rec        trial.Record
	err        error
}

// runAdaptive is the policy for maximize and minimize. The loop below is the
// only goroutine that touches the sampler, so every ask and tell is
// serialized without any locking in the sampler or the optimizer. At most
// one trial per worker slot is outstanding; each observation frees a slot
// and thereby unblocks exactly one further ask.
func (s *Scheduler) runAdaptive(ctx context.Context, adaptive sampler.AdaptiveSampler) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting adaptive search.", "workers", s.cfg.Workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan outcome)
	var wg sync.WaitGroup
	defer wg.Wait()

	var fatal error
	fail := func(err error) {
		if fatal == nil {
			fatal = err
			cancel()
		}
	}

	inflight := 0
	step := 0
	exhausted := false
	sinceImprovement := 0

	for {
		for fatal == nil && !exhausted && inflight < s.cfg.Workers {
			a, more := adaptive.Next()
			if !more {
				exhausted = true
				break
			}
			if err := s.wait(runCtx); err != nil {
				fail(err)
				break
			}
			myStep := step
			step++
			inflight++
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec, err := s.cfg.Runner.Run(runCtx, s.cfg.Template, myStep, a)
				results <- outcome{assignment: a, rec: rec, err: err}
			}()
		}

		if inflight == 0 {
			break
		}

		res := <-results
		inflight--

		if res.err != nil {
			fail(res.err)
			continue
		}

		// Trials that already started still finish and report, even while
		// the run is aborting; they just no longer feed the optimizer.
		if err := s.cfg.Sink.Record(res.rec); err != nil {
			fail(err)
			continue
		}
		if fatal != nil {
			continue
		}

		objective, err := sampler.ParseObjective(res.rec.Step, res.rec.Stdout)
		if err != nil {
			fail(err)
			continue
		}
		if err := adaptive.Observe(res.assignment, objective); err != nil {
			fail(err)
			continue
		}

		if s.cfg.Best != nil {
			if s.cfg.Best.Update(res.rec.Step, res.assignment, objective) {
				sinceImprovement = 0
			} else {
				sinceImprovement++
			}
			_, best, _ := s.cfg.Best.Best()
			logger.Info("Trial observed.",
				"step", res.rec.Step,
				"objective", objective,
				"best", best,
				"sinceImprovement", sinceImprovement,
			)
		}
	}

	if fatal != nil {
		logger.Debug("Adaptive run aborted.", "error", fatal)
		return fatal
	}
	logger.Debug("Adaptive run completed.")
	return nil
}
