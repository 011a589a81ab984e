package scheduler

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/vk/argsweep/internal/runner"
	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/sink"
)

// Config wires a scheduler together.
type Config struct {
	// Template is the command string with {name} placeholders.
	Template string
	// Sampler supplies the assignment sequence.
	Sampler sampler.Sampler
	// Runner executes rendered commands.
	Runner *runner.Runner
	// Sink receives completed records.
	Sink sink.Sink
	// Workers is the pool size; 1 means fully sequential execution.
	Workers int
	// Rate limits trial dispatch in trials per second. 0 disables limiting.
	Rate float64
	// Best, when non-nil, tracks the best observed objective. Only set for
	// optimize strategies.
	Best *sink.BestTracker
}

// Scheduler runs one sweep to completion.
type Scheduler struct {
	cfg     Config
	limiter *rate.Limiter
}

// New creates a scheduler. Worker counts below one are treated as one.
func New(cfg Config) *Scheduler {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	s := &Scheduler{cfg: cfg}
	if cfg.Rate > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), 1)
	}
	return s
}

// Run drains the sampler through the worker pool, selecting the scheduling
// policy by the sampler's adaptivity. It returns the first fatal error, or
// nil once every trial has completed and been recorded.
func (s *Scheduler) Run(ctx context.Context) error {
	if adaptive, ok := s.cfg.Sampler.(sampler.AdaptiveSampler); ok {
		return s.runAdaptive(ctx, adaptive)
	}
	return s.runStatic(ctx)
}

// wait blocks until the dispatch limiter admits one more trial.
func (s *Scheduler) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}
