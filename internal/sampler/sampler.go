package sampler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/argsweep/internal/space"
)

// Strategy identifies a search strategy.
type Strategy string

const (
	Repeat      Strategy = "repeat"
	Random      Strategy = "random"
	Quasirandom Strategy = "quasirandom"
	Grid        Strategy = "grid"
	Maximize    Strategy = "maximize"
	Minimize    Strategy = "minimize"
)

// ParseStrategy maps a strategy identifier to its Strategy value.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case Repeat, Random, Quasirandom, Grid, Maximize, Minimize:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Adaptive reports whether the strategy needs trial results to choose its
// next assignment.
func (s Strategy) Adaptive() bool {
	return s == Maximize || s == Minimize
}

// Sampler produces at most its budget of assignments, one per Next call.
// The second result is false once the sequence is exhausted.
type Sampler interface {
	Next() (space.Assignment, bool)
}

// AdaptiveSampler extends Sampler with the tell half of the ask/tell loop.
// Observe reports the parsed objective for an assignment previously returned
// by Next. Callers serialize Next and Observe; samplers carry no locking.
type AdaptiveSampler interface {
	Sampler
	Observe(a space.Assignment, objective float64) error
}

// New constructs the sampler for a strategy. count is the trial budget for
// random, quasirandom, maximize, and minimize; the division count for grid;
// and the repetition count for repeat.
func New(strategy Strategy, sp *space.Space, count int, seed int64) (Sampler, error) {
	if count < 1 {
		return nil, fmt.Errorf("strategy %s requires a positive count, got %d", strategy, count)
	}
	if strategy == Repeat {
		if sp.Len() != 0 {
			return nil, fmt.Errorf("the repeat strategy takes no templated parameters")
		}
		return newRepeat(count), nil
	}
	if sp.Len() == 0 {
		return nil, fmt.Errorf("the %s strategy requires at least one templated parameter", strategy)
	}

	switch strategy {
	case Random:
		return newRandom(sp, count, seed), nil
	case Quasirandom:
		return newQuasirandom(sp, count)
	case Grid:
		return newGrid(sp, count), nil
	case Maximize:
		return newOptimize(sp, count, seed, true)
	case Minimize:
		return newOptimize(sp, count, seed, false)
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}

// ObjectiveParseError reports a trial whose stdout did not end in a number.
// Fatal for the run: the adaptive loop cannot continue without a reward
// signal, and feeding a sentinel value would silently poison the model.
type ObjectiveParseError struct {
	Step int
	Line string
}

// Error implements the error interface for ObjectiveParseError.
func (e *ObjectiveParseError) Error() string {
	if e.Line == "" {
		return fmt.Sprintf("trial %d produced no output; the last line of stdout must be a single number", e.Step)
	}
	return fmt.Sprintf("trial %d: last line of output %q is not a number", e.Step, e.Line)
}

// ParseObjective extracts the objective from a trial's stdout: the last
// non-empty line, parsed as a floating-point number.
func ParseObjective(step int, stdout string) (float64, error) {
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if trimmed := strings.TrimSpace(lines[i]); trimmed != "" {
			last = trimmed
			break
		}
	}
	if last == "" {
		return 0, &ObjectiveParseError{Step: step}
	}
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0, &ObjectiveParseError{Step: step, Line: last}
	}
	return v, nil
}
