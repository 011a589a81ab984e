package sweepfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/space"
)

// Sweep is the format-agnostic result of loading a sweep file.
type Sweep struct {
	Command  string
	Strategy sampler.Strategy
	Count    int
	// Workers is 0 when the file leaves the pool size to the CLI.
	Workers int
	Space   *space.Space
}

// Load reads a sweep definition, choosing the decoder by extension:
// .hcl, or .yaml/.yml.
func Load(ctx context.Context, path string) (*Sweep, error) {
	logger := ctxlog.FromContext(ctx)
	ext := strings.ToLower(filepath.Ext(path))
	logger.Debug("Loading sweep file.", "path", path, "format", ext)

	switch ext {
	case ".hcl":
		return loadHCL(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	}
	return nil, fmt.Errorf("unsupported sweep file extension %q (want .hcl, .yaml, or .yml)", ext)
}

// countKey maps a strategy to the budget field it reads from the file.
func countKey(s sampler.Strategy) string {
	switch s {
	case sampler.Repeat:
		return "repeats"
	case sampler.Grid:
		return "divisions"
	}
	return "trials"
}

// resolve validates the decoded file and assembles the Sweep.
func resolve(path, command, strategy string, trials, divisions, repeats, workers int, ranges []space.Range) (*Sweep, error) {
	if command == "" {
		return nil, fmt.Errorf("%s: command must not be empty", path)
	}
	strat, err := sampler.ParseStrategy(strategy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	count := trials
	switch strat {
	case sampler.Repeat:
		count = repeats
	case sampler.Grid:
		count = divisions
	}
	if count < 1 {
		return nil, fmt.Errorf("%s: strategy %s requires a positive %q", path, strat, countKey(strat))
	}
	if workers < 0 {
		return nil, fmt.Errorf("%s: workers must not be negative", path)
	}

	sp := space.New()
	for _, r := range ranges {
		if !strings.Contains(command, "{"+r.Name()+"}") {
			return nil, fmt.Errorf("%s: range %q has no matching {%s} placeholder in the command", path, r.Name(), r.Name())
		}
		if err := sp.Add(r); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return &Sweep{
		Command:  command,
		Strategy: strat,
		Count:    count,
		Workers:  workers,
		Space:    sp,
	}, nil
}
