package scheduler

import (
	"bytes"
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/argsweep/internal/runner"
	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/sink"
	"github.com/vk/argsweep/internal/space"
)

func intSpace(t *testing.T, name string, min, max int64) *space.Space {
	t.Helper()
	sp := space.New()
	r, err := space.NewIntRange(name, min, max, false)
	require.NoError(t, err)
	require.NoError(t, sp.Add(r))
	return sp
}

func TestSequentialRepeat(t *testing.T) {
	smp, err := sampler.New(sampler.Repeat, space.New(), 2, 0)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	sched := New(Config{
		Template: "echo hello",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  1,
	})
	require.NoError(t, sched.Run(context.Background()))

	records := buf.Records()
	require.Len(t, records, 2)
	for i, rec := range records {
		assert.Equal(t, i, rec.Step)
		assert.Equal(t, "echo hello", rec.Command)
		assert.Equal(t, "hello\n", rec.Stdout)
		assert.Equal(t, "", rec.Stderr)
		assert.Equal(t, 0, rec.ReturnCode)
	}
}

func TestGridRunsEveryCombinationOnce(t *testing.T) {
	sp := intSpace(t, "a", 1, 10)
	b, err := space.NewCategoricalRange("b", []string{"X", "Y"})
	require.NoError(t, err)
	require.NoError(t, sp.Add(b))

	smp, err := sampler.New(sampler.Grid, sp, 3, 0)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	sched := New(Config{
		Template: "echo {a} {b}",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  1,
	})
	require.NoError(t, sched.Run(context.Background()))

	records := buf.Records()
	require.Len(t, records, 6)

	seen := map[string]int{}
	for _, rec := range records {
		seen[rec.Command]++
	}
	assert.Len(t, seen, 6, "every combination distinct")
	for cmd, n := range seen {
		assert.Equal(t, 1, n, "command %q executed more than once", cmd)
	}
}

func TestParallelSubmissionMatchesSequential(t *testing.T) {
	collect := func(workers int) []string {
		sp := intSpace(t, "a", 1, 100)
		smp, err := sampler.New(sampler.Random, sp, 12, 4242)
		require.NoError(t, err)

		buf := sink.NewBuffer(&bytes.Buffer{})
		sched := New(Config{
			Template: "echo {a}",
			Sampler:  smp,
			Runner:   runner.New(),
			Sink:     buf,
			Workers:  workers,
		})
		require.NoError(t, sched.Run(context.Background()))

		records := buf.Records()
		require.Len(t, records, 12)
		sort.Slice(records, func(i, j int) bool { return records[i].Step < records[j].Step })
		out := make([]string, len(records))
		for i, rec := range records {
			require.Equal(t, i, rec.Step)
			out[i] = rec.Command
		}
		return out
	}

	assert.Equal(t, collect(1), collect(4),
		"submission order is seed-determined, independent of worker count")
}

func TestAdaptiveMaximizeFindsBest(t *testing.T) {
	sp := intSpace(t, "a", 1, 1000)
	smp, err := sampler.New(sampler.Maximize, sp, 15, 7)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	best := sink.NewBestTracker(true)
	sched := New(Config{
		Template: "echo {a}",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  1,
		Best:     best,
	})
	require.NoError(t, sched.Run(context.Background()))

	records := buf.Records()
	require.Len(t, records, 15)

	maxSeen := -1.0
	for _, rec := range records {
		v, err := strconv.ParseFloat(rec.Stdout[:len(rec.Stdout)-1], 64)
		require.NoError(t, err)
		if v > maxSeen {
			maxSeen = v
		}
	}

	_, value, ok := best.Best()
	require.True(t, ok)
	assert.Equal(t, maxSeen, value, "reported best equals the maximum objective seen")
}

func TestAdaptiveParallelWindow(t *testing.T) {
	sp := intSpace(t, "a", 1, 50)
	smp, err := sampler.New(sampler.Minimize, sp, 12, 21)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	best := sink.NewBestTracker(false)
	sched := New(Config{
		Template: "echo {a}",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  3,
		Best:     best,
	})
	require.NoError(t, sched.Run(context.Background()))

	records := buf.Records()
	require.Len(t, records, 12)

	steps := map[int]bool{}
	for _, rec := range records {
		steps[rec.Step] = true
	}
	assert.Len(t, steps, 12, "every step assigned once, in submission order")

	_, _, ok := best.Best()
	assert.True(t, ok)
}

func TestAdaptiveObjectiveParseFailureAborts(t *testing.T) {
	sp := intSpace(t, "a", 1, 10)
	smp, err := sampler.New(sampler.Maximize, sp, 10, 1)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	sched := New(Config{
		Template: "echo value-{a}",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  1,
		Best:     sink.NewBestTracker(true),
	})

	err = sched.Run(context.Background())
	var perr *sampler.ObjectiveParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Step)

	records := buf.Records()
	assert.Len(t, records, 1, "the failing trial completed and is still reported")
}

func TestRateLimiterDoesNotDropTrials(t *testing.T) {
	smp, err := sampler.New(sampler.Repeat, space.New(), 3, 0)
	require.NoError(t, err)

	buf := sink.NewBuffer(&bytes.Buffer{})
	sched := New(Config{
		Template: "echo hi",
		Sampler:  smp,
		Runner:   runner.New(),
		Sink:     buf,
		Workers:  2,
		Rate:     1000,
	})
	require.NoError(t, sched.Run(context.Background()))
	assert.Len(t, buf.Records(), 3)
}
