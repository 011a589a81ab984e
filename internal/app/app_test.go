package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/argsweep/internal/sampler"
	"github.com/vk/argsweep/internal/space"
)

func baseConfig() Config {
	return Config{
		Command:  "echo hello",
		Strategy: sampler.Repeat,
		Count:    1,
		Workers:  1,
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid repeat", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(baseConfig())
		require.NoError(t, err)
		assert.NotNil(t, cfg.Space, "an unset space defaults to empty")
	})

	t.Run("empty command", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Command = ""
		_, err := NewConfig(cfg)
		require.Error(t, err)
	})

	t.Run("zero count", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Count = 0
		_, err := NewConfig(cfg)
		require.Error(t, err)
	})

	t.Run("negative rate", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Rate = -1
		_, err := NewConfig(cfg)
		require.Error(t, err)
	})

	t.Run("sweep path skips command validation", func(t *testing.T) {
		t.Parallel()
		cfg, err := NewConfig(Config{SweepPath: "sweep.hcl", Workers: 1})
		require.NoError(t, err)
		assert.Equal(t, "sweep.hcl", cfg.SweepPath)
	})

	t.Run("sampling strategy needs parameters", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig()
		cfg.Strategy = sampler.Random
		_, err := NewConfig(cfg)
		require.Error(t, err)
	})
}

func TestRun_StreamOutput(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Count = 2
	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, validated)

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "--- [0] echo hello\n")
	assert.Contains(t, out.String(), "--- [1] echo hello\n")
	assert.Contains(t, out.String(), "hello\n")
}

func TestRun_BufferedJSONOutput(t *testing.T) {
	t.Parallel()

	sp := space.New()
	r, err := space.NewIntRange("x", 1, 3, false)
	require.NoError(t, err)
	require.NoError(t, sp.Add(r))

	validated, err := NewConfig(Config{
		Command:    "echo {x}",
		Strategy:   sampler.Grid,
		Count:      3,
		Workers:    2,
		OutputJSON: true,
		Space:      sp,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, validated)

	require.NoError(t, a.Run(context.Background()))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 3)
	assert.Equal(t, "echo 1", records[0]["command"])
	assert.Equal(t, "echo 3", records[2]["command"])
}

func TestRun_ObjectiveParseFailureStillFlushes(t *testing.T) {
	t.Parallel()

	sp := space.New()
	r, err := space.NewIntRange("x", 1, 10, false)
	require.NoError(t, err)
	require.NoError(t, sp.Add(r))

	validated, err := NewConfig(Config{
		Command:    "echo not-a-number",
		Strategy:   sampler.Minimize,
		Count:      5,
		Workers:    1,
		OutputJSON: true,
		Space:      sp,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, validated)

	runErr := a.Run(context.Background())
	require.Error(t, runErr)

	var parseErr *sampler.ObjectiveParseError
	require.ErrorAs(t, runErr, &parseErr)

	// The completed trial is still reported before aborting.
	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
}

func TestRun_OptimizeSummary(t *testing.T) {
	t.Parallel()

	sp := space.New()
	r, err := space.NewIntRange("x", 0, 100, false)
	require.NoError(t, err)
	require.NoError(t, sp.Add(r))

	validated, err := NewConfig(Config{
		Command:  "echo {x}",
		Strategy: sampler.Maximize,
		Count:    12,
		Workers:  1,
		Space:    sp,
	})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, validated)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, errOut.String(), "best objective")
	assert.Contains(t, errOut.String(), "x=")
}

func TestNewApp_SweepFileMergesConfig(t *testing.T) {
	t.Parallel()

	content := `
command: "echo {size}"
strategy: grid
divisions: 2
workers: 3
ranges:
  - name: size
    min: 1
    max: 10
`
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	validated, err := NewConfig(Config{SweepPath: path, Workers: 1})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	a := NewApp(out, errOut, validated)

	assert.Equal(t, "echo {size}", a.config.Command)
	assert.Equal(t, sampler.Grid, a.config.Strategy)
	assert.Equal(t, 2, a.config.Count)
	assert.Equal(t, 3, a.config.Workers, "a sweep file's worker count wins")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "--- [0] echo 1\n")
	assert.Contains(t, out.String(), "--- [1] echo 10\n")
}
