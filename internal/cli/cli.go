package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/argsweep/internal/app"
	"github.com/vk/argsweep/internal/sampler"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("argsweep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
argsweep - Run the same command many times with different argument values.

Usage:
  argsweep [options] STRATEGY COUNT COMMAND [--name RANGE ...]
  argsweep [options] --sweep FILE

Arguments:
  STRATEGY
    One of: repeat, random, quasirandom, grid, maximize, minimize.
  COUNT
    Trials for random/quasirandom/maximize/minimize, divisions per numeric
    range for grid, or repetitions for repeat.
  COMMAND
    The shell command to run, with {name} templates for every swept
    argument (repeat takes a plain command).
  --name RANGE
    One range per template: two numbers are a numeric min/max ("--lr 0.001
    0.1", log-scaled with a leading "log"), anything else is a list of
    categories ("--opt adam sgd").

Options:
`)
		flagSet.PrintDefaults()
	}

	sweepFlag := flagSet.String("sweep", "", "Path to a declarative sweep file (.hcl, .yaml, or .yml).")
	outputJSONFlag := flagSet.Bool("output-json", false, "Buffer all results and emit one JSON array instead of streaming.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent trials.")
	seedFlag := flagSet.Int64("seed", 0, "Seed for random and optimize strategies. 0 derives one from the clock.")
	rateFlag := flagSet.Float64("rate", 0, "Maximum trial dispatch rate per second. 0 is unlimited.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		SweepPath:  *sweepFlag,
		OutputJSON: *outputJSONFlag,
		Workers:    *workersFlag,
		Seed:       *seedFlag,
		Rate:       *rateFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	}

	positional := flagSet.Args()
	if cfg.SweepPath == "" {
		if len(positional) == 0 {
			slog.Debug("No strategy provided, printing usage and exiting.")
			flagSet.Usage()
			return nil, true, nil
		}
		if err := parsePositional(&cfg, positional); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	} else if len(positional) > 0 {
		return nil, false, &ExitError{Code: 2, Message: "--sweep and positional strategy arguments are mutually exclusive"}
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "strategy", validated.Strategy)
	return validated, false, nil
}

// parsePositional fills the strategy, budget, command, and parameter space
// from the STRATEGY COUNT COMMAND [range ...] form.
func parsePositional(cfg *app.Config, positional []string) error {
	if len(positional) < 3 {
		return fmt.Errorf("expected STRATEGY COUNT COMMAND, got %d arguments", len(positional))
	}

	strategy, err := sampler.ParseStrategy(positional[0])
	if err != nil {
		return err
	}
	cfg.Strategy = strategy

	count, err := strconv.Atoi(positional[1])
	if err != nil || count < 1 {
		return fmt.Errorf("COUNT must be a positive integer, got %q", positional[1])
	}
	cfg.Count = count

	cfg.Command = positional[2]

	specs, err := parseRangeArgs(positional[3:])
	if err != nil {
		return err
	}

	sp, err := buildSpace(cfg.Command, strategy, specs)
	if err != nil {
		return err
	}
	cfg.Space = sp
	return nil
}
