package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/argsweep/internal/ctxlog"
	"github.com/vk/argsweep/internal/space"
	"github.com/vk/argsweep/internal/trial"
)

// ExecError reports that the subprocess layer itself could not be invoked.
// It is fatal for the whole run.
type ExecError struct {
	Command string
	Err     error
}

// Error implements the error interface for ExecError.
func (e *ExecError) Error() string {
	return fmt.Sprintf("failed to invoke command %q: %v", e.Command, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *ExecError) Unwrap() error { return e.Err }

// Render substitutes each {name} placeholder in the template with the
// assignment's value for name. Placeholders may repeat.
func Render(template string, args space.Assignment) string {
	rendered := template
	for name, value := range args {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", value)
	}
	return rendered
}

// Runner executes rendered commands through the platform shell.
type Runner struct {
	shell string
}

// New creates a runner using /bin/sh semantics, mirroring shell=True
// subprocess invocation.
func New() *Runner {
	return &Runner{shell: "sh"}
}

// Run renders the template, executes it, and returns the completed record.
// The context cancels an in-flight subprocess by terminating it. No retry,
// no truncation of captured output.
func (r *Runner) Run(ctx context.Context, template string, step int, args space.Assignment) (trial.Record, error) {
	logger := ctxlog.FromContext(ctx)

	command := Render(template, args)
	logger.Debug("Starting trial subprocess.", "step", step, "command", command)

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	rec := trial.Record{
		Step:    step,
		Command: command,
		Args:    args,
	}
	if rec.Args == nil {
		rec.Args = space.Assignment{}
	}

	err := cmd.Run()
	rec.Stdout = stdout.String()
	rec.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The shell never started; this is a failure of the runner, not
			// of the user's command.
			return trial.Record{}, &ExecError{Command: command, Err: err}
		}
		rec.ReturnCode = exitErr.ExitCode()
	}

	logger.Debug("Trial subprocess finished.", "step", step, "returncode", rec.ReturnCode)
	return rec, nil
}
