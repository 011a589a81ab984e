// Package runner renders a command template against one assignment and runs
// the result as a subprocess through the platform shell, capturing its output
// in full. A trial's own non-zero exit code or stderr output is data, not a
// runner failure; only the inability to invoke the subprocess layer at all is
// an error.
package runner
