// Package sweepfile loads a whole sweep (command template, strategy, budget,
// worker count, and parameter ranges) from a single declarative file. HCL and
// YAML are supported, selected by file extension, so a sweep can live next to
// the code it tunes instead of in a shell history.
package sweepfile
