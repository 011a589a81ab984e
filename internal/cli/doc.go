// Package cli parses command-line arguments into an app.Config: the global
// flags, the strategy and its budget, the command template, and the range
// specifier for each templated parameter.
package cli
