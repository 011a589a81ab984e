// Package sampler turns a parameter space and a strategy into the sequence
// of concrete assignments a sweep will run.
//
// Every variant is a forward-only, non-restartable generator behind the
// Sampler interface. The repeat, grid, random, and quasirandom strategies are
// static: their full sequence is determined up front and the scheduler may
// drain it eagerly. The maximize and minimize strategies are adaptive: each
// Next is one ask against the optimizer, and the matching Observe must arrive
// before the sequence can make progress beyond the scheduler's in-flight
// window.
package sampler
