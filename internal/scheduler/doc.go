// Package scheduler orchestrates samplers and the runner across a
// fixed-size worker pool.
//
// # Two policies, one interface
//
// The strategies split into two scheduling personalities, so the scheduler
// carries two explicit policies rather than one loop full of branches:
//
//   - Static: the full assignment sequence has no dependency on results, so
//     it is drawn eagerly from the sampler and fanned out to free workers.
//     Completion order is unconstrained; each record's step always reflects
//     submission order.
//   - Adaptive: a single coordinator goroutine owns the sampler, which keeps
//     every ask and tell externally serialized. At most one trial per worker
//     slot is in flight, and each completed observation unblocks exactly one
//     further ask.
//
// # Failure
//
// Any fatal error (the subprocess layer failing to start, an unparseable
// objective) cancels the run: nothing new is dispatched, in-flight
// subprocesses are terminated through their context, and the first error is
// returned. A trial that never started is never reported.
package scheduler
