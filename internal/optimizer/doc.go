// Package optimizer implements the sequential model-based optimizer behind
// the maximize and minimize strategies, exposed through an ask/tell protocol.
//
// The optimizer works in the unit cube, one dimension per swept parameter;
// callers decode points into concrete values. Ask returns the next point to
// evaluate: Sobol warmup points first, then the best-scoring candidate from a
// pool of perturbations of the incumbent and fresh uniform draws, scored by a
// distance-weighted surrogate of the observed objective minus an exploration
// bonus for unvisited territory. Tell reports the observed objective for a
// previously asked point.
//
// The optimizer always minimizes; a maximizing caller negates on Tell and
// un-negates for display.
//
// Ask and Tell are not safe for concurrent use. The scheduler serializes all
// calls, so the optimizer itself carries no locking.
package optimizer
