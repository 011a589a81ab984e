// Package sink collects completed trial records. The streaming sink hands
// each record to the process streams the moment it completes; the buffered
// sink accumulates everything and emits one JSON array ordered by submission
// step. The sink is the only point of shared mutable state in a run, so both
// implementations serialize writes at trial granularity.
package sink
