// Package trial defines the record produced by one execution of the swept
// command. Records are created by the runner on completion, owned by the
// result sink afterwards, and never mutated.
package trial

import "github.com/vk/argsweep/internal/space"

// Record is the full outcome of a single trial. Step reflects submission
// order, assigned at dispatch time, so ordering stays deterministic even when
// trials complete out of order under parallelism. The JSON key order is part
// of the output contract.
type Record struct {
	Step       int              `json:"step"`
	Command    string           `json:"command"`
	Args       space.Assignment `json:"args"`
	Stdout     string           `json:"stdout"`
	Stderr     string           `json:"stderr"`
	ReturnCode int              `json:"returncode"`
}
