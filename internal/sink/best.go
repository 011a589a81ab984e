package sink

import (
	"sync"

	"github.com/vk/argsweep/internal/space"
)

// BestTracker keeps the single best (assignment, objective) pair observed by
// an optimize strategy. Comparison direction follows the strategy; ties are
// broken by the earliest submission step, which matters when trials complete
// out of order.
type BestTracker struct {
	mu       sync.Mutex
	maximize bool
	have     bool
	step     int
	value    float64
	assigned space.Assignment
}

// NewBestTracker creates a tracker for the given comparison direction.
func NewBestTracker(maximize bool) *BestTracker {
	return &BestTracker{maximize: maximize}
}

// Update records one observed objective and reports whether it improved on
// the incumbent.
func (t *BestTracker) Update(step int, a space.Assignment, objective float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.have {
		t.have, t.step, t.value, t.assigned = true, step, objective, a
		return true
	}

	better := objective < t.value
	if t.maximize {
		better = objective > t.value
	}
	if better || (objective == t.value && step < t.step) {
		t.step, t.value, t.assigned = step, objective, a
	}
	return better
}

// Best returns the best pair observed so far.
func (t *BestTracker) Best() (space.Assignment, float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.assigned, t.value, t.have
}
