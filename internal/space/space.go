package space

import "fmt"

// Space is an ordered mapping from template name to Range. Insertion order is
// the display order for assignments; sampling correctness does not depend on
// it, but grid iteration and quasirandom dimension assignment do.
type Space struct {
	names  []string
	ranges map[string]Range
}

// New creates an empty parameter space.
func New() *Space {
	return &Space{ranges: make(map[string]Range)}
}

// Add appends a range to the space. Names must be unique.
func (s *Space) Add(r Range) error {
	if _, dup := s.ranges[r.Name()]; dup {
		return &ValidationError{Name: r.Name(), Reason: "duplicate parameter name"}
	}
	s.names = append(s.names, r.Name())
	s.ranges[r.Name()] = r
	return nil
}

// Len returns the number of parameters.
func (s *Space) Len() int { return len(s.names) }

// Names returns the parameter names in declared order.
func (s *Space) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Range returns the range bound to a name, or nil if absent.
func (s *Space) Range(name string) Range {
	return s.ranges[name]
}

// Assignment is one concrete value per parameter for a single trial.
// Immutable once produced by a sampler.
type Assignment map[string]string

// Key returns a canonical fingerprint of an assignment: its values joined in
// the space's declared order. Identical assignments always share a key.
func (s *Space) Key(a Assignment) string {
	key := ""
	for _, name := range s.names {
		key += fmt.Sprintf("%q", a[name])
	}
	return key
}
