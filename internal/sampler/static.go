package sampler

import (
	"math/rand"

	"github.com/vk/argsweep/internal/sobol"
	"github.com/vk/argsweep/internal/space"
)

// repeatSampler emits `count` empty assignments.
type repeatSampler struct {
	remaining int
}

func newRepeat(count int) *repeatSampler {
	return &repeatSampler{remaining: count}
}

// Next implements Sampler.
func (s *repeatSampler) Next() (space.Assignment, bool) {
	if s.remaining == 0 {
		return nil, false
	}
	s.remaining--
	return space.Assignment{}, true
}

// randomSampler draws each trial's values independently from one shared
// seeded source.
type randomSampler struct {
	sp        *space.Space
	names     []string
	rng       *rand.Rand
	remaining int
}

func newRandom(sp *space.Space, trials int, seed int64) *randomSampler {
	return &randomSampler{
		sp:        sp,
		names:     sp.Names(),
		rng:       rand.New(rand.NewSource(seed)),
		remaining: trials,
	}
}

// Next implements Sampler.
func (s *randomSampler) Next() (space.Assignment, bool) {
	if s.remaining == 0 {
		return nil, false
	}
	s.remaining--
	a := make(space.Assignment, len(s.names))
	for _, name := range s.names {
		a[name] = s.sp.Range(name).Sample(s.rng)
	}
	return a, true
}

// quasirandomSampler maps one Sobol dimension to each range, in declared
// order. The sequence is fully determined by the (trials, dimension) pair.
type quasirandomSampler struct {
	sp        *space.Space
	names     []string
	seq       *sobol.Sequence
	remaining int
}

func newQuasirandom(sp *space.Space, trials int) (*quasirandomSampler, error) {
	seq, err := sobol.New(sp.Len())
	if err != nil {
		return nil, err
	}
	return &quasirandomSampler{
		sp:        sp,
		names:     sp.Names(),
		seq:       seq,
		remaining: trials,
	}, nil
}

// Next implements Sampler.
func (s *quasirandomSampler) Next() (space.Assignment, bool) {
	if s.remaining == 0 {
		return nil, false
	}
	s.remaining--
	point := s.seq.Next()
	a := make(space.Assignment, len(s.names))
	for i, name := range s.names {
		a[name] = s.sp.Range(name).FromUnit(point[i])
	}
	return a, true
}

// gridSampler walks the Cartesian product of every range's grid. The
// rightmost range varies fastest, an observable ordering contract.
type gridSampler struct {
	names []string
	grids [][]string
	total int
	idx   int
}

func newGrid(sp *space.Space, divisions int) *gridSampler {
	names := sp.Names()
	grids := make([][]string, len(names))
	total := 1
	for i, name := range names {
		grids[i] = sp.Range(name).Grid(divisions)
		total *= len(grids[i])
	}
	return &gridSampler{names: names, grids: grids, total: total}
}

// Total returns the exact product of every range's grid cardinality.
func (s *gridSampler) Total() int { return s.total }

// Next implements Sampler.
func (s *gridSampler) Next() (space.Assignment, bool) {
	if s.idx >= s.total {
		return nil, false
	}
	a := make(space.Assignment, len(s.names))
	rem := s.idx
	for i := len(s.names) - 1; i >= 0; i-- {
		size := len(s.grids[i])
		a[s.names[i]] = s.grids[i][rem%size]
		rem /= size
	}
	s.idx++
	return a, true
}
