package sampler

import (
	"fmt"

	"github.com/vk/argsweep/internal/optimizer"
	"github.com/vk/argsweep/internal/space"
)

// optimizeSampler drives the ask/tell loop. Each Next asks the optimizer for
// a point and decodes it into an assignment; Observe routes the objective for
// that assignment back to the point that produced it. The optimizer
// minimizes, so maximization negates the objective on the way in.
type optimizeSampler struct {
	sp       *space.Space
	names    []string
	opt      *optimizer.Optimizer
	sign     float64
	asked    int
	trials   int
	inflight map[string][][]float64
}

func newOptimize(sp *space.Space, trials int, seed int64, maximize bool) (*optimizeSampler, error) {
	names := sp.Names()
	dims := make([]optimizer.Dimension, len(names))
	for i, name := range names {
		dims[i] = optimizer.Dimension{Name: name}
		if cat, ok := sp.Range(name).(*space.CategoricalRange); ok {
			dims[i].Choices = len(cat.Values())
		}
	}

	opt, err := optimizer.New(dims, seed)
	if err != nil {
		return nil, err
	}

	sign := 1.0
	if maximize {
		sign = -1.0
	}
	return &optimizeSampler{
		sp:       sp,
		names:    names,
		opt:      opt,
		sign:     sign,
		trials:   trials,
		inflight: make(map[string][][]float64),
	}, nil
}

// Next implements Sampler.
func (s *optimizeSampler) Next() (space.Assignment, bool) {
	if s.asked >= s.trials {
		return nil, false
	}
	s.asked++

	point := s.opt.Ask()
	a := s.decode(point)

	// Identical assignments can be asked more than once; each queues its own
	// point so every tell lands on the ask that produced it.
	key := s.sp.Key(a)
	s.inflight[key] = append(s.inflight[key], point)
	return a, true
}

// Observe implements AdaptiveSampler.
func (s *optimizeSampler) Observe(a space.Assignment, objective float64) error {
	key := s.sp.Key(a)
	queue := s.inflight[key]
	if len(queue) == 0 {
		return fmt.Errorf("observation for assignment that was never asked: %v", a)
	}
	point := queue[0]
	if len(queue) == 1 {
		delete(s.inflight, key)
	} else {
		s.inflight[key] = queue[1:]
	}

	s.opt.Tell(point, s.sign*objective)
	return nil
}

func (s *optimizeSampler) decode(point []float64) space.Assignment {
	a := make(space.Assignment, len(s.names))
	for i, name := range s.names {
		a[name] = s.sp.Range(name).FromUnit(point[i])
	}
	return a
}
