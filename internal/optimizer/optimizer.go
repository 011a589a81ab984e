package optimizer

import (
	"math"
	"math/rand"

	"github.com/vk/argsweep/internal/sobol"
)

// Dimension describes one axis of the search cube.
type Dimension struct {
	Name string
	// Choices is the category count for discrete choice dimensions, 0 for
	// numeric dimensions.
	Choices int
}

// Tuning knobs. Warmup follows the common sequential-optimizer default of
// ten initial points; the rest trade a little exploitation for exploration.
const (
	warmupPoints   = 10
	candidatePool  = 64
	exploreBeta    = 1.0
	perturbSigma   = 0.1
	choiceFlipProb = 0.2
)

type observation struct {
	point []float64
	value float64
}

// Optimizer is the ask/tell adapter. It owns the full history of observed
// (point, objective) pairs; that state never leaves the sampler boundary.
type Optimizer struct {
	dims   []Dimension
	rng    *rand.Rand
	warmup *sobol.Sequence
	obs    []observation
	best   int
}

// New creates an optimizer over the given dimensions with a seeded random
// source for candidate generation.
func New(dims []Dimension, seed int64) (*Optimizer, error) {
	seq, err := sobol.New(len(dims))
	if err != nil {
		return nil, err
	}
	return &Optimizer{
		dims:   dims,
		rng:    rand.New(rand.NewSource(seed)),
		warmup: seq,
		best:   -1,
	}, nil
}

// Ask returns the next point to evaluate, one coordinate in [0,1) per
// dimension.
func (o *Optimizer) Ask() []float64 {
	if len(o.obs) < warmupPoints {
		return o.warmup.Next()
	}

	mean, std := o.valueStats()

	var bestPoint []float64
	bestScore := math.Inf(1)
	for i := 0; i < candidatePool; i++ {
		var c []float64
		if i%2 == 0 {
			c = o.perturb(o.obs[o.best].point)
		} else {
			c = o.uniform()
		}
		score := o.surrogate(c, mean, std) - exploreBeta*o.nearestDistance(c)
		if score < bestScore {
			bestScore = score
			bestPoint = c
		}
	}
	return bestPoint
}

// Tell reports the observed objective for a point previously returned by Ask.
func (o *Optimizer) Tell(point []float64, value float64) {
	o.obs = append(o.obs, observation{point: point, value: value})
	if o.best < 0 || value < o.obs[o.best].value {
		o.best = len(o.obs) - 1
	}
}

// Best returns the point and objective of the best observation so far.
func (o *Optimizer) Best() ([]float64, float64, bool) {
	if o.best < 0 {
		return nil, 0, false
	}
	return o.obs[o.best].point, o.obs[o.best].value, true
}

// Observations returns the number of completed tell calls.
func (o *Optimizer) Observations() int { return len(o.obs) }

func (o *Optimizer) uniform() []float64 {
	p := make([]float64, len(o.dims))
	for i := range p {
		p[i] = o.rng.Float64()
	}
	return p
}

// perturb draws a neighbor of the incumbent: Gaussian steps on numeric
// dimensions, occasional uniform re-draws on choice dimensions.
func (o *Optimizer) perturb(base []float64) []float64 {
	p := make([]float64, len(base))
	for i, d := range o.dims {
		if d.Choices > 0 {
			if o.rng.Float64() < choiceFlipProb {
				p[i] = o.rng.Float64()
			} else {
				p[i] = base[i]
			}
			continue
		}
		p[i] = clamp01(base[i] + o.rng.NormFloat64()*perturbSigma)
	}
	return p
}

// surrogate estimates the objective at a candidate as the inverse-square-
// distance weighted mean of standardized observed values.
func (o *Optimizer) surrogate(c []float64, mean, std float64) float64 {
	const eps = 1e-9
	var num, den float64
	for _, ob := range o.obs {
		d := distance(c, ob.point)
		z := 0.0
		if std > 0 {
			z = (ob.value - mean) / std
		}
		if d < eps {
			return z
		}
		w := 1.0 / (d * d)
		num += w * z
		den += w
	}
	return num / den
}

// nearestDistance measures how far a candidate sits from everything already
// evaluated, normalized by the cube diagonal.
func (o *Optimizer) nearestDistance(c []float64) float64 {
	nearest := math.Inf(1)
	for _, ob := range o.obs {
		if d := distance(c, ob.point); d < nearest {
			nearest = d
		}
	}
	return nearest / math.Sqrt(float64(len(o.dims)))
}

func (o *Optimizer) valueStats() (mean, std float64) {
	for _, ob := range o.obs {
		mean += ob.value
	}
	mean /= float64(len(o.obs))
	for _, ob := range o.obs {
		diff := ob.value - mean
		std += diff * diff
	}
	std = math.Sqrt(std / float64(len(o.obs)))
	return mean, std
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if upper := math.Nextafter(1, 0); v > upper {
		return upper
	}
	return v
}
