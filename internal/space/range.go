package space

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
)

// ValidationError reports an inconsistent range domain at construction time.
type ValidationError struct {
	Name   string
	Reason string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid range for %q: %s", e.Name, e.Reason)
}

// Range is the value domain for one named parameter. All values cross the
// Range boundary as strings, ready for substitution into a command template.
type Range interface {
	// Name returns the template name this range is bound to.
	Name() string

	// Grid returns the values searched over when the range is divided into
	// `divisions` pieces, ordered and inclusive of both endpoints.
	Grid(divisions int) []string

	// Sample draws one value uniformly (log-uniformly if the range is
	// log-scaled) from the domain, using the supplied source.
	Sample(rng *rand.Rand) string

	// FromUnit maps one coordinate u in [0,1) into the domain using the same
	// scaling rule as Sample, deterministically.
	FromUnit(u float64) string
}

// IntRange is a range of whole numbers between a minimum and a maximum.
// Sampling may happen continuously internally; results are always rounded to
// the nearest integer and clamped to the bounds.
type IntRange struct {
	name     string
	min, max int64
	log      bool
}

// NewIntRange validates and constructs an integer range.
func NewIntRange(name string, min, max int64, logScaled bool) (*IntRange, error) {
	if min > max {
		return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("min %d exceeds max %d", min, max)}
	}
	if logScaled && min <= 0 {
		return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("log scale requires min > 0, got %d", min)}
	}
	return &IntRange{name: name, min: min, max: max, log: logScaled}, nil
}

// Name implements Range.
func (r *IntRange) Name() string { return r.name }

// LogScaled reports whether the range is sampled log-uniformly.
func (r *IntRange) LogScaled() bool { return r.log }

// Bounds returns the inclusive domain limits.
func (r *IntRange) Bounds() (int64, int64) { return r.min, r.max }

// Grid implements Range. Rounding can collapse adjacent points on a narrow
// range, so the result may hold fewer than `divisions` values.
func (r *IntRange) Grid(divisions int) []string {
	points := gridPoints(float64(r.min), float64(r.max), divisions, r.log)
	values := make([]string, 0, len(points))
	var prev int64
	for i, p := range points {
		v := r.clamp(math.Round(p))
		if i > 0 && v == prev {
			continue
		}
		values = append(values, strconv.FormatInt(v, 10))
		prev = v
	}
	return values
}

// Sample implements Range.
func (r *IntRange) Sample(rng *rand.Rand) string {
	if r.log {
		return r.FromUnit(rng.Float64())
	}
	return strconv.FormatInt(r.min+rng.Int63n(r.max-r.min+1), 10)
}

// FromUnit implements Range.
func (r *IntRange) FromUnit(u float64) string {
	var v float64
	if r.log {
		lo, hi := math.Log(float64(r.min)), math.Log(float64(r.max))
		v = math.Exp(lo + u*(hi-lo))
	} else {
		v = float64(r.min) + u*float64(r.max-r.min)
	}
	return strconv.FormatInt(r.clamp(math.Round(v)), 10)
}

func (r *IntRange) clamp(v float64) int64 {
	if v < float64(r.min) {
		return r.min
	}
	if v > float64(r.max) {
		return r.max
	}
	return int64(v)
}

// FloatRange is a range of floating-point values between a minimum and a
// maximum.
type FloatRange struct {
	name     string
	min, max float64
	log      bool
}

// NewFloatRange validates and constructs a continuous range.
func NewFloatRange(name string, min, max float64, logScaled bool) (*FloatRange, error) {
	if min > max {
		return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("min %v exceeds max %v", min, max)}
	}
	if logScaled && min <= 0 {
		return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("log scale requires min > 0, got %v", min)}
	}
	return &FloatRange{name: name, min: min, max: max, log: logScaled}, nil
}

// Name implements Range.
func (r *FloatRange) Name() string { return r.name }

// LogScaled reports whether the range is sampled log-uniformly.
func (r *FloatRange) LogScaled() bool { return r.log }

// Bounds returns the inclusive domain limits.
func (r *FloatRange) Bounds() (float64, float64) { return r.min, r.max }

// Grid implements Range. The result always holds exactly `divisions` points.
func (r *FloatRange) Grid(divisions int) []string {
	points := gridPoints(r.min, r.max, divisions, r.log)
	values := make([]string, len(points))
	for i, p := range points {
		values[i] = formatFloat(p)
	}
	return values
}

// Sample implements Range.
func (r *FloatRange) Sample(rng *rand.Rand) string {
	return r.FromUnit(rng.Float64())
}

// FromUnit implements Range.
func (r *FloatRange) FromUnit(u float64) string {
	if r.log {
		lo, hi := math.Log(r.min), math.Log(r.max)
		return formatFloat(math.Exp(lo + u*(hi-lo)))
	}
	return formatFloat(r.min + u*(r.max-r.min))
}

// CategoricalRange is a fixed, ordered set of literal values. Grid search
// never subdivides it: every category is always searched.
type CategoricalRange struct {
	name   string
	values []string
}

// NewCategoricalRange validates and constructs a categorical range.
func NewCategoricalRange(name string, values []string) (*CategoricalRange, error) {
	if len(values) == 0 {
		return nil, &ValidationError{Name: name, Reason: "categorical range requires at least one value"}
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return nil, &ValidationError{Name: name, Reason: fmt.Sprintf("duplicate category %q", v)}
		}
		seen[v] = struct{}{}
	}
	owned := make([]string, len(values))
	copy(owned, values)
	return &CategoricalRange{name: name, values: owned}, nil
}

// Name implements Range.
func (r *CategoricalRange) Name() string { return r.name }

// Values returns the categories in declared order.
func (r *CategoricalRange) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

// Grid implements Range. The divisions argument is ignored.
func (r *CategoricalRange) Grid(divisions int) []string {
	return r.Values()
}

// Sample implements Range.
func (r *CategoricalRange) Sample(rng *rand.Rand) string {
	return r.values[rng.Intn(len(r.values))]
}

// FromUnit implements Range. [0,1) is partitioned into equal buckets mapped
// to each category in declared order.
func (r *CategoricalRange) FromUnit(u float64) string {
	idx := int(u * float64(len(r.values)))
	if idx >= len(r.values) {
		idx = len(r.values) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return r.values[idx]
}

// gridPoints returns `divisions` evenly spaced points across [min, max],
// log-spaced when requested, inclusive of both endpoints when divisions > 1.
func gridPoints(min, max float64, divisions int, logScaled bool) []float64 {
	if divisions < 1 {
		divisions = 1
	}
	lo, hi := min, max
	if logScaled {
		lo, hi = math.Log(min), math.Log(max)
	}
	points := make([]float64, divisions)
	if divisions == 1 {
		points[0] = lo
	} else {
		step := (hi - lo) / float64(divisions-1)
		for i := range points {
			points[i] = lo + float64(i)*step
		}
		points[divisions-1] = hi
	}
	if logScaled {
		for i := range points {
			points[i] = math.Exp(points[i])
		}
	}
	return points
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
