package sobol

import "fmt"

// MaxDim is the highest supported dimensionality, bounded by the size of the
// embedded direction-number table.
const MaxDim = 20

const bits = 32

// dimParams holds the primitive polynomial degree, coefficient bits, and
// initial direction values for one dimension, from the Joe–Kuo
// new-joe-kuo-6 table.
type dimParams struct {
	s uint
	a uint32
	m []uint32
}

// Dimension 1 is the van der Corput sequence in base 2 and needs no entry.
var table = []dimParams{
	{s: 1, a: 0, m: []uint32{1}},
	{s: 2, a: 1, m: []uint32{1, 3}},
	{s: 3, a: 1, m: []uint32{1, 3, 1}},
	{s: 3, a: 2, m: []uint32{1, 1, 1}},
	{s: 4, a: 1, m: []uint32{1, 1, 3, 3}},
	{s: 4, a: 4, m: []uint32{1, 3, 5, 13}},
	{s: 5, a: 2, m: []uint32{1, 1, 5, 5, 17}},
	{s: 5, a: 4, m: []uint32{1, 1, 5, 5, 5}},
	{s: 5, a: 7, m: []uint32{1, 1, 7, 11, 19}},
	{s: 5, a: 11, m: []uint32{1, 1, 5, 1, 1}},
	{s: 5, a: 13, m: []uint32{1, 1, 1, 3, 11}},
	{s: 5, a: 14, m: []uint32{1, 3, 5, 5, 31}},
	{s: 6, a: 1, m: []uint32{1, 3, 3, 9, 7, 49}},
	{s: 6, a: 13, m: []uint32{1, 1, 1, 15, 21, 21}},
	{s: 6, a: 16, m: []uint32{1, 3, 1, 13, 27, 49}},
	{s: 6, a: 19, m: []uint32{1, 1, 1, 15, 7, 5}},
	{s: 6, a: 22, m: []uint32{1, 3, 1, 15, 13, 25}},
	{s: 6, a: 25, m: []uint32{1, 1, 5, 5, 19, 61}},
	{s: 7, a: 1, m: []uint32{1, 3, 7, 11, 23, 15, 103}},
}

// Sequence is a forward-only generator of Sobol points. It is not safe for
// concurrent use; callers own serialization.
type Sequence struct {
	dim   int
	count uint32
	x     []uint32
	v     [][]uint32
}

// New creates a Sobol sequence of the given dimensionality. The initial
// all-zeros point of the canonical sequence is skipped.
func New(dim int) (*Sequence, error) {
	if dim < 1 || dim > MaxDim {
		return nil, fmt.Errorf("sobol: dimension %d out of range [1, %d]", dim, MaxDim)
	}

	v := make([][]uint32, dim)
	for j := 0; j < dim; j++ {
		v[j] = directions(j)
	}

	return &Sequence{
		dim: dim,
		x:   make([]uint32, dim),
		v:   v,
	}, nil
}

// Dim returns the dimensionality of the sequence.
func (s *Sequence) Dim() int { return s.dim }

// Next returns the next point of the sequence, one coordinate in [0,1) per
// dimension.
func (s *Sequence) Next() []float64 {
	// Gray-code step: flip the direction indexed by the rightmost zero bit
	// of the previous index.
	c := 0
	n := s.count
	for n&1 == 1 {
		n >>= 1
		c++
	}
	s.count++

	point := make([]float64, s.dim)
	for j := 0; j < s.dim; j++ {
		s.x[j] ^= s.v[j][c]
		point[j] = float64(s.x[j]) / (1 << bits)
	}
	return point
}

// directions computes the 32 scaled direction numbers for a dimension
// (0-based index; 0 is the van der Corput dimension).
func directions(j int) []uint32 {
	v := make([]uint32, bits)
	if j == 0 {
		for k := uint(0); k < bits; k++ {
			v[k] = 1 << (bits - 1 - k)
		}
		return v
	}

	p := table[j-1]
	for k := uint(0); k < bits; k++ {
		if k < p.s {
			v[k] = p.m[k] << (bits - 1 - k)
			continue
		}
		v[k] = v[k-p.s] ^ (v[k-p.s] >> p.s)
		for l := uint(1); l < p.s; l++ {
			if (p.a>>(p.s-1-l))&1 == 1 {
				v[k] ^= v[k-l]
			}
		}
	}
	return v
}
