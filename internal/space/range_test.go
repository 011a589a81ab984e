package space

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntRangeValidation(t *testing.T) {
	t.Run("min greater than max", func(t *testing.T) {
		_, err := NewIntRange("a", 10, 1, false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "a", verr.Name)
	})

	t.Run("log scale with non-positive min", func(t *testing.T) {
		_, err := NewIntRange("a", 0, 10, true)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("valid", func(t *testing.T) {
		r, err := NewIntRange("a", 1, 10, false)
		require.NoError(t, err)
		assert.Equal(t, "a", r.Name())
	})
}

func TestNewFloatRangeValidation(t *testing.T) {
	_, err := NewFloatRange("x", 2.5, 1.5, false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = NewFloatRange("x", -1.0, 1.0, true)
	require.ErrorAs(t, err, &verr)

	_, err = NewFloatRange("x", 0.001, 1.0, true)
	require.NoError(t, err)
}

func TestNewCategoricalRangeValidation(t *testing.T) {
	_, err := NewCategoricalRange("c", nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = NewCategoricalRange("c", []string{"x", "x"})
	require.ErrorAs(t, err, &verr)

	r, err := NewCategoricalRange("c", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, r.Values())
}

func TestIntRangeGrid(t *testing.T) {
	t.Run("exact divisions", func(t *testing.T) {
		r, err := NewIntRange("a", 1, 10, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "6", "10"}, r.Grid(3))
	})

	t.Run("narrow range collapses duplicates", func(t *testing.T) {
		r, err := NewIntRange("a", 1, 2, false)
		require.NoError(t, err)
		got := r.Grid(5)
		assert.Len(t, got, 2)
		assert.Equal(t, "1", got[0])
		assert.Equal(t, "2", got[len(got)-1])
	})

	t.Run("single division", func(t *testing.T) {
		r, err := NewIntRange("a", 3, 9, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"3"}, r.Grid(1))
	})

	t.Run("monotonic within bounds", func(t *testing.T) {
		r, err := NewIntRange("a", -50, 50, false)
		require.NoError(t, err)
		prev := int64(-51)
		for _, s := range r.Grid(17) {
			v, err := strconv.ParseInt(s, 10, 64)
			require.NoError(t, err)
			assert.Greater(t, v, prev)
			assert.GreaterOrEqual(t, v, int64(-50))
			assert.LessOrEqual(t, v, int64(50))
			prev = v
		}
	})
}

func TestFloatRangeGrid(t *testing.T) {
	r, err := NewFloatRange("x", 0.0, 1.0, false)
	require.NoError(t, err)
	got := r.Grid(5)
	require.Len(t, got, 5)
	assert.Equal(t, "0", got[0])
	assert.Equal(t, "1", got[4])

	prev := -1.0
	for _, s := range got {
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestFloatRangeGridLogSpaced(t *testing.T) {
	r, err := NewFloatRange("x", 1.0, 100.0, true)
	require.NoError(t, err)
	got := r.Grid(3)
	require.Len(t, got, 3)

	mid, err := strconv.ParseFloat(got[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, mid, 1e-9)
	assert.Equal(t, "1", got[0])
	assert.Equal(t, "100", got[2])
}

func TestCategoricalGridIgnoresDivisions(t *testing.T) {
	r, err := NewCategoricalRange("c", []string{"X", "Y", "Z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, r.Grid(2))
	assert.Equal(t, []string{"X", "Y", "Z"}, r.Grid(100))
}

func TestSampleStaysInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	ir, err := NewIntRange("a", -3, 7, false)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		v, err := strconv.ParseInt(ir.Sample(rng), 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(-3))
		assert.LessOrEqual(t, v, int64(7))
	}

	fr, err := NewFloatRange("x", 0.5, 2.5, false)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		v, err := strconv.ParseFloat(fr.Sample(rng), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 2.5)
	}

	cr, err := NewCategoricalRange("c", []string{"red", "green"})
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		assert.Contains(t, []string{"red", "green"}, cr.Sample(rng))
	}
}

func TestLogSampleStaysInDomain(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fr, err := NewFloatRange("x", 0.001, 10.0, true)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		v, err := strconv.ParseFloat(fr.Sample(rng), 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.001)
		assert.LessOrEqual(t, v, 10.0)
	}

	ir, err := NewIntRange("n", 1, 1000, true)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		v, err := strconv.ParseInt(ir.Sample(rng), 10, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, int64(1))
		assert.LessOrEqual(t, v, int64(1000))
	}
}

func TestFromUnitIsDeterministic(t *testing.T) {
	fr, err := NewFloatRange("x", 0.0, 10.0, false)
	require.NoError(t, err)
	assert.Equal(t, fr.FromUnit(0.37), fr.FromUnit(0.37))
	assert.Equal(t, "0", fr.FromUnit(0.0))

	cr, err := NewCategoricalRange("c", []string{"a", "b", "c", "d"})
	require.NoError(t, err)
	assert.Equal(t, "a", cr.FromUnit(0.0))
	assert.Equal(t, "b", cr.FromUnit(0.25))
	assert.Equal(t, "d", cr.FromUnit(0.999))
}

func TestIntFromUnitRoundsAndClamps(t *testing.T) {
	ir, err := NewIntRange("a", 1, 3, false)
	require.NoError(t, err)
	assert.Equal(t, "1", ir.FromUnit(0.0))
	assert.Equal(t, "2", ir.FromUnit(0.5))
	assert.Equal(t, "3", ir.FromUnit(0.9999))
}
