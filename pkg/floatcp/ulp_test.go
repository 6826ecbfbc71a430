package floatcp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUlpZero(t *testing.T) {
	assert.Equal(t, MachineEpsilon, Ulp(0.0))
	assert.Equal(t, MachineEpsilon, Ulp(math.Copysign(0, -1)))
}

func TestUlpPositiveForFiniteNonzero(t *testing.T) {
	values := []float64{1.0, -1.0, 0.5, 3.0, 5.0, 1e-300, 1e300, -2.5e10,
		math.SmallestNonzeroFloat64, math.MaxFloat64, -math.MaxFloat64}
	for _, v := range values {
		u := Ulp(v)
		assert.False(t, math.IsNaN(u), "Ulp(%g) is NaN", v)
		assert.False(t, math.IsInf(u, 0), "Ulp(%g) is infinite", v)
		assert.Greater(t, u, 0.0, "Ulp(%g)", v)
	}
}

// The extremes measure toward zero on both sides, so the gap stays finite
// and symmetric.
func TestUlpFiniteAtExtremes(t *testing.T) {
	posGap := Ulp(math.MaxFloat64)
	negGap := Ulp(-math.MaxFloat64)
	assert.False(t, math.IsInf(negGap, 0))
	assert.Equal(t, posGap, negGap)
	assert.Equal(t, math.MaxFloat64-PrevRepresentable(math.MaxFloat64), posGap)
}

func TestUlpUndefinedBoundary(t *testing.T) {
	assert.True(t, math.IsNaN(Ulp(math.NaN())))
	assert.True(t, math.IsNaN(Ulp(math.Inf(1))))
	assert.True(t, math.IsNaN(Ulp(math.Inf(-1))))
}

// UlpGrowsWithMagnitude: a fixed epsilon cannot stand in for the true gap
// at large magnitudes, which is the whole reason for bit-level neighbors.
func TestUlpGrowsWithMagnitude(t *testing.T) {
	assert.Greater(t, Ulp(1e16), 1.0)
	assert.Less(t, Ulp(1.0), 1e-15)
}

func TestNextRepresentableMatchesNextafter(t *testing.T) {
	values := []float64{0.0, 1.0, -1.0, 3.0, 5.0, -5.0, 0.1, -0.1,
		1e-308, -1e-308, 1e308, -1e308, math.SmallestNonzeroFloat64,
		-math.SmallestNonzeroFloat64}
	for _, v := range values {
		assert.Equal(t, math.Nextafter(v, math.Inf(1)), NextRepresentable(v),
			"NextRepresentable(%g)", v)
		assert.Equal(t, math.Nextafter(v, math.Inf(-1)), PrevRepresentable(v),
			"PrevRepresentable(%g)", v)
	}
}

func TestNextRepresentableZeroCrossing(t *testing.T) {
	assert.Equal(t, math.SmallestNonzeroFloat64, NextRepresentable(0.0))
	assert.Equal(t, -math.SmallestNonzeroFloat64, PrevRepresentable(0.0))

	// Stepping up from the smallest negative subnormal lands on zero.
	assert.Equal(t, 0.0, NextRepresentable(-math.SmallestNonzeroFloat64))
	assert.Equal(t, 0.0, PrevRepresentable(math.SmallestNonzeroFloat64))
}

func TestNextRepresentableNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(NextRepresentable(math.NaN())))
	assert.True(t, math.IsNaN(NextRepresentable(math.Inf(1))))
	assert.True(t, math.IsNaN(PrevRepresentable(math.Inf(-1))))
}

func TestStrictBoundContract(t *testing.T) {
	values := []float64{5.0, 3.0, 0.5, -2.0, 1e10, -1e10, 1e-300}
	for _, b := range values {
		upper := StrictUpperBound(b)
		require.Less(t, upper, b, "StrictUpperBound(%g)", b)
		// No representable value lies strictly between them.
		assert.Equal(t, b, NextRepresentable(upper), "gap above StrictUpperBound(%g)", b)

		lower := StrictLowerBound(b)
		require.Greater(t, lower, b, "StrictLowerBound(%g)", b)
		assert.Equal(t, b, PrevRepresentable(lower), "gap below StrictLowerBound(%g)", b)
	}
}

func TestRepresentableRoundTrip(t *testing.T) {
	values := []float64{1.0, -1.0, 5.0, 0.1, 1e100, -1e100, 1e-100}
	for _, v := range values {
		assert.Equal(t, v, NextRepresentable(PrevRepresentable(v)), "round trip %g", v)
		assert.Equal(t, v, PrevRepresentable(NextRepresentable(v)), "round trip %g", v)
	}
}

func TestNextRepresentableOverflowsToInf(t *testing.T) {
	assert.True(t, math.IsInf(NextRepresentable(math.MaxFloat64), 1))
	assert.True(t, math.IsInf(PrevRepresentable(-math.MaxFloat64), -1))
}
