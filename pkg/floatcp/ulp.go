package floatcp

// ulp.go: bit-level arithmetic on IEEE-754 double-precision values.
//
// All functions here are total over finite inputs and never allocate. NaN or
// infinite inputs yield NaN, signaling an undefined boundary; callers decide
// whether that means "skip the adjustment" (the optimizer's policy) or an
// input validation failure.

import "math"

// MachineEpsilon is the gap between 1.0 and the next representable double,
// 2^-52. Used as the ULP of zero, which cannot be derived by bit
// manipulation because zero has two encodings.
const MachineEpsilon = 0x1p-52

// Ulp returns the gap between v and its nearest representable neighbor in
// the direction away from zero. Ulp(0) returns MachineEpsilon. NaN or
// infinite input returns NaN.
func Ulp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if v == 0 {
		return MachineEpsilon
	}
	if v > 0 {
		next := NextRepresentable(v)
		if math.IsInf(next, 1) {
			// v is the largest finite double; measure toward zero.
			return v - PrevRepresentable(v)
		}
		return next - v
	}
	prev := PrevRepresentable(v)
	if math.IsInf(prev, -1) {
		// Smallest finite double; the mirror of the overflow case above.
		return NextRepresentable(v) - v
	}
	return v - prev
}

// NextRepresentable returns the smallest double strictly greater than v.
//
// The result is computed by reinterpreting v's bit pattern as an integer and
// stepping it: IEEE-754 doubles of the same sign are ordered identically to
// their bit patterns, so incrementing the pattern of a non-negative value
// (or decrementing a negative one) lands exactly on the adjacent double.
// The sign-magnitude crossing at zero is handled explicitly. NaN or infinite
// input returns NaN. NextRepresentable(MaxFloat64) overflows to +Inf.
func NextRepresentable(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if v == 0 {
		// Smallest positive subnormal; covers both +0 and -0 encodings.
		return math.Float64frombits(1)
	}
	bits := math.Float64bits(v)
	if v > 0 {
		bits++
	} else {
		bits--
	}
	return math.Float64frombits(bits)
}

// PrevRepresentable returns the largest double strictly less than v.
// Symmetric to NextRepresentable; PrevRepresentable(-MaxFloat64) overflows
// to -Inf. NaN or infinite input returns NaN.
func PrevRepresentable(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN()
	}
	if v == 0 {
		// Smallest-magnitude negative subnormal.
		return math.Float64frombits(1<<63 | 1)
	}
	bits := math.Float64bits(v)
	if v > 0 {
		bits--
	} else {
		bits++
	}
	return math.Float64frombits(bits)
}

// StrictUpperBound converts the strict constraint x < b into the inclusive
// bound x <= StrictUpperBound(b): the largest double satisfying the strict
// form. For all finite b, StrictUpperBound(b) < b and no double lies
// between them.
func StrictUpperBound(b float64) float64 {
	return PrevRepresentable(b)
}

// StrictLowerBound converts x > b into x >= StrictLowerBound(b), the
// smallest double satisfying the strict form.
func StrictLowerBound(b float64) float64 {
	return NextRepresentable(b)
}
