package floatcp

// constraint_types.go: metadata records describing posted constraints.
//
// The registry never interprets a constraint operationally; it only folds
// metadata into effective bounds. The host solver keeps the executable form
// of each constraint and registers a metadata record here at post time.

import (
	"fmt"
	"strings"
)

// VariableID is an opaque handle to a floating-point decision variable.
// Handles are allocated by the surrounding solver (see FloatStore.NewVar)
// and only referenced by this package.
type VariableID int

// ConstraintID identifies a registered constraint. IDs are assigned
// sequentially at registration time, are monotonic, and are never reused.
type ConstraintID int

// ConstraintKind enumerates the constraint forms the registry understands.
// Only the relational kinds contribute to effective bounds; the remaining
// kinds are recorded for diagnostics and future filtering.
type ConstraintKind int

const (
	KindEquality ConstraintKind = iota // x == c, fixes both bounds
	KindLessThan                       // x < c, strict upper bound
	KindLessThanOrEqual                // x <= c, inclusive upper bound
	KindGreaterThan                    // x > c, strict lower bound
	KindGreaterThanOrEqual             // x >= c, inclusive lower bound
	KindNotEquals                      // x != c, no bound contribution
	KindAllDifferent                   // pairwise distinct, no bound contribution
	KindSum                            // sum(vars) == target, no bound contribution
	KindLinearCombination              // dot(coeffs, vars) == target, no bound contribution
	KindComplex                        // opaque host-defined constraint
)

// String returns a short name for the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case KindEquality:
		return "equality"
	case KindLessThan:
		return "less-than"
	case KindLessThanOrEqual:
		return "less-equal"
	case KindGreaterThan:
		return "greater-than"
	case KindGreaterThanOrEqual:
		return "greater-equal"
	case KindNotEquals:
		return "not-equal"
	case KindAllDifferent:
		return "all-different"
	case KindSum:
		return "sum"
	case KindLinearCombination:
		return "linear-combination"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// ConstraintMetadata is the immutable record of one posted constraint.
// Create it once per constraint and never mutate it afterwards; Register
// copies the slices so later changes by the caller cannot leak in.
type ConstraintMetadata struct {
	// Kind selects how the registry folds this record into bounds.
	Kind ConstraintKind

	// Variables lists the referenced variables in the order the host
	// constraint declares them.
	Variables []VariableID

	// Parameters is the kind-specific numeric payload. For the relational
	// kinds Parameters[0] is the bound (or equality) value.
	Parameters []float64

	// Coefficients is populated for KindLinearCombination only, aligned
	// with Variables.
	Coefficients []float64

	// Target is the right-hand side for KindSum and KindLinearCombination.
	Target float64

	// Transformations records, in order, any rewrites applied to the
	// constraint before registration (normalization, macro expansion).
	// Purely diagnostic.
	Transformations []string
}

// boundValue returns the relational payload, if this kind carries one.
func (m ConstraintMetadata) boundValue() (float64, bool) {
	switch m.Kind {
	case KindEquality, KindLessThan, KindLessThanOrEqual,
		KindGreaterThan, KindGreaterThanOrEqual, KindNotEquals:
		if len(m.Parameters) > 0 {
			return m.Parameters[0], true
		}
	}
	return 0, false
}

// String returns a compact description for debugging and log output.
func (m ConstraintMetadata) String() string {
	vars := make([]string, len(m.Variables))
	for i, v := range m.Variables {
		vars[i] = fmt.Sprintf("v%d", int(v))
	}
	if b, ok := m.boundValue(); ok {
		return fmt.Sprintf("%s(%s, %g)", m.Kind, strings.Join(vars, ","), b)
	}
	return fmt.Sprintf("%s(%s)", m.Kind, strings.Join(vars, ","))
}

// Relational constructors. These are the common way to build metadata for
// single-variable comparisons against a literal.

// LessThan records x < bound.
func LessThan(x VariableID, bound float64) ConstraintMetadata {
	return relational(KindLessThan, x, bound)
}

// LessThanOrEqual records x <= bound.
func LessThanOrEqual(x VariableID, bound float64) ConstraintMetadata {
	return relational(KindLessThanOrEqual, x, bound)
}

// GreaterThan records x > bound.
func GreaterThan(x VariableID, bound float64) ConstraintMetadata {
	return relational(KindGreaterThan, x, bound)
}

// GreaterThanOrEqual records x >= bound.
func GreaterThanOrEqual(x VariableID, bound float64) ConstraintMetadata {
	return relational(KindGreaterThanOrEqual, x, bound)
}

// Equality records x == value.
func Equality(x VariableID, value float64) ConstraintMetadata {
	return relational(KindEquality, x, value)
}

// NotEquals records x != value.
func NotEquals(x VariableID, value float64) ConstraintMetadata {
	return relational(KindNotEquals, x, value)
}

func relational(kind ConstraintKind, x VariableID, bound float64) ConstraintMetadata {
	return ConstraintMetadata{
		Kind:       kind,
		Variables:  []VariableID{x},
		Parameters: []float64{bound},
	}
}

// AllDifferent records that the given variables must take pairwise distinct
// values. Contributes no bounds; recorded for diagnostics.
func AllDifferent(vars []VariableID) ConstraintMetadata {
	return ConstraintMetadata{Kind: KindAllDifferent, Variables: vars}
}

// Sum records sum(vars) == target.
func Sum(vars []VariableID, target float64) ConstraintMetadata {
	return ConstraintMetadata{Kind: KindSum, Variables: vars, Target: target}
}

// LinearCombination records dot(coeffs, vars) == target. Coefficients are
// aligned positionally with vars.
func LinearCombination(vars []VariableID, coeffs []float64, target float64) ConstraintMetadata {
	return ConstraintMetadata{
		Kind:         KindLinearCombination,
		Variables:    vars,
		Coefficients: coeffs,
		Target:       target,
	}
}
