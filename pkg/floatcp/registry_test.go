package floatcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)

	id0 := reg.Register(LessThan(x, 5.0))
	id1 := reg.Register(GreaterThan(x, 3.0))
	id2 := reg.Register(NotEquals(x, 4.0))

	assert.Equal(t, ConstraintID(0), id0)
	assert.Equal(t, ConstraintID(1), id1)
	assert.Equal(t, ConstraintID(2), id2)
	assert.Equal(t, 3, reg.Count())
}

func TestRegisterBumpsVersionOncePerConstraint(t *testing.T) {
	reg := NewConstraintRegistry()
	require.Equal(t, uint64(0), reg.Version())

	// A constraint touching three variables still advances the version by
	// exactly one.
	reg.Register(AllDifferent([]VariableID{0, 1, 2}))
	assert.Equal(t, uint64(1), reg.Version())

	reg.Register(LessThan(0, 5.0))
	assert.Equal(t, uint64(2), reg.Version())
}

func TestRegisterIndexesDistinctVariablesOnce(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(7)

	id := reg.Register(ConstraintMetadata{
		Kind:      KindSum,
		Variables: []VariableID{x, x, x},
		Target:    10,
	})

	assert.Equal(t, []ConstraintID{id}, reg.ConstraintsFor(x))
}

func TestLookupUnknownID(t *testing.T) {
	reg := NewConstraintRegistry()
	_, ok := reg.Lookup(ConstraintID(42))
	assert.False(t, ok)
}

func TestRegisterCopiesMetadataSlices(t *testing.T) {
	reg := NewConstraintRegistry()
	vars := []VariableID{0, 1}
	id := reg.Register(Sum(vars, 10))

	vars[0] = 99
	meta, ok := reg.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, VariableID(0), meta.Variables[0])
}

func TestAnalyzeStrictWindow(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(LessThan(x, 5.0))
	reg.Register(GreaterThan(x, 3.0))

	eb := reg.Analyze(x)
	require.NotNil(t, eb.Lower)
	require.NotNil(t, eb.Upper)
	assert.Equal(t, 3.0, eb.Lower.Value)
	assert.True(t, eb.Lower.Strict)
	assert.Equal(t, 5.0, eb.Upper.Value)
	assert.True(t, eb.Upper.Strict)
}

func TestAnalyzeNoConstraints(t *testing.T) {
	reg := NewConstraintRegistry()
	eb := reg.Analyze(VariableID(0))
	assert.Nil(t, eb.Lower)
	assert.Nil(t, eb.Upper)
}

func TestAnalyzeTighterBoundWins(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	// The numerically tighter inclusive bound beats the looser strict one.
	reg.Register(LessThan(x, 5.0))
	reg.Register(LessThanOrEqual(x, 4.9))

	eb := reg.Analyze(x)
	require.NotNil(t, eb.Upper)
	assert.Equal(t, 4.9, eb.Upper.Value)
	assert.False(t, eb.Upper.Strict)
}

func TestAnalyzeStrictBreaksExactTies(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(LessThanOrEqual(x, 5.0))
	reg.Register(LessThan(x, 5.0))

	eb := reg.Analyze(x)
	require.NotNil(t, eb.Upper)
	assert.Equal(t, 5.0, eb.Upper.Value)
	assert.True(t, eb.Upper.Strict, "strict variant preferred on an exact tie")

	// Same policy on the lower side, registered in the other order.
	y := VariableID(1)
	reg.Register(GreaterThan(y, 2.0))
	reg.Register(GreaterThanOrEqual(y, 2.0))

	eb = reg.Analyze(y)
	require.NotNil(t, eb.Lower)
	assert.True(t, eb.Lower.Strict)
}

func TestAnalyzeEqualityOverridesInequalities(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(LessThan(x, 5.0))
	reg.Register(GreaterThan(x, 3.0))
	reg.Register(Equality(x, 4.25))

	eb := reg.Analyze(x)
	require.NotNil(t, eb.Lower)
	require.NotNil(t, eb.Upper)
	assert.Equal(t, 4.25, eb.Lower.Value)
	assert.Equal(t, 4.25, eb.Upper.Value)
	assert.False(t, eb.Lower.Strict)
	assert.False(t, eb.Upper.Strict)
}

func TestAnalyzeConflictingEqualities(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(Equality(x, 2.0))
	reg.Register(Equality(x, 3.0))

	// Two disagreeing equalities fold to an empty window (lower above
	// upper); the optimizer reports it as infeasible.
	eb := reg.Analyze(x)
	require.NotNil(t, eb.Lower)
	require.NotNil(t, eb.Upper)
	assert.Equal(t, 3.0, eb.Lower.Value)
	assert.Equal(t, 2.0, eb.Upper.Value)
}

func TestAnalyzeIgnoresNonBoundingKinds(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(NotEquals(x, 4.0))
	reg.Register(AllDifferent([]VariableID{x, 1, 2}))
	reg.Register(Sum([]VariableID{x, 1}, 10))
	reg.Register(LinearCombination([]VariableID{x, 1}, []float64{2, 3}, 12))

	eb := reg.Analyze(x)
	assert.Nil(t, eb.Lower)
	assert.Nil(t, eb.Upper)
}

func TestAnalyzeDoesNotMutateRegistry(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(LessThan(x, 5.0))
	before := reg.Version()

	reg.Analyze(x)
	reg.Analyze(x)

	assert.Equal(t, before, reg.Version())
	assert.Equal(t, 1, reg.Count())
}

func TestCloneIsIndependent(t *testing.T) {
	reg := NewConstraintRegistry()
	x := VariableID(0)
	reg.Register(LessThan(x, 5.0))

	child := reg.clone()
	require.Equal(t, reg.Version(), child.Version())

	child.Register(GreaterThan(x, 3.0))
	assert.Equal(t, uint64(1), reg.Version(), "parent version must not move")
	assert.Equal(t, uint64(2), child.Version())
	assert.Nil(t, reg.Analyze(x).Lower)
	assert.NotNil(t, child.Analyze(x).Lower)
}
