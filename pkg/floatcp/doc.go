// Package floatcp provides the precision-correctness layer for floating-point
// constraint propagation: bit-exact ULP arithmetic, a constraint metadata
// registry, a caching bound optimizer, and a boundary propagator that applies
// precision-adjusted bounds to live interval domains.
//
// The problem this package solves is that strict inequality boundaries such
// as x < 5.0 are not directly representable in an interval domain: the
// admissible region ends one representable double below 5.0, not at 5.0
// itself. Computing that endpoint by subtracting an epsilon is wrong at large
// magnitudes, where the true gap between neighbors exceeds any fixed epsilon.
// This package computes exact neighbors through IEEE-754 bit manipulation and
// integrates them into propagation without changing the host solver's
// contradiction and backtracking contract.
//
// Typical usage:
//
//	store := floatcp.NewFloatStore()
//	x := store.NewVar()
//	reg := floatcp.NewConstraintRegistry()
//	reg.Register(floatcp.GreaterThan(x.ID, 3.0))
//	reg.Register(floatcp.LessThan(x.ID, 5.0))
//	opt := floatcp.NewPrecisionOptimizer()
//	prop := floatcp.NewBoundaryPropagator(reg, opt, store)
//	err := prop.Propagate([]floatcp.VariableID{x.ID})
//
// After propagation x's domain is [NextRepresentable(3.0),
// PrevRepresentable(5.0)], the tightest closed interval of doubles satisfying
// both strict inequalities. A propagation failure is reported through the
// same error channel any other propagator uses, so the host solver backtracks
// normally.
//
// All components are owned per solver instance (and per search branch when
// branches run in parallel); nothing in this package is process-global.
package floatcp
