package floatcp

// optimizer.go: converts effective bounds into precision-adjusted bounds,
// caching per variable against the registry version.

import (
	"fmt"
	"math"
	"sync"
)

// PrecisionBounds is the optimizer's output for one variable: the tightest
// closed interval of doubles admissible under the variable's effective
// bounds. Original* preserve the raw analyzed values so callers can report
// what changed.
type PrecisionBounds struct {
	Lower    float64
	Upper    float64
	HasLower bool
	HasUpper bool

	// OriginalLower and OriginalUpper are the pre-adjustment values from
	// Analyze, meaningful only when the corresponding Has flag is set.
	OriginalLower float64
	OriginalUpper float64

	// PrecisionAdjusted reports whether any side actually changed value.
	PrecisionAdjusted bool
}

// OptimizationStats counts optimizer activity for one optimizer instance.
// Counters reset only when the optimizer is reconstructed or ClearStats is
// called.
type OptimizationStats struct {
	PrecisionAdjustments uint64
	CacheHits            uint64
	CacheMisses          uint64
}

// InfeasiblePrecisionWindowError reports that a variable's admissible
// double-precision window is empty: after adjustment the lower bound
// exceeds the upper bound (for example x > 5.0 together with
// x < NextRepresentable(5.0)). It surfaces through the ordinary propagation
// contradiction channel, never as a fatal abort.
type InfeasiblePrecisionWindowError struct {
	Variable VariableID
}

func (e *InfeasiblePrecisionWindowError) Error() string {
	return fmt.Sprintf("infeasible precision window for variable v%d", int(e.Variable))
}

type cacheEntry struct {
	version uint64
	bounds  PrecisionBounds
}

// PrecisionOptimizer combines registry analysis with ULP arithmetic to
// produce precision-adjusted bounds per variable. Results are cached keyed
// by the registry version at computation time; any registration invalidates
// affected entries implicitly because the version has advanced.
//
// An optimizer is owned per search branch. It borrows the registry
// read-only and never mutates a variable's live domain.
type PrecisionOptimizer struct {
	mu    sync.Mutex
	cache map[VariableID]cacheEntry
	// stepSize is a reserved extension point for coarser-than-single-ULP
	// widening. The default of 1 means exact single-ULP adjustment, the
	// only mode currently implemented.
	stepSize float64
	stats    OptimizationStats
}

// NewPrecisionOptimizer creates an optimizer with a cold cache and the
// default exact single-ULP step size.
func NewPrecisionOptimizer() *PrecisionOptimizer {
	return &PrecisionOptimizer{
		cache:    make(map[VariableID]cacheEntry),
		stepSize: 1,
	}
}

// NewPrecisionOptimizerWithConfig creates an optimizer carrying the
// configured step size. Values other than 1 are stored but not yet acted
// on.
func NewPrecisionOptimizerWithConfig(cfg Config) *PrecisionOptimizer {
	o := NewPrecisionOptimizer()
	if cfg.StepSize > 0 {
		o.stepSize = cfg.StepSize
	}
	return o
}

// OptimizeBounds returns precision-adjusted bounds for v against the given
// registry. A cache entry produced at the current registry version is
// returned as-is (cache hit). Otherwise the effective bounds are analyzed
// and each strict side is replaced by its nearest admissible representable
// value; inclusive and equality sides are kept bit-exact. A NaN or infinite
// analyzed bound is passed through unchanged ("undefined boundary", not an
// error). If the adjusted lower bound exceeds the adjusted upper bound the
// call fails with *InfeasiblePrecisionWindowError.
//
// OptimizeBounds never mutates the variable's live domain; it computes
// intended boundaries only.
func (o *PrecisionOptimizer) OptimizeBounds(v VariableID, reg *ConstraintRegistry) (PrecisionBounds, error) {
	version := reg.Version()

	o.mu.Lock()
	if entry, ok := o.cache[v]; ok && entry.version == version {
		o.stats.CacheHits++
		pb := entry.bounds
		o.mu.Unlock()
		return pb, nil
	}
	o.stats.CacheMisses++
	o.mu.Unlock()

	eb := reg.Analyze(v)

	var pb PrecisionBounds
	if eb.Lower != nil {
		pb.HasLower = true
		pb.OriginalLower = eb.Lower.Value
		pb.Lower = adjustLower(*eb.Lower)
	}
	if eb.Upper != nil {
		pb.HasUpper = true
		pb.OriginalUpper = eb.Upper.Value
		pb.Upper = adjustUpper(*eb.Upper)
	}
	pb.PrecisionAdjusted = (pb.HasLower && !identical(pb.Lower, pb.OriginalLower)) ||
		(pb.HasUpper && !identical(pb.Upper, pb.OriginalUpper))

	if pb.HasLower && pb.HasUpper && pb.Lower > pb.Upper {
		return PrecisionBounds{}, &InfeasiblePrecisionWindowError{Variable: v}
	}

	o.mu.Lock()
	o.cache[v] = cacheEntry{version: version, bounds: pb}
	if pb.PrecisionAdjusted {
		o.stats.PrecisionAdjustments++
	}
	o.mu.Unlock()
	return pb, nil
}

// adjustLower maps a strict lower bound to the smallest representable value
// above it. Non-finite bounds are kept unchanged: the boundary is undefined
// and no adjustment is possible.
func adjustLower(b Bound) float64 {
	if !b.Strict || math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
		return b.Value
	}
	return StrictLowerBound(b.Value)
}

func adjustUpper(b Bound) float64 {
	if !b.Strict || math.IsNaN(b.Value) || math.IsInf(b.Value, 0) {
		return b.Value
	}
	return StrictUpperBound(b.Value)
}

// identical compares doubles bit-exactly, so that for example an adjustment
// landing back on the same value (impossible for finite inputs, but cheap
// to be precise about) is not reported.
func identical(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// Stats returns a copy of the optimizer's counters.
func (o *PrecisionOptimizer) Stats() OptimizationStats {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stats
}

// ClearStats zeroes the counters without touching the cache.
func (o *PrecisionOptimizer) ClearStats() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stats = OptimizationStats{}
}

// ClearCache drops all cached bounds. The next OptimizeBounds per variable
// recomputes from the registry.
func (o *PrecisionOptimizer) ClearCache() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cache = make(map[VariableID]cacheEntry)
}

// CachedBounds returns the cached entry for v, if any, regardless of
// whether it is stale. Intended for tests and diagnostics.
func (o *PrecisionOptimizer) CachedBounds(v VariableID) (PrecisionBounds, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.cache[v]
	return entry.bounds, ok
}

// StepSize returns the configured widening step. 1 means exact single-ULP
// adjustment.
func (o *PrecisionOptimizer) StepSize() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stepSize
}
