package floatcp

// registry.go: append-only constraint metadata store with a per-variable
// index and a version counter driving cache invalidation downstream.

import "sync"

// Bound is one side of an effective bound, tagged with strictness so the
// optimizer knows whether a ULP adjustment applies.
type Bound struct {
	Value  float64
	Strict bool
}

// EffectiveBounds is the tightest pair of limits derivable for one variable
// from all constraints registered against it, before any precision
// adjustment. A nil side means no constraint bounds that side.
type EffectiveBounds struct {
	Lower *Bound
	Upper *Bound
}

// ConstraintRegistry owns constraint metadata and the per-variable index
// over it. Registration is append-only: metadata is never mutated or
// removed while the owning model is live. The registry also owns a
// monotonically increasing version counter, incremented exactly once per
// Register call, which the optimizer uses to invalidate stale cache
// entries.
//
// A registry is owned by one model/solver instance (or one search branch;
// see Branch). It must not be shared across concurrently exploring
// branches.
type ConstraintRegistry struct {
	mu          sync.Mutex
	constraints map[ConstraintID]ConstraintMetadata
	// byVariable keeps registration order so Analyze folds
	// deterministically for a fixed registry state.
	byVariable map[VariableID][]ConstraintID
	nextID     ConstraintID
	version    uint64
}

// NewConstraintRegistry creates an empty registry at version zero.
func NewConstraintRegistry() *ConstraintRegistry {
	return &ConstraintRegistry{
		constraints: make(map[ConstraintID]ConstraintMetadata),
		byVariable:  make(map[VariableID][]ConstraintID),
	}
}

// Register stores the metadata under the next sequential id, indexes it for
// every distinct variable it references, and advances the version counter
// exactly once regardless of how many variables are touched. The metadata's
// slices are copied, so the caller may reuse its buffers afterwards.
func (r *ConstraintRegistry) Register(meta ConstraintMetadata) ConstraintID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	stored := meta
	stored.Variables = append([]VariableID(nil), meta.Variables...)
	stored.Parameters = append([]float64(nil), meta.Parameters...)
	stored.Coefficients = append([]float64(nil), meta.Coefficients...)
	stored.Transformations = append([]string(nil), meta.Transformations...)
	r.constraints[id] = stored

	seen := make(map[VariableID]struct{}, len(stored.Variables))
	for _, v := range stored.Variables {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		r.byVariable[v] = append(r.byVariable[v], id)
	}

	r.version++
	return id
}

// Lookup returns the metadata registered under id. Unknown ids return
// ok == false; they are not an error.
func (r *ConstraintRegistry) Lookup(id ConstraintID) (ConstraintMetadata, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	meta, ok := r.constraints[id]
	return meta, ok
}

// Version returns the current registry version. The counter starts at zero
// and advances by one on every Register.
func (r *ConstraintRegistry) Version() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Count returns the number of registered constraints.
func (r *ConstraintRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.constraints)
}

// ConstraintsFor returns the ids of all constraints referencing v, in
// registration order.
func (r *ConstraintRegistry) ConstraintsFor(v VariableID) []ConstraintID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ConstraintID(nil), r.byVariable[v]...)
}

// Analyze folds every constraint referencing v into effective bounds:
// LessThan/LessThanOrEqual tighten the upper side (tagged strict or not),
// GreaterThan/GreaterThanOrEqual tighten the lower side, Equality fixes
// both sides to its value and overrides inequality evidence, and all other
// kinds contribute nothing. When two constraints bound the same side, the
// numerically tighter one wins; on an exact value tie the strict variant is
// preferred. Analyze is read-only and deterministic for a fixed registry
// state.
func (r *ConstraintRegistry) Analyze(v VariableID) EffectiveBounds {
	r.mu.Lock()
	defer r.mu.Unlock()

	var eb EffectiveBounds
	var eqLower, eqUpper *Bound

	for _, id := range r.byVariable[v] {
		meta, ok := r.constraints[id]
		if !ok {
			continue
		}
		val, has := meta.boundValue()
		if !has {
			continue
		}
		switch meta.Kind {
		case KindLessThan:
			eb.Upper = tightenUpper(eb.Upper, Bound{Value: val, Strict: true})
		case KindLessThanOrEqual:
			eb.Upper = tightenUpper(eb.Upper, Bound{Value: val})
		case KindGreaterThan:
			eb.Lower = tightenLower(eb.Lower, Bound{Value: val, Strict: true})
		case KindGreaterThanOrEqual:
			eb.Lower = tightenLower(eb.Lower, Bound{Value: val})
		case KindEquality:
			// Equalities fold among themselves; two disagreeing
			// equalities produce an empty window the optimizer
			// reports as infeasible.
			eqLower = tightenLower(eqLower, Bound{Value: val})
			eqUpper = tightenUpper(eqUpper, Bound{Value: val})
		}
	}

	if eqLower != nil {
		return EffectiveBounds{Lower: eqLower, Upper: eqUpper}
	}
	return eb
}

// tightenUpper keeps the numerically smaller upper bound; on an exact tie
// the strict variant wins because it excludes one more value.
func tightenUpper(cur *Bound, cand Bound) *Bound {
	if cur == nil || cand.Value < cur.Value || (cand.Value == cur.Value && cand.Strict && !cur.Strict) {
		b := cand
		return &b
	}
	return cur
}

// tightenLower keeps the numerically larger lower bound, strict winning
// exact ties.
func tightenLower(cur *Bound, cand Bound) *Bound {
	if cur == nil || cand.Value > cur.Value || (cand.Value == cur.Value && cand.Strict && !cur.Strict) {
		b := cand
		return &b
	}
	return cur
}

// clone deep-copies the registry for branch forking. The copy starts at the
// same version; sibling branches diverge independently from there.
func (r *ConstraintRegistry) clone() *ConstraintRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()

	nr := &ConstraintRegistry{
		constraints: make(map[ConstraintID]ConstraintMetadata, len(r.constraints)),
		byVariable:  make(map[VariableID][]ConstraintID, len(r.byVariable)),
		nextID:      r.nextID,
		version:     r.version,
	}
	for id, meta := range r.constraints {
		nr.constraints[id] = meta
	}
	for v, ids := range r.byVariable {
		nr.byVariable[v] = append([]ConstraintID(nil), ids...)
	}
	return nr
}
