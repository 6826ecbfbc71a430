package floatcp

// floatstore.go: live interval domains for floating variables, with a trail
// for backtracking. This is the domain store the boundary propagator
// tightens; the host search engine snapshots and undoes it around choice
// points.

import (
	"errors"
	"math"
	"sync"
)

// Interval is a closed interval of doubles. An interval with Lo > Hi is
// empty; the store never leaves a variable in that state, reporting
// ErrDomainEmpty instead.
type Interval struct {
	Lo float64
	Hi float64
}

// IsEmpty reports whether the interval contains no values.
func (iv Interval) IsEmpty() bool { return iv.Lo > iv.Hi }

// Contains reports whether v lies in the interval.
func (iv Interval) Contains(v float64) bool { return v >= iv.Lo && v <= iv.Hi }

// IsPoint reports whether the interval holds exactly one double, i.e. the
// variable is effectively bound.
func (iv Interval) IsPoint() bool { return iv.Lo == iv.Hi }

// Width returns Hi - Lo; zero for a point interval.
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// FloatVar is a floating-point decision variable with an interval domain.
type FloatVar struct {
	ID     VariableID
	domain Interval
}

// Domain returns the variable's current interval.
func (v *FloatVar) Domain() Interval { return v.domain }

// floatChange is one undo-trail entry: the domain a variable held before a
// tightening.
type floatChange struct {
	vid    VariableID
	domain Interval
}

// FloatStore manages interval domains for floating variables. It exposes
// the same primitives ordinary propagators use (TightenMin, TightenMax),
// so an emptied domain surfaces through the standard contradiction error
// and the host backtracks via Snapshot/Undo exactly as for any other
// domain change.
type FloatStore struct {
	mu      sync.Mutex
	vars    []*FloatVar
	idToVar map[VariableID]*FloatVar
	trail   []floatChange
}

// NewFloatStore creates an empty store.
func NewFloatStore() *FloatStore {
	return &FloatStore{
		vars:    make([]*FloatVar, 0, 64),
		idToVar: make(map[VariableID]*FloatVar),
	}
}

// NewVar allocates a variable with the full finite double range.
func (s *FloatStore) NewVar() *FloatVar {
	return s.NewVarWithBounds(-math.MaxFloat64, math.MaxFloat64)
}

// NewVarWithBounds allocates a variable with the given initial interval.
func (s *FloatStore) NewVarWithBounds(lo, hi float64) *FloatVar {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := VariableID(len(s.vars))
	v := &FloatVar{ID: id, domain: Interval{Lo: lo, Hi: hi}}
	s.vars = append(s.vars, v)
	s.idToVar[id] = v
	return v
}

// MakeVars allocates n variables with full domains.
func (s *FloatStore) MakeVars(n int) []*FloatVar {
	vars := make([]*FloatVar, n)
	for i := range vars {
		vars[i] = s.NewVar()
	}
	return vars
}

// TightenMin raises the lower end of v's domain to value. Values at or
// below the current lower end are a no-op. Returns ErrDomainEmpty if the
// domain would become empty, ErrUnknownVariable for an unallocated id, and
// ErrInvalidArgument for a NaN value.
func (s *FloatStore) TightenMin(vid VariableID, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.IsNaN(value) {
		return ErrInvalidArgument
	}
	v, ok := s.idToVar[vid]
	if !ok {
		return ErrUnknownVariable
	}
	if value <= v.domain.Lo {
		return nil
	}
	s.trail = append(s.trail, floatChange{vid: vid, domain: v.domain})
	v.domain.Lo = value
	if v.domain.IsEmpty() {
		return ErrDomainEmpty
	}
	return nil
}

// TightenMax lowers the upper end of v's domain to value. Symmetric to
// TightenMin.
func (s *FloatStore) TightenMax(vid VariableID, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if math.IsNaN(value) {
		return ErrInvalidArgument
	}
	v, ok := s.idToVar[vid]
	if !ok {
		return ErrUnknownVariable
	}
	if value >= v.domain.Hi {
		return nil
	}
	s.trail = append(s.trail, floatChange{vid: vid, domain: v.domain})
	v.domain.Hi = value
	if v.domain.IsEmpty() {
		return ErrDomainEmpty
	}
	return nil
}

// Domain returns the current interval for vid.
func (s *FloatStore) Domain(vid VariableID) (Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.idToVar[vid]
	if !ok {
		return Interval{}, false
	}
	return v.domain, true
}

// Snapshot returns the current trail position for later Undo.
func (s *FloatStore) Snapshot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trail)
}

// Undo rewinds domain changes back to a snapshot taken earlier on this
// branch. Intervals are restored bit-exactly.
func (s *FloatStore) Undo(to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.trail) - 1; i >= to; i-- {
		ch := s.trail[i]
		if v, ok := s.idToVar[ch.vid]; ok {
			v.domain = ch.domain
		}
	}
	if to < len(s.trail) {
		s.trail = s.trail[:to]
	}
}

// DomainSnapshot returns a copy of all domains for inspection.
func (s *FloatStore) DomainSnapshot() []Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make([]Interval, len(s.vars))
	for i, v := range s.vars {
		snap[i] = v.domain
	}
	return snap
}

// clone deep-copies the store for branch forking; the copy starts with an
// empty trail.
func (s *FloatStore) clone() *FloatStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := &FloatStore{
		vars:    make([]*FloatVar, len(s.vars)),
		idToVar: make(map[VariableID]*FloatVar, len(s.idToVar)),
	}
	for i, v := range s.vars {
		nv := &FloatVar{ID: v.ID, domain: v.domain}
		ns.vars[i] = nv
		ns.idToVar[nv.ID] = nv
	}
	return ns
}

// Store errors.
var (
	ErrDomainEmpty     = errors.New("domain became empty")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrInvalidArgument = errors.New("invalid argument")
)
