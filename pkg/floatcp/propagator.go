package floatcp

// propagator.go: the integration point with the host propagation scheduler.
// The boundary propagator is the only component here permitted to mutate
// live domains, and it does so through the same tighten primitives every
// other propagator uses.

import (
	"errors"
	"log/slog"
	"math"
)

// DomainStore is the mutable variable store the propagator tightens. It is
// satisfied by *FloatStore and by whatever domain representation the host
// solver carries. An emptied domain must surface as an error from the
// tighten call.
type DomainStore interface {
	TightenMin(v VariableID, value float64) error
	TightenMax(v VariableID, value float64) error
}

// BoundOrigin classifies how a literal bound value most likely came to be.
// The classification is purely advisory: it decides whether an adjustment
// is worth a debug note, never whether the adjustment is applied.
type BoundOrigin int

const (
	// OriginUserAuthored marks values that look intentional, like 5.5 or
	// 10.0: within machine epsilon of their one-decimal rounding.
	OriginUserAuthored BoundOrigin = iota

	// OriginAccumulatedError marks values that look like the residue of
	// floating-point computation rather than something a person typed.
	OriginAccumulatedError
)

// String returns a short name for the origin class.
func (o BoundOrigin) String() string {
	switch o {
	case OriginUserAuthored:
		return "user-authored"
	case OriginAccumulatedError:
		return "accumulated-error"
	default:
		return "unknown"
	}
}

// ClassifyBound applies the boundary-detection heuristic: round v to one
// decimal place and compare. Within machine epsilon of the rounding the
// value is classified as user-authored. Pure and side-effect free; kept
// structurally separate from the exact correctness path.
func ClassifyBound(v float64) BoundOrigin {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return OriginAccumulatedError
	}
	rounded := math.Round(v*10) / 10
	if math.Abs(v-rounded) < MachineEpsilon {
		return OriginUserAuthored
	}
	return OriginAccumulatedError
}

// varState tracks the per-variable lifecycle on one branch: unoptimized
// until first computed, cached until the registry version advances, and
// terminally infeasible once an empty precision window is detected.
type varState int

const (
	stateUnoptimized varState = iota
	stateInfeasible
)

// BoundaryPropagator applies optimizer output to the live domain store. It
// registers with the host's propagation scheduler like any other
// propagator: Propagate either succeeds or returns the ordinary
// contradiction error, and the host backtracks.
//
// The propagator borrows the registry and optimizer of its branch plus the
// shared domain store; it mutates only the store.
type BoundaryPropagator struct {
	registry  *ConstraintRegistry
	optimizer *PrecisionOptimizer
	store     DomainStore

	enabled bool
	logger  *slog.Logger
	monitor *PropagationMonitor
	state   map[VariableID]varState
}

// NewBoundaryPropagator creates an enabled propagator over the given
// registry, optimizer, and store.
func NewBoundaryPropagator(reg *ConstraintRegistry, opt *PrecisionOptimizer, store DomainStore) *BoundaryPropagator {
	return &BoundaryPropagator{
		registry:  reg,
		optimizer: opt,
		store:     store,
		enabled:   true,
		state:     make(map[VariableID]varState),
	}
}

// SetEnabled toggles the propagator. While disabled, Propagate is a no-op
// that always succeeds; bounds pass through unadjusted exactly as if this
// subsystem were absent.
func (p *BoundaryPropagator) SetEnabled(enabled bool) { p.enabled = enabled }

// SetLogger installs a logger for advisory adjustment notes. A nil logger
// (the default) silences them.
func (p *BoundaryPropagator) SetLogger(logger *slog.Logger) { p.logger = logger }

// SetMonitor installs a propagation monitor. Optional.
func (p *BoundaryPropagator) SetMonitor(m *PropagationMonitor) { p.monitor = m }

// Propagate computes precision bounds for each variable of interest and
// applies them to the domain store. Processing stops at the first failure:
// an infeasible precision window or an emptied domain is returned
// immediately through the ordinary contradiction channel, and the variable
// that produced an infeasible window is remembered as dead for the rest of
// this branch.
func (p *BoundaryPropagator) Propagate(vars []VariableID) error {
	if !p.enabled {
		return nil
	}
	if p.monitor != nil {
		p.monitor.StartPropagation()
		defer p.monitor.EndPropagation()
	}

	for _, v := range vars {
		if p.state[v] == stateInfeasible {
			if p.monitor != nil {
				p.monitor.RecordContradiction()
			}
			return &InfeasiblePrecisionWindowError{Variable: v}
		}

		pb, err := p.optimizer.OptimizeBounds(v, p.registry)
		if err != nil {
			var infeasible *InfeasiblePrecisionWindowError
			if errors.As(err, &infeasible) {
				p.state[v] = stateInfeasible
			}
			if p.monitor != nil {
				p.monitor.RecordContradiction()
			}
			return err
		}

		if pb.HasLower {
			p.noteAdjustment(v, "lower", pb.OriginalLower, pb.Lower)
			if err := p.store.TightenMin(v, pb.Lower); err != nil {
				if p.monitor != nil {
					p.monitor.RecordContradiction()
				}
				return err
			}
			if p.monitor != nil {
				p.monitor.RecordBoundApplied()
			}
		}
		if pb.HasUpper {
			p.noteAdjustment(v, "upper", pb.OriginalUpper, pb.Upper)
			if err := p.store.TightenMax(v, pb.Upper); err != nil {
				if p.monitor != nil {
					p.monitor.RecordContradiction()
				}
				return err
			}
			if p.monitor != nil {
				p.monitor.RecordBoundApplied()
			}
		}
	}
	return nil
}

// noteAdjustment surfaces a debug note when a bound that looks
// user-authored was moved to a neighboring representable value. The
// heuristic gates only the note; the adjustment itself has already
// happened.
func (p *BoundaryPropagator) noteAdjustment(v VariableID, side string, original, adjusted float64) {
	if math.Float64bits(original) == math.Float64bits(adjusted) {
		return
	}
	if p.monitor != nil {
		p.monitor.RecordAdjustmentNote()
	}
	if p.logger == nil {
		return
	}
	if ClassifyBound(original) == OriginUserAuthored {
		p.logger.Debug("adjusted literal bound to nearest representable value",
			"variable", int(v),
			"side", side,
			"original", original,
			"adjusted", adjusted,
			"origin", OriginUserAuthored.String(),
		)
	}
}

// Reset clears the per-branch variable states. Call when the propagator is
// reused for a fresh branch sharing the same registry and store.
func (p *BoundaryPropagator) Reset() {
	p.state = make(map[VariableID]varState)
}
