package joint

import "fmt"

// InvalidParameterError reports a single parameter outside its valid domain.
// It is returned by NewParameters before any combined checks run.
type InvalidParameterError struct {
	Field  string  // parameter name, e.g. "boardWidth"
	Value  float64 // the offending value
	Reason string  // human-readable domain description
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s = %g: %s", e.Field, e.Value, e.Reason)
}

// Constraint identifies which combined-feasibility check failed.
type Constraint int

const (
	// ConstraintTailCount: the joint needs at least one tail.
	ConstraintTailCount Constraint = iota
	// ConstraintPinWidth: the derived minimum pin width collapsed to zero
	// or does not fit the per-segment pitch.
	ConstraintPinWidth
	// ConstraintBitAngle: the bit half-angle is outside (0°, 90°).
	ConstraintBitAngle
	// ConstraintPitch: the pin+tail pitch does not reconcile with the
	// board width within tolerance.
	ConstraintPitch
)

func (c Constraint) String() string {
	switch c {
	case ConstraintTailCount:
		return "tail-count"
	case ConstraintPinWidth:
		return "pin-width"
	case ConstraintBitAngle:
		return "bit-angle"
	case ConstraintPitch:
		return "pitch"
	default:
		return fmt.Sprintf("Constraint(%d)", int(c))
	}
}

// ConstraintError reports a parameter combination that cannot produce a
// physically realizable joint. Value carries the offending computed quantity
// so the caller can build an actionable message.
type ConstraintError struct {
	Constraint Constraint
	Value      float64
	Message    string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint %s violated (%.4g): %s", e.Constraint, e.Value, e.Message)
}

// GeometryInvariantError reports an internal geometry invariant violation.
// It is unreachable for parameters that passed Validate; if it triggers, the
// solve attempt is abandoned rather than emitting malformed geometry.
type GeometryInvariantError struct {
	Invariant string
	Value     float64
}

func (e *GeometryInvariantError) Error() string {
	return fmt.Sprintf("geometry invariant %q violated (%.4g)", e.Invariant, e.Value)
}
