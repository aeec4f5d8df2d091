package joint

import (
	"github.com/chazu/dovetail/pkg/units"
)

// Input is the raw parameter set handed over by the host dialog, expressed
// in the document's length unit.
type Input struct {
	BoardWidth     float64    `json:"boardWidth"`
	TailThickness  float64    `json:"tailThickness"` // tail-board material thickness
	PinThickness   float64    `json:"pinThickness"`  // pin-board material thickness
	BitHalfAngle   float64    `json:"bitHalfAngle"`  // degrees
	BitTipDiameter float64    `json:"bitTipDiameter"`
	TailCount      int        `json:"tailCount"`
	TailWidthRatio float64    `json:"tailWidthRatio"` // tail width as fraction of pitch
	Unit           units.Unit `json:"unit"`
}

// Parameters is the validated, normalized joinery parameter set. All lengths
// are millimeters. A Parameters value is constructed once by NewParameters
// and never mutated; the solve pipeline derives everything else from it.
type Parameters struct {
	BoardWidth     float64
	TailThickness  float64 // becomes the pin board's cut depth
	PinThickness   float64 // becomes the tail board's cut depth
	BitHalfAngle   float64 // degrees
	BitTipDiameter float64
	TailCount      int
	TailWidthRatio float64
}

// NewParameters normalizes the input to millimeters and checks each field
// against its own domain. Combined feasibility is checked separately by
// Validate; the returned Parameters may still describe an uncuttable joint.
func NewParameters(in Input) (Parameters, error) {
	p := Parameters{
		BoardWidth:     in.Unit.ToMillimeters(in.BoardWidth),
		TailThickness:  in.Unit.ToMillimeters(in.TailThickness),
		PinThickness:   in.Unit.ToMillimeters(in.PinThickness),
		BitHalfAngle:   in.BitHalfAngle,
		BitTipDiameter: in.Unit.ToMillimeters(in.BitTipDiameter),
		TailCount:      in.TailCount,
		TailWidthRatio: in.TailWidthRatio,
	}

	if p.BoardWidth <= 0 {
		return Parameters{}, &InvalidParameterError{Field: "boardWidth", Value: p.BoardWidth, Reason: "must be positive"}
	}
	if p.TailThickness <= 0 {
		return Parameters{}, &InvalidParameterError{Field: "tailThickness", Value: p.TailThickness, Reason: "must be positive"}
	}
	if p.PinThickness <= 0 {
		return Parameters{}, &InvalidParameterError{Field: "pinThickness", Value: p.PinThickness, Reason: "must be positive"}
	}
	if p.BitHalfAngle <= 0 || p.BitHalfAngle >= 90 {
		return Parameters{}, &InvalidParameterError{Field: "bitHalfAngle", Value: p.BitHalfAngle, Reason: "must be strictly between 0 and 90 degrees"}
	}
	if p.BitTipDiameter < 0 {
		return Parameters{}, &InvalidParameterError{Field: "bitTipDiameter", Value: p.BitTipDiameter, Reason: "must not be negative"}
	}
	if p.TailCount < 1 {
		return Parameters{}, &InvalidParameterError{Field: "tailCount", Value: float64(p.TailCount), Reason: "must be at least 1"}
	}
	if p.TailWidthRatio <= 0 || p.TailWidthRatio >= 1 {
		return Parameters{}, &InvalidParameterError{Field: "tailWidthRatio", Value: p.TailWidthRatio, Reason: "must be strictly between 0 and 1"}
	}

	return p, nil
}

// TailBoardCutDepth is how deep the tail board is cut: the mating pin
// board's thickness.
func (p Parameters) TailBoardCutDepth() float64 { return p.PinThickness }

// PinBoardCutDepth is how deep the pin board is cut: the mating tail
// board's thickness.
func (p Parameters) PinBoardCutDepth() float64 { return p.TailThickness }

// TanHalfAngle returns tan of the bit half-angle, the per-unit-depth flare
// of every slanted cut wall.
func (p Parameters) TanHalfAngle() float64 {
	return tanDegrees(p.BitHalfAngle)
}

// Pitch is the combined face width of one pin and one adjoining tail.
func (p Parameters) Pitch() float64 {
	return p.BoardWidth / float64(p.TailCount)
}

// BitFaceDiameter is the effective diameter of the bit at the board face
// when plunged to the tail board's cut depth. The operator configures the
// Origin with this value when running the dovetail bit.
func (p Parameters) BitFaceDiameter() float64 {
	return p.BitTipDiameter - 2*p.TanHalfAngle()*p.TailBoardCutDepth()
}
