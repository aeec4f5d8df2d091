package joint

import "math"

// WidthTolerance is the relative tolerance for reconciling the summed
// segment widths with the board width.
const WidthTolerance = 1e-6

// Validate checks that the parameter combination can produce a physically
// realizable joint. Checks run in a fixed order and the first failure wins.
// It is a pure function with no side effects; a nil return means the full
// solve pipeline cannot fail.
func Validate(p Parameters) error {
	// A dovetail joint needs at least one tail.
	if p.TailCount < 1 {
		return &ConstraintError{
			Constraint: ConstraintTailCount,
			Value:      float64(p.TailCount),
			Message:    "a joint needs at least one tail",
		}
	}

	if err := validatePinWidths(p); err != nil {
		return err
	}

	// 0° would cut parallel sides (not a dovetail), 90° an infinite flare.
	if p.BitHalfAngle <= 0 || p.BitHalfAngle >= 90 {
		return &ConstraintError{
			Constraint: ConstraintBitAngle,
			Value:      p.BitHalfAngle,
			Message:    "bit half-angle must lie strictly between 0 and 90 degrees",
		}
	}

	// The layout absorbs rounding residue into the half-pins; if the widths
	// still do not reconcile with the board width the parameters are broken.
	segments := Layout(p)
	var sum float64
	for _, s := range segments {
		sum += s.FaceWidth
	}
	if math.Abs(sum-p.BoardWidth) > WidthTolerance*p.BoardWidth {
		return &ConstraintError{
			Constraint: ConstraintPitch,
			Value:      sum,
			Message:    "segment widths do not reconcile with the board width",
		}
	}

	return nil
}

// validatePinWidths checks everything that can make a pin uncuttable: the
// bit footprint at the board face, and the pin widths remaining at full
// cut depth on either board.
func validatePinWidths(p Parameters) error {
	tan := p.TanHalfAngle()
	pitch := p.Pitch()
	tailFace := p.TailWidthRatio * pitch
	pinFace := pitch - tailFace
	halfPinFace := pinFace / 2

	// The bit flares from face to tip; plunged to the tail board's cut
	// depth its footprint at the face is the narrowest gap it can cut.
	faceDiameter := p.BitFaceDiameter()
	if faceDiameter <= 0 {
		return &ConstraintError{
			Constraint: ConstraintPinWidth,
			Value:      faceDiameter,
			Message:    "bit diameter at the board face collapses to zero; reduce cut depth, bit angle, or use a larger bit",
		}
	}
	if pinFace < faceDiameter {
		return &ConstraintError{
			Constraint: ConstraintPinWidth,
			Value:      pinFace,
			Message:    "pin face width is narrower than the bit footprint at the board face",
		}
	}

	// Pins narrow with depth on both boards; the deeper cut governs.
	depth := math.Max(p.TailBoardCutDepth(), p.PinBoardCutDepth())
	pinRoot := pinFace - 2*depth*tan
	if pinRoot <= 0 {
		return &ConstraintError{
			Constraint: ConstraintPinWidth,
			Value:      pinRoot,
			Message:    "pin width collapses to zero at full cut depth",
		}
	}
	// Half-pins flare on the interior side only.
	halfPinRoot := halfPinFace - depth*tan
	if halfPinRoot <= 0 {
		return &ConstraintError{
			Constraint: ConstraintPinWidth,
			Value:      halfPinRoot,
			Message:    "half-pin width collapses to zero at full cut depth",
		}
	}

	return nil
}
