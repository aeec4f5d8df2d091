package joint

// Solution is the full output of one solve: the 1D layout, the per-board
// trapezoid profiles in joint-local coordinates, and the two assembled board
// outlines in document coordinates. The two boards are geometric complements
// by construction: at the board face every x is covered by exactly one of
// them.
type Solution struct {
	Params Parameters

	// Segments is the shared 1D layout. RootWidth is left zero here; the
	// per-board profiles carry the depth-dependent widths.
	Segments []Segment

	// TailProfiles and PinProfiles are the solved trapezoids for each
	// board, at that board's cut depth.
	TailProfiles []Trapezoid
	PinProfiles  []Trapezoid

	TailBoard BoardPath
	PinBoard  BoardPath

	// BitFaceDiameter is the effective bit diameter at the board face; the
	// operator dials this into the Origin when running the dovetail bit.
	BitFaceDiameter float64
}

// Solve runs the full pipeline: validation, layout, profile solving and path
// assembly, with both boards placed at the joint-local origin. It never
// returns partial geometry: on any failure the Solution is nil.
func Solve(p Parameters) (*Solution, error) {
	return SolveAt(p, Placement{}, Placement{})
}

// SolveAt is Solve with explicit document placements for the two boards.
// Solving is pure and stateless; concurrent calls are safe.
func SolveAt(p Parameters, tailPlace, pinPlace Placement) (*Solution, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	segments := Layout(p)

	tailProfiles, err := SolveProfiles(segments, p.TailBoardCutDepth(), p.BitHalfAngle)
	if err != nil {
		return nil, err
	}
	pinProfiles, err := SolveProfiles(segments, p.PinBoardCutDepth(), p.BitHalfAngle)
	if err != nil {
		return nil, err
	}

	return &Solution{
		Params:          p,
		Segments:        segments,
		TailProfiles:    tailProfiles,
		PinProfiles:     pinProfiles,
		TailBoard:       Build(TailBoard, tailProfiles, p.BoardWidth, p.TailThickness, tailPlace),
		PinBoard:        Build(PinBoard, pinProfiles, p.BoardWidth, p.PinThickness, pinPlace),
		BitFaceDiameter: p.BitFaceDiameter(),
	}, nil
}
