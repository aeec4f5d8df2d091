package joint

import (
	"math"

	"github.com/chazu/dovetail/pkg/geom"
)

// tanDegrees returns tan of an angle given in degrees.
func tanDegrees(deg float64) float64 {
	return math.Tan(deg * math.Pi / 180)
}

// Trapezoid is the solved 2D profile of one segment: four vertices in
// joint-local coordinates (x along the joint width, y from 0 at the board
// face to the cut depth). Neighboring trapezoids share their boundary
// vertices, so concatenating them yields a gap-free polyline.
type Trapezoid struct {
	Segment   Segment
	FaceLeft  geom.Point
	FaceRight geom.Point
	RootLeft  geom.Point
	RootRight geom.Point
}

// Vertices returns the corners in clockwise order starting at the top-left
// (face-left) corner, matching the authoring order of the cut shapes.
func (t Trapezoid) Vertices() []geom.Point {
	return []geom.Point{t.FaceLeft, t.FaceRight, t.RootRight, t.RootLeft}
}

// SolveProfiles computes the trapezoid profile of every segment at the given
// cut depth. Tails widen from face to root by 2·depth·tan(halfAngle), pins
// narrow by the same amount; the outer side of each half-pin coincides with
// the board edge and stays vertical.
//
// Boundary x-coordinates are computed once per boundary and shared between
// neighbors, so continuity holds by construction. If a pin's root width
// collapses — only possible when Validate was bypassed — a
// GeometryInvariantError is returned instead of a self-intersecting polygon.
func SolveProfiles(segments []Segment, cutDepth, bitHalfAngle float64) ([]Trapezoid, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	tan := tanDegrees(bitHalfAngle)
	shift := cutDepth * tan

	// Face boundaries: cumulative widths. Root boundaries: each interior
	// boundary shifts toward the pin side, since the tail flares into the
	// pin's footprint. The two outer boundaries are board edges and do not
	// shift.
	faces := make([]float64, len(segments)+1)
	roots := make([]float64, len(segments)+1)
	x := 0.0
	for i, seg := range segments {
		faces[i] = x
		x += seg.FaceWidth
	}
	faces[len(segments)] = x

	roots[0] = faces[0]
	roots[len(segments)] = faces[len(segments)]
	for b := 1; b < len(segments); b++ {
		if segments[b-1].Kind == Tail {
			// Tail on the left expands rightward at depth.
			roots[b] = faces[b] + shift
		} else {
			// Tail on the right expands leftward at depth.
			roots[b] = faces[b] - shift
		}
	}

	out := make([]Trapezoid, len(segments))
	for i, seg := range segments {
		rootWidth := roots[i+1] - roots[i]
		if rootWidth <= 0 {
			return nil, &GeometryInvariantError{
				Invariant: "segment root width must stay positive",
				Value:     rootWidth,
			}
		}
		seg.RootWidth = rootWidth
		out[i] = Trapezoid{
			Segment:   seg,
			FaceLeft:  geom.Pt(faces[i], 0),
			FaceRight: geom.Pt(faces[i+1], 0),
			RootLeft:  geom.Pt(roots[i], cutDepth),
			RootRight: geom.Pt(roots[i+1], cutDepth),
		}
	}

	return out, nil
}
