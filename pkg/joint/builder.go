package joint

import (
	"fmt"

	"github.com/chazu/dovetail/pkg/geom"
)

// BoardKind tags which board a path belongs to.
type BoardKind int

const (
	TailBoard BoardKind = iota
	PinBoard
)

func (b BoardKind) String() string {
	switch b {
	case TailBoard:
		return "tail-board"
	case PinBoard:
		return "pin-board"
	default:
		return fmt.Sprintf("BoardKind(%d)", int(b))
	}
}

// Line is a straight path segment described by its two endpoints.
type Line struct {
	From geom.Point `json:"from"`
	To   geom.Point `json:"to"`
}

// BoardPath is one board's complete cut outline for the joint edge: the
// joint profile replacing one edge of a rectangular band of the board,
// already transformed into document coordinates. The band is as deep as the
// board is thick, or as the cut floor when the mating board is thicker.
type BoardPath struct {
	Board    BoardKind `json:"board"`
	Segments []Line    `json:"segments"`
	Closed   bool      `json:"closed"`
}

// Points returns the outline's vertex sequence. For a closed path the first
// vertex is not repeated at the end.
func (p BoardPath) Points() []geom.Point {
	if len(p.Segments) == 0 {
		return nil
	}
	pts := make([]geom.Point, 0, len(p.Segments)+1)
	pts = append(pts, p.Segments[0].From)
	for _, s := range p.Segments {
		pts = append(pts, s.To)
	}
	if p.Closed {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Placement positions a board path in the host document. FlipY applies the
// vertical-axis flip needed when the host canvas's vertical axis is inverted
// relative to the machine's.
type Placement struct {
	Offset geom.Point `json:"offset"`
	FlipY  bool       `json:"flipY"`
}

// transform returns the placement's affine matrix. The flip, when present,
// is applied before the offset so the offset is always in canvas terms.
func (pl Placement) transform() geom.Affine {
	m := geom.Translate(pl.Offset.X, pl.Offset.Y)
	if pl.FlipY {
		m = m.Mul(geom.FlipY())
	}
	return m
}

// CutKind returns which segment kind is cut away on the given board:
// pins are waste on the tail board, tails are waste on the pin board.
func CutKind(b BoardKind) SegmentKind {
	if b == PinBoard {
		return Tail
	}
	return Pin
}

// Build assembles one board's closed outline from its solved segment
// profiles. Cut-kind segments (pins on the tail board, tails on the pin
// board) recede to the cut depth; the remaining three edges close a
// rectangular band deep enough to contain the cut floor, so the outline
// stays simple even when the mating board is thicker than this one. The
// same parameters always yield bit-identical coordinates.
func Build(board BoardKind, profiles []Trapezoid, boardWidth, boardThickness float64, place Placement) BoardPath {
	cut := CutKind(board)

	// Walk the joint edge left to right, alternating between the face line
	// and the cut floor. Slanted walls reuse the shared trapezoid vertices:
	// a cut segment's face corners are appended by its material neighbors.
	var pts []geom.Point
	for i, t := range profiles {
		if t.Segment.Kind == cut {
			pts = append(pts, t.RootLeft, t.RootRight)
			if i != len(profiles)-1 {
				pts = append(pts, t.FaceRight)
			}
		} else {
			if i == 0 {
				pts = append(pts, t.FaceLeft)
			}
			pts = append(pts, t.FaceRight)
		}
	}

	// Close the band: right edge, far edge, left edge. The far edge sits
	// at the board thickness, pushed back to the cut floor when the cut
	// is deeper than the board is thick.
	band := boardThickness
	for _, t := range profiles {
		if t.RootLeft.Y > band {
			band = t.RootLeft.Y
		}
	}
	pts = append(pts,
		geom.Pt(boardWidth, band),
		geom.Pt(0, band),
	)
	pts = dedupe(pts)

	pts = place.transform().ApplyAll(pts)

	segments := make([]Line, 0, len(pts))
	for i := range pts {
		segments = append(segments, Line{From: pts[i], To: pts[(i+1)%len(pts)]})
	}

	return BoardPath{Board: board, Segments: segments, Closed: true}
}

// dedupe removes consecutive coincident vertices, including the wraparound
// pair. They arise when the band's far edge is coplanar with the cut floor
// and the profile floor meets a band corner.
func dedupe(pts []geom.Point) []geom.Point {
	const eps = 1e-12
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) > 0 && p.Near(out[len(out)-1], eps) {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0].Near(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	return out
}
