package joint

import "fmt"

// SegmentKind distinguishes pins from tails along the joint.
type SegmentKind int

const (
	Pin SegmentKind = iota
	Tail
)

func (k SegmentKind) String() string {
	switch k {
	case Pin:
		return "pin"
	case Tail:
		return "tail"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// Segment is one pin or tail along the joint width. FaceWidth is the width
// at the board's outer face; RootWidth, the width at full cut depth, is
// filled in by the profile solver since it depends on which board the
// segment is cut into.
type Segment struct {
	Index        int
	Kind         SegmentKind
	CenterOffset float64 // distance from the joint's left edge to the centerline
	FaceWidth    float64
	RootWidth    float64
}

// IsHalfPin reports whether the segment is one of the two edge half-pins.
// n is the tail count of the layout the segment belongs to.
func (s Segment) IsHalfPin(n int) bool {
	return s.Kind == Pin && (s.Index == 0 || s.Index == 2*n)
}

// Layout divides the board width into 2·tailCount+1 alternating segments:
// half-pin, tail, pin, …, tail, half-pin. Interior tails and pins are
// exactly uniform; any floating-point residue is absorbed symmetrically by
// the two half-pins so the layout stays a palindrome. The result is ordered
// left to right and fully deterministic.
func Layout(p Parameters) []Segment {
	n := p.TailCount
	pitch := p.Pitch()
	tailFace := p.TailWidthRatio * pitch
	pinFace := pitch - tailFace

	// Interior widths first, half-pins take the remainder.
	interior := float64(n)*tailFace + float64(n-1)*pinFace
	halfPinFace := (p.BoardWidth - interior) / 2

	segments := make([]Segment, 0, 2*n+1)
	x := 0.0
	for i := 0; i <= 2*n; i++ {
		var seg Segment
		seg.Index = i
		switch {
		case i == 0 || i == 2*n:
			seg.Kind = Pin
			seg.FaceWidth = halfPinFace
		case i%2 == 1:
			seg.Kind = Tail
			seg.FaceWidth = tailFace
		default:
			seg.Kind = Pin
			seg.FaceWidth = pinFace
		}
		seg.CenterOffset = x + seg.FaceWidth/2
		x += seg.FaceWidth
		segments = append(segments, seg)
	}

	return segments
}
