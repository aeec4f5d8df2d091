// Package anchor computes custom anchor markers for the Shaper Origin.
// An anchor is a small right-triangle the Origin's camera recognizes as the
// document origin; see the Shaper custom-anchor documentation.
package anchor

import (
	"fmt"

	"github.com/chazu/dovetail/pkg/geom"
)

// ElementID is the stable SVG element id carried by every placed anchor.
// Re-placing an anchor replaces the element with this id rather than
// tracking the previous placement in process state.
const ElementID = "shaper_origin_custom_anchor"

// Orientation is the axis orientation encoded by the anchor triangle:
// x-axis towards the right (R) or left (L), y-axis towards the top (T) or
// bottom (B).
type Orientation int

const (
	RightTop Orientation = iota
	RightBottom
	LeftTop
	LeftBottom
)

func (o Orientation) String() string {
	switch o {
	case RightTop:
		return "RT"
	case RightBottom:
		return "RB"
	case LeftTop:
		return "LT"
	case LeftBottom:
		return "LB"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ParseOrientation converts the dialog designator (RT, RB, LT, LB) to an
// Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "RT":
		return RightTop, nil
	case "RB":
		return RightBottom, nil
	case "LT":
		return LeftTop, nil
	case "LB":
		return LeftBottom, nil
	}
	return 0, fmt.Errorf("unknown axis orientation %q, expected RT, RB, LT or LB", s)
}

// Spec describes one anchor placement in document coordinates.
type Spec struct {
	Orientation Orientation `json:"orientation"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	XSize       float64     `json:"xSize"` // y leg is twice as long by convention
}

// Triangle returns the anchor's three vertices. The right-angle corner sits
// at the spec position; the legs point along the encoded axes, with the
// y leg twice the length of the x leg.
func (s Spec) Triangle() [3]geom.Point {
	ySize := 2 * s.XSize
	p0 := geom.Pt(s.X, s.Y)

	switch s.Orientation {
	case RightTop:
		return [3]geom.Point{p0, geom.Pt(s.X, s.Y-ySize), geom.Pt(s.X+s.XSize, s.Y)}
	case RightBottom:
		return [3]geom.Point{p0, geom.Pt(s.X+s.XSize, s.Y), geom.Pt(s.X, s.Y+ySize)}
	case LeftTop:
		return [3]geom.Point{p0, geom.Pt(s.X-s.XSize, s.Y), geom.Pt(s.X, s.Y-ySize)}
	default: // LeftBottom
		return [3]geom.Point{p0, geom.Pt(s.X-s.XSize, s.Y), geom.Pt(s.X, s.Y+ySize)}
	}
}
