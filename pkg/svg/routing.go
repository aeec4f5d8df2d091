// Package svg writes Shaper Origin-consumable SVG documents: cut polygons
// carrying shaper:cutType/shaper:cutDepth attributes, guide shapes, operator
// instructions and custom anchors.
package svg

import (
	"fmt"

	"github.com/chazu/dovetail/pkg/units"
)

// RoutingType is the machine-side cut classification. The Origin reads it
// from the fill/stroke color encoding; the shaper:cutType attribute is
// written as well so the intent survives recoloring.
type RoutingType int

const (
	// Guide shapes are visual references only, never cut.
	Guide RoutingType = iota
	// Interior cuts keep the outside of the line; the tool is offset
	// inward.
	Interior
	// Exterior cuts keep the inside of the line; the tool is offset
	// outward.
	Exterior
	// OnLine cuts follow the authored line with no offset.
	OnLine
	// Pocket clears the enclosed region to the cut depth.
	Pocket
)

func (r RoutingType) String() string {
	switch r {
	case Guide:
		return "guide"
	case Interior:
		return "interior"
	case Exterior:
		return "exterior"
	case OnLine:
		return "online"
	case Pocket:
		return "pocket"
	default:
		return fmt.Sprintf("RoutingType(%d)", int(r))
	}
}

// fillStroke returns the Origin's color encoding for the routing type.
// An empty string means the attribute is set to "none".
func (r RoutingType) fillStroke() (fill, stroke string) {
	switch r {
	case Guide:
		return "#0068ff", "#0068ff"
	case Interior:
		return "#ffffff", "#000000"
	case Exterior:
		return "#000000", "#000000"
	case OnLine:
		return "", "#7f7f7f"
	case Pocket:
		return "#7f7f7f", ""
	default:
		return "", ""
	}
}

// Attrs returns the SVG attribute strings encoding the routing type. The
// hairline stroke keeps cut lines visible at any zoom without changing the
// authored geometry.
func (r RoutingType) Attrs() []string {
	fill, stroke := r.fillStroke()
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		stroke = "none"
	}
	return []string{
		fmt.Sprintf(`fill="%s"`, fill),
		fmt.Sprintf(`stroke="%s"`, stroke),
		`vector-effect="non-scaling-stroke"`,
		fmt.Sprintf(`shaper:cutType="%s"`, r),
	}
}

// CutDepthAttr encodes a cut depth the way the Origin expects it,
// e.g. shaper:cutDepth="18.000mm".
func CutDepthAttr(depth float64, unit units.Unit) string {
	return fmt.Sprintf(`shaper:cutDepth="%.3f%s"`, unit.FromMillimeters(depth), unit)
}
