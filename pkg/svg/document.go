package svg

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"

	"github.com/chazu/dovetail/pkg/anchor"
	"github.com/chazu/dovetail/pkg/geom"
	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/units"
)

// ShaperNamespace is the XML namespace for shaper:* attributes.
const ShaperNamespace = "http://www.shapertools.com/namespaces/shaper"

// Overcut constants. Cuts continue past the board so the bit enters and
// leaves the stock outside the joint; values carried over from shop
// practice with the reference hardware.
const (
	// OvercutFactor scales the bit diameter into the default entry/exit
	// buffer on either side of the board.
	OvercutFactor = 0.55
	// DovetailRetractFactor scales the buffer below the board for the
	// dovetail bit, which needs a full diameter to retract safely.
	DovetailRetractFactor = 1.0
	// EdgeBuffer is the fixed horizontal overcut in mm where a cut meets
	// the board's side edge.
	EdgeBuffer = 2.0
)

// Text layout constants, in mm.
const (
	FontSize        = 4.0
	LineHeight      = FontSize * 1.6
	BoardSeparation = 50.0
)

// Document incrementally writes one Shaper SVG document. The custom anchor
// follows replace semantics: SetAnchor overwrites any pending anchor, and
// the single element (with the stable anchor id) is emitted on Close.
type Document struct {
	canvas *svg.SVG
	unit   units.Unit
	anchor *anchor.Spec
}

// NewDocument starts an SVG document of the given size in millimeters.
func NewDocument(w io.Writer, width, height float64, unit units.Unit) *Document {
	canvas := svg.New(w)
	canvas.Startunit(width, height, "mm",
		fmt.Sprintf(`viewBox="0 0 %g %g"`, width, height),
		fmt.Sprintf(`xmlns:shaper="%s"`, ShaperNamespace))
	return &Document{canvas: canvas, unit: unit}
}

// SetAnchor stages a custom anchor, replacing any previously staged one.
// The element is looked up by its stable id on the Origin, so a document
// never carries more than one.
func (d *Document) SetAnchor(s anchor.Spec) {
	d.anchor = &s
}

// Close emits the staged anchor, if any, and the closing svg tag.
func (d *Document) Close() {
	if d.anchor != nil {
		tri := d.anchor.Triangle()
		d.polygon(tri[:], geom.Pt(0, 0),
			fmt.Sprintf(`id="%s"`, anchor.ElementID), `fill="#ff0000"`)
		d.anchor = nil
	}
	d.canvas.End()
}

// Joint renders a solved joint: the pin board at the given origin, the tail
// board below it, each with its guide outline, cut shapes, per-board anchor
// and operator instructions. It returns the y coordinate below the rendered
// content.
func (d *Document) Joint(sol *joint.Solution, origin geom.Point) float64 {
	pinLower := d.pinBoard(sol, origin)
	tailOrigin := geom.Pt(origin.X, pinLower+BoardSeparation)
	return d.tailBoard(sol, tailOrigin)
}

// pinBoard draws the pin board: a guide rectangle, one trapezoid pocket per
// tail socket and the cut metadata for the straight bit. The drawing plane
// is the board's end face, so the sockets span the pin board's own thickness
// and their walls slope at the bit angle over exactly that span; those are
// the tail trapezoids solved at the tail board's cut depth.
func (d *Document) pinBoard(sol *joint.Solution, origin geom.Point) float64 {
	p := sol.Params
	buf := p.BitTipDiameter * OvercutFactor

	d.guideRect(origin, p.BoardWidth, p.PinThickness)

	depthAttr := CutDepthAttr(p.PinBoardCutDepth(), d.unit)
	for _, t := range sol.TailProfiles {
		if t.Segment.Kind != joint.Tail {
			continue
		}
		pts := overcutTrapezoid(t, buf, buf)
		d.polygon(pts, origin, append(Interior.Attrs(), depthAttr)...)
	}

	d.boardAnchor(origin, p.PinThickness)

	lower := origin.Y + p.PinThickness + buf
	lower = d.text(origin.X, lower+LineHeight,
		"Cutting pattern for the straight router bit in the pin board.")
	lower = d.text(origin.X, lower+LineHeight,
		fmt.Sprintf("Set cutting depth to %.2f%s.", d.unit.FromMillimeters(p.PinBoardCutDepth()), d.unit))
	return lower
}

// tailBoard draws the tail board: guide rectangle, one full-thickness
// rectangle per gap between tails and the dovetail bit instructions,
// including the effective bit diameter at the face. The rectangles are
// exactly as wide as the gap at the tails' widest point; the flare is made
// by the bit profile along the plunge, not drawn, so rough passes can run
// with a straight bit on the same shapes without offsets.
func (d *Document) tailBoard(sol *joint.Solution, origin geom.Point) float64 {
	p := sol.Params
	topBuf := p.BitTipDiameter * OvercutFactor
	botBuf := p.BitTipDiameter * DovetailRetractFactor

	d.guideRect(origin, p.BoardWidth, p.TailThickness)

	depthAttr := CutDepthAttr(p.TailBoardCutDepth(), d.unit)
	for _, t := range sol.TailProfiles {
		if t.Segment.Kind != joint.Pin {
			continue
		}
		left, right := cutSpan(t, p.BoardWidth)
		d.canvas.Rect(origin.X+left, origin.Y-topBuf,
			right-left, topBuf+p.TailThickness+botBuf,
			append(Interior.Attrs(), depthAttr)...)
	}

	d.boardAnchor(origin, p.TailThickness)

	lower := origin.Y + p.TailThickness + botBuf
	lower = d.text(origin.X, lower+LineHeight,
		"Cutting pattern for the dovetail router bit in the tail board.")
	lower = d.text(origin.X, lower+LineHeight,
		fmt.Sprintf("Set cutting depth to %.2f%s.", d.unit.FromMillimeters(p.TailBoardCutDepth()), d.unit))
	lower = d.text(origin.X, lower+LineHeight,
		fmt.Sprintf("Set cutting diameter to %.2f%s when using the dovetail bit.",
			d.unit.FromMillimeters(sol.BitFaceDiameter), d.unit))
	lower = d.text(origin.X, lower+LineHeight,
		"Do not use incremental depths with the dovetail bit; plunge and retract outside the board.")
	return lower
}

// guideRect draws a non-cutting board outline.
func (d *Document) guideRect(origin geom.Point, w, h float64) {
	d.canvas.Rect(origin.X, origin.Y, w, h, Guide.Attrs()...)
}

// boardAnchor places the per-board anchor triangle at the board's lower
// left corner, sized to half the board thickness.
func (d *Document) boardAnchor(origin geom.Point, thickness float64) {
	spec := anchor.Spec{
		Orientation: anchor.RightTop,
		X:           origin.X,
		Y:           origin.Y + thickness,
		XSize:       thickness / 2,
	}
	tri := spec.Triangle()
	d.polygon(tri[:], geom.Pt(0, 0), `fill="#ff0000"`)
}

// text writes one guide-colored instruction line and returns its baseline y.
func (d *Document) text(x, y float64, line string) float64 {
	d.canvas.Text(x, y, line,
		`fill="#0068ff"`, `stroke="none"`, fmt.Sprintf(`font-size="%g"`, FontSize))
	return y
}

// polygon writes a polygon from points offset by origin.
func (d *Document) polygon(pts []geom.Point, origin geom.Point, attrs ...string) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X + origin.X
		ys[i] = p.Y + origin.Y
	}
	d.canvas.Polygon(xs, ys, attrs...)
}

// cutSpan is the x extent of one tail-board cut rectangle: the gap at the
// tails' widest point, which the trapezoid carries at its root. Cuts at a
// board side edge run off the board by the fixed edge buffer.
func cutSpan(t joint.Trapezoid, boardWidth float64) (left, right float64) {
	left, right = t.RootLeft.X, t.RootRight.X
	if t.FaceLeft.X == 0 && t.RootLeft.X == 0 {
		left = -EdgeBuffer
	}
	if t.FaceRight.X == boardWidth && t.RootRight.X == boardWidth {
		right = boardWidth + EdgeBuffer
	}
	return left, right
}

// overcutTrapezoid extends a cut trapezoid past both board faces,
// continuing the slanted walls at the bit angle.
func overcutTrapezoid(t joint.Trapezoid, topBuf, botBuf float64) []geom.Point {
	depth := t.RootLeft.Y - t.FaceLeft.Y

	extend := func(face, root geom.Point) (top, bottom geom.Point) {
		slope := (root.X - face.X) / depth // Δx per unit depth
		top = geom.Pt(face.X-slope*topBuf, face.Y-topBuf)
		bottom = geom.Pt(root.X+slope*botBuf, root.Y+botBuf)
		return top, bottom
	}

	topLeft, bottomLeft := extend(t.FaceLeft, t.RootLeft)
	topRight, bottomRight := extend(t.FaceRight, t.RootRight)

	return []geom.Point{topLeft, topRight, bottomRight, bottomLeft}
}
