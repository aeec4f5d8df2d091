package main

import (
	"bytes"
	"context"
	"errors"
	"log"

	"github.com/chazu/dovetail/pkg/anchor"
	"github.com/chazu/dovetail/pkg/engine"
	"github.com/chazu/dovetail/pkg/geom"
	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/kernel"
	"github.com/chazu/dovetail/pkg/kernel/sdfx"
	"github.com/chazu/dovetail/pkg/preview"
	shapersvg "github.com/chazu/dovetail/pkg/svg"
)

// colorPalette assigns distinct colors to preview parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// NewApp creates a new App with a script engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// ErrorData is a JSON-serializable solver error for the frontend. Kind
// distinguishes the error family so the dialog can highlight the offending
// field or constraint.
type ErrorData struct {
	Kind    string  `json:"kind"` // "parameter", "constraint", "geometry", "internal"
	Field   string  `json:"field,omitempty"`
	Message string  `json:"message"`
	Value   float64 `json:"value,omitempty"`
}

// errorData maps solver errors onto the frontend shape.
func errorData(err error) ErrorData {
	var paramErr *joint.InvalidParameterError
	if errors.As(err, &paramErr) {
		return ErrorData{
			Kind:    "parameter",
			Field:   paramErr.Field,
			Message: paramErr.Reason,
			Value:   paramErr.Value,
		}
	}
	var consErr *joint.ConstraintError
	if errors.As(err, &consErr) {
		return ErrorData{
			Kind:    "constraint",
			Field:   consErr.Constraint.String(),
			Message: consErr.Message,
			Value:   consErr.Value,
		}
	}
	var geomErr *joint.GeometryInvariantError
	if errors.As(err, &geomErr) {
		return ErrorData{
			Kind:    "geometry",
			Message: geomErr.Invariant,
			Value:   geomErr.Value,
		}
	}
	return ErrorData{Kind: "internal", Message: err.Error()}
}

// SolveResult is returned by Solve: either a solution or an error.
type SolveResult struct {
	Solution *joint.Solution `json:"solution,omitempty"`
	Error    *ErrorData      `json:"error,omitempty"`
}

// Solve validates the dialog input and solves the joint geometry.
func (a *App) Solve(in joint.Input) SolveResult {
	params, err := joint.NewParameters(in)
	if err != nil {
		e := errorData(err)
		return SolveResult{Error: &e}
	}
	sol, err := joint.Solve(params)
	if err != nil {
		e := errorData(err)
		return SolveResult{Error: &e}
	}
	return SolveResult{Solution: sol}
}

// RenderResult is returned by Render: the Shaper SVG document or an error.
type RenderResult struct {
	SVG   string     `json:"svg,omitempty"`
	Error *ErrorData `json:"error,omitempty"`
}

// documentLayout computes the SVG canvas size for one joint and the origin
// the boards are drawn at. The origin is inset so the overcut shapes, which
// extend past the board on every side, stay inside the viewBox.
func documentLayout(p joint.Parameters) (w, h float64, origin geom.Point) {
	topBuf := p.BitTipDiameter * shapersvg.OvercutFactor
	origin = geom.Pt(shapersvg.EdgeBuffer, topBuf)
	w = p.BoardWidth + 2*shapersvg.EdgeBuffer
	h = topBuf + p.TailThickness + p.PinThickness +
		shapersvg.BoardSeparation + 10*shapersvg.LineHeight
	return w, h, origin
}

// Render solves the joint and renders the full Shaper SVG document, with
// both boards, cut annotations, anchors and operator instructions.
func (a *App) Render(in joint.Input) RenderResult {
	return a.renderWithAnchor(in, nil)
}

// SetDocumentAnchor re-renders a joint with a custom anchor placed at the
// given position. Calling it again with a new spec replaces the anchor
// element rather than adding a second one.
func (a *App) SetDocumentAnchor(in joint.Input, spec anchor.Spec) RenderResult {
	return a.renderWithAnchor(in, &spec)
}

func (a *App) renderWithAnchor(in joint.Input, spec *anchor.Spec) RenderResult {
	params, err := joint.NewParameters(in)
	if err != nil {
		e := errorData(err)
		return RenderResult{Error: &e}
	}
	sol, err := joint.Solve(params)
	if err != nil {
		e := errorData(err)
		return RenderResult{Error: &e}
	}

	var buf bytes.Buffer
	w, h, origin := documentLayout(params)
	doc := shapersvg.NewDocument(&buf, w, h, in.Unit)
	if spec != nil {
		doc.SetAnchor(*spec)
	}
	doc.Joint(sol, origin)
	doc.Close()

	return RenderResult{SVG: buf.String()}
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// PreviewResult is returned by Preview: board meshes or an error.
type PreviewResult struct {
	Meshes []MeshData `json:"meshes"`
	Error  *ErrorData `json:"error,omitempty"`
}

// Preview solves the joint and produces a 3D mesh per board.
func (a *App) Preview(in joint.Input) PreviewResult {
	result := PreviewResult{Meshes: []MeshData{}}

	params, err := joint.NewParameters(in)
	if err != nil {
		e := errorData(err)
		result.Error = &e
		return result
	}
	sol, err := joint.Solve(params)
	if err != nil {
		e := errorData(err)
		result.Error = &e
		return result
	}

	meshes, err := preview.Boards(sol, a.kernel)
	if err != nil {
		log.Printf("Preview error: %v", err)
		e := ErrorData{Kind: "internal", Message: "preview failed: " + err.Error()}
		result.Error = &e
		return result
	}

	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// EvalErrorData is a JSON-serializable script error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ScriptJoint pairs a script joint's name with its rendered SVG document.
type ScriptJoint struct {
	Name string `json:"name"`
	SVG  string `json:"svg"`
}

// ScriptResult is the full result of running a plan script.
type ScriptResult struct {
	Joints []ScriptJoint   `json:"joints"`
	Errors []EvalErrorData `json:"errors"`
}

// RunScript evaluates a plan script and renders one SVG document per joint.
// This is the binding behind the batch scripting panel.
func (a *App) RunScript(source string) ScriptResult {
	result := ScriptResult{
		Joints: []ScriptJoint{},
		Errors: []EvalErrorData{},
	}

	plan, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		log.Printf("RunScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	for _, pj := range plan.Joints {
		var buf bytes.Buffer
		w, h, origin := documentLayout(pj.Solution.Params)
		doc := shapersvg.NewDocument(&buf, w, h, plan.Unit)
		if plan.Anchor != nil {
			doc.SetAnchor(*plan.Anchor)
		}
		doc.Joint(pj.Solution, origin)
		doc.Close()
		result.Joints = append(result.Joints, ScriptJoint{Name: pj.Name, SVG: buf.String()})
	}
	return result
}
