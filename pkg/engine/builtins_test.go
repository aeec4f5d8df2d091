package engine

import (
	"math"
	"strings"
	"testing"

	"github.com/chazu/dovetail/pkg/anchor"
	"github.com/chazu/dovetail/pkg/units"
)

// ---------------------------------------------------------------------------
// Preprocessing
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`(units :mm)`, `(units "__kw_mm")`},
		{`(dovetail :tail-thickness 18)`, `(dovetail "__kw_tail-thickness" 18)`},
		{`(anchor :orientation :RT)`, `(anchor "__kw_orientation" "__kw_RT")`},
	}
	for _, tt := range tests {
		if got := preprocessSource(tt.in); got != tt.want {
			t.Errorf("preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPreprocessPreservesStrings(t *testing.T) {
	in := `(dovetail :name "side :mm kebab-case")`
	got := preprocessSource(in)
	if !strings.Contains(got, `"side :mm kebab-case"`) {
		t.Errorf("string literal mangled: %q", got)
	}
}

func TestPreprocessKebabIdentifiers(t *testing.T) {
	if got := preprocessSource(`(def half-pin 5)`); got != `(def half_pin 5)` {
		t.Errorf("got %q", got)
	}
	// A minus between a value and an identifier is arithmetic, not kebab.
	if got := preprocessSource(`(- 10 x)`); got != `(- 10 x)` {
		t.Errorf("got %q", got)
	}
}

func TestPreprocessComments(t *testing.T) {
	got := preprocessSource("; a comment\n(units :mm)")
	if !strings.HasPrefix(got, "// a comment\n") {
		t.Errorf("comment mangled: %q", got)
	}
}

func TestPreprocessAssignment(t *testing.T) {
	if got := preprocessSource(`(x := 5)`); got != `(x := 5)` {
		t.Errorf("got %q", got)
	}
}

// ---------------------------------------------------------------------------
// DSL builtins
// ---------------------------------------------------------------------------

func evalPlan(t *testing.T, src string) *Plan {
	t.Helper()
	plan, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return plan
}

func evalErrs(t *testing.T, src string) []EvalError {
	t.Helper()
	plan, errs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if plan != nil {
		t.Fatal("expected a nil plan")
	}
	if len(errs) == 0 {
		t.Fatal("expected eval errors")
	}
	return errs
}

func TestUnitsBuiltin(t *testing.T) {
	plan := evalPlan(t, `(units :in)`)
	if plan.Unit != units.Inch {
		t.Errorf("unit %v, want in", plan.Unit)
	}

	errs := evalErrs(t, `(units :parsec)`)
	if !strings.Contains(errs[0].Message, "parsec") {
		t.Errorf("errors %v do not name the bad unit", errs)
	}
}

func TestDovetailBuiltin(t *testing.T) {
	plan := evalPlan(t, `
(units :mm)
(dovetail :name "drawer-side"
          :width 100 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 4 :ratio 0.6)`)

	if len(plan.Joints) != 1 {
		t.Fatalf("got %d joints, want 1", len(plan.Joints))
	}
	pj := plan.Joint("drawer-side")
	if pj == nil {
		t.Fatal("joint not found by name")
	}
	if len(pj.Solution.Segments) != 9 {
		t.Errorf("got %d segments, want 9", len(pj.Solution.Segments))
	}
	if math.Abs(pj.Solution.Params.BoardWidth-100) > 1e-9 {
		t.Errorf("width %g, want 100", pj.Solution.Params.BoardWidth)
	}
}

func TestDovetailUnitConversion(t *testing.T) {
	plan := evalPlan(t, `
(units :in)
(dovetail :width 4 :tail-thickness 0.75 :pin-thickness 0.75
          :angle 7 :bit 0.25 :tails 3)`)

	p := plan.Joints[0].Solution.Params
	if math.Abs(p.BoardWidth-101.6) > 1e-9 {
		t.Errorf("width %g mm, want 101.6", p.BoardWidth)
	}
}

func TestDovetailDefaults(t *testing.T) {
	plan := evalPlan(t, `
(dovetail :width 100 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 4)`)

	p := plan.Joints[0].Solution.Params
	if p.TailWidthRatio != 0.5 {
		t.Errorf("default ratio %g, want 0.5", p.TailWidthRatio)
	}
	if plan.Joints[0].Name != "joint-1" {
		t.Errorf("default name %q, want joint-1", plan.Joints[0].Name)
	}
}

func TestDovetailMissingArgument(t *testing.T) {
	errs := evalErrs(t, `(dovetail :width 100 :tails 4)`)
	if !strings.Contains(errs[0].Message, "tail-thickness") {
		t.Errorf("errors %v do not name the missing argument", errs)
	}
}

func TestDovetailDuplicateName(t *testing.T) {
	errs := evalErrs(t, `
(dovetail :name "a" :width 100 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 4)
(dovetail :name "a" :width 80 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 3)`)
	if !strings.Contains(errs[0].Message, "duplicate") {
		t.Errorf("errors %v do not mention the duplicate", errs)
	}
}

func TestDovetailInfeasibleJoint(t *testing.T) {
	// 5 tails on a 10mm board cannot fit the bit.
	errs := evalErrs(t, `
(dovetail :width 10 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 5)`)
	if !strings.Contains(errs[0].Message, "pin") {
		t.Errorf("errors %v do not explain the constraint", errs)
	}
}

func TestDovetailMultipleJoints(t *testing.T) {
	plan := evalPlan(t, `
(dovetail :name "side" :width 100 :tail-thickness 18 :pin-thickness 18
          :angle 7 :bit 6 :tails 4)
(dovetail :name "back" :width 80 :tail-thickness 12 :pin-thickness 18
          :angle 7 :bit 6 :tails 3)`)

	if len(plan.Joints) != 2 {
		t.Fatalf("got %d joints, want 2", len(plan.Joints))
	}
	if plan.Joints[0].Name != "side" || plan.Joints[1].Name != "back" {
		t.Error("joints out of declaration order")
	}
}

func TestAnchorBuiltin(t *testing.T) {
	plan := evalPlan(t, `(anchor :orientation :RT :x 0 :y 36 :size 6)`)
	if plan.Anchor == nil {
		t.Fatal("anchor not staged")
	}
	if plan.Anchor.Orientation != anchor.RightTop {
		t.Errorf("orientation %v, want RT", plan.Anchor.Orientation)
	}
	if plan.Anchor.Y != 36 || plan.Anchor.XSize != 6 {
		t.Errorf("anchor %+v", plan.Anchor)
	}
}

func TestAnchorLastWins(t *testing.T) {
	plan := evalPlan(t, `
(anchor :orientation :RT :x 0 :y 0 :size 5)
(anchor :orientation :LB :x 10 :y 20 :size 3)`)

	if plan.Anchor == nil || plan.Anchor.Orientation != anchor.LeftBottom {
		t.Fatalf("anchor %+v, want the later LB placement", plan.Anchor)
	}
	if plan.Anchor.X != 10 || plan.Anchor.Y != 20 {
		t.Errorf("anchor position (%g,%g), want (10,20)", plan.Anchor.X, plan.Anchor.Y)
	}
}

func TestAnchorUnitConversion(t *testing.T) {
	plan := evalPlan(t, `
(units :in)
(anchor :orientation :RB :x 1 :y 2 :size 0.25)`)

	if math.Abs(plan.Anchor.X-25.4) > 1e-9 || math.Abs(plan.Anchor.XSize-6.35) > 1e-9 {
		t.Errorf("anchor %+v not converted to mm", plan.Anchor)
	}
}

func TestAnchorRejectsBadInput(t *testing.T) {
	errs := evalErrs(t, `(anchor :orientation :XX :x 0 :y 0 :size 5)`)
	if !strings.Contains(errs[0].Message, "orientation") {
		t.Errorf("errors %v do not name the orientation", errs)
	}

	errs = evalErrs(t, `(anchor :orientation :RT :x 0 :y 0 :size 0)`)
	if !strings.Contains(errs[0].Message, "size") {
		t.Errorf("errors %v do not name the size", errs)
	}
}
