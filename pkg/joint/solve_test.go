package joint

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/chazu/dovetail/pkg/geom"
)

func TestSolveDrawerJoint(t *testing.T) {
	sol, err := Solve(drawerParams(t))
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if len(sol.Segments) != 9 {
		t.Errorf("got %d segments, want 9", len(sol.Segments))
	}
	if len(sol.TailProfiles) != 9 || len(sol.PinProfiles) != 9 {
		t.Errorf("profile counts %d/%d, want 9/9",
			len(sol.TailProfiles), len(sol.PinProfiles))
	}

	want := 6 - 2*18*math.Tan(7*math.Pi/180)
	if math.Abs(sol.BitFaceDiameter-want) > 1e-9 {
		t.Errorf("BitFaceDiameter = %g, want %g", sol.BitFaceDiameter, want)
	}

	if sol.TailBoard.Board != TailBoard || sol.PinBoard.Board != PinBoard {
		t.Error("board paths mislabeled")
	}
}

func TestSolveDeterministic(t *testing.T) {
	p := drawerParams(t)
	a, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	b, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated solves differ")
	}
}

func TestSolveRejectsInfeasible(t *testing.T) {
	p := drawerParams(t)
	p.BoardWidth = 10
	p.TailCount = 5

	sol, err := Solve(p)
	var consErr *ConstraintError
	if !errors.As(err, &consErr) {
		t.Fatalf("got %v, want ConstraintError", err)
	}
	if sol != nil {
		t.Error("solution must be nil on failure")
	}
}

func TestSolveAtPlacements(t *testing.T) {
	p := drawerParams(t)
	tailPlace := Placement{Offset: geom.Pt(0, 68)}
	pinPlace := Placement{Offset: geom.Pt(0, 0)}

	sol, err := SolveAt(p, tailPlace, pinPlace)
	if err != nil {
		t.Fatalf("SolveAt: %v", err)
	}

	for _, s := range sol.TailBoard.Segments {
		if s.From.Y < 68 {
			t.Fatalf("tail board vertex %v above its placement", s.From)
		}
	}
	for _, s := range sol.PinBoard.Segments {
		if s.From.Y < 0 || s.From.Y > p.PinThickness {
			t.Fatalf("pin board vertex %v outside its band", s.From)
		}
	}
}

func TestSolveProfilesIndependentPerBoard(t *testing.T) {
	in := drawerInput()
	in.TailThickness = 12 // pin board now cut 12mm deep, tail board still 18mm
	p, err := NewParameters(in)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if got := sol.TailProfiles[1].RootLeft.Y; got != 18 {
		t.Errorf("tail board cut depth %g, want 18", got)
	}
	if got := sol.PinProfiles[1].RootLeft.Y; got != 12 {
		t.Errorf("pin board cut depth %g, want 12", got)
	}

	// Shallower cut, smaller flare.
	tailFlare := sol.TailProfiles[1].Segment.RootWidth - sol.TailProfiles[1].Segment.FaceWidth
	pinFlare := sol.PinProfiles[1].Segment.RootWidth - sol.PinProfiles[1].Segment.FaceWidth
	if pinFlare >= tailFlare {
		t.Errorf("pin board flare %g not smaller than tail board flare %g", pinFlare, tailFlare)
	}
}

func TestSolveThinTailBoardOutline(t *testing.T) {
	in := drawerInput()
	in.TailThickness = 12 // tail board thinner than its 18mm cut depth
	p, err := NewParameters(in)
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	sol, err := Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	// The tail board's band follows the cut floor when the cut is deeper
	// than the board is thick; every outline vertex sits on the face line
	// or the floor, so the closed path cannot cross itself.
	for _, pt := range sol.TailBoard.Points() {
		if pt.Y != 0 && pt.Y != 18 {
			t.Fatalf("tail board vertex %v off the face and floor lines", pt)
		}
	}

	// The pin board is thicker than its 12mm cut, so its band keeps the
	// full thickness.
	maxY := 0.0
	for _, pt := range sol.PinBoard.Points() {
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	if maxY != p.PinThickness {
		t.Errorf("pin board band depth %g, want %g", maxY, p.PinThickness)
	}
}
