package preview

import (
	"testing"

	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/kernel/sdfx"
	"github.com/chazu/dovetail/pkg/units"
)

func drawerSolution(t *testing.T) *joint.Solution {
	t.Helper()
	p, err := joint.NewParameters(joint.Input{
		BoardWidth:     100,
		TailThickness:  18,
		PinThickness:   18,
		BitHalfAngle:   7,
		BitTipDiameter: 6,
		TailCount:      4,
		TailWidthRatio: 0.6,
		Unit:           units.Millimeter,
	})
	if err != nil {
		t.Fatalf("NewParameters: %v", err)
	}
	sol, err := joint.Solve(p)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return sol
}

func TestBoards(t *testing.T) {
	if testing.Short() {
		t.Skip("marching cubes is slow")
	}

	meshes, err := Boards(drawerSolution(t), sdfx.New())
	if err != nil {
		t.Fatalf("Boards: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(meshes))
	}

	names := map[string]bool{}
	for _, m := range meshes {
		names[m.PartName] = true
		if m.IsEmpty() {
			t.Errorf("%s: empty mesh", m.PartName)
		}
		if len(m.Vertices) != len(m.Normals) {
			t.Errorf("%s: vertices/normals mismatch", m.PartName)
		}
	}
	if !names["tail-board"] || !names["pin-board"] {
		t.Errorf("part names %v, want tail-board and pin-board", names)
	}
}
