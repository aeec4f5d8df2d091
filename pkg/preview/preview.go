// Package preview turns a solved joint into triangle meshes using a
// geometry kernel. One mesh is produced per board: the board blank minus
// the material each cut removes, so the preview shows the boards exactly
// as they leave the router.
package preview

import (
	"fmt"

	"github.com/chazu/dovetail/pkg/geom"
	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/kernel"
)

// zOvercut extends cut prisms slightly past the board faces so the
// boolean difference leaves no coplanar film at the surfaces.
const zOvercut = 0.1

// BoardDepth is the modeled board length along Y in mm. The joint geometry
// only constrains the end of the board, so the preview uses a fixed depth.
const BoardDepth = 80.0

// Boards produces one mesh per board. Both boards are modeled in their own
// local frame with the joint face at y=0; the frontend positions them.
func Boards(sol *joint.Solution, k kernel.Kernel) ([]*kernel.Mesh, error) {
	p := sol.Params

	tail, err := boardMesh(k, sol.TailProfiles, joint.TailBoard,
		p.BoardWidth, p.TailThickness)
	if err != nil {
		return nil, err
	}

	pin, err := boardMesh(k, sol.PinProfiles, joint.PinBoard,
		p.BoardWidth, p.PinThickness)
	if err != nil {
		return nil, err
	}

	return []*kernel.Mesh{tail, pin}, nil
}

// boardMesh models one board as a box minus the extruded cut trapezoids.
// The board occupies x in [0,W], y in [0,BoardDepth], z in [0,thickness];
// the joint face is the y=0 end. Each cut trapezoid lies in the board's
// XY plane (face edge at y=0, root edge at the cut depth) and removes
// material through the full thickness.
func boardMesh(k kernel.Kernel, profiles []joint.Trapezoid, board joint.BoardKind, width, thickness float64) (*kernel.Mesh, error) {
	solid := k.Box(width, BoardDepth, thickness)

	cut := joint.CutKind(board)
	for _, t := range profiles {
		if t.Segment.Kind != cut {
			continue
		}
		solid = k.Difference(solid, cutPrism(k, t, thickness))
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("preview: ToMesh failed for %s: %w", board, err)
	}
	mesh.PartName = board.String()
	return mesh, nil
}

// cutPrism extrudes one trapezoid through the board thickness, overcutting
// slightly past both faces.
func cutPrism(k kernel.Kernel, t joint.Trapezoid, thickness float64) kernel.Solid {
	profile := []geom.Point{t.FaceLeft, t.FaceRight, t.RootRight, t.RootLeft}
	prism := k.Extrude(profile, thickness+2*zOvercut)
	return k.Translate(prism, 0, 0, -zOvercut)
}
