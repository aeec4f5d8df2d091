package engine

import (
	"github.com/chazu/dovetail/pkg/anchor"
	"github.com/chazu/dovetail/pkg/joint"
	"github.com/chazu/dovetail/pkg/units"
)

// PlanJoint is one solved joint in a plan, carrying the name the script
// gave it.
type PlanJoint struct {
	Name     string          `json:"name"`
	Solution *joint.Solution `json:"solution"`
}

// Plan is the result of evaluating a script: a display unit, the joints in
// declaration order, and at most one custom anchor. Repeated (anchor ...)
// forms replace the previous one, mirroring how the anchor element is
// replaced by id in the SVG document.
type Plan struct {
	Unit   units.Unit
	Joints []PlanJoint
	Anchor *anchor.Spec
}

func newPlan() *Plan {
	return &Plan{Unit: units.Millimeter}
}

// Joint returns the named joint, or nil.
func (p *Plan) Joint(name string) *PlanJoint {
	for i := range p.Joints {
		if p.Joints[i].Name == name {
			return &p.Joints[i]
		}
	}
	return nil
}
