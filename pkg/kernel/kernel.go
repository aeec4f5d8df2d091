// Package kernel defines the abstract geometry kernel interface used to
// build joint previews. Implementations provide solid modeling and boolean
// operations behind this interface so the preview layer does not depend on
// a particular CAD backend.
package kernel

import "github.com/chazu/dovetail/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	// Extrude sweeps a closed 2D profile along +Z for the given height.
	// The profile lies in the XY plane with the solid's base at z=0.
	Extrude(profile []geom.Point, height float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
