package geom

// Affine is a 2D affine transform stored as the matrix
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the no-op transform.
var Identity = Affine{A: 1, D: 1}

// Translate returns a transform that moves points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a transform that scales points by (sx, sy).
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// FlipY returns a transform that negates the vertical axis. Composed with a
// translation it maps machine coordinates (y up) onto canvas coordinates
// (y down).
func FlipY() Affine {
	return Scale(1, -1)
}

// Mul returns the composition m∘n: applying the result is equivalent to
// applying n first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a single point.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyAll transforms a slice of points, returning a new slice.
func (m Affine) ApplyAll(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}
