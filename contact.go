package bp

// ContactPair is a single contact between two colliders for one step.
// Normal is a unit vector pointing from A toward B and Depth is >= 0.
type ContactPair struct {
	A, B   ColliderHandle
	Point  Vector
	Normal Vector
	Depth  float64
}

// Flip swaps A and B and reverses the normal.
func (c ContactPair) Flip() ContactPair {
	return ContactPair{A: c.B, B: c.A, Point: c.Point, Normal: c.Normal.Neg(), Depth: c.Depth}
}

type contact struct {
	point, normal Vector
	depth         float64
}
