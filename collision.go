package bp

import "math"

type collisionFunc func(a, b geom) (contact, bool)

// Indexed by the shape kinds of the first and second argument.
var builtinCollisionFuncs = [SHAPE_NUM][SHAPE_NUM]collisionFunc{
	{circleToCircle, circleToBox},
	{boxToCircle, boxToBox},
}

func collideGeoms(a, b geom) (contact, bool) {
	return builtinCollisionFuncs[a.kind][b.kind](a, b)
}

// Collide runs the narrow phase on two colliders using their cached world geometry.
// The normal of the result points from a to b.
func Collide(a, b *Collider) (ContactPair, bool) {
	c, ok := collideGeoms(a.geom, b.geom)
	if !ok {
		return ContactPair{}, false
	}
	return ContactPair{
		A:      a.handle,
		B:      b.handle,
		Point:  c.point,
		Normal: c.normal,
		Depth:  c.depth,
	}, true
}

func circleToCircle(a, b geom) (contact, bool) {
	delta := b.center.Sub(a.center)
	rsum := a.radius + b.radius
	distSq := delta.LengthSq()
	if distSq >= rsum*rsum {
		return contact{}, false
	}

	d := math.Sqrt(distSq)
	// coincident centers get a fixed normal
	n := Vector{0, 1}
	if d > MAGIC_EPSILON {
		n = delta.Mult(1 / d)
	}

	surfaceA := a.center.Add(n.Mult(a.radius))
	surfaceB := b.center.Sub(n.Mult(b.radius))
	return contact{
		point:  surfaceA.Lerp(surfaceB, 0.5),
		normal: n,
		depth:  rsum - d,
	}, true
}

func circleToBox(circle, box geom) (contact, bool) {
	bb := box.bb()
	c := circle.center
	q := bb.ClampVect(c)
	delta := q.Sub(c)
	distSq := delta.LengthSq()

	if distSq > MAGIC_EPSILON*MAGIC_EPSILON {
		r := circle.radius
		if distSq >= r*r {
			return contact{}, false
		}
		d := math.Sqrt(distSq)
		return contact{point: q, normal: delta.Mult(1 / d), depth: r - d}, true
	}

	// The center is inside (or on) the box. Push the circle out through the nearest face,
	// checking x faces first so ties resolve the same way every time.
	faces := [4]struct {
		dist   float64
		normal Vector
		point  Vector
	}{
		{c.X - bb.L, Vector{1, 0}, Vector{bb.L, c.Y}},
		{bb.R - c.X, Vector{-1, 0}, Vector{bb.R, c.Y}},
		{c.Y - bb.B, Vector{0, 1}, Vector{c.X, bb.B}},
		{bb.T - c.Y, Vector{0, -1}, Vector{c.X, bb.T}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].dist < faces[best].dist {
			best = i
		}
	}
	face := faces[best]
	return contact{point: face.point, normal: face.normal, depth: circle.radius + math.Max(face.dist, 0)}, true
}

func boxToCircle(box, circle geom) (contact, bool) {
	c, ok := circleToBox(circle, box)
	c.normal = c.normal.Neg()
	return c, ok
}

func boxToBox(a, b geom) (contact, bool) {
	d := b.center.Sub(a.center)
	ox := a.half.X + b.half.X - math.Abs(d.X)
	oy := a.half.Y + b.half.Y - math.Abs(d.Y)
	if ox <= 0 || oy <= 0 {
		return contact{}, false
	}

	bbA, bbB := a.bb(), b.bb()
	overlap := BB{
		L: math.Max(bbA.L, bbB.L),
		B: math.Max(bbA.B, bbB.B),
		R: math.Min(bbA.R, bbB.R),
		T: math.Min(bbA.T, bbB.T),
	}

	// least overlap wins, x on ties
	if ox <= oy {
		return contact{point: overlap.Center(), normal: Vector{sign(d.X), 0}, depth: ox}, true
	}
	return contact{point: overlap.Center(), normal: Vector{0, sign(d.Y)}, depth: oy}, true
}

// sign returns -1 for negative values and 1 otherwise.
func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}
