package bp

import (
	"math"

	"github.com/pkg/errors"
)

type ShapeKind int

// Shape kinds. SHAPE_NUM sizes the collision dispatch table.
const (
	SHAPE_CIRCLE ShapeKind = iota
	SHAPE_BOX
	SHAPE_NUM
)

func (k ShapeKind) String() string {
	switch k {
	case SHAPE_CIRCLE:
		return "circle"
	case SHAPE_BOX:
		return "box"
	}
	return "unknown"
}

// Shape is a collision primitive in body-local coordinates.
// Circle and Box are the only implementations.
type Shape interface {
	Kind() ShapeKind
	// BB returns the world space bounding box for the body transform t.
	BB(t Transform) BB
	// Center returns the world space center for the body transform t.
	Center(t Transform) Vector
	Area() float64
	// Moment returns the moment of inertia about the body origin for the given mass.
	Moment(mass float64) float64
	Validate() error
}

// Overlaps runs the exact narrow-phase test for two shapes placed by ta and tb.
func Overlaps(a Shape, ta Transform, b Shape, tb Transform) bool {
	_, ok := collideGeoms(geomFor(a, ta), geomFor(b, tb))
	return ok
}

// geom is the world space form of a shape the narrow phase works on.
type geom struct {
	kind   ShapeKind
	center Vector
	radius float64
	half   Vector
}

func geomFor(shape Shape, t Transform) geom {
	g := geom{kind: shape.Kind(), center: shape.Center(t)}
	switch s := shape.(type) {
	case *Circle:
		g.radius = s.Radius
	case *Box:
		g.half = s.HalfExtents
	default:
		panic("Unknown shape type")
	}
	return g
}

func (g geom) bb() BB {
	if g.kind == SHAPE_CIRCLE {
		return NewBBForCircle(g.center, g.radius)
	}
	return NewBBForExtents(g.center, g.half.X, g.half.Y)
}

func MomentForCircle(m, r1, r2 float64, offset Vector) float64 {
	return m * (0.5*(r1*r1+r2*r2) + offset.LengthSq())
}

func AreaForCircle(r1, r2 float64) float64 {
	return math.Pi * math.Abs(r1*r1-r2*r2)
}

func MomentForBox(m, width, height float64) float64 {
	return m * (width*width + height*height) / 12.0
}

func validSize(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrDegenerateShape, "%s %v", name, v)
	}
	return nil
}
