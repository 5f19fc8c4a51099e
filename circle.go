package bp

import "github.com/pkg/errors"

type Circle struct {
	Radius float64
	// Offset of the center from the body origin, in body coordinates.
	Offset Vector
}

func NewCircle(radius float64, offset Vector) *Circle {
	return &Circle{Radius: radius, Offset: offset}
}

func (*Circle) Kind() ShapeKind {
	return SHAPE_CIRCLE
}

func (circle *Circle) Center(t Transform) Vector {
	return t.Point(circle.Offset)
}

func (circle *Circle) BB(t Transform) BB {
	return NewBBForCircle(circle.Center(t), circle.Radius)
}

func (circle *Circle) Area() float64 {
	return AreaForCircle(0, circle.Radius)
}

func (circle *Circle) Moment(mass float64) float64 {
	return MomentForCircle(mass, 0, circle.Radius, circle.Offset)
}

func (circle *Circle) Validate() error {
	if !circle.Offset.IsFinite() {
		return errors.Wrapf(ErrDegenerateShape, "circle offset %v", circle.Offset)
	}
	return validSize("circle radius", circle.Radius)
}
