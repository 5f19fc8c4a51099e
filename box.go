package bp

import "github.com/pkg/errors"

// Box is an axis-aligned rectangle. Body rotation moves its offset but never
// rotates the box itself.
type Box struct {
	HalfExtents Vector
	Offset      Vector
}

// NewBox makes a box of the given full width and height centered on the body.
func NewBox(width, height float64) *Box {
	return &Box{HalfExtents: Vector{width / 2.0, height / 2.0}}
}

func (*Box) Kind() ShapeKind {
	return SHAPE_BOX
}

func (box *Box) Center(t Transform) Vector {
	return t.Point(box.Offset)
}

func (box *Box) BB(t Transform) BB {
	return NewBBForExtents(box.Center(t), box.HalfExtents.X, box.HalfExtents.Y)
}

func (box *Box) Area() float64 {
	return 4 * box.HalfExtents.X * box.HalfExtents.Y
}

func (box *Box) Moment(mass float64) float64 {
	return MomentForBox(mass, 2*box.HalfExtents.X, 2*box.HalfExtents.Y) + mass*box.Offset.LengthSq()
}

func (box *Box) Validate() error {
	if !box.Offset.IsFinite() {
		return errors.Wrapf(ErrDegenerateShape, "box offset %v", box.Offset)
	}
	if err := validSize("box half width", box.HalfExtents.X); err != nil {
		return err
	}
	return validSize("box half height", box.HalfExtents.Y)
}
