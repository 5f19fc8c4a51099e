package bp

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestShapeCircleArea(t *testing.T) {
	circle := NewCircle(2, Vector{0, 0})

	if circle.Area() != 4*math.Pi {
		t.Fail()
	}
}

func TestShapeBoxArea(t *testing.T) {
	box := NewBox(4, 3)
	if box.Area() != 12 {
		t.Errorf("Expected 12, got %v", box.Area())
	}
	if box.Moment(12) != 25 {
		t.Errorf("Expected 25, got %v", box.Moment(12))
	}
}

func TestShapeOffset(t *testing.T) {
	circle := NewCircle(1, Vector{2, 0})
	c := circle.Center(NewTransformRigid(Vector{10, 10}, math.Pi/2))
	if !c.Near(Vector{10, 12}, 1e-9) {
		t.Errorf("Expected offset to rotate with the body, got %v", c)
	}

	box := &Box{HalfExtents: Vector{1, 2}, Offset: Vector{2, 0}}
	bb := box.BB(NewTransformRigid(Vector{}, math.Pi/2))
	if math.Abs(bb.R-bb.L-2) > 1e-9 || math.Abs(bb.T-bb.B-4) > 1e-9 {
		t.Errorf("Box extents should not rotate, got %v", bb)
	}
}

func TestShapeValidate(t *testing.T) {
	for _, shape := range []Shape{
		NewCircle(0, Vector{}),
		NewCircle(-1, Vector{}),
		NewCircle(math.Inf(1), Vector{}),
		NewCircle(1, Vector{math.NaN(), 0}),
		NewBox(0, 1),
		NewBox(1, -1),
	} {
		if err := shape.Validate(); !errors.Is(err, ErrDegenerateShape) {
			t.Errorf("Expected ErrDegenerateShape for %#v, got %v", shape, err)
		}
	}

	if err := NewCircle(1, Vector{}).Validate(); err != nil {
		t.Error(err)
	}
}

func TestShapeOverlaps(t *testing.T) {
	circle := NewCircle(1, Vector{})
	box := NewBox(2, 2)

	if !Overlaps(circle, NewTransformTranslate(Vector{1.5, 0}), box, NewTransformIdentity()) {
		t.Error("Expected circle and box to overlap")
	}
	if Overlaps(circle, NewTransformTranslate(Vector{2, 0}), box, NewTransformIdentity()) {
		t.Error("Touching shapes should not overlap")
	}
}
