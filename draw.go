package bp

import "iter"

// Draw flags
const (
	DRAW_SHAPES           = 1 << 0
	DRAW_BOUNDING_BOXES   = 1 << 1
	DRAW_COLLISION_POINTS = 1 << 2
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

type Drawer interface {
	DrawCircle(pos Vector, angle, radius float64, outline, fill FColor, data interface{})
	DrawBox(center, halfExtents Vector, outline, fill FColor, data interface{})
	DrawSegment(a, b Vector, fill FColor, data interface{})

	Flags() int
	OutlineColor() FColor
	ShapeColor(view ShapeView, data interface{}) FColor
	CollisionPointColor() FColor
	Data() interface{}
}

// ShapeView is the world space pose of one collider, ready for drawing.
type ShapeView struct {
	Body     BodyHandle
	Collider ColliderHandle
	BodyType BodyType
	Tag      uint64

	Kind   ShapeKind
	Center Vector
	Angle  float64
	// Radius is set for circles, HalfExtents for boxes.
	Radius      float64
	HalfExtents Vector
}

// Shapes yields a view of every collider of every live body, in collider slot order.
// Positions come from the current body poses, not the cached step geometry.
func (w *World) Shapes() iter.Seq[ShapeView] {
	return func(yield func(ShapeView) bool) {
		for h, c := range w.colliders.All() {
			body, ok := w.bodies.arena.get(c.body.Handle)
			if !ok {
				continue
			}
			view := ShapeView{
				Body:     c.body,
				Collider: h,
				BodyType: body.kind,
				Tag:      body.Tag,
				Kind:     c.shape.Kind(),
				Center:   c.shape.Center(body.transform),
				Angle:    body.a,
			}
			switch s := c.shape.(type) {
			case *Circle:
				view.Radius = s.Radius
			case *Box:
				view.HalfExtents = s.HalfExtents
			}
			if !yield(view) {
				return
			}
		}
	}
}

func DrawShape(view ShapeView, options Drawer) {
	data := options.Data()

	outline := options.OutlineColor()
	fill := options.ShapeColor(view, data)

	switch view.Kind {
	case SHAPE_CIRCLE:
		options.DrawCircle(view.Center, view.Angle, view.Radius, outline, fill, data)
	case SHAPE_BOX:
		options.DrawBox(view.Center, view.HalfExtents, outline, fill, data)
	default:
		panic("Unknown shape type")
	}
}

func DrawWorld(w *World, options Drawer) {
	if options.Flags()&DRAW_SHAPES != 0 {
		for view := range w.Shapes() {
			DrawShape(view, options)
		}
	}

	if options.Flags()&DRAW_BOUNDING_BOXES != 0 {
		color := options.OutlineColor()
		data := options.Data()
		w.colliders.Each(func(_ ColliderHandle, c *Collider) {
			bb := c.bb
			options.DrawSegment(Vector{bb.L, bb.B}, Vector{bb.R, bb.B}, color, data)
			options.DrawSegment(Vector{bb.R, bb.B}, Vector{bb.R, bb.T}, color, data)
			options.DrawSegment(Vector{bb.R, bb.T}, Vector{bb.L, bb.T}, color, data)
			options.DrawSegment(Vector{bb.L, bb.T}, Vector{bb.L, bb.B}, color, data)
		})
	}

	if options.Flags()&DRAW_COLLISION_POINTS != 0 {
		color := options.CollisionPointColor()
		data := options.Data()
		for _, c := range w.contacts {
			a := c.Point.Sub(c.Normal.Mult(c.Depth / 2))
			b := c.Point.Add(c.Normal.Mult(c.Depth / 2))
			options.DrawSegment(a, b, color, data)
		}
	}
}
