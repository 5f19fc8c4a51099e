package bp

import (
	"github.com/pkg/errors"
)

// ColliderProps are the material properties of a collider.
type ColliderProps struct {
	// Restitution (elasticity) in [0, 1].
	Restitution float64
	// Density >= 0, used to derive body mass from shape area.
	Density float64
}

func (props ColliderProps) validate() error {
	if !(props.Restitution >= 0 && props.Restitution <= 1) {
		return errors.Wrapf(ErrInvalidProperty, "restitution %v", props.Restitution)
	}
	if !(props.Density >= 0) || !isFinite(props.Density) {
		return errors.Wrapf(ErrInvalidProperty, "density %v", props.Density)
	}
	return nil
}

// Collider attaches a Shape and its material to exactly one body.
type Collider struct {
	handle ColliderHandle
	body   BodyHandle
	shape  Shape

	restitution float64
	density     float64

	// world space data, refreshed by update once per step
	geom geom
	bb   BB
}

func (c *Collider) Handle() ColliderHandle {
	return c.handle
}

func (c *Collider) Body() BodyHandle {
	return c.body
}

// Shape returns the collider's private copy of its shape.
func (c *Collider) Shape() Shape {
	return c.shape
}

func (c *Collider) Restitution() float64 {
	return c.restitution
}

func (c *Collider) SetRestitution(e float64) error {
	if err := (ColliderProps{Restitution: e, Density: c.density}).validate(); err != nil {
		return err
	}
	c.restitution = e
	return nil
}

func (c *Collider) Density() float64 {
	return c.density
}

// BB is the world bounding box as of the last step or attach.
func (c *Collider) BB() BB {
	return c.bb
}

// update caches the world space geometry. margin grows the bounding box along the body's motion.
func (c *Collider) update(t Transform, margin Vector) {
	c.geom = geomFor(c.shape, t)
	c.bb = c.geom.bb()
	if !margin.Equal(Vector{}) {
		c.bb = c.bb.Sweep(margin)
	}
}

func cloneShape(shape Shape) (Shape, error) {
	switch s := shape.(type) {
	case *Circle:
		if s == nil {
			break
		}
		c := *s
		return &c, nil
	case *Box:
		if s == nil {
			break
		}
		b := *s
		return &b, nil
	}
	return nil, errors.Wrapf(ErrDegenerateShape, "unsupported shape %T", shape)
}
