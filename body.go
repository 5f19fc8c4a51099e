package bp

import (
	"fmt"

	"github.com/pkg/errors"
)

type BodyType int

// body types
const (
	BODY_DYNAMIC BodyType = iota
	BODY_STATIC
)

func (t BodyType) String() string {
	switch t {
	case BODY_DYNAMIC:
		return "dynamic"
	case BODY_STATIC:
		return "static"
	}
	return "unknown"
}

// BodyDef describes a body to insert into a BodySet.
type BodyDef struct {
	Type            BodyType
	Position        Vector
	Angle           float64
	Velocity        Vector
	AngularVelocity float64

	// Mass overrides the mass accumulated from collider densities. Zero means "use the colliders".
	Mass float64

	// Tag is stored on the body untouched, for the host to find its own per-entity data.
	Tag uint64
}

func (def BodyDef) validate() error {
	if def.Type != BODY_DYNAMIC && def.Type != BODY_STATIC {
		return errors.Wrapf(ErrInvalidProperty, "body type %d", def.Type)
	}
	if !def.Position.IsFinite() || !isFinite(def.Angle) {
		return errors.Wrapf(ErrInvalidProperty, "body pose %v %v", def.Position, def.Angle)
	}
	if !def.Velocity.IsFinite() || !isFinite(def.AngularVelocity) {
		return errors.Wrapf(ErrInvalidProperty, "body velocity %v %v", def.Velocity, def.AngularVelocity)
	}
	if !(def.Mass >= 0) || !isFinite(def.Mass) {
		return errors.Wrapf(ErrInvalidProperty, "body mass %v", def.Mass)
	}
	return nil
}

type Body struct {
	handle BodyHandle
	kind   BodyType

	// mass and its inverse
	m     float64
	m_inv float64

	// moment of inertia and its inverse
	i     float64
	i_inv float64

	// mass requested by the BodyDef, 0 if it comes from the colliders
	massOverride float64

	// position, velocity
	p Vector
	v Vector

	// angle, angular velocity (radians)
	a float64
	w float64

	transform Transform

	Tag uint64

	colliders []ColliderHandle
}

func newBody(def BodyDef) *Body {
	body := &Body{
		kind:         def.Type,
		massOverride: def.Mass,
		p:            def.Position,
		a:            def.Angle,
		Tag:          def.Tag,
	}
	if body.kind == BODY_DYNAMIC {
		body.v = def.Velocity
		body.w = def.AngularVelocity
	}
	body.setTransform()
	return body
}

func (b Body) String() string {
	return fmt.Sprint("Body ", b.handle, " ", b.kind)
}

func (body *Body) Handle() BodyHandle {
	return body.handle
}

func (body *Body) GetType() BodyType {
	return body.kind
}

func (body *Body) IsStatic() bool {
	return body.kind == BODY_STATIC
}

func (body *Body) Mass() float64 {
	return body.m
}

// InverseMass is 0 for static bodies.
func (body *Body) InverseMass() float64 {
	return body.m_inv
}

func (body *Body) Moment() float64 {
	return body.i
}

func (body *Body) InverseMoment() float64 {
	return body.i_inv
}

func (body *Body) Position() Vector {
	return body.p
}

func (body *Body) SetPosition(position Vector) {
	body.p = position
	body.setTransform()
}

func (body *Body) Angle() float64 {
	return body.a
}

func (body *Body) SetAngle(angle float64) {
	body.a = angle
	body.setTransform()
}

func (body *Body) Velocity() Vector {
	return body.v
}

// SetVelocity is ignored for static bodies, which never move.
func (body *Body) SetVelocity(v Vector) {
	if body.kind == BODY_STATIC {
		return
	}
	body.v = v
}

func (body *Body) AngularVelocity() float64 {
	return body.w
}

func (body *Body) SetAngularVelocity(w float64) {
	if body.kind == BODY_STATIC {
		return
	}
	body.w = w
}

func (body *Body) Transform() Transform {
	return body.transform
}

// Colliders returns a copy of the handles of the colliders attached to the body.
func (body *Body) Colliders() []ColliderHandle {
	return append([]ColliderHandle(nil), body.colliders...)
}

// ApplyImpulse changes the linear velocity by j/m.
func (body *Body) ApplyImpulse(j Vector) {
	body.v = body.v.Add(j.Mult(body.m_inv))
}

func (body *Body) KineticEnergy() float64 {
	if body.kind == BODY_STATIC {
		return 0
	}
	return 0.5 * (body.m*body.v.LengthSq() + body.i*body.w*body.w)
}

func (body *Body) setTransform() {
	body.transform = NewTransformRigid(body.p, body.a)
}

// accumulateMass recomputes mass and moment from the attached colliders.
// Should *only* be called when colliders are attached or removed.
func (body *Body) accumulateMass(colliders *ColliderSet) {
	if body.kind == BODY_STATIC {
		body.m = INFINITY
		body.i = INFINITY
		body.m_inv = 0
		body.i_inv = 0
		return
	}

	var total, moment float64
	shapes := make([]Shape, 0, len(body.colliders))
	for _, h := range body.colliders {
		collider, ok := colliders.arena.get(h.Handle)
		if !ok {
			continue
		}
		shapes = append(shapes, collider.shape)
		cm := collider.density * collider.shape.Area()
		total += cm
		moment += collider.shape.Moment(cm)
	}

	mass := body.massOverride
	if mass <= 0 {
		mass = total
	}
	if mass <= 0 {
		mass = 1
	}

	if total > 0 {
		moment *= mass / total
	} else {
		moment = 0
		for _, shape := range shapes {
			moment += shape.Moment(mass / float64(len(shapes)))
		}
	}
	if moment <= 0 {
		moment = mass
	}

	body.m = mass
	body.m_inv = 1 / mass
	body.i = moment
	body.i_inv = 1 / moment
}
