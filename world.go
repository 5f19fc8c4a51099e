package bp

import (
	"log"

	"github.com/pkg/errors"
)

// ContactHandler is called once per contact during a step, before contacts are resolved.
// The world is locked while it runs: adding or removing bodies or colliders fails with ErrWorldLocked.
type ContactHandler func(w *World, contact ContactPair)

// DefaultCellSize is the SpaceHash cell size used by NewWorld.
const DefaultCellSize = 32.0

// World owns the bodies and colliders of a simulation and advances them with Step.
// A World is not safe for concurrent use.
type World struct {
	bodies     *BodySet
	colliders  *ColliderSet
	broadPhase BroadPhase
	resolver   *ContactResolver

	sweepMargin    bool
	contactHandler ContactHandler

	pairs    []ColliderPair
	contacts []ContactPair

	stamp  uint
	locked int
}

func NewWorld() *World {
	return NewWorldWithBroadPhase(NewSpaceHash(DefaultCellSize, 1000))
}

func NewWorldWithBroadPhase(broadPhase BroadPhase) *World {
	return &World{
		bodies:     NewBodySet(),
		colliders:  NewColliderSet(),
		broadPhase: broadPhase,
		resolver:   NewContactResolver(),
	}
}

// Bodies gives read access to the body set. Mutate through the World so locking is honored.
func (w *World) Bodies() *BodySet {
	return w.bodies
}

func (w *World) Colliders() *ColliderSet {
	return w.colliders
}

func (w *World) Resolver() *ContactResolver {
	return w.resolver
}

func (w *World) BroadPhase() BroadPhase {
	return w.broadPhase
}

func (w *World) SetBroadPhase(broadPhase BroadPhase) error {
	if w.IsLocked() {
		return errors.Wrap(ErrWorldLocked, "set broad phase")
	}
	w.broadPhase = broadPhase
	return nil
}

// SetBroadPhaseMargin grows dynamic bounding boxes by the distance their body covers in a step.
func (w *World) SetBroadPhaseMargin(enabled bool) {
	w.sweepMargin = enabled
}

func (w *World) SetContactHandler(handler ContactHandler) {
	w.contactHandler = handler
}

// Stamp is the number of steps taken so far.
func (w *World) Stamp() uint {
	return w.stamp
}

// Contacts returns the contacts found by the last step. The slice is reused by the next step.
func (w *World) Contacts() []ContactPair {
	return w.contacts
}

func (w *World) AddBody(def BodyDef) (BodyHandle, error) {
	if w.IsLocked() {
		return BodyHandle{}, errors.Wrap(ErrWorldLocked, "add body")
	}
	return w.bodies.Insert(def)
}

// RemoveBody removes a body and all of its colliders.
func (w *World) RemoveBody(h BodyHandle) error {
	if w.IsLocked() {
		return errors.Wrap(ErrWorldLocked, "remove body")
	}
	return w.bodies.Remove(h, w.colliders)
}

func (w *World) AddCollider(body BodyHandle, shape Shape, props ColliderProps) (ColliderHandle, error) {
	if w.IsLocked() {
		return ColliderHandle{}, errors.Wrap(ErrWorldLocked, "add collider")
	}
	return w.colliders.Attach(w.bodies, body, shape, props)
}

func (w *World) RemoveCollider(h ColliderHandle) error {
	if w.IsLocked() {
		return errors.Wrap(ErrWorldLocked, "remove collider")
	}
	return w.colliders.Remove(w.bodies, h)
}

func (w *World) Body(h BodyHandle) (*Body, error) {
	return w.bodies.Get(h)
}

func (w *World) Collider(h ColliderHandle) (*Collider, error) {
	return w.colliders.Get(h)
}

func (w *World) Lock() {
	w.locked++
}

func (w *World) Unlock() {
	w.locked--
	if w.locked < 0 {
		log.Fatal("World lock underflow")
	}
}

func (w *World) IsLocked() bool {
	return w.locked > 0
}

// Step advances the simulation by dt seconds under gravity:
// gravity is applied to dynamic velocities, contacts are found and resolved,
// then dynamic bodies move by their velocities. Static bodies never change.
// A non-positive dt does nothing.
func (w *World) Step(dt float64, gravity Vector) {
	if dt <= 0 {
		return
	}
	assert(!w.IsLocked(), "Step called while the world is locked")

	w.stamp++
	w.Lock()
	defer w.Unlock()

	// Integrate velocities.
	w.bodies.Each(func(_ BodyHandle, body *Body) {
		if body.kind == BODY_DYNAMIC {
			body.v = body.v.Add(gravity.Mult(dt))
		}
	})

	w.collide(dt)

	if w.contactHandler != nil {
		for _, contact := range w.contacts {
			w.contactHandler(w, contact)
		}
	}

	w.resolver.Resolve(w.contacts, w.bodies, w.colliders, dt, gravity)

	// Integrate positions.
	w.bodies.Each(func(_ BodyHandle, body *Body) {
		if body.kind == BODY_DYNAMIC {
			body.p = body.p.Add(body.v.Mult(dt))
			body.a += body.w * dt
			body.setTransform()
		}
	})
}

// collide runs the broad and narrow phases, leaving the result in w.contacts.
func (w *World) collide(dt float64) {
	w.colliders.Each(func(_ ColliderHandle, c *Collider) {
		body, ok := w.bodies.arena.get(c.body.Handle)
		if !ok {
			log.Println("Internal Error: collider", c.handle, "outlived its body", c.body)
			return
		}
		var margin Vector
		if w.sweepMargin && body.kind == BODY_DYNAMIC {
			margin = body.v.Mult(dt)
		}
		c.update(body.transform, margin)
	})

	w.broadPhase.Update(w.bodies, w.colliders)
	w.pairs = w.broadPhase.CandidatePairs(w.pairs[:0])

	w.contacts = w.contacts[:0]
	for _, pair := range w.pairs {
		a, okA := w.colliders.arena.get(pair.A.Handle)
		b, okB := w.colliders.arena.get(pair.B.Handle)
		if !okA || !okB {
			continue
		}
		if contact, ok := Collide(a, b); ok {
			w.contacts = append(w.contacts, contact)
		}
	}
}
