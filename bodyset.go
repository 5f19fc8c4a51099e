package bp

import (
	"iter"
	"log"

	"github.com/pkg/errors"
)

// BodySet owns every RigidBody of a world and hands out stable handles.
type BodySet struct {
	arena arena[Body]
}

func NewBodySet() *BodySet {
	return &BodySet{}
}

// Insert validates def and stores a new body built from it.
func (set *BodySet) Insert(def BodyDef) (BodyHandle, error) {
	if err := def.validate(); err != nil {
		return BodyHandle{}, err
	}
	body := newBody(def)
	body.handle = BodyHandle{set.arena.insert(body)}
	body.accumulateMass(nil)
	return body.handle, nil
}

// Remove deletes the body and every collider attached to it.
func (set *BodySet) Remove(h BodyHandle, colliders *ColliderSet) error {
	body, ok := set.arena.remove(h.Handle)
	if !ok {
		return errors.Wrapf(ErrInvalidHandle, "body %v", h)
	}
	if colliders == nil {
		if len(body.colliders) > 0 {
			log.Println("Internal Error: removing body", h, "without its collider set orphans", len(body.colliders), "colliders")
		}
		return nil
	}
	for _, ch := range body.colliders {
		if _, ok := colliders.arena.remove(ch.Handle); !ok {
			log.Println("Internal Error: body", h, "listed missing collider", ch)
		}
	}
	body.colliders = nil
	return nil
}

func (set *BodySet) Get(h BodyHandle) (*Body, error) {
	body, ok := set.arena.get(h.Handle)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidHandle, "body %v", h)
	}
	return body, nil
}

func (set *BodySet) Contains(h BodyHandle) bool {
	_, ok := set.arena.get(h.Handle)
	return ok
}

func (set *BodySet) Len() int {
	return set.arena.len()
}

// Each calls f for every live body in slot order.
func (set *BodySet) Each(f func(BodyHandle, *Body)) {
	set.arena.each(func(h Handle, body *Body) {
		f(BodyHandle{h}, body)
	})
}

// All is the iterator form of Each.
func (set *BodySet) All() iter.Seq2[BodyHandle, *Body] {
	return func(yield func(BodyHandle, *Body) bool) {
		for i := range set.arena.slots {
			s := set.arena.slots[i]
			if s.value == nil {
				continue
			}
			if !yield(BodyHandle{Handle{index: uint32(i), generation: s.generation}}, s.value) {
				return
			}
		}
	}
}
