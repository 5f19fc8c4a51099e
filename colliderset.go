package bp

import (
	"iter"

	"github.com/pkg/errors"
)

// ColliderSet owns every Collider of a world.
type ColliderSet struct {
	arena arena[Collider]
}

func NewColliderSet() *ColliderSet {
	return &ColliderSet{}
}

// Attach copies shape into a new collider owned by body and refreshes the body's mass.
func (set *ColliderSet) Attach(bodies *BodySet, body BodyHandle, shape Shape, props ColliderProps) (ColliderHandle, error) {
	owner, err := bodies.Get(body)
	if err != nil {
		return ColliderHandle{}, err
	}
	shape, err = cloneShape(shape)
	if err != nil {
		return ColliderHandle{}, err
	}
	if err := shape.Validate(); err != nil {
		return ColliderHandle{}, err
	}
	if err := props.validate(); err != nil {
		return ColliderHandle{}, err
	}

	collider := &Collider{
		body:        body,
		shape:       shape,
		restitution: props.Restitution,
		density:     props.Density,
	}
	collider.handle = ColliderHandle{set.arena.insert(collider)}
	collider.update(owner.transform, Vector{})

	owner.colliders = append(owner.colliders, collider.handle)
	owner.accumulateMass(set)
	return collider.handle, nil
}

// Remove detaches and deletes a single collider.
func (set *ColliderSet) Remove(bodies *BodySet, h ColliderHandle) error {
	collider, ok := set.arena.remove(h.Handle)
	if !ok {
		return errors.Wrapf(ErrInvalidHandle, "collider %v", h)
	}
	owner, err := bodies.Get(collider.body)
	if err != nil {
		// the owner went first, nothing left to detach from
		return nil
	}
	for i, ch := range owner.colliders {
		if ch == h {
			owner.colliders = append(owner.colliders[:i], owner.colliders[i+1:]...)
			break
		}
	}
	owner.accumulateMass(set)
	return nil
}

func (set *ColliderSet) Get(h ColliderHandle) (*Collider, error) {
	collider, ok := set.arena.get(h.Handle)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidHandle, "collider %v", h)
	}
	return collider, nil
}

func (set *ColliderSet) Contains(h ColliderHandle) bool {
	_, ok := set.arena.get(h.Handle)
	return ok
}

func (set *ColliderSet) Len() int {
	return set.arena.len()
}

// OfBody returns the colliders attached to body, or nil if the handle is stale.
func (set *ColliderSet) OfBody(bodies *BodySet, body BodyHandle) []ColliderHandle {
	owner, err := bodies.Get(body)
	if err != nil {
		return nil
	}
	return owner.Colliders()
}

func (set *ColliderSet) Each(f func(ColliderHandle, *Collider)) {
	set.arena.each(func(h Handle, c *Collider) {
		f(ColliderHandle{h}, c)
	})
}

func (set *ColliderSet) All() iter.Seq2[ColliderHandle, *Collider] {
	return func(yield func(ColliderHandle, *Collider) bool) {
		for i := range set.arena.slots {
			s := set.arena.slots[i]
			if s.value == nil {
				continue
			}
			if !yield(ColliderHandle{Handle{index: uint32(i), generation: s.generation}}, s.value) {
				return
			}
		}
	}
}
