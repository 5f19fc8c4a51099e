package bp

import "fmt"

// Handle is a stable reference to an object stored in a BodySet or ColliderSet.
// The zero Handle is never valid. A removed object's slot is only reused after
// its generation has been bumped, so stale handles never resolve to new objects.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) Index() uint32 {
	return h.index
}

func (h Handle) Generation() uint32 {
	return h.generation
}

func (h Handle) IsZero() bool {
	return h.generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

// Less orders handles by slot index, then generation.
func (h Handle) Less(other Handle) bool {
	if h.index != other.index {
		return h.index < other.index
	}
	return h.generation < other.generation
}

type BodyHandle struct{ Handle }

type ColliderHandle struct{ Handle }

type slot[T any] struct {
	generation uint32
	value      *T
}

// arena is a generational slot map. Iteration is in slot order.
type arena[T any] struct {
	slots []slot[T]
	free  []uint32
	count int
}

func (a *arena[T]) insert(value *T) Handle {
	a.count++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		return Handle{index: idx, generation: s.generation}
	}
	a.slots = append(a.slots, slot[T]{generation: 1, value: value})
	return Handle{index: uint32(len(a.slots) - 1), generation: 1}
}

func (a *arena[T]) get(h Handle) (*T, bool) {
	if h.generation == 0 || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.index]
	if s.generation != h.generation || s.value == nil {
		return nil, false
	}
	return s.value, true
}

func (a *arena[T]) remove(h Handle) (*T, bool) {
	value, ok := a.get(h)
	if !ok {
		return nil, false
	}
	s := &a.slots[h.index]
	s.value = nil
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	a.free = append(a.free, h.index)
	a.count--
	return value, true
}

func (a *arena[T]) each(f func(Handle, *T)) {
	for i := range a.slots {
		s := a.slots[i]
		if s.value != nil {
			f(Handle{index: uint32(i), generation: s.generation}, s.value)
		}
	}
}

func (a *arena[T]) len() int {
	return a.count
}
