package bp

import (
	"fmt"
	"math"
)

func assert(truth bool, msg ...interface{}) {
	if !truth {
		panic(fmt.Sprint("Assertion failed: ", msg))
	}
}

// DebugInfo summarizes the world state after the last step.
func DebugInfo(w *World) string {
	var maxDepth float64
	for _, c := range w.contacts {
		maxDepth = math.Max(maxDepth, c.Depth)
	}

	var ke float64
	var dynamic int
	w.bodies.Each(func(_ BodyHandle, body *Body) {
		if body.kind == BODY_DYNAMIC {
			dynamic++
			ke += body.KineticEnergy()
		}
	})

	return fmt.Sprintf(`Step: %d
Bodies: %d (%d dynamic)
Colliders: %d
Pairs: %d
Contacts: %d
Max penetration: %5.3f
Kinetic energy: %5.2e`,
		w.stamp, w.bodies.Len(), dynamic, w.colliders.Len(), len(w.pairs), len(w.contacts), maxDepth, ke)
}
