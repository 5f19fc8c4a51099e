package bp

import "slices"

// ColliderPair is an unordered pair of colliders, stored with A ordered before B.
type ColliderPair struct {
	A, B ColliderHandle
}

func makePair(a, b ColliderHandle) ColliderPair {
	if b.Less(a.Handle) {
		a, b = b, a
	}
	return ColliderPair{a, b}
}

func comparePairs(p, q ColliderPair) int {
	switch {
	case p.A.Less(q.A.Handle):
		return -1
	case q.A.Less(p.A.Handle):
		return 1
	case p.B.Less(q.B.Handle):
		return -1
	case q.B.Less(p.B.Handle):
		return 1
	}
	return 0
}

// BroadPhase prunes collider pairs that cannot touch.
//
// Pairs returned by CandidatePairs are unique and sorted. They never pair a collider with
// itself, two colliders of the same body, or two colliders on static bodies, and the
// bounding boxes of both colliders always intersect.
type BroadPhase interface {
	// Update rebuilds the index from the colliders' cached bounding boxes.
	Update(bodies *BodySet, colliders *ColliderSet)
	// CandidatePairs appends the candidate pairs to dst and returns the result.
	CandidatePairs(dst []ColliderPair) []ColliderPair
}

type proxy struct {
	handle ColliderHandle
	body   BodyHandle
	static bool
	bb     BB
}

func collectProxies(bodies *BodySet, colliders *ColliderSet, dst []proxy) []proxy {
	dst = dst[:0]
	colliders.Each(func(h ColliderHandle, c *Collider) {
		body, ok := bodies.arena.get(c.body.Handle)
		if !ok {
			return
		}
		dst = append(dst, proxy{handle: h, body: c.body, static: body.IsStatic(), bb: c.bb})
	})
	return dst
}

// QueryReject reports whether a pair of proxies can be skipped without a narrow-phase test.
func queryReject(a, b *proxy) bool {
	return (a.static && b.static) || a.body == b.body || !a.bb.Intersects(b.bb)
}

func sortPairs(pairs []ColliderPair) {
	slices.SortFunc(pairs, comparePairs)
}
