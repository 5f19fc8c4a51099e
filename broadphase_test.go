package bp

import (
	"math/rand"
	"slices"
	"testing"
)

func randomScene(t testing.TB, seed int64, n int) (*BodySet, *ColliderSet) {
	rng := rand.New(rand.NewSource(seed))
	bodies := NewBodySet()
	colliders := NewColliderSet()

	attach := func(body BodyHandle, shape Shape) {
		if _, err := colliders.Attach(bodies, body, shape, ColliderProps{Density: 1}); err != nil {
			t.Fatal(err)
		}
	}

	// a floor big enough to skip the grid, plus a few overlapping static boxes
	floor, _ := bodies.Insert(BodyDef{Type: BODY_STATIC, Position: Vector{100, -5}})
	attach(floor, NewBox(400, 400))
	for i := 0; i < 5; i++ {
		wall, _ := bodies.Insert(BodyDef{Type: BODY_STATIC, Position: Vector{rng.Float64() * 200, rng.Float64() * 200}})
		attach(wall, NewBox(5+rng.Float64()*30, 5+rng.Float64()*30))
	}

	for i := 0; i < n; i++ {
		p := Vector{rng.Float64()*220 - 10, rng.Float64()*220 - 10}
		body, _ := bodies.Insert(BodyDef{Position: p})
		if rng.Intn(4) == 0 {
			attach(body, NewBox(1+rng.Float64()*10, 1+rng.Float64()*10))
		} else {
			attach(body, NewCircle(0.5+rng.Float64()*5, Vector{}))
		}
		// some bodies carry a second collider that overlaps the first
		if rng.Intn(8) == 0 {
			attach(body, NewCircle(1, Vector{1, 0}))
		}
	}
	return bodies, colliders
}

func bruteForcePairs(bodies *BodySet, colliders *ColliderSet) []ColliderPair {
	proxies := collectProxies(bodies, colliders, nil)
	var pairs []ColliderPair
	for i := range proxies {
		for j := i + 1; j < len(proxies); j++ {
			if !queryReject(&proxies[i], &proxies[j]) {
				pairs = append(pairs, makePair(proxies[i].handle, proxies[j].handle))
			}
		}
	}
	sortPairs(pairs)
	return pairs
}

func TestBroadPhase_MatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		bodies, colliders := randomScene(t, seed, 300)
		want := bruteForcePairs(bodies, colliders)
		if len(want) == 0 {
			t.Fatal("Scene has no overlaps")
		}

		for name, phase := range map[string]BroadPhase{
			"spacehash":      NewSpaceHash(8, 10),
			"spacehash-fine": NewSpaceHash(1, 1000),
			"sweep":          NewSweepAndPrune(),
			"bbtree":         NewBBTree(),
		} {
			phase.Update(bodies, colliders)
			got := phase.CandidatePairs(nil)
			if !slices.Equal(got, want) {
				t.Errorf("seed %d %s: got %d pairs, want %d", seed, name, len(got), len(want))
			}
		}
	}
}

func TestBroadPhase_Contract(t *testing.T) {
	bodies, colliders := randomScene(t, 42, 500)
	hash := NewSpaceHash(16, 100)
	hash.Update(bodies, colliders)

	prefix := []ColliderPair{{}}
	pairs := hash.CandidatePairs(prefix)
	if pairs[0] != (ColliderPair{}) {
		t.Fatal("CandidatePairs overwrote dst")
	}
	pairs = pairs[1:]

	for i, pair := range pairs {
		if i > 0 && comparePairs(pairs[i-1], pair) >= 0 {
			t.Fatalf("Pairs not sorted and unique at %d: %v %v", i, pairs[i-1], pair)
		}
		if pair.A == pair.B {
			t.Fatalf("Self pair %v", pair)
		}
		a, _ := colliders.Get(pair.A)
		b, _ := colliders.Get(pair.B)
		if a.Body() == b.Body() {
			t.Fatalf("Same body pair %v", pair)
		}
		ba, _ := bodies.Get(a.Body())
		bb, _ := bodies.Get(b.Body())
		if ba.IsStatic() && bb.IsStatic() {
			t.Fatalf("Static pair %v", pair)
		}
		if !a.BB().Intersects(b.BB()) {
			t.Fatalf("Pair %v does not overlap", pair)
		}
	}
}

func TestSpaceHash_Grows(t *testing.T) {
	bodies, colliders := randomScene(t, 7, 200)
	hash := NewSpaceHash(8, 1)
	hash.Update(bodies, colliders)
	if hash.numCells < colliders.Len() {
		t.Errorf("Expected the table to grow past %d proxies, got %d cells", colliders.Len(), hash.numCells)
	}
}

func TestSpaceHash_HugeBoxes(t *testing.T) {
	bodies := NewBodySet()
	colliders := NewColliderSet()
	attach := func(def BodyDef, shape Shape) ColliderHandle {
		body, err := bodies.Insert(def)
		if err != nil {
			t.Fatal(err)
		}
		h, err := colliders.Attach(bodies, body, shape, ColliderProps{})
		if err != nil {
			t.Fatal(err)
		}
		return h
	}

	// the cell count of these boxes does not fit in an int64
	wide := attach(BodyDef{Type: BODY_STATIC}, NewBox(1e11, 1e11))
	far := attach(BodyDef{Type: BODY_STATIC, Position: Vector{1e300, 0}}, NewBox(1e290, 1))
	ball := attach(BodyDef{Position: Vector{5, 5}}, NewCircle(1, Vector{}))
	distant := attach(BodyDef{Position: Vector{1e300, 0}}, NewCircle(1, Vector{}))

	hash := NewSpaceHash(32, 10)
	hash.Update(bodies, colliders)
	got := hash.CandidatePairs(nil)
	if !slices.Equal(got, bruteForcePairs(bodies, colliders)) {
		t.Errorf("Unexpected pairs %v", got)
	}
	want := []ColliderPair{makePair(wide, ball), makePair(far, distant)}
	sortPairs(want)
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	// only the ball near the origin fits in the grid
	if len(hash.oversized) != 3 {
		t.Errorf("Expected 3 proxies to skip the grid, got %d", len(hash.oversized))
	}
}

func TestBBTree_Rebuild(t *testing.T) {
	bodies, colliders := randomScene(t, 9, 200)
	tree := NewBBTree()
	tree.Update(bodies, colliders)
	first := tree.CandidatePairs(nil)
	depth := tree.Depth()
	if depth < 2 || depth > colliders.Len() {
		t.Errorf("Unexpected depth %d for %d leaves", depth, colliders.Len())
	}

	// rebuilding from the same poses reuses pooled nodes and finds the same pairs
	tree.Update(bodies, colliders)
	if !slices.Equal(first, tree.CandidatePairs(nil)) {
		t.Error("Rebuild changed the candidate pairs")
	}

	empty := NewBBTree()
	empty.Update(NewBodySet(), NewColliderSet())
	if len(empty.CandidatePairs(nil)) != 0 || empty.Depth() != 0 {
		t.Error("An empty tree should have no pairs")
	}
}

func BenchmarkSpaceHash(b *testing.B) {
	bodies, colliders := randomScene(b, 1, 3400)
	hash := NewSpaceHash(DefaultCellSize, 1000)
	var pairs []ColliderPair
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hash.Update(bodies, colliders)
		pairs = hash.CandidatePairs(pairs[:0])
	}
}

func BenchmarkSweepAndPrune(b *testing.B) {
	bodies, colliders := randomScene(b, 1, 3400)
	sap := NewSweepAndPrune()
	var pairs []ColliderPair
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sap.Update(bodies, colliders)
		pairs = sap.CandidatePairs(pairs[:0])
	}
}

func BenchmarkBBTree(b *testing.B) {
	bodies, colliders := randomScene(b, 1, 3400)
	tree := NewBBTree()
	var pairs []ColliderPair
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.Update(bodies, colliders)
		pairs = tree.CandidatePairs(pairs[:0])
	}
}
