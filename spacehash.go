package bp

import "math"

// Proxies covering more cells than this skip the grid and are tested against everything.
const maxCellsPerProxy = 256

// Cell coordinates beyond this do not convert to int64 exactly.
const maxCellCoord = 1 << 53

// SpaceHash is a uniform grid broad phase. Grid cells are hashed into a fixed
// number of bins, so distant cells may share a bin; the bounding box test
// filters those out.
type SpaceHash struct {
	celldim  float64
	numCells int

	table     [][]int32
	proxies   []proxy
	oversized []int32

	pairs *pairSet
}

// NewSpaceHash makes a grid with square cells of size celldim. cells is the
// initial number of hash bins and grows with the number of colliders.
func NewSpaceHash(celldim float64, cells int) *SpaceHash {
	assert(celldim > 0, "SpaceHash cell size must be positive")
	hash := &SpaceHash{
		celldim: celldim,
		pairs:   newPairSet(),
	}
	hash.resize(nextPrime(cells))
	return hash
}

func (hash *SpaceHash) CellSize() float64 {
	return hash.celldim
}

func (hash *SpaceHash) resize(numCells int) {
	hash.numCells = numCells
	hash.table = make([][]int32, numCells)
}

func (hash *SpaceHash) clearTable() {
	for i := range hash.table {
		hash.table[i] = hash.table[i][:0]
	}
	hash.oversized = hash.oversized[:0]
}

func hashFunc(x, y int64, n int) int {
	return int((uint64(x)*1640531513 ^ uint64(y)*2654435789) % uint64(n))
}

// cellRange returns the cells covered by bb, or ok=false when bb spans more than
// maxCellsPerProxy cells or lies outside the addressable grid.
func (hash *SpaceHash) cellRange(bb BB) (l, b, r, t int64, ok bool) {
	dim := hash.celldim
	fl, fr := math.Floor(bb.L/dim), math.Floor(bb.R/dim)
	fb, ft := math.Floor(bb.B/dim), math.Floor(bb.T/dim)
	// counted in float64 so huge boxes cannot overflow the product
	if (fr-fl+1)*(ft-fb+1) > maxCellsPerProxy {
		return 0, 0, 0, 0, false
	}
	if math.Abs(fl) > maxCellCoord || math.Abs(fr) > maxCellCoord || math.Abs(fb) > maxCellCoord || math.Abs(ft) > maxCellCoord {
		return 0, 0, 0, 0, false
	}
	return int64(fl), int64(fb), int64(fr), int64(ft), true
}

func (hash *SpaceHash) Update(bodies *BodySet, colliders *ColliderSet) {
	hash.proxies = collectProxies(bodies, colliders, hash.proxies)
	if len(hash.proxies) > hash.numCells {
		hash.resize(nextPrime(2 * len(hash.proxies)))
	} else {
		hash.clearTable()
	}

	for i := range hash.proxies {
		hash.hashProxy(int32(i))
	}
}

func (hash *SpaceHash) hashProxy(idx int32) {
	l, b, r, t, ok := hash.cellRange(hash.proxies[idx].bb)
	if !ok {
		hash.oversized = append(hash.oversized, idx)
		return
	}

	n := hash.numCells
	for i := l; i <= r; i++ {
		for j := b; j <= t; j++ {
			cell := hashFunc(i, j, n)
			bin := hash.table[cell]
			// a proxy spanning several cells can land in the same bin twice
			if len(bin) > 0 && bin[len(bin)-1] == idx {
				continue
			}
			hash.table[cell] = append(bin, idx)
		}
	}
}

func (hash *SpaceHash) CandidatePairs(dst []ColliderPair) []ColliderPair {
	hash.pairs.Clear()
	start := len(dst)

	emit := func(i, j int32) {
		a, b := &hash.proxies[i], &hash.proxies[j]
		if queryReject(a, b) {
			return
		}
		pair := makePair(a.handle, b.handle)
		if hash.pairs.Insert(pair) {
			dst = append(dst, pair)
		}
	}

	for _, bin := range hash.table {
		for x := 0; x < len(bin); x++ {
			for y := x + 1; y < len(bin); y++ {
				emit(bin[x], bin[y])
			}
		}
	}

	// two oversized proxies are visited from both sides; the pair set keeps one
	for _, i := range hash.oversized {
		for j := range hash.proxies {
			if int32(j) != i {
				emit(i, int32(j))
			}
		}
	}

	sortPairs(dst[start:])
	return dst
}

var primes = []int{
	5, 13, 23, 47, 97, 193, 389, 769, 1543, 3079, 6151, 12289, 24593, 49157,
	98317, 196613, 393241, 786433, 1572869, 3145739, 6291469, 12582917,
	25165843, 50331653, 100663319, 201326611, 402653189, 805306457, 1610612741,
}

func nextPrime(n int) int {
	for _, p := range primes {
		if p >= n {
			return p
		}
	}
	return primes[len(primes)-1]
}
