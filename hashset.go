package bp

// pairSet deduplicates collider pairs found in more than one grid cell.
type pairSet struct {
	table map[uint64]struct{}
}

func newPairSet() *pairSet {
	return &pairSet{table: map[uint64]struct{}{}}
}

func pairKey(p ColliderPair) uint64 {
	return uint64(p.A.index)<<32 | uint64(p.B.index)
}

// Insert adds p and reports whether it was not already present.
func (set *pairSet) Insert(p ColliderPair) bool {
	key := pairKey(p)
	if _, ok := set.table[key]; ok {
		return false
	}
	set.table[key] = struct{}{}
	return true
}

func (set *pairSet) Contains(p ColliderPair) bool {
	_, ok := set.table[pairKey(p)]
	return ok
}

func (set *pairSet) Count() int {
	return len(set.table)
}

func (set *pairSet) Clear() {
	clear(set.table)
}
