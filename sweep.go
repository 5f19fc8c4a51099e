package bp

import (
	"cmp"
	"slices"
)

// SweepAndPrune sorts proxies along the x axis and only tests proxies whose
// x intervals overlap.
type SweepAndPrune struct {
	proxies []proxy
}

func NewSweepAndPrune() *SweepAndPrune {
	return &SweepAndPrune{}
}

func (sap *SweepAndPrune) Update(bodies *BodySet, colliders *ColliderSet) {
	sap.proxies = collectProxies(bodies, colliders, sap.proxies)
	slices.SortStableFunc(sap.proxies, func(a, b proxy) int {
		return cmp.Compare(a.bb.L, b.bb.L)
	})
}

func (sap *SweepAndPrune) CandidatePairs(dst []ColliderPair) []ColliderPair {
	start := len(dst)
	proxies := sap.proxies
	for i := range proxies {
		a := &proxies[i]
		for j := i + 1; j < len(proxies) && proxies[j].bb.L <= a.bb.R; j++ {
			b := &proxies[j]
			if queryReject(a, b) {
				continue
			}
			dst = append(dst, makePair(a.handle, b.handle))
		}
	}
	sortPairs(dst[start:])
	return dst
}
