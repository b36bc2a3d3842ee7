package heuristics

import (
	"math/rand/v2"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
)

// ClearRandomSubsets deselects up to k selected subsets (within focus)
// chosen uniformly at random, together with every subset intersecting
// each one (via model.IntersectingSubsets), stopping as soon as at least
// k subsets total have been cleared. Returns every subset it deselected.
func ClearRandomSubsets(inv *invariant.SetCoverInvariant, focus Focus, k int, level invariant.ConsistencyLevel, r *rand.Rand) []intidx.SubsetIndex {
	m := inv.Model()
	r = orDefault(r)

	selected := make([]intidx.SubsetIndex, 0, focus.Len())
	for _, j := range focus.Subsets() {
		if inv.IsSelected(j) {
			selected = append(selected, j)
		}
	}
	r.Shuffle(len(selected), func(i, k int) { selected[i], selected[k] = selected[k], selected[i] })

	cleared := make(map[intidx.SubsetIndex]bool)
	var out []intidx.SubsetIndex
	for _, seed := range selected {
		if len(cleared) >= k {
			break
		}
		if cleared[seed] || !inv.IsSelected(seed) {
			continue
		}
		inv.Deselect(seed, level)
		cleared[seed] = true
		out = append(out, seed)
		for _, jp := range m.IntersectingSubsets(seed) {
			if cleared[jp] || !inv.IsSelected(jp) {
				continue
			}
			inv.Deselect(jp, level)
			cleared[jp] = true
			out = append(out, jp)
		}
	}
	return out
}

// ClearMostCoveredElements deselects up to k selected subsets (within
// focus) that each contain at least one over-covered element
// (coverage > 1), chosen uniformly at random among the candidates.
// Returns every subset it deselected.
func ClearMostCoveredElements(inv *invariant.SetCoverInvariant, focus Focus, k int, level invariant.ConsistencyLevel, r *rand.Rand) []intidx.SubsetIndex {
	m := inv.Model()
	r = orDefault(r)

	var candidates []intidx.SubsetIndex
	for _, j := range focus.Subsets() {
		if !inv.IsSelected(j) {
			continue
		}
		for _, e := range m.Column(j) {
			if inv.Coverage(e) > 1 {
				candidates = append(candidates, j)
				break
			}
		}
	}
	r.Shuffle(len(candidates), func(i, k int) { candidates[i], candidates[k] = candidates[k], candidates[i] })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	for _, j := range candidates {
		inv.Deselect(j, level)
	}
	return candidates
}
