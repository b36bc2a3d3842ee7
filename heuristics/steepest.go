package heuristics

import (
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
)

// SteepestSearch removes selected, redundant subsets in decreasing order
// of cost — each removal is the single biggest immediate cost
// improvement available — until none remain redundant.
type SteepestSearch struct{}

func (SteepestSearch) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.FreeAndUncovered
}

func (SteepestSearch) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	m := inv.Model()
	h := newMaxHeap(2)
	for _, j := range focus.Subsets() {
		if inv.IsSelected(j) && inv.ComputeIsRedundant(j) {
			h.Push(j, float64(m.SubsetCost(j)))
		}
	}

	for h.Len() > 0 {
		j, _, _ := h.Pop()
		if !inv.ComputeIsRedundant(j) {
			// Stale: another removal since j was queued has already made
			// it non-redundant.
			continue
		}
		inv.Deselect(j, invariant.FreeAndUncovered)
		for _, e := range m.Column(j) {
			for _, jp := range m.Row(e) {
				if jp == j || !h.Contains(jp) {
					continue
				}
				if !inv.ComputeIsRedundant(jp) {
					h.Remove(jp)
				}
			}
		}
	}
	return nil
}

// LazySteepestSearch approximates SteepestSearch with a single
// cost-descending pass over the currently selected subsets, checking
// redundancy on demand instead of maintaining a live heap. Cheaper per
// step, slightly less thorough (a subset that becomes newly redundant
// partway through the pass is only caught if it sorts after the point
// already reached).
type LazySteepestSearch struct{}

func (LazySteepestSearch) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.CostAndCoverage
}

func (LazySteepestSearch) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	m := inv.Model()
	selected := make([]intidx.SubsetIndex, 0, focus.Len())
	for _, j := range focus.Subsets() {
		if inv.IsSelected(j) {
			selected = append(selected, j)
		}
	}
	sort.Slice(selected, func(i, k int) bool {
		return m.SubsetCost(selected[i]) > m.SubsetCost(selected[k])
	})
	for _, j := range selected {
		if inv.ComputeIsRedundant(j) {
			inv.Deselect(j, invariant.CostAndCoverage)
		}
	}
	return nil
}
