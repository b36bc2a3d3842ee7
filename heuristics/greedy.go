package heuristics

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

const greedyHeapArity = 16

// GreedySolutionGenerator is Chvátal's greedy set-cover heuristic:
// repeatedly select the subset maximizing free-elements-per-cost, giving
// a 1+ln|E| approximation ratio.
type GreedySolutionGenerator struct{}

func (GreedySolutionGenerator) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.FreeAndUncovered
}

// greedyPriority returns free/cost, nudged by a vanishingly small
// free-proportional term so that equal ratios break ties toward the
// larger (more impactful) subset instead of arbitrary heap insertion
// order.
func greedyPriority(free intidx.BaseInt, cost intidx.Cost) float64 {
	if free <= 0 {
		return math.Inf(-1)
	}
	if cost <= 0 {
		return math.Inf(1)
	}
	return float64(free)/float64(cost) + float64(free)*1e-9
}

func (GreedySolutionGenerator) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	m := inv.Model()
	h := newMaxHeap(greedyHeapArity)
	for _, j := range focus.Subsets() {
		if p := greedyPriority(inv.NumFreeElements(j), m.SubsetCost(j)); !math.IsInf(p, -1) {
			h.Push(j, p)
		}
	}

	seen := bitset.New(uint(m.NumSubsets()))
	for inv.NumUncoveredElements() > 0 && h.Len() > 0 {
		j, priority, _ := h.Pop()
		if math.IsInf(priority, -1) {
			break // every remaining candidate is useless
		}
		newlyCovered := freeElementsOf(inv, m, j)
		inv.Select(j, invariant.FreeAndUncovered)

		seen.ClearAll()
		for _, e := range newlyCovered {
			for _, jp := range m.Row(e) {
				if jp == j || seen.Test(uint(jp)) {
					continue
				}
				seen.Set(uint(jp))
				if !h.Contains(jp) {
					continue
				}
				free := inv.NumFreeElements(jp)
				if free <= 0 {
					h.Remove(jp)
				} else {
					h.UpdatePriority(jp, greedyPriority(free, m.SubsetCost(jp)))
				}
			}
		}
	}
	return nil
}

// freeElementsOf returns the elements of column j that are currently
// uncovered, computed before selecting j.
func freeElementsOf(inv *invariant.SetCoverInvariant, m *model.Model, j intidx.SubsetIndex) []intidx.ElementIndex {
	col := m.Column(j)
	out := make([]intidx.ElementIndex, 0, len(col))
	for _, e := range col {
		if inv.Coverage(e) == 0 {
			out = append(out, e)
		}
	}
	return out
}
