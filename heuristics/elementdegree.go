package heuristics

import (
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

// ElementDegreeSolutionGenerator covers each uncovered element in
// increasing order of its row degree (how many subsets could cover it),
// greedily choosing the cheapest-per-free-element subset in that row.
type ElementDegreeSolutionGenerator struct{}

func (ElementDegreeSolutionGenerator) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.FreeAndUncovered
}

func (ElementDegreeSolutionGenerator) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	return runElementDegree(inv, focus, false)
}

// LazyElementDegreeSolutionGenerator is the same heuristic but never
// maintains num_free_elements; it computes each candidate's free count on
// demand and skips candidates a cheap upper-bound test already rules out.
type LazyElementDegreeSolutionGenerator struct{}

func (LazyElementDegreeSolutionGenerator) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.CostAndCoverage
}

func (LazyElementDegreeSolutionGenerator) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	return runElementDegree(inv, focus, true)
}

func runElementDegree(inv *invariant.SetCoverInvariant, focus Focus, lazy bool) error {
	m := inv.Model()
	elements := candidateElements(m, focus)
	sort.SliceStable(elements, func(i, j int) bool {
		return len(m.Row(elements[i])) < len(m.Row(elements[j]))
	})

	for _, e := range elements {
		if inv.Coverage(e) > 0 {
			continue
		}
		best, _, _, ok := bestSubsetFor(inv, m, e, focus, lazy)
		if !ok {
			continue // no subset in focus covers this element
		}
		level := invariant.FreeAndUncovered
		if lazy {
			level = invariant.CostAndCoverage
		}
		inv.Select(best, level)
	}
	return nil
}

func candidateElements(m *model.Model, focus Focus) []intidx.ElementIndex {
	seen := make(map[intidx.ElementIndex]bool)
	var out []intidx.ElementIndex
	for _, j := range focus.Subsets() {
		for _, e := range m.Column(j) {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// bestSubsetFor scans element e's row restricted to focus and returns the
// subset minimizing cost/free (cross-multiplied to avoid division), ties
// broken by the larger free count.
func bestSubsetFor(inv *invariant.SetCoverInvariant, m *model.Model, e intidx.ElementIndex, focus Focus, lazy bool) (best intidx.SubsetIndex, bestCost intidx.Cost, bestFree intidx.BaseInt, ok bool) {
	for _, jp := range m.Row(e) {
		if !focus.Contains(jp) {
			continue
		}
		cost := m.SubsetCost(jp)
		if lazy && ok {
			// Cheap filter using the static column size |S_jp| in place of
			// free(jp): skip the on-demand count when cost*|S_jp| exceeds
			// bestCost*bestFree. The filter is not exact: it can also skip
			// a subset whose actual cost/free ratio beats the current best.
			if float64(cost)*float64(len(m.Column(jp))) > float64(bestCost)*float64(bestFree) {
				continue
			}
		}
		var free intidx.BaseInt
		if lazy {
			free = inv.ComputeNumFreeElements(jp)
		} else {
			free = inv.NumFreeElements(jp)
		}
		if free <= 0 {
			continue
		}
		if !ok || float64(cost)*float64(bestFree) < float64(bestCost)*float64(free) ||
			(float64(cost)*float64(bestFree) == float64(bestCost)*float64(free) && free > bestFree) {
			best, bestCost, bestFree, ok = jp, cost, free, true
		}
	}
	return
}
