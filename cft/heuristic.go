package cft

import (
	"math"
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

// HeuristicCBs is the primal-refinement phase: a multiplier-weighted
// greedy that scores candidate columns by how many currently-uncovered
// elements they would cover, then a redundancy-removal cleanup pass.
//
// This port keeps the score-based greedy's actual selection semantics
// (§4.5 phase 2) but scans every remaining candidate each iteration
// instead of maintaining the upstream's partitioned bad/good score
// array with a partial nth_element-style refill — that structure is a
// performance optimization over an algorithm that is otherwise
// identical, not a distinct operation, and is recorded as a deliberate
// simplification in DESIGN.md.
type HeuristicCBs struct{}

// columnScore implements the score definition from §4.5 phase 2: +Inf if
// the column covers nothing new, gamma/k if the adjusted reduced cost is
// positive, gamma*k otherwise (negative or zero reduced cost actively
// rewards covering more elements).
func columnScore(gamma float64, k int) float64 {
	if k == 0 {
		return math.Inf(1)
	}
	if gamma > 0 {
		return gamma / float64(k)
	}
	return gamma * float64(k)
}

// Run greedily builds a feasible selection over core restricted to
// focus, scoring each candidate by columnScore against u, then removes
// every redundant selected column it can (§4.5 phase 2's "redundancy
// removal" step, delegated to invariant's own redundancy bookkeeping
// rather than re-deriving it).
func (HeuristicCBs) Run(core *model.Model, u []float64, focus []intidx.SubsetIndex) Solution {
	active := make(map[intidx.SubsetIndex]bool, len(focus))
	uncoveredCount := make(map[intidx.SubsetIndex]int, len(focus))
	gamma := make(map[intidx.SubsetIndex]float64, len(focus))
	for _, j := range focus {
		active[j] = true
		col := core.Column(j)
		uncoveredCount[j] = len(col)
		sum := 0.0
		for _, e := range col {
			sum += u[e]
		}
		gamma[j] = float64(core.SubsetCost(j)) - sum
	}

	covered := make([]bool, core.NumElements())
	selected := make([]bool, core.NumSubsets())
	var cost intidx.Cost

	for len(active) > 0 {
		bestJ, bestScore, found := pickMinScore(active, uncoveredCount, gamma)
		if !found || math.IsInf(bestScore, 1) {
			break
		}
		selected[bestJ] = true
		cost += core.SubsetCost(bestJ)
		delete(active, bestJ)

		for _, e := range core.Column(bestJ) {
			if covered[e] {
				continue
			}
			covered[e] = true
			for _, jp := range core.Row(e) {
				if !active[jp] {
					continue
				}
				uncoveredCount[jp]--
				gamma[jp] += u[e]
			}
		}
	}

	selected, cost = removeRedundant(core, selected)
	return Solution{Selected: selected, Cost: cost}
}

func pickMinScore(active map[intidx.SubsetIndex]bool, uncoveredCount map[intidx.SubsetIndex]int, gamma map[intidx.SubsetIndex]float64) (intidx.SubsetIndex, float64, bool) {
	var bestJ intidx.SubsetIndex
	bestScore := math.Inf(1)
	found := false
	// Deterministic tie-break: iterate candidates in ascending subset
	// index order rather than Go's randomized map order.
	ordered := make([]intidx.SubsetIndex, 0, len(active))
	for j := range active {
		ordered = append(ordered, j)
	}
	sort.Slice(ordered, func(a, b int) bool { return ordered[a] < ordered[b] })
	for _, j := range ordered {
		score := columnScore(gamma[j], uncoveredCount[j])
		if !found || score < bestScore {
			bestScore = score
			bestJ = j
			found = true
		}
	}
	return bestJ, bestScore, found
}

// removeRedundant drops every selected column it can from solution
// without uncovering anything, per §4.5 phase 2's redundancy-removal
// step: classify removable (redundant) columns, sort ascending cost, and
// if the solution already covers everything drop them all; otherwise
// drop each in turn only while it remains redundant given what has
// already been dropped.
func removeRedundant(core *model.Model, solution []bool) ([]bool, intidx.Cost) {
	inv := invariant.New(core)
	inv.Initialize()
	for j, sel := range solution {
		if sel {
			inv.Select(intidx.SubsetIndex(j), invariant.Redundancy)
		}
	}

	type removable struct {
		j    intidx.SubsetIndex
		cost intidx.Cost
	}
	var removables []removable
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(core.NumSubsets()); j++ {
		if inv.IsSelected(j) && inv.IsRedundant(j) {
			removables = append(removables, removable{j, core.SubsetCost(j)})
		}
	}
	sort.Slice(removables, func(a, b int) bool { return removables[a].cost < removables[b].cost })

	feasible := inv.NumUncoveredElements() == 0
	for _, r := range removables {
		if feasible || inv.ComputeIsRedundant(r.j) {
			inv.Deselect(r.j, invariant.Redundancy)
		}
	}

	out := make([]bool, core.NumSubsets())
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(core.NumSubsets()); j++ {
		out[j] = inv.IsSelected(j)
	}
	return out, inv.Cost()
}
