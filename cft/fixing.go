package cft

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/katalvlaran/setcover/heuristics"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

const fixingReducedCostThreshold = -0.001

// selectFixingCandidates returns every column with reduced cost below
// fixingReducedCostThreshold that does not over-cover any row shared
// with an earlier (more negatively priced) candidate — the surviving
// set is an independent set of the "overlap" graph, examined in
// ascending-reduced-cost order so the cheapest-looking columns win ties
// over rows.
func selectFixingCandidates(core *model.Model, reducedCosts []float64) []intidx.SubsetIndex {
	var candidates []intidx.SubsetIndex
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(core.NumSubsets()); j++ {
		if reducedCosts[j] < fixingReducedCostThreshold {
			candidates = append(candidates, j)
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return reducedCosts[candidates[a]] < reducedCosts[candidates[b]] })

	rowTaken := make(map[intidx.ElementIndex]bool)
	var kept []intidx.SubsetIndex
	for _, j := range candidates {
		col := core.Column(j)
		overlaps := false
		for _, e := range col {
			if rowTaken[e] {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		for _, e := range col {
			rowTaken[e] = true
		}
		kept = append(kept, j)
	}
	return kept
}

// minimumFixIncrement is ceil(|E|/200), the minimum number of columns
// the diving phase must fix each pass.
func minimumFixIncrement(numElements intidx.BaseInt) int {
	return int(math.Ceil(float64(numElements) / 200))
}

// topUpFixing fills kept out to at least minIncrement columns by running
// a Greedy cover restricted to the columns not already kept over an
// invariant preloaded with kept already selected, folding in up to
// minIncrement of the newly selected columns (in the order Greedy picked
// them) from its trace.
func topUpFixing(core *model.Model, kept []intidx.SubsetIndex, minIncrement int) []intidx.SubsetIndex {
	if len(kept) >= minIncrement {
		return kept
	}
	already := make(map[intidx.SubsetIndex]bool, len(kept))
	for _, j := range kept {
		already[j] = true
	}
	var remaining []intidx.SubsetIndex
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(core.NumSubsets()); j++ {
		if !already[j] {
			remaining = append(remaining, j)
		}
	}
	if len(remaining) == 0 {
		return kept
	}

	inv := invariant.New(core)
	inv.Initialize()
	for _, j := range kept {
		inv.Select(j, invariant.FreeAndUncovered)
	}
	var gen heuristics.GreedySolutionGenerator
	_ = gen.NextSolution(inv, heuristics.NewFocus(remaining))

	need := minIncrement - len(kept)
	out := append([]intidx.SubsetIndex(nil), kept...)
	for _, d := range inv.Trace() {
		if need <= 0 {
			break
		}
		if !d.Selected() {
			continue
		}
		j := d.Subset()
		if already[j] {
			continue
		}
		out = append(out, j)
		already[j] = true
		need--
	}
	return out
}

// randomizeMultipliers multiplies each multiplier by a uniform sample in
// [0.9, 1.1], in place, to diversify the next dual-refinement phase.
func randomizeMultipliers(u []float64, r *rand.Rand) {
	for i := range u {
		factor := 0.9 + 0.2*r.Float64()
		u[i] *= factor
	}
}
