package heuristics

import (
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

const (
	defaultGLSAlpha         = 0.5
	defaultGLSMaxIterations = 2000
)

// GuidedLocalSearch alternates flipping the subset most worth flipping
// (cheapest to add, or most expensive redundant subset to remove) with
// penalizing the currently-selected subset with the highest
// cost-per-(1+penalty) utility, so the search is gradually steered away
// from keeping expensive subsets around.
type GuidedLocalSearch struct {
	Alpha         float64 // penalizationFactor = Alpha * currentCost / numSubsets, fixed at Init
	MaxIterations int
}

func (GuidedLocalSearch) RequiredLevel() invariant.ConsistencyLevel { return invariant.Redundancy }

func (g GuidedLocalSearch) alpha() float64 {
	if g.Alpha > 0 {
		return g.Alpha
	}
	return defaultGLSAlpha
}

func (g GuidedLocalSearch) maxIterations() int {
	if g.MaxIterations > 0 {
		return g.MaxIterations
	}
	return defaultGLSMaxIterations
}

type glsRunner struct {
	inv                *invariant.SetCoverInvariant
	m                  *model.Model
	focus              Focus
	penalty            []int
	penalizationFactor float64
	priorityHeap       *adjustableHeap // min-heap: negative = appealing removal, positive = cost to add
	utilityHeap        *adjustableHeap // max-heap over selected subsets: cost/(1+penalty)
}

func (r *glsRunner) utilityValue(j intidx.SubsetIndex) float64 {
	return float64(r.m.SubsetCost(j)) / (1 + float64(r.penalty[j]))
}

func (r *glsRunner) priorityValue(j intidx.SubsetIndex) float64 {
	v := r.penalizationFactor*float64(r.penalty[j]) + float64(r.m.SubsetCost(j))
	if r.inv.IsSelected(j) {
		return -v
	}
	return v
}

// syncMembership brings j's presence (and value) in both heaps in line
// with its current selected/redundant state.
func (r *glsRunner) syncMembership(j intidx.SubsetIndex) {
	if !r.focus.Contains(j) {
		return
	}
	if r.inv.IsSelected(j) {
		if r.utilityHeap.Contains(j) {
			r.utilityHeap.UpdatePriority(j, r.utilityValue(j))
		} else {
			r.utilityHeap.Push(j, r.utilityValue(j))
		}
		if r.inv.IsRedundant(j) {
			v := r.priorityValue(j)
			if r.priorityHeap.Contains(j) {
				r.priorityHeap.UpdatePriority(j, v)
			} else {
				r.priorityHeap.Push(j, v)
			}
		} else if r.priorityHeap.Contains(j) {
			r.priorityHeap.Remove(j)
		}
		return
	}
	if r.utilityHeap.Contains(j) {
		r.utilityHeap.Remove(j)
	}
	v := r.priorityValue(j)
	if r.priorityHeap.Contains(j) {
		r.priorityHeap.UpdatePriority(j, v)
	} else {
		r.priorityHeap.Push(j, v)
	}
}

func (g GuidedLocalSearch) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	m := inv.Model()
	n := m.NumSubsets()
	penalizationFactor := 0.0
	if n > 0 {
		penalizationFactor = g.alpha() * float64(inv.Cost()) / float64(n)
	}
	r := &glsRunner{
		inv:                inv,
		m:                  m,
		focus:              focus,
		penalty:            make([]int, n),
		penalizationFactor: penalizationFactor,
		priorityHeap:       newMinHeap(2),
		utilityHeap:        newMaxHeap(2),
	}
	for _, j := range focus.Subsets() {
		r.syncMembership(j)
	}

	for iter := 0; iter < g.maxIterations(); iter++ {
		j, _, ok := r.priorityHeap.Peek()
		if !ok {
			break
		}
		inv.Flip(j, invariant.Redundancy)
		newlyRemovable := append([]intidx.SubsetIndex(nil), inv.NewlyRemovableSubsets()...)
		newlyNonRemovable := append([]intidx.SubsetIndex(nil), inv.NewlyNonRemovableSubsets()...)
		inv.ClearRemovabilityInformation()

		r.syncMembership(j)
		for _, jp := range newlyRemovable {
			r.syncMembership(jp)
		}
		for _, jp := range newlyNonRemovable {
			r.syncMembership(jp)
		}

		if upJ, _, ok2 := r.utilityHeap.Pop(); ok2 {
			r.penalty[upJ]++
			if inv.IsSelected(upJ) {
				r.syncMembership(upJ)
			}
		}
	}

	// Final clean-up: drop any subset still redundant in focus.
	for _, j := range focus.Subsets() {
		if inv.IsSelected(j) && inv.ComputeIsRedundant(j) {
			inv.Deselect(j, invariant.Redundancy)
		}
	}
	return nil
}
