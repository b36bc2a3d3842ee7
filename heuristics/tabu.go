package heuristics

import (
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
)

const (
	defaultTabuSize      = 16
	defaultTabuIterations = 2000
	defaultPenaltyFactor  = 0.1
	defaultTabuEpsilon    = 1e-9
)

// fifoTabuList is a fixed-capacity FIFO of recently-flipped subsets, with
// O(1) membership testing. Pushing a subset that is already present adds
// another copy to the ring; it stays tabu until its last copy is evicted.
type fifoTabuList struct {
	cap   int
	ring  []intidx.SubsetIndex
	head  int
	count map[intidx.SubsetIndex]int
}

func newFifoTabuList(capacity int) *fifoTabuList {
	if capacity < 1 {
		capacity = 1
	}
	return &fifoTabuList{cap: capacity, ring: make([]intidx.SubsetIndex, 0, capacity), count: make(map[intidx.SubsetIndex]int)}
}

func (f *fifoTabuList) contains(j intidx.SubsetIndex) bool { return f.count[j] > 0 }

func (f *fifoTabuList) push(j intidx.SubsetIndex) {
	if len(f.ring) < f.cap {
		f.ring = append(f.ring, j)
	} else {
		evicted := f.ring[f.head]
		f.count[evicted]--
		f.ring[f.head] = j
		f.head = (f.head + 1) % f.cap
	}
	f.count[j]++
}

// GuidedTabuSearch is short-term (FIFO tabu list) plus long-term
// (per-subset penalty counters biasing cost) memory local search: at each
// step it flips the admissible move with the best augmented-cost delta,
// occasionally penalizing the subsets closest to the penalty frontier.
type GuidedTabuSearch struct {
	TabuSize      int
	MaxIterations int
	PenaltyFactor float64
	Epsilon       float64
	Rand          *rand.Rand
}

func (g GuidedTabuSearch) RequiredLevel() invariant.ConsistencyLevel { return invariant.Redundancy }

func (g GuidedTabuSearch) tabuSize() int {
	if g.TabuSize > 0 {
		return g.TabuSize
	}
	return defaultTabuSize
}

func (g GuidedTabuSearch) maxIterations() int {
	if g.MaxIterations > 0 {
		return g.MaxIterations
	}
	return defaultTabuIterations
}

func (g GuidedTabuSearch) penaltyFactor() float64 {
	if g.PenaltyFactor > 0 {
		return g.PenaltyFactor
	}
	return defaultPenaltyFactor
}

func (g GuidedTabuSearch) epsilon() float64 {
	if g.Epsilon > 0 {
		return g.Epsilon
	}
	return defaultTabuEpsilon
}

func snapshotSelection(inv *invariant.SetCoverInvariant, n intidx.BaseInt) []bool {
	out := make([]bool, n)
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(n); j++ {
		out[j] = inv.IsSelected(j)
	}
	return out
}

func (g GuidedTabuSearch) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	m := inv.Model()
	n := m.NumSubsets()
	timesPenalized := make([]int, n)
	tabu := newFifoTabuList(g.tabuSize())
	r := orDefault(g.Rand)
	penaltyFactor := g.penaltyFactor()
	eps := g.epsilon()

	bestCost := inv.Cost()
	bestFeasible := inv.NumUncoveredElements() == 0
	var bestSolution []bool
	if bestFeasible {
		bestSolution = snapshotSelection(inv, n)
	}

	for iter := 0; iter < g.maxIterations(); iter++ {
		var (
			moveJ      intidx.SubsetIndex
			moveSelect bool
			moveDelta  = math.Inf(1)
			found      bool
		)
		for _, j := range focus.Subsets() {
			cost := m.SubsetCost(j)
			augmented := float64(cost) * (1 + penaltyFactor*float64(timesPenalized[j]))

			var delta float64
			var real intidx.Cost
			var selecting bool
			switch {
			case inv.IsSelected(j):
				if !inv.IsRedundant(j) {
					continue
				}
				delta, real, selecting = -augmented, -cost, false
			default:
				delta, real, selecting = augmented, cost, true
			}

			aspires := inv.Cost()+real < bestCost
			if tabu.contains(j) && !aspires {
				continue
			}
			if !found || delta < moveDelta {
				moveJ, moveSelect, moveDelta, found = j, selecting, delta, true
			}
		}
		if !found {
			break
		}

		if moveSelect {
			inv.Select(moveJ, invariant.Redundancy)
		} else {
			inv.Deselect(moveJ, invariant.Redundancy)
		}
		tabu.push(moveJ)

		if inv.NumUncoveredElements() == 0 && inv.Cost() < bestCost {
			bestCost = inv.Cost()
			bestFeasible = true
			bestSolution = snapshotSelection(inv, n)
		}

		maxUtility := math.Inf(-1)
		for _, j := range focus.Subsets() {
			if !inv.IsSelected(j) {
				continue
			}
			u := float64(m.SubsetCost(j)) / (1 + float64(timesPenalized[j]))
			if u > maxUtility {
				maxUtility = u
			}
		}
		for _, j := range focus.Subsets() {
			if !inv.IsSelected(j) {
				continue
			}
			u := float64(m.SubsetCost(j)) / (1 + float64(timesPenalized[j]))
			if maxUtility-u <= eps && r.Float64() < 0.5 {
				timesPenalized[j]++
			}
		}
	}

	if bestFeasible {
		inv.LoadSolution(bestSolution)
		inv.Recompute(invariant.Redundancy)
	}
	return nil
}
