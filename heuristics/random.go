package heuristics

import (
	"math/rand/v2"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
)

// RandomSolutionGenerator shuffles focus and greedily selects any subset
// that still covers at least one uncovered element, until the focus is
// exhausted or everything is covered.
type RandomSolutionGenerator struct {
	Rand *rand.Rand
}

func (RandomSolutionGenerator) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.FreeAndUncovered
}

func (g RandomSolutionGenerator) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	order := append([]intidx.SubsetIndex(nil), focus.Subsets()...)
	r := orDefault(g.Rand)
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for _, j := range order {
		if inv.NumUncoveredElements() == 0 {
			break
		}
		if inv.NumFreeElements(j) > 0 {
			inv.Select(j, invariant.FreeAndUncovered)
		}
	}
	return nil
}
