package heuristics

import "github.com/katalvlaran/setcover/invariant"

// TrivialSolutionGenerator selects every subset in focus. Useful as a
// feasibility check and as a "select everything, then steepest-descend"
// starting point.
type TrivialSolutionGenerator struct{}

func (TrivialSolutionGenerator) RequiredLevel() invariant.ConsistencyLevel {
	return invariant.CostAndCoverage
}

func (TrivialSolutionGenerator) NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error {
	for _, j := range focus.Subsets() {
		inv.Select(j, invariant.CostAndCoverage)
	}
	return nil
}
