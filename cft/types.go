// Package cft implements the three-phase bound/heuristic/fixing engine
// (dual refinement, multiplier-based primal greedy, column-fixing diving)
// that drives a weighted set-cover instance toward a provably good
// feasible solution, pricing against a submodel.FullToCoreModel core.
/*
Engine — Three-Phase Cover/Fix/Tighten Loop

Description:
  Alternates three phases over a pricing-backed core model until the
  core empties, a context deadline is reached, or the caller's round
  limit is used up: BoundCBs tightens the
  Lagrangian lower bound via subgradient ascent on a minimal-cover
  subgradient; HeuristicCBs runs a multiplier-weighted greedy (with a
  redundancy-removal cleanup) to refresh the incumbent feasible
  solution; the fixing phase permanently commits an independent set of
  attractively-priced columns and randomizes the multipliers before the
  next round.

Algorithm outline:
 1. Initialize multipliers and the core's dual state.
 2. Loop for at most maxOuterIterations rounds, until the core has no
    free columns left, ctx is done, or the bound phase yields no
    multipliers:
    a. BoundCBs.Run tightens the lower bound over the current core.
    b. HeuristicCBs.Run refreshes the incumbent if it improves on it.
    c. The fixing phase commits a batch of columns to the core and
       randomizes the multipliers for the next bound phase.
    d. FullToCoreModel.UpdateCore may refresh the core from the full
       model's own reduced costs.

Memory: O(|E| + |S|) for the core's working vectors, independent of how
many outer iterations the loop runs.
*/
package cft

import (
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/scerr"
	"github.com/katalvlaran/setcover/submodel"
)

// DualState is an alias for submodel.DualState so callers of this package
// never need to import submodel just to read a dual snapshot back out.
type DualState = submodel.DualState

// Solution is a selection of full-model columns and its cost.
type Solution struct {
	Selected []bool
	Cost     intidx.Cost
}

// PrimalDualState bundles the engine's current incumbent and dual
// snapshot, returned to a caller wanting to inspect progress mid-run
// (e.g. from a progress callback) as well as at the end.
type PrimalDualState struct {
	Solution Solution
	Dual     DualState
}

// Result is what RunThreePhase returns.
type Result struct {
	BestSolution   Solution
	BestLowerBound float64
	// Restricted marks a lower bound computed against a pricing core that
	// had not yet converged back to the full model when the run ended —
	// informational only, per the resolved "restricted lower bound"
	// design question; nothing in this package branches on it.
	Restricted bool
	Iterations int
	Status     scerr.Status
}
