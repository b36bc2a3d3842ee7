package cft

import (
	"context"
	"math"
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/lagrangian"
	"github.com/katalvlaran/setcover/model"
)

const (
	defaultTolerance           = 1e-6
	defaultIterationBudgetFactor = 10 // maxIterCountdown = factor * |E|
	boundInitialStep             = 0.1
)

// BoundCBs is the dual-refinement phase: subgradient ascent on the
// Lagrangian dual, using a minimal-cover subgradient (rather than the raw
// one) to avoid overshoot when many negative-reduced-cost columns
// overlap the same elements.
type BoundCBs struct {
	core             *model.Model
	engine           *lagrangian.Engine
	tolerance        float64
	maxIterCountdown int
}

// NewBoundCBs returns a BoundCBs over core, with its exit-test iteration
// budget fixed at construction time (extended externally by 10 whenever
// the caller's core model refreshes, per §4.5).
func NewBoundCBs(core *model.Model, tolerance float64, maxIterCountdown int, opts ...lagrangian.Option) *BoundCBs {
	return &BoundCBs{
		core:             core,
		engine:           lagrangian.New(core, opts...),
		tolerance:        tolerance,
		maxIterCountdown: maxIterCountdown,
	}
}

// ExtendBudget grows the remaining iteration budget by n, called when the
// caller's core model just refreshed mid-phase.
func (b *BoundCBs) ExtendBudget(n int) { b.maxIterCountdown += n }

// Run executes the dual-refinement phase: repeatedly compute reduced
// costs and the Lagrangian value, track the best value seen, and step the
// multipliers along the minimal-cover subgradient, until the iteration
// budget is exhausted, the subgradient's norm drops to tolerance, the
// Stopper detects a stall, or ctx is done. Returns the best lower bound
// found and the multipliers/reduced costs that achieved it.
func (b *BoundCBs) Run(ctx context.Context, u []float64, upperBound float64) (best float64, bestU, bestRC []float64, iterations int) {
	core := b.core
	stepSizer := lagrangian.NewStepSizerFrom(boundInitialStep)
	stopper := lagrangian.NewStopper()
	best = math.Inf(-1)

	for ; iterations < b.maxIterCountdown; iterations++ {
		if ctx.Err() != nil {
			break
		}
		rc := b.engine.ComputeReducedCosts(u)
		l := b.engine.ComputeLagrangianValue(u, rc)
		if l > best {
			best = l
			bestRC = append(bestRC[:0], rc...)
			bestU = append(bestU[:0], u...)
		}
		stepSizer.Update(best)
		if stopper.ShouldStop(best) {
			break
		}

		sub := minimalCoverSubgradient(core, rc)
		normSq := 0.0
		for _, s := range sub {
			normSq += s * s
		}
		if normSq <= b.tolerance*b.tolerance {
			break
		}
		if !b.engine.UpdateMultipliers(u, stepSizer.Step(), l, upperBound, sub) {
			break
		}
	}
	return best, bestU, bestRC, iterations
}

// minimalCoverSubgradient computes the raw subgradient s_i = 1 -
// |{j: rc_j<0, i in S_j}|, then greedily "gives back" +1 per element to
// every negative-reduced-cost column (examined from least-negative to
// most-negative) whose every element is still below zero — a near-
// minimum set of columns sufficient to explain the violation, which
// keeps the subsequent multiplier step from overshooting when many
// overlapping columns are all priced negative.
func minimalCoverSubgradient(core *model.Model, reducedCosts []float64) []float64 {
	s := make([]float64, core.NumElements())
	for i := range s {
		s[i] = 1
	}

	type candidate struct {
		j  intidx.SubsetIndex
		rc float64
	}
	var candidates []candidate
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(core.NumSubsets()); j++ {
		if reducedCosts[j] < 0 {
			candidates = append(candidates, candidate{j, reducedCosts[j]})
			for _, e := range core.Column(j) {
				s[e]--
			}
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a].rc > candidates[b].rc })

	for _, c := range candidates {
		col := core.Column(c.j)
		accept := true
		for _, e := range col {
			if s[e] >= 0 {
				accept = false
				break
			}
		}
		if !accept {
			continue
		}
		for _, e := range col {
			s[e]++
		}
	}
	return s
}
