package cft

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/katalvlaran/setcover/heuristics"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/lagrangian"
	"github.com/katalvlaran/setcover/model"
	"github.com/katalvlaran/setcover/scerr"
	"github.com/katalvlaran/setcover/sclog"
	"github.com/katalvlaran/setcover/submodel"
	"go.uber.org/zap"
)

// Engine drives the three-phase bound/heuristic/fixing loop over full.
// full must already have a valid row view (CreateSparseRowView) before
// RunThreePhase is called, the same precondition every row-indexed
// component in this library documents.
type Engine struct {
	full             *model.Model
	logger           *sclog.Config
	tolerance        float64
	iterBudgetFactor int
	rand             *rand.Rand
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger injects a logger for the engine's own diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = sclog.NewConfig(sclog.WithLogger(l)) }
}

// WithTolerance overrides BoundCBs's subgradient-norm exit tolerance
// (upstream's kTol, default 1e-6).
func WithTolerance(tol float64) Option { return func(e *Engine) { e.tolerance = tol } }

// WithIterationBudgetFactor overrides the multiplier applied to |E| to
// get BoundCBs's iteration budget (upstream's maxIterCountdown formula,
// default 10).
func WithIterationBudgetFactor(f int) Option { return func(e *Engine) { e.iterBudgetFactor = f } }

// WithRand overrides the engine's source of randomness for multiplier
// randomization between fixing rounds.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rand = r } }

// New returns an Engine over full with the upstream-documented defaults.
func New(full *model.Model, opts ...Option) *Engine {
	e := &Engine{
		full:             full,
		logger:           sclog.NewConfig(),
		tolerance:        defaultTolerance,
		iterBudgetFactor: defaultIterationBudgetFactor,
		rand:             rand.New(rand.NewPCG(0x9e3779b97f4a7c15, 0xbf58476d1ce4e5b9)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunThreePhase alternates the bound, heuristic, and fixing phases over a
// pricing-backed core built from full, for up to maxOuterIterations
// rounds or until ctx is done. The returned Result's BestSolution is
// always feasible over full unless Status is StatusInfeasible.
func (e *Engine) RunThreePhase(ctx context.Context, maxOuterIterations int) Result {
	if !e.full.ComputeFeasibility() {
		return Result{Status: scerr.StatusInfeasible}
	}

	core := submodel.NewFullToCoreModel(e.full)
	maxIterCountdown := e.iterBudgetFactor * int(e.full.NumElements())

	bestSolution := initialGreedySolution(e.full)
	bestLB := math.Inf(-1)
	status := scerr.StatusOK

	u := lagrangian.New(e.full).InitializeMultipliers()

	iterations := 0
	for outer := 0; outer < maxOuterIterations; outer++ {
		iterations = outer + 1
		if ctx.Err() != nil {
			status = scerr.StatusTimeLimitExceeded
			break
		}

		coreModel := core.Core()
		if coreModel.NumSubsets() == 0 {
			break
		}

		coreU := liftToCore(core.CoreModel, u)
		upperBoundGap := float64(bestSolution.Cost) - float64(core.FixedCost())

		bound := NewBoundCBs(coreModel, e.tolerance, maxIterCountdown)
		lb, bestU, bestRC, _ := bound.Run(ctx, coreU, upperBoundGap)
		if bestU == nil {
			break
		}
		liftToFull(core.CoreModel, u, bestU)
		fullLB := lb + float64(core.FixedCost())
		if fullLB > bestLB {
			bestLB = fullLB
		}

		var heur HeuristicCBs
		coreSolution := heur.Run(coreModel, bestU, allCoreColumns(coreModel))
		candidate := liftSolutionToFull(core.CoreModel, e.full, coreSolution)
		if candidate.Cost < bestSolution.Cost {
			bestSolution = candidate
		}

		fixCandidates := selectFixingCandidates(coreModel, bestRC)
		minIncrement := minimumFixIncrement(e.full.NumElements())
		fixCandidates = topUpFixing(coreModel, fixCandidates, minIncrement)
		if len(fixCandidates) > 0 {
			fullFixCandidates := make([]intidx.SubsetIndex, len(fixCandidates))
			for i, cj := range fixCandidates {
				fullFixCandidates[i] = core.ToFull(cj)
			}
			core.FixMoreColumns(fullFixCandidates)
		}
		randomizeMultipliers(u, e.rand)

		if core.UpdateCore(submodel.BestState{
			SolutionFullColumns: fullIndices(bestSolution.Selected),
			SolutionCost:        bestSolution.Cost,
			CoreLowerBound:      lb,
		}) {
			maxIterCountdown += 10
		}
	}

	restricted := int(core.Core().NumSubsets())+len(core.FixedFullColumns()) < int(e.full.NumSubsets())
	return Result{
		BestSolution:   bestSolution,
		BestLowerBound: bestLB,
		Restricted:     restricted,
		Iterations:     iterations,
		Status:         status,
	}
}

// initialGreedySolution gives the loop a feasible upper bound to work
// against from the very first bound-phase call.
func initialGreedySolution(full *model.Model) Solution {
	inv := invariant.New(full)
	inv.Initialize()
	var gen heuristics.GreedySolutionGenerator
	_ = gen.NextSolution(inv, heuristics.AllSubsets(full.NumSubsets()))
	selected := make([]bool, full.NumSubsets())
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(full.NumSubsets()); j++ {
		selected[j] = inv.IsSelected(j)
	}
	return Solution{Selected: selected, Cost: inv.Cost()}
}

func allCoreColumns(m *model.Model) []intidx.SubsetIndex {
	out := make([]intidx.SubsetIndex, m.NumSubsets())
	for j := range out {
		out[j] = intidx.SubsetIndex(j)
	}
	return out
}

func fullIndices(selected []bool) []intidx.SubsetIndex {
	var out []intidx.SubsetIndex
	for j, sel := range selected {
		if sel {
			out = append(out, intidx.SubsetIndex(j))
		}
	}
	return out
}

// liftToCore restricts uFull (indexed by full-model element) down to the
// core's own row indexing.
func liftToCore(core *submodel.CoreModel, uFull []float64) []float64 {
	n := intidx.ElementIndex(core.Core().NumElements())
	coreU := make([]float64, n)
	for ce := intidx.ElementIndex(0); ce < n; ce++ {
		coreU[ce] = uFull[core.FullRow(ce)]
	}
	return coreU
}

// liftToFull writes coreU back into uFull at the rows the core currently
// covers, leaving every other entry of uFull untouched.
func liftToFull(core *submodel.CoreModel, uFull []float64, coreU []float64) {
	n := intidx.ElementIndex(core.Core().NumElements())
	for ce := intidx.ElementIndex(0); ce < n; ce++ {
		uFull[core.FullRow(ce)] = coreU[ce]
	}
}

// liftSolutionToFull maps a core-indexed Solution back to full-model
// indices and folds in the core's already-fixed columns and their cost.
func liftSolutionToFull(core *submodel.CoreModel, full *model.Model, coreSolution Solution) Solution {
	out := make([]bool, full.NumSubsets())
	for cj, sel := range coreSolution.Selected {
		if sel {
			out[core.ToFull(intidx.SubsetIndex(cj))] = true
		}
	}
	for _, fj := range core.FixedFullColumns() {
		out[fj] = true
	}
	return Solution{Selected: out, Cost: coreSolution.Cost + core.FixedCost()}
}
