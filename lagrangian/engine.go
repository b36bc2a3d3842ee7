// Package lagrangian computes Lagrangian-dual lower bounds for a
// weighted set-cover model: reduced costs, the subgradient of the dual
// function, and a multiplier-update loop driven by a StepSizer/Stopper
// pair shared with the CFT engine's bound phase.
/*
Engine — Lagrangian Relaxation Over A Set-Cover Model

Description:
  Relaxes the covering constraints M x >= 1 with multipliers u >= 0,
  giving a per-subset reduced cost ĉ_j(u) = c_j - Σ_{i in S_j} u_i and a
  dual value L(u) = Σ_i u_i + Σ_{j: ĉ_j<0} ĉ_j(u) that lower-bounds any
  feasible integer solution's cost — the engine's main loop hill-climbs
  L(u) via subgradient ascent.

Algorithm outline:
 1. InitializeMultipliers: u_i = min over subsets j containing i of c_j/|S_j|.
 2. Repeat up to maxIterations times: compute reduced costs, the dual
    value, and its subgradient; update u in the subgradient's direction
    scaled by an adaptive step size; stop early once progress stalls.

Memory: O(|E| + |S|) for the multiplier/reduced-cost/subgradient vectors.
*/
package lagrangian

import (
	"context"
	"math"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
	"github.com/katalvlaran/setcover/scerr"
	"github.com/katalvlaran/setcover/sclog"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxIterations  = 1000
	multiplierCap  = 1e6
	subgradientEps = 1e-12
)

// Engine computes Lagrangian bounds over an immutable model.
type Engine struct {
	m       *model.Model
	logger  *sclog.Config
	aborted atomic.Bool
}

// Option configures an Engine at construction time.
type Option = sclog.Option

// WithLogger injects a logger used for NumericalIssue warnings.
func WithLogger(l *zap.Logger) Option { return sclog.WithLogger(l) }

// New returns an Engine over m.
func New(m *model.Model, opts ...Option) *Engine {
	return &Engine{m: m, logger: sclog.NewConfig(opts...)}
}

// Abort flips the engine's cooperative abort flag, read by
// ComputeLowerBound between iterations (not inside an in-flight parallel
// batch, which always runs to completion).
func (e *Engine) Abort() { e.aborted.Store(true) }

// InitializeMultipliers returns u_i = min_{j: i in S_j} c_j/|S_j|, the
// standard Lagrangian starting point; elements covered by no subset get
// multiplier 0 (ComputeFeasibility should have already rejected such a
// model, but the engine itself does not re-validate).
func (e *Engine) InitializeMultipliers() []float64 {
	n := e.m.NumElements()
	u := make([]float64, n)
	for i := range u {
		u[i] = math.Inf(1)
	}
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(e.m.NumSubsets()); j++ {
		col := e.m.Column(j)
		if len(col) == 0 {
			continue
		}
		ratio := float64(e.m.SubsetCost(j)) / float64(len(col))
		for _, el := range col {
			if ratio < u[el] {
				u[el] = ratio
			}
		}
	}
	for i, v := range u {
		if math.IsInf(v, 1) {
			u[i] = 0
		}
	}
	return u
}

// ComputeReducedCosts returns ĉ_j(u) = c_j - Σ_{i in S_j} u_i for every
// subset, sequentially.
func (e *Engine) ComputeReducedCosts(u []float64) []float64 {
	out := make([]float64, e.m.NumSubsets())
	e.reducedCostRange(u, out, 0, len(out))
	return out
}

// ParallelComputeReducedCosts is ComputeReducedCosts split into
// contiguous subset blocks, one errgroup goroutine per block, each
// writing into a disjoint slice of the shared output — no locks, no
// shared mutable state beyond the model's (read-only) columns.
func (e *Engine) ParallelComputeReducedCosts(u []float64, numWorkers int) ([]float64, error) {
	out := make([]float64, e.m.NumSubsets())
	var g errgroup.Group
	for _, block := range blockRanges(len(out), numWorkers) {
		start, end := block[0], block[1]
		g.Go(func() error {
			e.reducedCostRange(u, out, start, end)
			return nil
		})
	}
	return out, g.Wait()
}

func (e *Engine) reducedCostRange(u []float64, out []float64, start, end int) {
	for j := start; j < end; j++ {
		jIdx := intidx.SubsetIndex(j)
		sum := 0.0
		for _, el := range e.m.Column(jIdx) {
			sum += u[el]
		}
		out[j] = float64(e.m.SubsetCost(jIdx)) - sum
	}
}

// ComputeSubgradient returns s_i = 1 - |{j: ĉ_j(u) < 0, i in S_j}| for
// every element, sequentially.
func (e *Engine) ComputeSubgradient(reducedCosts []float64) []float64 {
	s := make([]float64, e.m.NumElements())
	e.subgradientInto(reducedCosts, s)
	return s
}

// ParallelComputeSubgradient splits the same computation over subset
// blocks; each goroutine accumulates into its own partial vector, merged
// into the shared result after the errgroup barrier (no contention during
// the parallel phase).
func (e *Engine) ParallelComputeSubgradient(reducedCosts []float64, numWorkers int) ([]float64, error) {
	n := int(e.m.NumElements())
	blocks := blockRanges(len(reducedCosts), numWorkers)
	partials := make([][]float64, len(blocks))
	var g errgroup.Group
	for bi, block := range blocks {
		bi, start, end := bi, block[0], block[1]
		g.Go(func() error {
			partial := make([]float64, n)
			e.subgradientRangeInto(reducedCosts, partial, start, end)
			partials[bi] = partial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	for _, partial := range partials {
		for i, v := range partial {
			out[i] += v
		}
	}
	return out, nil
}

func (e *Engine) subgradientInto(reducedCosts []float64, s []float64) {
	for i := range s {
		s[i] = 1
	}
	e.subgradientRangeInto(reducedCosts, s, 0, len(reducedCosts))
}

// subgradientRangeInto decrements s[el] (treated as a plain accumulator,
// not pre-seeded to 1 here) for every element covered by a negative
// reduced-cost subset in [start,end).
func (e *Engine) subgradientRangeInto(reducedCosts []float64, s []float64, start, end int) {
	for j := start; j < end; j++ {
		if reducedCosts[j] >= 0 {
			continue
		}
		for _, el := range e.m.Column(intidx.SubsetIndex(j)) {
			s[el]--
		}
	}
}

// ComputeLagrangianValue returns L(u) = Σ u_i + Σ_{j: ĉ_j<0} ĉ_j.
func (e *Engine) ComputeLagrangianValue(u []float64, reducedCosts []float64) float64 {
	total := 0.0
	for _, v := range u {
		total += v
	}
	for _, rc := range reducedCosts {
		if rc < 0 {
			total += rc
		}
	}
	return total
}

// UpdateMultipliers applies one subgradient step in place:
//
//	u_i <- clamp(u_i + step*(upperBound-L)/|s|^2 * s_i, 0, multiplierCap)
//
// Returns false (and logs a NumericalIssue) without modifying u if |s|^2
// is too small to divide by safely.
func (e *Engine) UpdateMultipliers(u []float64, step, lagrangianValue, upperBound float64, subgradient []float64) bool {
	normSq := 0.0
	for _, s := range subgradient {
		normSq += s * s
	}
	if normSq < subgradientEps {
		e.logger.Logger.Warn("lagrangian: subgradient norm too small to update multipliers",
			zap.Float64("normSq", normSq))
		return false
	}
	factor := step * (upperBound - lagrangianValue) / normSq
	for i, s := range subgradient {
		u[i] = clamp(u[i]+factor*s, 0, multiplierCap)
	}
	return true
}

// Result is what ComputeLowerBound returns.
type Result struct {
	BestLowerBound float64
	ReducedCosts   []float64
	Multipliers    []float64
	Iterations     int
	Status         scerr.Status
}

// ComputeLowerBound runs the subgradient main loop: up to maxIterations
// rounds of reduced-cost/subgradient/multiplier updates, tracking the
// best Lagrangian value seen, governed by a StepSizer and a Stopper.
// Exits early on ctx cancellation, Abort, or the Stopper's stall
// detection.
func (e *Engine) ComputeLowerBound(ctx context.Context, upperBound float64) Result {
	u := e.InitializeMultipliers()
	stepSizer := NewStepSizer()
	stopper := NewStopper()

	best := math.Inf(-1)
	var bestRC, bestU []float64
	status := scerr.StatusOK
	iter := 0
	for ; iter < maxIterations; iter++ {
		if ctx.Err() != nil {
			status = scerr.StatusTimeLimitExceeded
			break
		}
		if e.aborted.Load() {
			status = scerr.StatusTimeLimitExceeded
			break
		}

		rc := e.ComputeReducedCosts(u)
		l := e.ComputeLagrangianValue(u, rc)
		if l > best {
			best = l
			bestRC = append(bestRC[:0], rc...)
			bestU = append(bestU[:0], u...)
		}
		stepSizer.Update(best)
		if stopper.ShouldStop(best) {
			break
		}

		sub := e.ComputeSubgradient(rc)
		if !e.UpdateMultipliers(u, stepSizer.Step(), l, upperBound, sub) {
			break
		}
	}

	return Result{
		BestLowerBound: best,
		ReducedCosts:   bestRC,
		Multipliers:    bestU,
		Iterations:     iter,
		Status:         status,
	}
}

// blockRanges splits n items into contiguous [start,end) ranges across at
// most numWorkers blocks of size ceil(n/numWorkers).
func blockRanges(n, numWorkers int) [][2]int {
	if numWorkers < 1 {
		numWorkers = 1
	}
	blockSize := (n + numWorkers - 1) / numWorkers
	if blockSize < 1 {
		blockSize = 1
	}
	var blocks [][2]int
	for start := 0; start < n; start += blockSize {
		end := start + blockSize
		if end > n {
			end = n
		}
		blocks = append(blocks, [2]int{start, end})
	}
	return blocks
}
