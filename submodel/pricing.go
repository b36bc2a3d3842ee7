package submodel

import (
	"math"
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/lagrangian"
	"github.com/katalvlaran/setcover/model"
)

const (
	countdownStart      = 10
	countdownCapDivisor = 3 // cap = max(10, min(1000, |E|/3))
	countdownCapMax     = 1000

	priceBestK     = 5 // best-5-by-reduced-cost columns per row
	priceMultipleE = 5 // up to 5*|E| globally-cheapest negative-reduced-cost columns

	closeGapExact = 1e-6
	closeGapTight = 0.02
	closeGapLoose = 0.2
)

// DualState is a Lagrangian multiplier/reduced-cost/lower-bound snapshot
// over the full model, kept separately from whatever multipliers a core
// Lagrangian pass is using.
type DualState struct {
	Multipliers  []float64
	ReducedCosts []float64
	LowerBound   float64
}

// BestState is the minimal surface UpdateCore needs from a caller's
// running incumbent: the full-index columns of its current solution,
// its cost, and the lower bound the core reported before this refresh.
type BestState struct {
	SolutionFullColumns []intidx.SubsetIndex
	SolutionCost        intidx.Cost
	CoreLowerBound      float64
}

// FullToCoreModel is the pricing-backed core: a CoreModel that
// periodically re-examines the full model's Lagrangian reduced costs to
// check nothing important has fallen out of focus, and rebuilds the core
// around a fresh column selection when it does.
type FullToCoreModel struct {
	*CoreModel

	engine *lagrangian.Engine
	dual   DualState

	countdown    int
	countdownCap int
	period       int
}

// NewFullToCoreModel returns a FullToCoreModel over full, focused on
// every column initially, with the pricing countdown at its starting
// value.
func NewFullToCoreModel(full *model.Model, opts ...lagrangian.Option) *FullToCoreModel {
	cap := int(full.NumElements()) / countdownCapDivisor
	if cap > countdownCapMax {
		cap = countdownCapMax
	}
	if cap < countdownStart {
		cap = countdownStart
	}
	return &FullToCoreModel{
		CoreModel:    NewCoreModel(full),
		engine:       lagrangian.New(full, opts...),
		countdown:    countdownStart,
		countdownCap: cap,
		period:       countdownStart,
	}
}

// DualState returns the most recent full-model dual snapshot (zero value
// before the first UpdateCore that actually refreshes).
func (f *FullToCoreModel) DualState() DualState { return f.dual }

// UpdateCore decrements the pricing countdown and, once it reaches zero,
// refreshes the full-model dual state and rebuilds the core around the
// union of: best.SolutionFullColumns, the cheapest priceMultipleE*|E|
// negative-reduced-cost columns, and each row's best priceBestK covering
// columns by ascending reduced cost. Returns true iff a refresh happened.
func (f *FullToCoreModel) UpdateCore(best BestState) bool {
	f.countdown--
	if f.countdown > 0 {
		return false
	}

	full := f.Full()
	u := f.dual.Multipliers
	if u == nil {
		u = f.engine.InitializeMultipliers()
	}
	rc := f.engine.ComputeReducedCosts(u)
	lb := f.engine.ComputeLagrangianValue(u, rc)
	f.dual = DualState{Multipliers: u, ReducedCosts: rc, LowerBound: lb}

	selected := make(map[intidx.SubsetIndex]bool, len(best.SolutionFullColumns))
	for _, j := range best.SolutionFullColumns {
		selected[j] = true
	}

	type negEntry struct {
		j  intidx.SubsetIndex
		rc float64
	}
	var negatives []negEntry
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(full.NumSubsets()); j++ {
		if rc[j] < 0 {
			negatives = append(negatives, negEntry{j, rc[j]})
		}
	}
	sort.Slice(negatives, func(a, b int) bool { return negatives[a].rc < negatives[b].rc })
	limit := priceMultipleE * int(full.NumElements())
	for i := 0; i < len(negatives) && i < limit; i++ {
		selected[negatives[i].j] = true
	}

	for i := intidx.ElementIndex(0); i < intidx.ElementIndex(full.NumElements()); i++ {
		row := full.Row(i)
		if len(row) == 0 {
			continue
		}
		cands := append([]intidx.SubsetIndex(nil), row...)
		sort.Slice(cands, func(a, b int) bool { return rc[cands[a]] < rc[cands[b]] })
		for k := 0; k < len(cands) && k < priceBestK; k++ {
			selected[cands[k]] = true
		}
	}

	focus := make([]intidx.SubsetIndex, 0, len(selected))
	for j := range selected {
		focus = append(focus, j)
	}
	sort.Slice(focus, func(a, b int) bool { return focus[a] < focus[b] })
	f.SetFocus(focus)

	gap := lb - best.CoreLowerBound
	ratio := math.Abs(gap)
	if lb != 0 {
		ratio = math.Abs(gap) / math.Abs(lb)
	}
	switch {
	case ratio <= closeGapExact:
		f.period = minInt(f.countdownCap, f.period*10)
	case ratio <= closeGapTight:
		f.period = minInt(f.countdownCap, f.period*5)
	case ratio <= closeGapLoose:
		f.period = minInt(f.countdownCap, f.period*2)
	default:
		f.period = countdownStart
	}
	f.countdown = f.period
	return true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
