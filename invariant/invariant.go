// Package invariant tracks a mutable selection over a model.Model
// incrementally: which subsets are selected, how many times each element
// is covered, how many elements would become uncovered if a given subset
// were dropped, and which selected subsets are redundant (droppable
// without uncovering anything) — each kept up to date lazily, only as far
// as the caller's requested ConsistencyLevel demands.
/*
SetCoverInvariant — Incremental Selection Bookkeeping

Description:
  Wraps a *model.Model with the mutable state a search needs to evaluate
  and move between solutions without recomputing everything from scratch
  on every step: a selection bitset, per-element coverage counts, a
  decision trace, and (at the higher consistency levels) per-subset
  free-element and redundancy counters.

Use cases:
  - Greedy construction (Select only, FreeAndUncovered for its free counts).
  - ElementDegree / SteepestSearch (Select+Deselect, FreeAndUncovered).
  - GuidedTabuSearch / GuidedLocalSearch (Redundancy).

Algorithm outline (Select/Deselect):
  Adjusting one subset's membership touches every element in its column;
  for each element whose coverage crosses a threshold (0<->1 for
  uncovered/free bookkeeping, 1<->2 for redundancy bookkeeping), every
  OTHER subset covering that element has its own counters adjusted too —
  an O(sum of |row(e)| for e in S_j) update, not just O(|S_j|).

Memory: O(|E| + |S|) beyond the model itself.
*/
package invariant

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
	"github.com/katalvlaran/setcover/scerr"
)

// SetCoverInvariant is the mutable selection state over an immutable Model.
type SetCoverInvariant struct {
	m *model.Model

	// modelTimestamp is the Model.Timestamp() this invariant was built (or
	// last Recompute'd) against; used only to detect a stale invariant in
	// debug builds (scerr.Debug), never lock-enforced.
	modelTimestamp int64

	cost                  intidx.Cost
	numUncoveredElements  intidx.BaseInt
	isSelected            *bitset.BitSet
	trace                 []Decision
	coverage              []intidx.BaseInt
	numFreeElements       []intidx.BaseInt // per subset: elements in it with coverage==0
	numNonOvercovered     []intidx.BaseInt // per subset: elements in it with coverage<=1
	isRedundant           *bitset.BitSet
	newlyRemovableSubsets []intidx.SubsetIndex
	newlyNonRemovable     []intidx.SubsetIndex

	consistencyLevel ConsistencyLevel
}

// New builds an invariant over m with every subset deselected.
func New(m *model.Model) *SetCoverInvariant {
	inv := &SetCoverInvariant{m: m}
	inv.Initialize()
	return inv
}

// Initialize resets the invariant to the all-deselected state over its
// model, at the highest consistency level.
func (inv *SetCoverInvariant) Initialize() {
	n := int(inv.m.NumSubsets())
	e := int(inv.m.NumElements())
	inv.modelTimestamp = inv.m.Timestamp()
	inv.cost = 0
	inv.numUncoveredElements = intidx.BaseInt(e)
	inv.isSelected = bitset.New(uint(n))
	inv.trace = inv.trace[:0]
	inv.coverage = make([]intidx.BaseInt, e)
	inv.numFreeElements = make([]intidx.BaseInt, n)
	inv.numNonOvercovered = make([]intidx.BaseInt, n)
	for j := 0; j < n; j++ {
		size := intidx.BaseInt(len(inv.m.Column(intidx.SubsetIndex(j))))
		inv.numFreeElements[j] = size
		inv.numNonOvercovered[j] = size
	}
	inv.isRedundant = bitset.New(uint(n))
	inv.newlyRemovableSubsets = nil
	inv.newlyNonRemovable = nil
	inv.consistencyLevel = Redundancy
}

// Model returns the underlying model.
func (inv *SetCoverInvariant) Model() *model.Model { return inv.m }

// Cost returns the total cost of currently selected subsets.
func (inv *SetCoverInvariant) Cost() intidx.Cost { return inv.cost }

// NumUncoveredElements returns how many elements have coverage zero. Valid
// at FreeAndUncovered or above.
func (inv *SetCoverInvariant) NumUncoveredElements() intidx.BaseInt { return inv.numUncoveredElements }

// IsSelected reports whether subset j is currently selected.
func (inv *SetCoverInvariant) IsSelected(j intidx.SubsetIndex) bool { return inv.isSelected.Test(uint(j)) }

// Coverage returns how many selected subsets cover element i.
func (inv *SetCoverInvariant) Coverage(i intidx.ElementIndex) intidx.BaseInt { return inv.coverage[i] }

// NumFreeElements returns how many elements of subset j are currently
// uncovered. Valid at FreeAndUncovered or above.
func (inv *SetCoverInvariant) NumFreeElements(j intidx.SubsetIndex) intidx.BaseInt {
	return inv.numFreeElements[j]
}

// IsRedundant reports whether subset j could be deselected right now
// without uncovering any element. Valid at Redundancy only.
func (inv *SetCoverInvariant) IsRedundant(j intidx.SubsetIndex) bool { return inv.isRedundant.Test(uint(j)) }

// Trace returns the recorded decision sequence since the last Initialize,
// LoadSolution, or ClearTrace.
func (inv *SetCoverInvariant) Trace() []Decision { return inv.trace }

// ClearTrace discards the recorded decision sequence without touching any
// other state.
func (inv *SetCoverInvariant) ClearTrace() { inv.trace = inv.trace[:0] }

// NewlyRemovableSubsets returns subsets that transitioned from
// non-redundant to redundant since the last ClearRemovabilityInformation.
func (inv *SetCoverInvariant) NewlyRemovableSubsets() []intidx.SubsetIndex { return inv.newlyRemovableSubsets }

// NewlyNonRemovableSubsets returns subsets that transitioned from
// redundant to non-redundant since the last ClearRemovabilityInformation.
func (inv *SetCoverInvariant) NewlyNonRemovableSubsets() []intidx.SubsetIndex { return inv.newlyNonRemovable }

// ClearRemovabilityInformation drops the accumulated
// newly-(non)removable-subset lists without touching is_redundant itself.
func (inv *SetCoverInvariant) ClearRemovabilityInformation() {
	inv.newlyRemovableSubsets = nil
	inv.newlyNonRemovable = nil
}

// Select marks subset j selected (no-op if already selected), updating
// bookkeeping up to at most level. There is no explicit range check: an
// out-of-range j panics with a runtime index error from the model lookup.
func (inv *SetCoverInvariant) Select(j intidx.SubsetIndex, level ConsistencyLevel) {
	inv.checkNotStale("SetCoverInvariant.Select")
	if inv.isSelected.Test(uint(j)) {
		return
	}
	inv.isSelected.Set(uint(j))
	inv.cost += inv.m.SubsetCost(j)
	inv.trace = append(inv.trace, NewDecision(j, true))
	for _, e := range inv.m.Column(j) {
		inv.coverage[e]++
		inv.onCoverageIncreased(e, inv.coverage[e], level)
	}
	inv.consistencyLevel = level
}

// Deselect marks subset j deselected (no-op if already deselected),
// updating bookkeeping up to at most level.
func (inv *SetCoverInvariant) Deselect(j intidx.SubsetIndex, level ConsistencyLevel) {
	inv.checkNotStale("SetCoverInvariant.Deselect")
	if !inv.isSelected.Test(uint(j)) {
		return
	}
	inv.isSelected.Clear(uint(j))
	inv.cost -= inv.m.SubsetCost(j)
	inv.trace = append(inv.trace, NewDecision(j, false))
	for _, e := range inv.m.Column(j) {
		inv.coverage[e]--
		inv.onCoverageDecreased(e, inv.coverage[e], level)
	}
	inv.consistencyLevel = level
}

// Flip toggles subset j's selection state.
func (inv *SetCoverInvariant) Flip(j intidx.SubsetIndex, level ConsistencyLevel) {
	if inv.isSelected.Test(uint(j)) {
		inv.Deselect(j, level)
	} else {
		inv.Select(j, level)
	}
}

// onCoverageIncreased handles the coverage[e] transition to newCov (from
// newCov-1) triggered by selecting a subset containing e.
func (inv *SetCoverInvariant) onCoverageIncreased(e intidx.ElementIndex, newCov intidx.BaseInt, level ConsistencyLevel) {
	if level >= FreeAndUncovered && newCov == 1 {
		inv.numUncoveredElements--
		for _, jp := range inv.m.Row(e) {
			inv.numFreeElements[jp]--
		}
	}
	if level >= Redundancy && newCov == 2 {
		for _, jp := range inv.m.Row(e) {
			inv.numNonOvercovered[jp]--
			if inv.numNonOvercovered[jp] == 0 {
				inv.markRedundant(jp, true)
			}
		}
	}
}

// onCoverageDecreased handles the coverage[e] transition to newCov (from
// newCov+1) triggered by deselecting a subset containing e.
func (inv *SetCoverInvariant) onCoverageDecreased(e intidx.ElementIndex, newCov intidx.BaseInt, level ConsistencyLevel) {
	if level >= FreeAndUncovered && newCov == 0 {
		inv.numUncoveredElements++
		for _, jp := range inv.m.Row(e) {
			inv.numFreeElements[jp]++
		}
	}
	if level >= Redundancy && newCov == 1 {
		for _, jp := range inv.m.Row(e) {
			wasZero := inv.numNonOvercovered[jp] == 0
			inv.numNonOvercovered[jp]++
			if wasZero {
				inv.markRedundant(jp, false)
			}
		}
	}
}

func (inv *SetCoverInvariant) markRedundant(j intidx.SubsetIndex, redundant bool) {
	if inv.isRedundant.Test(uint(j)) == redundant {
		return
	}
	if redundant {
		inv.isRedundant.Set(uint(j))
		inv.newlyRemovableSubsets = append(inv.newlyRemovableSubsets, j)
	} else {
		inv.isRedundant.Clear(uint(j))
		inv.newlyNonRemovable = append(inv.newlyNonRemovable, j)
	}
}

// ComputeIsRedundant recomputes, from current coverage alone (ignoring the
// cached is_redundant bit), whether subset j could be deselected without
// uncovering anything. O(|S_j|).
func (inv *SetCoverInvariant) ComputeIsRedundant(j intidx.SubsetIndex) bool {
	for _, e := range inv.m.Column(j) {
		if inv.coverage[e] <= 1 {
			return false
		}
	}
	return true
}

// ComputeNumFreeElements recomputes, from current coverage alone, how many
// elements of subset j are uncovered. O(|S_j|).
func (inv *SetCoverInvariant) ComputeNumFreeElements(j intidx.SubsetIndex) intidx.BaseInt {
	var n intidx.BaseInt
	for _, e := range inv.m.Column(j) {
		if inv.coverage[e] == 0 {
			n++
		}
	}
	return n
}

// ComputeCoverageInFocus returns, for every element, how many of the
// selected subsets within focus cover it — ignoring selected subsets
// outside focus entirely. Used by sub-model search restricted to a subset
// of columns.
func (inv *SetCoverInvariant) ComputeCoverageInFocus(focus []intidx.SubsetIndex) []intidx.BaseInt {
	out := make([]intidx.BaseInt, inv.m.NumElements())
	for _, j := range focus {
		if !inv.isSelected.Test(uint(j)) {
			continue
		}
		for _, e := range inv.m.Column(j) {
			out[e]++
		}
	}
	return out
}

// LoadSolution replaces the current selection wholesale and recomputes
// bookkeeping up to CostAndCoverage (the cheapest level a bulk load can
// cheaply guarantee; call Recompute for a higher level afterwards). Clears
// the trace and any pending removability information.
func (inv *SetCoverInvariant) LoadSolution(selected []bool) {
	n := int(inv.m.NumSubsets())
	inv.isSelected = bitset.New(uint(n))
	inv.cost = 0
	inv.trace = inv.trace[:0]
	inv.newlyRemovableSubsets = nil
	inv.newlyNonRemovable = nil
	inv.coverage = make([]intidx.BaseInt, inv.m.NumElements())
	for j, sel := range selected {
		if !sel {
			continue
		}
		inv.isSelected.Set(uint(j))
		inv.cost += inv.m.SubsetCost(intidx.SubsetIndex(j))
		for _, e := range inv.m.Column(intidx.SubsetIndex(j)) {
			inv.coverage[e]++
		}
	}
	inv.consistencyLevel = CostAndCoverage
	inv.Recompute(CostAndCoverage)
}

// ExportSolution produces the canonical solution schema for the current
// selection.
func (inv *SetCoverInvariant) ExportSolution() *model.SetCoverSolutionSchema {
	selected := make([]bool, inv.m.NumSubsets())
	for j := range selected {
		selected[j] = inv.isSelected.Test(uint(j))
	}
	return model.ExportSolution(selected, float64(inv.cost))
}

// ImportSolution loads a canonical solution schema (equivalent to
// LoadSolution(model.ImportSolution(s))).
func (inv *SetCoverInvariant) ImportSolution(s *model.SetCoverSolutionSchema) {
	inv.LoadSolution(model.ImportSolution(s))
}

// Recompute rebuilds every field up to target from is_selected and the
// model alone, discarding whatever was previously cached. Used both to
// raise the maintained consistency level and as a from-scratch sanity
// rebuild.
func (inv *SetCoverInvariant) Recompute(target ConsistencyLevel) {
	n := int(inv.m.NumSubsets())
	e := int(inv.m.NumElements())

	cost := intidx.Cost(0)
	coverage := make([]intidx.BaseInt, e)
	for j := 0; j < n; j++ {
		if !inv.isSelected.Test(uint(j)) {
			continue
		}
		jIdx := intidx.SubsetIndex(j)
		cost += inv.m.SubsetCost(jIdx)
		for _, el := range inv.m.Column(jIdx) {
			coverage[el]++
		}
	}
	inv.cost = cost
	inv.coverage = coverage

	if target < FreeAndUncovered {
		inv.consistencyLevel = target
		return
	}

	uncovered := intidx.BaseInt(0)
	free := make([]intidx.BaseInt, n)
	for i, c := range coverage {
		if c == 0 {
			uncovered++
			for _, jp := range inv.m.Row(intidx.ElementIndex(i)) {
				free[jp]++
			}
		}
	}
	inv.numUncoveredElements = uncovered
	inv.numFreeElements = free

	if target < Redundancy {
		inv.consistencyLevel = target
		return
	}

	nonOver := make([]intidx.BaseInt, n)
	for i, c := range coverage {
		if c <= 1 {
			for _, jp := range inv.m.Row(intidx.ElementIndex(i)) {
				nonOver[jp]++
			}
		}
	}
	inv.numNonOvercovered = nonOver
	inv.isRedundant = bitset.New(uint(n))
	for j := 0; j < n; j++ {
		if nonOver[j] == 0 {
			inv.isRedundant.Set(uint(j))
		}
	}
	inv.consistencyLevel = target
}

// CheckConsistency recomputes every field from scratch into a scratch
// invariant and reports whether the cached state at the given level
// matches. An expensive audit, intended for tests and debug builds.
func (inv *SetCoverInvariant) CheckConsistency(level ConsistencyLevel) bool {
	scratch := &SetCoverInvariant{m: inv.m, isSelected: inv.isSelected}
	scratch.Recompute(level)
	if scratch.cost != inv.cost {
		return false
	}
	for i := range scratch.coverage {
		if scratch.coverage[i] != inv.coverage[i] {
			return false
		}
	}
	if level < FreeAndUncovered {
		return true
	}
	if scratch.numUncoveredElements != inv.numUncoveredElements {
		return false
	}
	for j := range scratch.numFreeElements {
		if scratch.numFreeElements[j] != inv.numFreeElements[j] {
			return false
		}
	}
	if level < Redundancy {
		return true
	}
	for j := range scratch.numNonOvercovered {
		if (scratch.isRedundant.Test(uint(j))) != inv.isRedundant.Test(uint(j)) {
			return false
		}
	}
	return true
}

// CompressTrace replaces Trace with the minimal equivalent sequence: each
// subset that is currently selected appears exactly once, as a positive
// decision, in the order it was first selected; deselected subsets and
// every decision about a subset not currently selected are dropped.
func (inv *SetCoverInvariant) CompressTrace() {
	emitted := make(map[intidx.SubsetIndex]bool)
	compact := make([]Decision, 0, int(inv.isSelected.Count()))
	for _, d := range inv.trace {
		j := d.Subset()
		if emitted[j] || !inv.isSelected.Test(uint(j)) {
			continue
		}
		emitted[j] = true
		compact = append(compact, NewDecision(j, true))
	}
	inv.trace = compact
}

// checkNotStale panics, when scerr.Debug is enabled, if the underlying
// model has been mutated since this invariant was built or last
// recomputed. A no-op otherwise, since the check itself walks nothing
// expensive (a single int64 compare) but callers still pay a function call
// on every Select/Deselect in production builds.
func (inv *SetCoverInvariant) checkNotStale(op string) {
	if !scerr.Debug {
		return
	}
	if inv.m.Timestamp() != inv.modelTimestamp {
		scerr.Panic(op, "invariant was built against an earlier model state; call Initialize again after mutating the model")
	}
}
