/*
SetCoverAssignment — Shared Solution Across One Model And Its Side Constraints

Description:
  Holds one (possibly partial or currently-infeasible) selection over a
  model.Model plus its own cost bookkeeping, independent of any attached
  invariant: an assignment is useful on its own as a plain bool vector with
  a running cost, and becomes the single point of truth a caller mutates
  once a primary SetCoverInvariant and any number of capacity.Invariant
  side constraints are attached to it. SetValue then fans one decision out
  to all of them atomically, so a caller never has to remember to update
  the core invariant and every side constraint separately.

Use cases:
  - Driving a core SetCoverInvariant and one or more capacity constraints
    (vehicle payload, mutual exclusion, resource pool) from one call site.
  - Loading an externally produced solution (LoadAssignment) and checking
    it against the model's costs (CheckConsistency) without touching any
    invariant at all.

Algorithm outline:
  SetValue is idempotent: flipping a subset to the value it already holds
  is a no-op. A genuine flip updates the running cost, then — if a primary
  invariant is attached — drives it via Select/Deselect at the requested
  consistency level, then drives every attached side constraint the same
  way (side constraints carry no consistency level of their own; each
  move updates their running slack in full). A side constraint's rejection is
  silently absorbed here: the assignment still updates the moved subset,
  mirroring the property this mirrors that a CapacityInvariant guards
  feasibility but does not veto the caller's own bookkeeping — a caller
  wanting infeasibility enforced checks CanSelect/CanDeselect up front.

Memory: O(number of subsets) for the selection vector.
*/
package capacity

import (
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
)

// Assignment is a shared selection over one model.Model plus the cost it
// implies, optionally kept in lockstep with a primary SetCoverInvariant
// and any number of capacity side constraints.
type Assignment struct {
	m      *model.Model
	cost   intidx.Cost
	values []bool

	primary         *invariant.SetCoverInvariant
	sideConstraints []*Invariant
}

// NewAssignment builds an all-deselected assignment over m.
func NewAssignment(m *model.Model) *Assignment {
	a := &Assignment{m: m}
	a.Clear()
	return a
}

// Clear resets the assignment to all-deselected, zero cost. Attached
// invariants are left untouched; call Initialize/Clear on them separately
// if they too must be reset.
func (a *Assignment) Clear() {
	a.cost = 0
	a.values = make([]bool, a.m.NumSubsets())
}

// Cost returns the running cost of the current selection.
func (a *Assignment) Cost() intidx.Cost { return a.cost }

// Assignment returns the current per-subset selection, true meaning
// selected. The returned slice is owned by the Assignment; callers must
// not mutate it.
func (a *Assignment) Assignment() []bool { return a.values }

// AttachInvariant attaches the primary SetCoverInvariant this assignment
// drives on every SetValue call. Panics if one is already attached, or if
// the invariant isn't over the same model.
func (a *Assignment) AttachInvariant(inv *invariant.SetCoverInvariant) {
	if a.primary != nil {
		panic("capacity: a primary invariant is already attached")
	}
	if inv.Model() != a.m {
		panic("capacity: the primary invariant is over a different model")
	}
	a.primary = inv
}

// AttachCapacityInvariant attaches a side constraint this assignment
// drives alongside the primary invariant on every SetValue call. The
// primary invariant must be attached first, since a capacity constraint
// with no core invariant to cross-check against is rarely what the caller
// intended.
func (a *Assignment) AttachCapacityInvariant(ci *Invariant) {
	if a.primary == nil {
		panic("capacity: attach the primary invariant before any capacity side constraint")
	}
	a.sideConstraints = append(a.sideConstraints, ci)
}

// SetValue sets subset's selection to isSelected, updating cost and every
// attached invariant. A no-op if subset already holds isSelected.
func (a *Assignment) SetValue(subset intidx.SubsetIndex, isSelected bool, level invariant.ConsistencyLevel) {
	if a.values[subset] == isSelected {
		return
	}
	a.values[subset] = isSelected
	if isSelected {
		a.cost += a.m.SubsetCost(subset)
	} else {
		a.cost -= a.m.SubsetCost(subset)
	}
	if a.primary != nil {
		if isSelected {
			a.primary.Select(subset, level)
		} else {
			a.primary.Deselect(subset, level)
		}
	}
	for _, ci := range a.sideConstraints {
		if isSelected {
			ci.Select(subset)
		} else {
			ci.Deselect(subset)
		}
	}
}

// LoadAssignment replaces the current selection wholesale and recomputes
// cost from it. Attached invariants are not touched; a caller driving a
// primary invariant should route through SetValue instead so the two stay
// in sync.
func (a *Assignment) LoadAssignment(selection []bool) {
	a.values = append([]bool(nil), selection...)
	a.cost = a.computeCost(a.values)
}

// ExportSolution produces the canonical solution representation of the
// current selection.
func (a *Assignment) ExportSolution() *model.SetCoverSolutionSchema {
	return model.ExportSolution(a.values, float64(a.cost))
}

// ImportSolution replaces the current selection from its canonical
// representation and recomputes cost.
func (a *Assignment) ImportSolution(s *model.SetCoverSolutionSchema) {
	a.values = model.ImportSolution(s)
	a.cost = a.computeCost(a.values)
}

// CheckConsistency reports whether the running cost matches what the
// current selection actually costs against the model.
func (a *Assignment) CheckConsistency() bool {
	return a.computeCost(a.values) == a.cost
}

// ComputeCost returns what the current selection actually costs against
// the model, independent of the running cost field.
func (a *Assignment) ComputeCost() intidx.Cost {
	return a.computeCost(a.values)
}

func (a *Assignment) computeCost(selection []bool) intidx.Cost {
	var cost intidx.Cost
	for j, selected := range selection {
		if selected {
			cost += a.m.SubsetCost(intidx.SubsetIndex(j))
		}
	}
	return cost
}
