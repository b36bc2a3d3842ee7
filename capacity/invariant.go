/*
CapacityInvariant — Incremental Side-Constraint Feasibility

Description:
  Tracks whether a CapacityModel's bound currently holds as subsets of a
  shared model.Model are selected and deselected one at a time. It holds
  its own selection bitset independent of any SetCoverInvariant — a
  SetCoverAssignment is what keeps the two in lockstep (see assignment.go)
  — so a CapacityInvariant can equally be driven standalone in a test or a
  solver that never builds a core invariant at all.

Algorithm outline:
  Select/Deselect compute the slack change a full flip of one subset's
  terms would cause (a linear scan of every term, since terms are not
  indexed by subset — a side constraint typically carries far fewer terms
  than the core model has nonzeros, so this is the cheap path, not the
  hot one), check it keeps the running slack within bounds, and only then
  commit the bitset flip and the slack update. A rejected move leaves the
  invariant completely untouched, matching the core invariant's
  occasionally-reject-and-retry usage from the local-search heuristics.

Memory: O(number of subsets) for the selection bitset; the term scan is
O(number of terms) per call and allocates nothing.
*/
package capacity

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
)

// Invariant tracks one CapacityModel's feasibility over a shared model's
// subset index space.
type Invariant struct {
	model      *CapacityModel
	numSubsets int

	currentSlack CapacityWeight
	isSelected   *bitset.BitSet
}

// NewInvariant builds an invariant over constraint, sized to m's number of
// subsets, with every subset deselected (slack == 0).
func NewInvariant(constraint *CapacityModel, m *model.Model) *Invariant {
	if !constraint.ComputeFeasibility() {
		panic("capacity: constraint is infeasible regardless of assignment")
	}
	inv := &Invariant{model: constraint, numSubsets: int(m.NumSubsets())}
	inv.Clear()
	return inv
}

// Clear resets the invariant to the all-deselected state.
func (inv *Invariant) Clear() {
	inv.currentSlack = 0
	inv.isSelected = bitset.New(uint(inv.numSubsets))
}

// CurrentSlack returns the constraint's current weighted sum over selected
// subsets.
func (inv *Invariant) CurrentSlack() CapacityWeight { return inv.currentSlack }

// IsSelected reports whether subset is currently selected in this
// invariant's own bookkeeping.
func (inv *Invariant) IsSelected(subset intidx.SubsetIndex) bool {
	return inv.isSelected.Test(uint(subset))
}

// computeSlackChange sums every term's weight whose subset matches,
// regardless of direction; the caller adds it when selecting and
// subtracts it when deselecting.
func (inv *Invariant) computeSlackChange(subset intidx.SubsetIndex) CapacityWeight {
	var change CapacityWeight
	for _, t := range inv.model.TermRange() {
		if inv.model.TermSubset(t) == subset {
			change += inv.model.TermWeight(t)
		}
	}
	return change
}

func (inv *Invariant) slackChangeFitsConstraint(slackChange CapacityWeight) bool {
	newSlack := inv.currentSlack + slackChange
	return newSlack >= inv.model.MinimumCapacity() && newSlack <= inv.model.MaximumCapacity()
}

// Select reports whether selecting every term of subset keeps the
// constraint satisfied and, if so, commits the move. If subset is already
// selected the behavior is undefined, matching Deselect's symmetric
// precondition.
func (inv *Invariant) Select(subset intidx.SubsetIndex) bool {
	change := inv.computeSlackChange(subset)
	if !inv.slackChangeFitsConstraint(change) {
		return false
	}
	inv.isSelected.Set(uint(subset))
	inv.currentSlack += change
	return true
}

// CanSelect reports whether Select(subset) would succeed, without
// mutating the invariant.
func (inv *Invariant) CanSelect(subset intidx.SubsetIndex) bool {
	return inv.slackChangeFitsConstraint(inv.computeSlackChange(subset))
}

// Deselect reports whether unselecting every term of subset keeps the
// constraint satisfied and, if so, commits the move. If subset is not
// currently selected the behavior is undefined.
func (inv *Invariant) Deselect(subset intidx.SubsetIndex) bool {
	change := -inv.computeSlackChange(subset)
	if !inv.slackChangeFitsConstraint(change) {
		return false
	}
	inv.isSelected.Clear(uint(subset))
	inv.currentSlack += change
	return true
}

// CanDeselect reports whether Deselect(subset) would succeed, without
// mutating the invariant.
func (inv *Invariant) CanDeselect(subset intidx.SubsetIndex) bool {
	return inv.slackChangeFitsConstraint(-inv.computeSlackChange(subset))
}

// Flip toggles subset's selection state, dispatching to Select or Deselect
// depending on its current state.
func (inv *Invariant) Flip(subset intidx.SubsetIndex) bool {
	if inv.isSelected.Test(uint(subset)) {
		return inv.Deselect(subset)
	}
	return inv.Select(subset)
}

// CanFlip reports whether Flip(subset) would succeed, without mutating
// the invariant.
func (inv *Invariant) CanFlip(subset intidx.SubsetIndex) bool {
	if inv.isSelected.Test(uint(subset)) {
		return inv.CanDeselect(subset)
	}
	return inv.CanSelect(subset)
}
