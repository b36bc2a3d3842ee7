// Package capacity implements the side-constraint layer that sits beside
// the core set-cover model: a CapacityModel declares a linear bound over a
// sparse set of (subset, element, weight) terms, a CapacityInvariant tracks
// its incremental feasibility as subsets are selected and deselected, and
// SetCoverAssignment ties a primary invariant together with zero or more
// capacity side constraints behind one SetValue call.
/*
CapacityModel — Linear Side Constraint Over Sparse Terms

Description:
  A capacity constraint bounds a weighted sum over a sparse list of
  (subset, element, weight) terms: min_capacity <= sum(weight) <=
  max_capacity, where the sum ranges over every term whose subset is
  currently selected. It does not reference the core SetCoverInvariant's
  cost or coverage at all — it is an independent linear inequality that
  happens to share the same subset index space, letting a caller express
  things the core model cannot: per-vehicle payload limits, a shared
  resource pool split across subsets, mutual-exclusion pairs (a 0/1
  capacity with one term per competing subset), and so on.

Use cases:
  - A single resource shared across a group of subsets (WithMaximumWeight).
  - A minimum-utilization floor, e.g. "at least one of these three must be
    picked" via WithMinimumWeight with unit weights and max=+Inf.
  - Mutual exclusion: two terms of weight 1 each, max=1.

Memory: O(number of terms); no per-subset or per-element index is built
here (CapacityInvariant builds its own scan, see that file's outline).
*/
package capacity

import (
	"math"

	"github.com/katalvlaran/setcover/intidx"
)

// CapacityWeight is the weight type for a capacity term and its bounds.
type CapacityWeight = float64

// CapacityModel is one linear side constraint: a sparse list of terms and
// the [MinimumCapacity, MaximumCapacity] bound their selected weight must
// fall within.
type CapacityModel struct {
	subsets  []intidx.SubsetIndex
	elements []intidx.ElementIndex
	weights  []CapacityWeight

	minCapacity CapacityWeight
	maxCapacity CapacityWeight
}

// New builds an empty capacity constraint with the given bounds. At least
// one bound must be finite; a model with both bounds infinite constrains
// nothing and is never useful.
func New(minCapacity, maxCapacity CapacityWeight) *CapacityModel {
	if math.IsInf(minCapacity, -1) && math.IsInf(maxCapacity, 1) {
		panic("capacity: at least one of minCapacity, maxCapacity must be finite")
	}
	return &CapacityModel{minCapacity: minCapacity, maxCapacity: maxCapacity}
}

// WithMinimumWeight builds a one-sided constraint: selected weight must be
// at least minCapacity, with no upper bound.
func WithMinimumWeight(minCapacity CapacityWeight) *CapacityModel {
	return New(minCapacity, math.Inf(1))
}

// WithMaximumWeight builds a one-sided constraint: selected weight must be
// at most maxCapacity, with no lower bound.
func WithMaximumWeight(maxCapacity CapacityWeight) *CapacityModel {
	return New(math.Inf(-1), maxCapacity)
}

// NumTerms returns the number of (subset, element, weight) terms added so
// far.
func (m *CapacityModel) NumTerms() int { return len(m.subsets) }

// TermRange iterates every term index in [0, NumTerms()).
func (m *CapacityModel) TermRange() []intidx.CapacityTermIndex {
	return intidx.Range(intidx.CapacityTermIndex(m.NumTerms()))
}

// AddTerm appends one term to the constraint: weight contributes to the
// sum whenever subset is selected. element is carried for bookkeeping
// parity with the term's origin (which row of the core model it covers)
// but plays no role in feasibility, which depends only on subset
// selection.
func (m *CapacityModel) AddTerm(subset intidx.SubsetIndex, element intidx.ElementIndex, weight CapacityWeight) {
	m.subsets = append(m.subsets, subset)
	m.elements = append(m.elements, element)
	m.weights = append(m.weights, weight)
}

// ReserveNumTerms grows the term slices' capacity ahead of a known number
// of AddTerm calls.
func (m *CapacityModel) ReserveNumTerms(n int) {
	if cap(m.subsets) >= n {
		return
	}
	grown := make([]intidx.SubsetIndex, len(m.subsets), n)
	copy(grown, m.subsets)
	m.subsets = grown

	grownE := make([]intidx.ElementIndex, len(m.elements), n)
	copy(grownE, m.elements)
	m.elements = grownE

	grownW := make([]CapacityWeight, len(m.weights), n)
	copy(grownW, m.weights)
	m.weights = grownW
}

// TermSubset returns the term's subset.
func (m *CapacityModel) TermSubset(t intidx.CapacityTermIndex) intidx.SubsetIndex { return m.subsets[t] }

// TermElement returns the term's element.
func (m *CapacityModel) TermElement(t intidx.CapacityTermIndex) intidx.ElementIndex {
	return m.elements[t]
}

// TermWeight returns the term's weight.
func (m *CapacityModel) TermWeight(t intidx.CapacityTermIndex) CapacityWeight { return m.weights[t] }

// MinimumCapacity returns the lower bound.
func (m *CapacityModel) MinimumCapacity() CapacityWeight { return m.minCapacity }

// MaximumCapacity returns the upper bound.
func (m *CapacityModel) MaximumCapacity() CapacityWeight { return m.maxCapacity }

// SetMinimumCapacity replaces the lower bound.
func (m *CapacityModel) SetMinimumCapacity(minCapacity CapacityWeight) { m.minCapacity = minCapacity }

// SetMaximumCapacity replaces the upper bound.
func (m *CapacityModel) SetMaximumCapacity(maxCapacity CapacityWeight) { m.maxCapacity = maxCapacity }

// ComputeFeasibility reports whether any assignment could possibly satisfy
// this constraint, ignoring the core model entirely: it sums every
// negative-weight term into a minimum activation and every non-negative
// one into a maximum activation, then checks the two extremes against the
// bounds. A model with no terms is feasible exactly when 0 falls within
// [minCapacity, maxCapacity].
func (m *CapacityModel) ComputeFeasibility() bool {
	if len(m.weights) == 0 {
		return m.minCapacity <= 0 && m.maxCapacity >= 0
	}
	var minActivation, maxActivation CapacityWeight
	for _, w := range m.weights {
		if w < 0 {
			minActivation += w
		} else {
			maxActivation += w
		}
	}
	return minActivation <= m.maxCapacity && maxActivation >= m.minCapacity
}
