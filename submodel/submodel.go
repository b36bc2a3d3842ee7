// Package submodel restricts a full weighted set-cover Model to a
// working subset of columns and rows — a "core" — so the CFT engine can
// iterate over a much smaller matrix while periodically re-pricing the
// full model to check nothing important was left out of focus.
/*
Core/View — Focused Working Subsets Of A Full Model

Description:
  Two implementations of the same focus/fixing contract. SubModelView is
  the lightweight one: it never copies the matrix, only tracks which
  columns are still free, which rows are still alive (uncovered and not
  permanently fixed away), and the resulting per-column intersection
  size with the alive rows. CoreModel is the heavier one: it actually
  materializes a compacted Model over the current focus/alive-row set
  plus two-way full<->core index maps, rebuilt from scratch whenever the
  focus or fixed-column set changes.

Algorithm outline (CoreModel.rebuild):
 1. Mark every row touched by a focused column and still alive.
 2. Assign core row indices densely, in full-row order.
 3. For each focused column, remap its surviving elements into core row
    indices; skip columns left with zero elements (they contribute
    nothing to the core and would only waste space).
 4. Build the resulting Model's row view once all columns are added.

Memory: O(|focus| + |alive rows| + nnz of the surviving incidences).
*/
package submodel

import (
	"github.com/katalvlaran/setcover/intidx"
)

// View is the shared focus/fixing contract both SubModelView and
// CoreModel satisfy.
type View interface {
	// FixMoreColumns marks every column in cols as permanently selected:
	// its cost is folded into FixedCost, it is dropped from the focus,
	// and every element it covers is removed from further consideration.
	FixMoreColumns(cols []intidx.SubsetIndex)
	// SetFocus replaces the working column set with cols (already-fixed
	// columns are silently excluded) and recomputes derived state.
	SetFocus(cols []intidx.SubsetIndex)
	// FixedCost returns the running total cost of permanently fixed
	// columns, to be added to any cost computed over the current view.
	FixedCost() intidx.Cost
}
