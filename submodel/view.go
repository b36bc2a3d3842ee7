package submodel

import "github.com/katalvlaran/setcover/intidx"

// SubModelView is a non-materializing focus over a full Model: it keeps
// per-column sizes (restricted to rows still alive) and a row liveness
// vector, without ever copying the matrix. Useful for callers that only
// need degree/size information (e.g. a cheap upper bound pass) and would
// rather not pay CoreModel's rebuild cost.
type SubModelView struct {
	full modelColumns

	focus     []intidx.SubsetIndex
	colSize   []int
	rowAlive  []bool
	fixedFull map[intidx.SubsetIndex]bool
	fixedCost intidx.Cost
}

// modelColumns is the narrow slice of *model.Model that SubModelView
// needs; declared locally so this file has no import cycle concern and
// stays obviously read-only.
type modelColumns interface {
	NumSubsets() intidx.BaseInt
	NumElements() intidx.BaseInt
	Column(intidx.SubsetIndex) []intidx.ElementIndex
	SubsetCost(intidx.SubsetIndex) intidx.Cost
}

// NewSubModelView returns a view over every column of full, with every
// row alive.
func NewSubModelView(full modelColumns) *SubModelView {
	n := int(full.NumSubsets())
	focus := make([]intidx.SubsetIndex, n)
	colSize := make([]int, n)
	for j := 0; j < n; j++ {
		focus[j] = intidx.SubsetIndex(j)
		colSize[j] = len(full.Column(intidx.SubsetIndex(j)))
	}
	rowAlive := make([]bool, full.NumElements())
	for i := range rowAlive {
		rowAlive[i] = true
	}
	return &SubModelView{
		full:      full,
		focus:     focus,
		colSize:   colSize,
		rowAlive:  rowAlive,
		fixedFull: map[intidx.SubsetIndex]bool{},
	}
}

// Focus returns the current working column set, in full-model indices.
func (v *SubModelView) Focus() []intidx.SubsetIndex { return v.focus }

// ColumnSize returns the number of still-alive rows column j intersects.
func (v *SubModelView) ColumnSize(j intidx.SubsetIndex) int { return v.colSize[j] }

// RowAlive reports whether element i is still uncovered and unfixed.
func (v *SubModelView) RowAlive(i intidx.ElementIndex) bool { return v.rowAlive[i] }

// IsFixed reports whether column j has been permanently selected.
func (v *SubModelView) IsFixed(j intidx.SubsetIndex) bool { return v.fixedFull[j] }

// FixedCost implements View.
func (v *SubModelView) FixedCost() intidx.Cost { return v.fixedCost }

// FixMoreColumns implements View: sizes of newly fixed columns drop to
// zero, every row they cover dies, and every other column's size shrinks
// to match.
func (v *SubModelView) FixMoreColumns(cols []intidx.SubsetIndex) {
	for _, j := range cols {
		if v.fixedFull[j] {
			continue
		}
		v.fixedFull[j] = true
		v.fixedCost += v.full.SubsetCost(j)
		v.colSize[j] = 0
		for _, e := range v.full.Column(j) {
			v.rowAlive[e] = false
		}
	}
	v.pruneFocus()
	v.recomputeSizes()
}

// SetFocus implements View: replaces the working set (dropping any
// already-fixed columns) and recomputes intersection sizes against the
// surviving rows.
func (v *SubModelView) SetFocus(cols []intidx.SubsetIndex) {
	filtered := make([]intidx.SubsetIndex, 0, len(cols))
	for _, j := range cols {
		if !v.fixedFull[j] {
			filtered = append(filtered, j)
		}
	}
	v.focus = filtered
	v.recomputeSizes()
}

func (v *SubModelView) pruneFocus() {
	kept := v.focus[:0]
	for _, j := range v.focus {
		if !v.fixedFull[j] {
			kept = append(kept, j)
		}
	}
	v.focus = kept
}

func (v *SubModelView) recomputeSizes() {
	for _, j := range v.focus {
		if v.fixedFull[j] {
			v.colSize[j] = 0
			continue
		}
		count := 0
		for _, e := range v.full.Column(j) {
			if v.rowAlive[e] {
				count++
			}
		}
		v.colSize[j] = count
	}
}
