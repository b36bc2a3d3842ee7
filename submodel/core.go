package submodel

import (
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
)

// CoreModel materializes a compacted Model over a focus of full-model
// columns and the rows still alive, with two-way full<->core index maps.
// Rebuilt from scratch whenever the focus or the fixed-column set
// changes — the compaction itself is cheap relative to running a
// generator or a Lagrangian pass over it.
type CoreModel struct {
	full *model.Model

	focus     []intidx.SubsetIndex
	aliveRows []bool
	fixedFull map[intidx.SubsetIndex]bool
	fixedList []intidx.SubsetIndex
	fixedCost intidx.Cost

	core          *model.Model
	fullToCoreCol map[intidx.SubsetIndex]intidx.SubsetIndex
	coreToFullCol []intidx.SubsetIndex
	fullToCoreRow map[intidx.ElementIndex]intidx.ElementIndex
	coreToFullRow []intidx.ElementIndex
}

// NewCoreModel returns a CoreModel focused on every column of full, with
// every row alive.
func NewCoreModel(full *model.Model) *CoreModel {
	n := int(full.NumSubsets())
	focus := make([]intidx.SubsetIndex, n)
	for j := range focus {
		focus[j] = intidx.SubsetIndex(j)
	}
	aliveRows := make([]bool, full.NumElements())
	for i := range aliveRows {
		aliveRows[i] = true
	}
	cm := &CoreModel{
		full:      full,
		focus:     focus,
		aliveRows: aliveRows,
		fixedFull: map[intidx.SubsetIndex]bool{},
	}
	cm.rebuild()
	return cm
}

// Core returns the current compacted Model. Callers must not mutate it;
// the next FixMoreColumns/SetFocus call replaces it outright.
func (cm *CoreModel) Core() *model.Model { return cm.core }

// ToFull maps a core column index back to its full-model index.
func (cm *CoreModel) ToFull(core intidx.SubsetIndex) intidx.SubsetIndex { return cm.coreToFullCol[core] }

// ToCore maps a full column index to its core index, if it is currently
// in the core.
func (cm *CoreModel) ToCore(full intidx.SubsetIndex) (intidx.SubsetIndex, bool) {
	j, ok := cm.fullToCoreCol[full]
	return j, ok
}

// FullRow maps a core row index back to its full-model element index.
func (cm *CoreModel) FullRow(core intidx.ElementIndex) intidx.ElementIndex { return cm.coreToFullRow[core] }

// CoreRow maps a full element index to its core row index, if it is
// currently alive and present in the core.
func (cm *CoreModel) CoreRow(full intidx.ElementIndex) (intidx.ElementIndex, bool) {
	e, ok := cm.fullToCoreRow[full]
	return e, ok
}

// FixedFullColumns returns every column permanently fixed so far, in
// full-model indices, in fixing order.
func (cm *CoreModel) FixedFullColumns() []intidx.SubsetIndex { return cm.fixedList }

// FixedCost implements View.
func (cm *CoreModel) FixedCost() intidx.Cost { return cm.fixedCost }

// Full returns the underlying full model.
func (cm *CoreModel) Full() *model.Model { return cm.full }

// FixMoreColumns implements View.
func (cm *CoreModel) FixMoreColumns(cols []intidx.SubsetIndex) {
	for _, j := range cols {
		if cm.fixedFull[j] {
			continue
		}
		cm.fixedFull[j] = true
		cm.fixedList = append(cm.fixedList, j)
		cm.fixedCost += cm.full.SubsetCost(j)
		for _, e := range cm.full.Column(j) {
			cm.aliveRows[e] = false
		}
	}
	kept := cm.focus[:0]
	for _, j := range cm.focus {
		if !cm.fixedFull[j] {
			kept = append(kept, j)
		}
	}
	cm.focus = kept
	cm.rebuild()
}

// SetFocus implements View.
func (cm *CoreModel) SetFocus(cols []intidx.SubsetIndex) {
	filtered := make([]intidx.SubsetIndex, 0, len(cols))
	for _, j := range cols {
		if !cm.fixedFull[j] {
			filtered = append(filtered, j)
		}
	}
	cm.focus = filtered
	cm.rebuild()
}

// rebuild recomputes the compacted core Model and both index maps from
// the current focus and alive-row set.
func (cm *CoreModel) rebuild() {
	touched := make([]bool, len(cm.aliveRows))
	for _, j := range cm.focus {
		for _, e := range cm.full.Column(j) {
			if cm.aliveRows[e] {
				touched[e] = true
			}
		}
	}

	fullToCoreRow := make(map[intidx.ElementIndex]intidx.ElementIndex)
	var coreToFullRow []intidx.ElementIndex
	for e := 0; e < len(cm.aliveRows); e++ {
		if cm.aliveRows[e] && touched[e] {
			ei := intidx.ElementIndex(e)
			fullToCoreRow[ei] = intidx.ElementIndex(len(coreToFullRow))
			coreToFullRow = append(coreToFullRow, ei)
		}
	}

	core := model.New()
	fullToCoreCol := make(map[intidx.SubsetIndex]intidx.SubsetIndex)
	var coreToFullCol []intidx.SubsetIndex
	focus := append([]intidx.SubsetIndex(nil), cm.focus...)
	sort.Slice(focus, func(a, b int) bool { return focus[a] < focus[b] })
	for _, j := range focus {
		var mapped []intidx.ElementIndex
		for _, e := range cm.full.Column(j) {
			if ce, ok := fullToCoreRow[e]; ok {
				mapped = append(mapped, ce)
			}
		}
		if len(mapped) == 0 {
			continue
		}
		cj := core.AddEmptySubset(cm.full.SubsetCost(j))
		for _, ce := range mapped {
			core.AddElementToSubset(ce, cj)
		}
		fullToCoreCol[j] = cj
		coreToFullCol = append(coreToFullCol, j)
	}
	if len(coreToFullRow) > 0 {
		core.ResizeNumElements(intidx.BaseInt(len(coreToFullRow)))
	}
	core.SortElementsInSubsets()
	_ = core.CreateSparseRowView()

	cm.core = core
	cm.fullToCoreCol = fullToCoreCol
	cm.coreToFullCol = coreToFullCol
	cm.fullToCoreRow = fullToCoreRow
	cm.coreToFullRow = coreToFullRow
}
