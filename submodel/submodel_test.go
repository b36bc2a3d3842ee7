package submodel_test

import (
	"testing"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
	"github.com/katalvlaran/setcover/submodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioB: Elements {0,1,2}. S0={0,1} c=1, S1={1,2} c=1, S2={0,2} c=1.
func scenarioB(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	m.AddElementToSubset(1, s0)
	s1 := m.AddEmptySubset(1)
	m.AddElementToSubset(1, s1)
	m.AddElementToSubset(2, s1)
	s2 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s2)
	m.AddElementToSubset(2, s2)
	m.ResizeNumElements(3)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())
	return m
}

func TestSubModelView_InitialSizesMatchColumns(t *testing.T) {
	m := scenarioB(t)
	v := submodel.NewSubModelView(m)
	for j := intidx.SubsetIndex(0); j < 3; j++ {
		assert.Equal(t, len(m.Column(j)), v.ColumnSize(j))
	}
}

func TestSubModelView_FixMoreColumns_ShrinksOtherSizes(t *testing.T) {
	m := scenarioB(t)
	v := submodel.NewSubModelView(m)
	v.FixMoreColumns([]intidx.SubsetIndex{0}) // fixes {0,1}
	assert.True(t, v.IsFixed(0))
	assert.Equal(t, 0, v.ColumnSize(0))
	assert.False(t, v.RowAlive(0))
	assert.False(t, v.RowAlive(1))
	assert.True(t, v.RowAlive(2))
	// S1={1,2}: only element 2 still alive -> size 1.
	assert.Equal(t, 1, v.ColumnSize(1))
	// S2={0,2}: only element 2 still alive -> size 1.
	assert.Equal(t, 1, v.ColumnSize(2))
	assert.Equal(t, intidx.Cost(1), v.FixedCost())
}

func TestSubModelView_SetFocus_DropsFixedColumns(t *testing.T) {
	m := scenarioB(t)
	v := submodel.NewSubModelView(m)
	v.FixMoreColumns([]intidx.SubsetIndex{0})
	v.SetFocus([]intidx.SubsetIndex{0, 1, 2})
	assert.ElementsMatch(t, []intidx.SubsetIndex{1, 2}, v.Focus())
}

func TestCoreModel_InitialCoreMirrorsFull(t *testing.T) {
	m := scenarioB(t)
	cm := submodel.NewCoreModel(m)
	core := cm.Core()
	assert.Equal(t, m.NumSubsets(), core.NumSubsets())
	assert.Equal(t, m.NumElements(), core.NumElements())
	for j := intidx.SubsetIndex(0); j < 3; j++ {
		full, ok := cm.ToCore(j)
		require.True(t, ok)
		assert.Equal(t, j, cm.ToFull(full))
	}
}

func TestCoreModel_FixMoreColumns_RebuildsCompactedCore(t *testing.T) {
	m := scenarioB(t)
	cm := submodel.NewCoreModel(m)
	cm.FixMoreColumns([]intidx.SubsetIndex{0})

	core := cm.Core()
	// Column 0 is fixed and gone from the core entirely.
	_, ok := cm.ToCore(0)
	assert.False(t, ok)
	// Columns 1 and 2 remain, each now touching only element 2.
	assert.Equal(t, intidx.BaseInt(2), core.NumSubsets())
	assert.Equal(t, intidx.BaseInt(1), core.NumElements())
	assert.Equal(t, intidx.Cost(1), cm.FixedCost())
	assert.Equal(t, []intidx.SubsetIndex{0}, cm.FixedFullColumns())

	j1, ok := cm.ToCore(1)
	require.True(t, ok)
	assert.Equal(t, intidx.ElementIndex(2), cm.FullRow(core.Column(j1)[0]))
}

func TestCoreModel_SetFocus_ExcludesUnfocusedColumns(t *testing.T) {
	m := scenarioB(t)
	cm := submodel.NewCoreModel(m)
	cm.SetFocus([]intidx.SubsetIndex{0, 1})
	_, ok := cm.ToCore(2)
	assert.False(t, ok)
	assert.Equal(t, intidx.BaseInt(2), cm.Core().NumSubsets())
}

func TestFullToCoreModel_UpdateCore_FiresAfterCountdown(t *testing.T) {
	m := scenarioB(t)
	f := submodel.NewFullToCoreModel(m)
	best := submodel.BestState{SolutionFullColumns: []intidx.SubsetIndex{0, 1}, SolutionCost: 2, CoreLowerBound: 0}

	refreshed := false
	for i := 0; i < 11; i++ {
		if f.UpdateCore(best) {
			refreshed = true
			break
		}
	}
	assert.True(t, refreshed)
	assert.NotNil(t, f.DualState().ReducedCosts)
}

func TestFullToCoreModel_UpdateCore_KeepsIncumbentColumnsInNewCore(t *testing.T) {
	m := scenarioB(t)
	f := submodel.NewFullToCoreModel(m)
	best := submodel.BestState{SolutionFullColumns: []intidx.SubsetIndex{0, 1}, SolutionCost: 2, CoreLowerBound: 0}
	for i := 0; i < 10; i++ {
		f.UpdateCore(best)
	}
	_, ok0 := f.ToCore(0)
	_, ok1 := f.ToCore(1)
	assert.True(t, ok0)
	assert.True(t, ok1)
}
