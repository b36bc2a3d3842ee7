package model_test

import (
	"testing"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildScenarioA(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	s1 := m.AddEmptySubset(2)
	m.AddElementToSubset(1, s1)
	m.AddElementToSubset(2, s1)
	s2 := m.AddEmptySubset(1)
	m.AddElementToSubset(1, s2)
	s3 := m.AddEmptySubset(1)
	m.AddElementToSubset(2, s3)
	m.ResizeNumElements(3)
	return m
}

func TestModel_BasicShape(t *testing.T) {
	m := buildScenarioA(t)
	assert.EqualValues(t, 4, m.NumSubsets())
	assert.EqualValues(t, 3, m.NumElements())
	assert.EqualValues(t, 5, m.NumNonzeros())
	assert.True(t, m.ComputeFeasibility())
}

func TestModel_RowViewRoundTrip(t *testing.T) {
	m := buildScenarioA(t)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())

	// Reconstructing columns from rows must reproduce the original
	// columns (§8's row-view round-trip property).
	reconstructed := make([][]intidx.ElementIndex, m.NumSubsets())
	for i := intidx.ElementIndex(0); i < intidx.ElementIndex(m.NumElements()); i++ {
		for _, j := range m.Row(i) {
			reconstructed[j] = append(reconstructed[j], i)
		}
	}
	for j := intidx.SubsetIndex(0); j < intidx.SubsetIndex(m.NumSubsets()); j++ {
		assert.Equal(t, m.Column(j), reconstructed[j])
	}
}

func TestModel_CompressedViewsRequireSortedAndRowView(t *testing.T) {
	m := buildScenarioA(t)
	assert.Panics(t, func() { _ = m.CreateCompressedViews() })
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())
	require.NoError(t, m.CreateCompressedViews())
	assert.NotEmpty(t, m.CompressedColumn(0))
	assert.NotEmpty(t, m.CompressedRow(0))
}

// Infeasible model: elements {0,1,2}, subsets S0={0}, S1={2}; element 1 is
// covered by nothing.
func TestModel_ComputeFeasibility_DetectsUncoveredElement(t *testing.T) {
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	s1 := m.AddEmptySubset(1)
	m.AddElementToSubset(2, s1)
	m.ResizeNumElements(3)

	assert.False(t, m.ComputeFeasibility())
	assert.EqualValues(t, 1, m.FirstUncoveredElement())
}

func TestModel_CreateSparseRowView_RejectsUnsortedColumns(t *testing.T) {
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(2, s0)
	m.AddElementToSubset(0, s0) // out of order, never sorted
	err := m.CreateSparseRowView()
	assert.Error(t, err)
}

func TestModel_IntersectingSubsets(t *testing.T) {
	// Scenario B: S0={0,1} S1={1,2} S2={0,2}
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
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())

	got := m.IntersectingSubsets(s0)
	assert.ElementsMatch(t, []intidx.SubsetIndex{s1, s2}, got)
}

func TestModel_SchemaRoundTrip(t *testing.T) {
	m := buildScenarioA(t)
	m.SortElementsInSubsets()
	schema := m.ExportSchema()
	reimported := model.ImportSchema(schema)
	reimported.ResizeNumElements(m.NumElements())
	assert.Equal(t, m.ExportSchema(), reimported.ExportSchema())
}

func TestModel_SolutionSchemaRoundTrip(t *testing.T) {
	selected := []bool{true, false, true, false}
	schema := model.ExportSolution(selected, 2)
	assert.Equal(t, []int64{0, 2}, schema.Subset)
	assert.Equal(t, selected, model.ImportSolution(schema))
}
