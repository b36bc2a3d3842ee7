package invariant_test

import (
	"testing"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioA: elements {0,1,2}; S0={0} cost1, S1={1,2} cost2, S2={1} cost1,
// S3={2} cost1.
func scenarioA(t *testing.T) *model.Model {
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
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())
	return m
}

// scenarioB: symmetric triangle cover — S0={0,1} S1={1,2} S2={0,2}, each
// cost 1. Selecting any two subsets leaves every element covered exactly
// once; selecting all three makes every subset redundant.
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

func TestInvariant_SelectDeselect_CostAndCoverage(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)

	inv.Select(1, invariant.CostAndCoverage) // S1 = {1,2}, cost 2
	assert.EqualValues(t, 2, inv.Cost())
	assert.EqualValues(t, 1, inv.Coverage(1))
	assert.EqualValues(t, 1, inv.Coverage(2))
	assert.EqualValues(t, 0, inv.Coverage(0))

	inv.Deselect(1, invariant.CostAndCoverage)
	assert.EqualValues(t, 0, inv.Cost())
	assert.EqualValues(t, 0, inv.Coverage(1))
}

func TestInvariant_Select_IsIdempotent(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	inv.Select(0, invariant.Redundancy)
	inv.Select(0, invariant.Redundancy)
	assert.EqualValues(t, 1, inv.Cost())
	assert.Len(t, inv.Trace(), 1)
}

func TestInvariant_FreeAndUncovered(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	assert.EqualValues(t, 3, inv.NumUncoveredElements())
	assert.EqualValues(t, 1, inv.NumFreeElements(0))
	assert.EqualValues(t, 2, inv.NumFreeElements(1))

	inv.Select(1, invariant.FreeAndUncovered) // covers 1,2
	assert.EqualValues(t, 1, inv.NumUncoveredElements())
	assert.EqualValues(t, 1, inv.NumFreeElements(0)) // S0={0} still free
	assert.EqualValues(t, 0, inv.NumFreeElements(1))
	assert.EqualValues(t, 0, inv.NumFreeElements(2)) // S2={1}, now covered
	assert.EqualValues(t, 0, inv.NumFreeElements(3)) // S3={2}, now covered

	inv.Deselect(1, invariant.FreeAndUncovered)
	assert.EqualValues(t, 3, inv.NumUncoveredElements())
	assert.EqualValues(t, 2, inv.NumFreeElements(1))
}

func TestInvariant_Redundancy_Scenario(t *testing.T) {
	m := scenarioB(t)
	inv := invariant.New(m)

	inv.Select(0, invariant.Redundancy)
	inv.Select(1, invariant.Redundancy)
	// S0={0,1}, S1={1,2}: element1 covered twice, 0 and 2 covered once.
	assert.False(t, inv.IsRedundant(0))
	assert.False(t, inv.IsRedundant(1))

	inv.Select(2, invariant.Redundancy)
	// All three selected: every element covered exactly twice, so every
	// subset is individually removable.
	assert.True(t, inv.IsRedundant(0))
	assert.True(t, inv.IsRedundant(1))
	assert.True(t, inv.IsRedundant(2))
	assert.ElementsMatch(t, []intidx.SubsetIndex{0, 1, 2}, inv.NewlyRemovableSubsets())

	inv.ClearRemovabilityInformation()
	assert.Empty(t, inv.NewlyRemovableSubsets())

	inv.Deselect(2, invariant.Redundancy)
	// Dropping S2 uncovers nothing (it was redundant), but now element0 is
	// covered only by S0 and element2 only by S1, so both (and S2 itself,
	// whose redundancy bit is maintained regardless of selection) flip to
	// non-redundant.
	assert.False(t, inv.IsRedundant(0))
	assert.False(t, inv.IsRedundant(1))
	assert.False(t, inv.IsRedundant(2))
	assert.ElementsMatch(t, []intidx.SubsetIndex{0, 1, 2}, inv.NewlyNonRemovableSubsets())
}

func TestInvariant_ComputeIsRedundant_MatchesCached(t *testing.T) {
	m := scenarioB(t)
	inv := invariant.New(m)
	inv.Select(0, invariant.Redundancy)
	inv.Select(1, invariant.Redundancy)
	inv.Select(2, invariant.Redundancy)
	for j := intidx.SubsetIndex(0); j < 3; j++ {
		assert.Equal(t, inv.IsRedundant(j), inv.ComputeIsRedundant(j))
	}
}

func TestInvariant_ComputeNumFreeElements_MatchesCached(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	inv.Select(1, invariant.FreeAndUncovered)
	for j := intidx.SubsetIndex(0); j < 4; j++ {
		assert.Equal(t, inv.NumFreeElements(j), inv.ComputeNumFreeElements(j))
	}
}

func TestInvariant_Flip(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	inv.Flip(0, invariant.CostAndCoverage)
	assert.True(t, inv.IsSelected(0))
	inv.Flip(0, invariant.CostAndCoverage)
	assert.False(t, inv.IsSelected(0))
}

func TestInvariant_CompressTrace(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	inv.Select(0, invariant.Redundancy)
	inv.Select(1, invariant.Redundancy)
	inv.Deselect(0, invariant.Redundancy)
	inv.Select(2, invariant.Redundancy)
	inv.Select(0, invariant.Redundancy)

	inv.CompressTrace()
	var subsets []intidx.SubsetIndex
	for _, d := range inv.Trace() {
		assert.True(t, d.Selected())
		subsets = append(subsets, d.Subset())
	}
	assert.ElementsMatch(t, []intidx.SubsetIndex{0, 1, 2}, subsets)
}

func TestInvariant_LoadSolution_ExportImportRoundTrip(t *testing.T) {
	m := scenarioA(t)
	inv := invariant.New(m)
	inv.LoadSolution([]bool{true, false, true, false})
	assert.EqualValues(t, 2, inv.Cost()) // S0 cost1 + S2 cost1

	schema := inv.ExportSolution()
	other := invariant.New(m)
	other.ImportSolution(schema)
	assert.Equal(t, inv.Cost(), other.Cost())
	for j := intidx.SubsetIndex(0); j < 4; j++ {
		assert.Equal(t, inv.IsSelected(j), other.IsSelected(j))
	}
}

func TestInvariant_CheckConsistency(t *testing.T) {
	m := scenarioB(t)
	inv := invariant.New(m)
	inv.Select(0, invariant.Redundancy)
	inv.Select(1, invariant.Redundancy)
	assert.True(t, inv.CheckConsistency(invariant.Redundancy))
}

func TestInvariant_Recompute_RaisesLevel(t *testing.T) {
	m := scenarioB(t)
	inv := invariant.New(m)
	inv.Select(0, invariant.CostAndCoverage)
	inv.Select(1, invariant.CostAndCoverage)
	// Free/uncovered and redundancy bookkeeping was never updated at this
	// level; Recompute brings it up to date from scratch.
	inv.Recompute(invariant.Redundancy)
	assert.True(t, inv.CheckConsistency(invariant.Redundancy))
}
