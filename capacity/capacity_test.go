package capacity_test

import (
	"testing"

	"github.com/katalvlaran/setcover/capacity"
	"github.com/katalvlaran/setcover/invariant"
	"github.com/katalvlaran/setcover/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// compatibilityModel: two subsets both covering the same single element,
// mirroring a "choose either, not both" side constraint.
func compatibilityModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	s1 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s1)
	m.ResizeNumElements(1)
	return m
}

func TestCapacityModel_ComputeFeasibility_TrueForSatisfiableBound(t *testing.T) {
	m := capacity.New(0, 1)
	m.AddTerm(0, 0, 1)
	m.AddTerm(1, 0, 1)
	assert.True(t, m.ComputeFeasibility())
}

func TestCapacityModel_ComputeFeasibility_FalseWhenBoundsExcludeEveryActivation(t *testing.T) {
	m := capacity.New(5, 10)
	m.AddTerm(0, 0, 1)
	m.AddTerm(1, 0, 1)
	assert.False(t, m.ComputeFeasibility())
}

func TestCapacityModel_ComputeFeasibility_NoTermsChecksZeroAgainstBounds(t *testing.T) {
	assert.True(t, capacity.New(-1, 1).ComputeFeasibility())
	assert.False(t, capacity.New(1, 2).ComputeFeasibility())
}

func TestCapacityInvariant_Select_RejectsMoveThatWouldViolateMutualExclusion(t *testing.T) {
	sc := compatibilityModel(t)
	cm := capacity.New(0, 1)
	cm.AddTerm(0, 0, 1)
	cm.AddTerm(1, 0, 1)
	require.True(t, cm.ComputeFeasibility())

	cinv := capacity.NewInvariant(cm, sc)
	assert.True(t, cinv.CanSelect(0))
	assert.True(t, cinv.CanSelect(1))

	assert.True(t, cinv.Select(0))
	assert.True(t, cinv.CanDeselect(0))
	assert.False(t, cinv.CanSelect(1))
	assert.False(t, cinv.Select(1))

	assert.True(t, cinv.Deselect(0))
	assert.True(t, cinv.CanSelect(0))
	assert.True(t, cinv.CanSelect(1))
	assert.True(t, cinv.Select(1))
	assert.False(t, cinv.CanSelect(0))
	assert.True(t, cinv.CanDeselect(1))
}

func TestCapacityInvariant_Flip_DispatchesToSelectOrDeselectByCurrentState(t *testing.T) {
	sc := compatibilityModel(t)
	cm := capacity.New(0, 1)
	cm.AddTerm(0, 0, 1)
	cm.AddTerm(1, 0, 1)
	cinv := capacity.NewInvariant(cm, sc)

	assert.True(t, cinv.CanFlip(0))
	assert.True(t, cinv.Flip(0))
	assert.True(t, cinv.IsSelected(0))
	assert.False(t, cinv.CanFlip(1)) // would push activation to 2, above max

	assert.True(t, cinv.Flip(0))
	assert.False(t, cinv.IsSelected(0))
}

func basicAssignmentModel(t *testing.T) *model.Model {
	t.Helper()
	// 3 elements, 4 unit-cost subsets. Optimal cover: subsets 0 and 1, cost 2.
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	s1 := m.AddEmptySubset(1)
	m.AddElementToSubset(1, s1)
	m.AddElementToSubset(2, s1)
	s2 := m.AddEmptySubset(1)
	m.AddElementToSubset(1, s2)
	s3 := m.AddEmptySubset(1)
	m.AddElementToSubset(2, s3)
	m.ResizeNumElements(3)
	require.True(t, m.ComputeFeasibility())
	return m
}

func TestAssignment_New_StartsAtZeroCostWithEverythingDeselected(t *testing.T) {
	m := model.New()
	s0 := m.AddEmptySubset(1)
	m.AddElementToSubset(0, s0)
	m.ResizeNumElements(1)

	a := capacity.NewAssignment(m)
	assert.True(t, a.CheckConsistency())
	assert.EqualValues(t, 0, a.Cost())
	assert.Equal(t, []bool{false}, a.Assignment())
}

func TestAssignment_SetValue_TracksCostAcrossSelectAndDeselect(t *testing.T) {
	m := basicAssignmentModel(t)
	a := capacity.NewAssignment(m)

	a.SetValue(0, true, invariant.Inconsistent)
	a.SetValue(1, true, invariant.Inconsistent)
	assert.True(t, a.CheckConsistency())
	assert.EqualValues(t, 2, a.Cost())
	assert.Equal(t, []bool{true, true, false, false}, a.Assignment())

	a.SetValue(1, false, invariant.Inconsistent)
	assert.True(t, a.CheckConsistency())
	assert.EqualValues(t, 1, a.Cost())
	assert.Equal(t, []bool{true, false, false, false}, a.Assignment())
}

func TestAssignment_SetValue_DrivesAttachedPrimaryInvariant(t *testing.T) {
	m := basicAssignmentModel(t)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())

	a := capacity.NewAssignment(m)
	inv := invariant.New(m)
	a.AttachInvariant(inv)

	assert.Equal(t, []bool{false, false, false, false}, a.Assignment())
	assert.EqualValues(t, 3, inv.NumUncoveredElements())

	a.SetValue(0, true, invariant.Redundancy)
	a.SetValue(1, true, invariant.Redundancy)
	assert.EqualValues(t, 0, inv.NumUncoveredElements())
}

func TestAssignment_LoadAssignment_RecomputesCostFromTheGivenVector(t *testing.T) {
	m := basicAssignmentModel(t)
	reference := []bool{true, false, false, false}

	a := capacity.NewAssignment(m)
	a.LoadAssignment(reference)
	assert.True(t, a.CheckConsistency())
	assert.EqualValues(t, 1, a.Cost())
	assert.Equal(t, reference, a.Assignment())
}

func TestAssignment_ExportImportSolution_RoundTripsCostAndAssignment(t *testing.T) {
	m := basicAssignmentModel(t)

	a1 := capacity.NewAssignment(m)
	a1.SetValue(0, true, invariant.Inconsistent)
	a1.SetValue(1, true, invariant.Inconsistent)
	require.EqualValues(t, 2, a1.Cost())
	require.True(t, a1.CheckConsistency())

	schema := a1.ExportSolution()
	a2 := capacity.NewAssignment(m)
	a2.ImportSolution(schema)

	assert.Equal(t, a1.Cost(), a2.Cost())
	assert.Equal(t, a1.Assignment(), a2.Assignment())
	assert.True(t, a2.CheckConsistency())
}

func TestAssignment_AttachCapacityInvariant_PanicsWithoutPrimaryFirst(t *testing.T) {
	m := basicAssignmentModel(t)
	a := capacity.NewAssignment(m)
	cm := capacity.New(0, 2)
	cm.AddTerm(0, 0, 1)
	ci := capacity.NewInvariant(cm, m)

	assert.Panics(t, func() { a.AttachCapacityInvariant(ci) })
}

func TestAssignment_SetValue_DrivesAttachedCapacitySideConstraint(t *testing.T) {
	m := basicAssignmentModel(t)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())

	a := capacity.NewAssignment(m)
	inv := invariant.New(m)
	a.AttachInvariant(inv)

	cm := capacity.New(0, 1) // at most one of subsets 0,1 selected at once
	cm.AddTerm(0, 0, 1)
	cm.AddTerm(1, 1, 1)
	ci := capacity.NewInvariant(cm, m)
	a.AttachCapacityInvariant(ci)

	a.SetValue(0, true, invariant.CostAndCoverage)
	assert.True(t, ci.IsSelected(0))
	assert.EqualValues(t, 1, ci.CurrentSlack())
}
