package cft_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/setcover/cft"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/lagrangian"
	"github.com/katalvlaran/setcover/model"
	"github.com/katalvlaran/setcover/scerr"
	"github.com/katalvlaran/setcover/submodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioA: Elements {0,1,2}. S0={0} c=1, S1={1,2} c=2, S2={1} c=1, S3={2} c=1.
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

// knightMoves are the 8 (dr,dc) knight-move offsets.
var knightMoves = [8][2]int{
	{1, 2}, {2, 1}, {-1, 2}, {-2, 1},
	{1, -2}, {2, -1}, {-1, -2}, {-2, -1},
}

// scenarioD: unit-cost knight-cover on a 3x3 board (9 cells -> 9 subsets,
// 9 elements), S_(r,c) covers (r,c) plus every valid knight move from it.
func scenarioD(t *testing.T) *model.Model {
	t.Helper()
	const side = 3
	cell := func(r, c int) intidx.ElementIndex { return intidx.ElementIndex(r*side + c) }
	m := model.New()
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			s := m.AddEmptySubset(1)
			m.AddElementToSubset(cell(r, c), s)
			for _, mv := range knightMoves {
				nr, nc := r+mv[0], c+mv[1]
				if nr >= 0 && nr < side && nc >= 0 && nc < side {
					m.AddElementToSubset(cell(nr, nc), s)
				}
			}
		}
	}
	m.ResizeNumElements(side * side)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())
	return m
}

func TestBoundCBs_Run_NeverExceedsOptimalCost(t *testing.T) {
	m := scenarioA(t)
	u := lagrangian.New(m).InitializeMultipliers()
	b := cft.NewBoundCBs(m, 1e-6, 30)
	best, bestU, bestRC, iterations := b.Run(context.Background(), u, 3)
	assert.Greater(t, iterations, 0)
	assert.LessOrEqual(t, best, 3.0)
	assert.Len(t, bestU, 3)
	assert.Len(t, bestRC, 4)
}

func TestHeuristicCBs_Run_FindsOptimalCover(t *testing.T) {
	m := scenarioA(t)
	u := make([]float64, 3)
	var h cft.HeuristicCBs
	sol := h.Run(m, u, []intidx.SubsetIndex{0, 1, 2, 3})
	require.True(t, sol.Selected[0])
	require.True(t, sol.Selected[1])
	assert.EqualValues(t, 3, sol.Cost)
}

func TestEngine_RunThreePhase_ReachesKnownOptimalCost(t *testing.T) {
	e := cft.New(scenarioA(t))
	result := e.RunThreePhase(context.Background(), 20)
	assert.EqualValues(t, 3, result.BestSolution.Cost)
	assert.True(t, result.BestSolution.Selected[0])
	assert.True(t, result.BestSolution.Selected[1])
}

func TestEngine_RunThreePhase_LowerBoundNeverDropsBelowInitialEstimate(t *testing.T) {
	m := scenarioD(t)

	initial := lagrangian.New(m).ComputeLowerBound(context.Background(), 9)
	require.LessOrEqual(t, initial.BestLowerBound, 9.0)

	e := cft.New(m)
	result := e.RunThreePhase(context.Background(), 30)

	assert.LessOrEqual(t, result.BestLowerBound, float64(result.BestSolution.Cost))
	assert.GreaterOrEqual(t, result.BestLowerBound, initial.BestLowerBound)
}

func TestEngine_RunThreePhase_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := cft.New(scenarioA(t))
	result := e.RunThreePhase(ctx, 20)
	assert.Equal(t, scerr.StatusTimeLimitExceeded, result.Status)
	assert.LessOrEqual(t, result.Iterations, 1)
}

func TestFullToCoreModel_New_BuildsCoreModel(t *testing.T) {
	m := scenarioB(t)
	core := submodel.NewFullToCoreModel(m)
	assert.NotNil(t, core.Core())
}
