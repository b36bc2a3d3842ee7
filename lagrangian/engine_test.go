package lagrangian_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/setcover/lagrangian"
	"github.com/katalvlaran/setcover/model"
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

func TestInitializeMultipliers_MinRatioPerElement(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	u := e.InitializeMultipliers()
	require.Len(t, u, 3)
	// element0: only S0 (cost1/size1=1) -> u0=1
	assert.InDelta(t, 1.0, u[0], 1e-9)
	// element1: S1 (2/2=1), S2 (1/1=1) -> u1=1
	assert.InDelta(t, 1.0, u[1], 1e-9)
	// element2: S1 (2/2=1), S3 (1/1=1) -> u2=1
	assert.InDelta(t, 1.0, u[2], 1e-9)
}

func TestComputeReducedCosts_MatchesParallel(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	u := []float64{0.5, 0.5, 0.5}
	seq := e.ComputeReducedCosts(u)
	par, err := e.ParallelComputeReducedCosts(u, 4)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
	// S0={0} cost1: 1-0.5=0.5. S1={1,2} cost2: 2-1=1. S2={1} cost1: 1-0.5=0.5.
	// S3={2} cost1: 1-0.5=0.5.
	assert.InDelta(t, 0.5, seq[0], 1e-9)
	assert.InDelta(t, 1.0, seq[1], 1e-9)
}

func TestComputeSubgradient_MatchesParallel(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	rc := []float64{-0.5, 1, -0.5, -0.5}
	seq := e.ComputeSubgradient(rc)
	par, err := e.ParallelComputeSubgradient(rc, 4)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
}

// TestLagrangianDuality checks L(u) <= cost(S) for a feasible cover on
// several multiplier vectors, on the model the duality property must hold
// for regardless of how u is chosen.
func TestLagrangianDuality(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	feasibleCost := 3.0 // S0+S1 as in the greedy scenario

	for _, u := range [][]float64{
		{0, 0, 0},
		e.InitializeMultipliers(),
		{10, 10, 10},
		{0.3, 0.7, 1.2},
	} {
		rc := e.ComputeReducedCosts(u)
		l := e.ComputeLagrangianValue(u, rc)
		assert.LessOrEqualf(t, l, feasibleCost, "L(u)=%v must lower-bound a feasible cover's cost for u=%v", l, u)
	}
}

func TestComputeLowerBound_ConvergesBelowOrAtOptimalCost(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	result := e.ComputeLowerBound(context.Background(), 3.0)
	assert.LessOrEqual(t, result.BestLowerBound, 3.0+1e-6)
	assert.Greater(t, result.Iterations, 0)
}

func TestComputeLowerBound_RespectsAbort(t *testing.T) {
	m := scenarioA(t)
	e := lagrangian.New(m)
	e.Abort()
	result := e.ComputeLowerBound(context.Background(), 3.0)
	assert.Equal(t, 0, result.Iterations)
}

func TestStepSizer_GrowsOnImprovementShrinksOnStall(t *testing.T) {
	s := lagrangian.NewStepSizer()
	initial := s.Step()
	for i := 0; i < 20; i++ {
		s.Update(float64(i)) // strictly improving every call
	}
	assert.Greater(t, s.Step(), initial)

	s2 := lagrangian.NewStepSizer()
	for i := 0; i < 25; i++ {
		s2.Update(1.0) // never improves
	}
	assert.Less(t, s2.Step(), lagrangian.NewStepSizer().Step())
}

func TestStopper_StopsOnStall(t *testing.T) {
	s := lagrangian.NewStopper()
	var stopped bool
	for i := 0; i < 150; i++ {
		if s.ShouldStop(1.0) {
			stopped = true
			break
		}
	}
	assert.True(t, stopped)
}
