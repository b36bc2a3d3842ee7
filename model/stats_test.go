package model_test

import (
	"testing"

	"github.com/katalvlaran/setcover/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Stats(t *testing.T) {
	m := buildScenarioA(t)
	m.SortElementsInSubsets()
	require.NoError(t, m.CreateSparseRowView())

	s := m.Stats()
	assert.Equal(t, 1.0, s.ColumnSize.Min)
	assert.Equal(t, 2.0, s.ColumnSize.Max)
	assert.InDelta(t, 1.25, s.ColumnSize.Mean, 1e-9)
	assert.Equal(t, 1.0, s.Cost.Min)
	assert.Equal(t, 2.0, s.Cost.Max)
	assert.NotZero(t, s.RowSize.Max)
}
