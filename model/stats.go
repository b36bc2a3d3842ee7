package model

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

/*
Stats — Derived Distribution Statistics

Description:
  Purely derived, side-effect-free summaries of the column-size, row-size
  and cost distributions, used by a caller deciding tuning parameters (is
  this instance dense enough that the radix-sort column path matters? Is
  the cost distribution skewed enough that a scaled Lagrangian step makes
  sense?). Computed with gonum/stat rather than hand-rolled, since
  interpolated quantiles are exactly what that package ships.
*/

// Distribution summarizes one set of samples.
type Distribution struct {
	Min, Max, Mean, Median, StdDev, IQR float64
	// Deciles holds the 10th, 20th, ..., 90th percentile values.
	Deciles [9]float64
}

// Stats bundles the three distributions a Model exposes.
type Stats struct {
	ColumnSize Distribution
	RowSize    Distribution
	Cost       Distribution
}

// Stats computes min/max/mean/median/stddev/IQR/deciles for column sizes,
// row sizes (if the row view is built; otherwise RowSize is the zero
// value) and subset costs.
func (m *Model) Stats() Stats {
	colSizes := make([]float64, len(m.columns))
	for i, col := range m.columns {
		colSizes[i] = float64(len(col))
	}
	costs := make([]float64, len(m.subsetCost))
	for i, c := range m.subsetCost {
		costs[i] = float64(c)
	}

	s := Stats{
		ColumnSize: distributionOf(colSizes),
		Cost:       distributionOf(costs),
	}
	if m.rowViewValid {
		rowSizes := make([]float64, len(m.rows))
		for i, row := range m.rows {
			rowSizes[i] = float64(len(row))
		}
		s.RowSize = distributionOf(rowSizes)
	}
	return s
}

func distributionOf(samples []float64) Distribution {
	if len(samples) == 0 {
		return Distribution{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	var d Distribution
	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Mean = stat.Mean(sorted, nil)
	d.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.StdDev = stat.StdDev(sorted, nil)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	d.IQR = q3 - q1
	for i := 1; i <= 9; i++ {
		d.Deciles[i-1] = stat.Quantile(float64(i)/10, stat.Empirical, sorted, nil)
	}
	return d
}
