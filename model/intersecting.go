package model

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/setcover/intidx"
)

/*
IntersectingSubsets — Lazy Co-Occurring Subset Walk

Description:
  Walks every subset that shares at least one element with a seed subset,
  without materializing the full intersection set up front. Used by the
  perturbation helpers to find "what else touches the subsets I'm about
  to clear."

Algorithm outline:
 1. For each element i of the seed column, in column order:
 2.   For each subset j' in row i, in row order, skipping the seed itself
      and any subset already yielded this walk (tracked in a lazily
      allocated bitset):
 3.     yield j'.

Memory: O(|S|) for the seen-set, allocated lazily on first use.
*/

// IntersectingSubsets returns every subset index that shares at least one
// element with seed, each exactly once, excluding seed itself. Requires
// the row view to be built.
func (m *Model) IntersectingSubsets(seed intidx.SubsetIndex) []intidx.SubsetIndex {
	if !m.rowViewValid {
		panic("model: IntersectingSubsets requires the row view; call CreateSparseRowView first")
	}
	var seen *bitset.BitSet
	var out []intidx.SubsetIndex
	for _, e := range m.columns[seed] {
		for _, j := range m.rows[e] {
			if j == seed {
				continue
			}
			if seen == nil {
				seen = bitset.New(uint(len(m.columns)))
			}
			if seen.Test(uint(j)) {
				continue
			}
			seen.Set(uint(j))
			out = append(out, j)
		}
	}
	return out
}
