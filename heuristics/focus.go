// Package heuristics implements the solution generators and local-search
// operators that mutate an invariant.SetCoverInvariant toward a feasible,
// hopefully cheap, selection: trivial, random, greedy, element-degree
// (eager and lazy), steepest descent (eager and lazy), guided tabu search,
// and guided local search, plus two perturbation helpers used between
// restarts.
package heuristics

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/invariant"
)

// Focus restricts a generator to a subset of columns. The zero value
// (nil list, nil bits) is an empty focus: it contains no subset. Use
// AllSubsets for a focus over every subset of a model.
type Focus struct {
	list []intidx.SubsetIndex
	bits *bitset.BitSet
}

// AllSubsets returns a Focus covering every subset of a model with n
// subsets.
func AllSubsets(n intidx.BaseInt) Focus {
	list := make([]intidx.SubsetIndex, n)
	for j := range list {
		list[j] = intidx.SubsetIndex(j)
	}
	return Focus{list: list}
}

// NewFocus builds a Focus restricted to exactly the given subsets.
func NewFocus(subsets []intidx.SubsetIndex) Focus {
	return Focus{list: subsets}
}

// Subsets returns the subsets in this focus, in the order it was built.
func (f Focus) Subsets() []intidx.SubsetIndex { return f.list }

// Len returns how many subsets are in this focus.
func (f Focus) Len() int { return len(f.list) }

// Contains reports whether j is in this focus. O(1) after the first call
// (the membership bitset is built lazily and cached).
func (f *Focus) Contains(j intidx.SubsetIndex) bool {
	if f.bits == nil {
		max := uint(0)
		for _, s := range f.list {
			if uint(s)+1 > max {
				max = uint(s) + 1
			}
		}
		f.bits = bitset.New(max)
		for _, s := range f.list {
			f.bits.Set(uint(s))
		}
	}
	return f.bits.Test(uint(j))
}

// Generator mutates an invariant toward a (not necessarily optimal)
// feasible solution, restricted to the subsets named by focus.
type Generator interface {
	NextSolution(inv *invariant.SetCoverInvariant, focus Focus) error
	RequiredLevel() invariant.ConsistencyLevel
}
