// Package intidx implements strong-int-style index types.
/*
SubsetIndex / ElementIndex — Disjoint Index Types

Description:
  Go has no template machinery to generate a family of strong-int
  newtypes the way the C++ original does. Instead each index kind is a
  distinct defined type over int32, which the compiler already treats as
  incompatible with any other defined type — passing an ElementIndex
  where a SubsetIndex is expected is a compile error, not a runtime bug
  waiting to happen.

Use cases:
  - Identifying subsets (columns) and elements (rows) of a set-cover
    model without risking the two index spaces being confused.
  - Iterating a dense range of either kind via Range.

Memory: both types are 4 bytes; BaseInt is their common arithmetic type.
*/
package intidx

import "fmt"

// BaseInt is the common signed integer width used for sizes, counts and
// arithmetic over indices.
type BaseInt = int32

// Cost is the type of a subset's contribution to the objective. It is
// always finite and non-negative once a Model has validated it.
type Cost = float64

// SubsetIndex identifies one subset (column) of a set-cover model.
type SubsetIndex int32

// String implements fmt.Stringer.
func (s SubsetIndex) String() string { return fmt.Sprintf("S%d", int32(s)) }

// ElementIndex identifies one element (row) of a set-cover model.
type ElementIndex int32

// String implements fmt.Stringer.
func (e ElementIndex) String() string { return fmt.Sprintf("E%d", int32(e)) }

// CapacityTermIndex identifies one (subset, element, weight) term of a
// CapacityModel side constraint. Distinct from SubsetIndex/ElementIndex for
// the same reason they are distinct from each other: a term position is
// never interchangeable with the subset or element it references.
type CapacityTermIndex int32

// String implements fmt.Stringer.
func (c CapacityTermIndex) String() string { return fmt.Sprintf("T%d", int32(c)) }

// Index is the type set Range accepts: every type whose underlying type is
// int32, so the same helper serves SubsetIndex, ElementIndex and
// CapacityTermIndex ranges.
type Index interface {
	~int32
}

// Range returns every value in [0, n) of the requested index type, in
// ascending order.
func Range[T Index](n T) []T {
	out := make([]T, 0, n)
	for i := T(0); i < n; i++ {
		out = append(out, i)
	}
	return out
}
