package invariant

import "github.com/katalvlaran/setcover/intidx"

/*
Decision — Packed Select/Deselect Trace Entry

Description:
  One flip of a subset's selection, packed into a signed 32-bit integer:
  select(j) stores j itself (>=0); deselect(j) stores the bitwise
  complement ~j (<0). This keeps subset 0 representable in both
  polarities (0 and ^0 = -1 are distinct) and lets trace compression scan
  for "is this a select or a deselect" with a single sign check instead of
  a separate tag field.
*/

// Decision is one recorded select/deselect of a subset.
type Decision int32

// NewDecision packs subset with the given selected polarity.
func NewDecision(subset intidx.SubsetIndex, selected bool) Decision {
	if selected {
		return Decision(subset)
	}
	return Decision(^int32(subset))
}

// Subset returns the subset this decision concerns.
func (d Decision) Subset() intidx.SubsetIndex {
	v := int32(d)
	if v < 0 {
		v = ^v
	}
	return intidx.SubsetIndex(v)
}

// Selected reports whether this decision was a selection (true) or a
// deselection (false).
func (d Decision) Selected() bool { return int32(d) >= 0 }
