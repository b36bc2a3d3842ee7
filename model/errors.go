package model

import (
	"fmt"

	"github.com/katalvlaran/setcover/intidx"
)

// repeatedIndexError reports a column found not to be strictly ascending
// (a repeated or out-of-order element) when CreateSparseRowView validates
// it. It is aggregated with any sibling findings via
// scerr.NewMalformedModelError rather than returned alone, so that a
// caller sees every offending column in one pass.
type repeatedIndexError struct {
	Subset  intidx.SubsetIndex
	Element intidx.ElementIndex
}

func (e *repeatedIndexError) Error() string {
	return fmt.Sprintf("subset %s: element %s is repeated or out of order; call SortElementsInSubsets first", e.Subset, e.Element)
}
