package invariant

// ConsistencyLevel names how much of an Invariant's derived bookkeeping a
// Select/Deselect/Flip call (and Recompute) is asked to keep up to date.
// Each level is a strict superset of the work done by the one before it;
// requesting a lower level than a previous call leaves the higher-level
// fields stale until Recompute is called again at that level.
type ConsistencyLevel int

const (
	// Inconsistent means no bookkeeping beyond is_selected itself can be
	// trusted. Only produced transiently, never a valid target level.
	Inconsistent ConsistencyLevel = iota

	// CostAndCoverage keeps Cost() and Coverage() accurate; the cheapest
	// level, sufficient for algorithms that read coverage directly
	// (Trivial, LazyElementDegree, LazySteepestSearch).
	CostAndCoverage

	// FreeAndUncovered additionally keeps NumUncoveredElements() and
	// NumFreeElements() accurate; needed by Greedy, ElementDegree and any
	// search that removes subsets and must know what becomes uncovered.
	FreeAndUncovered

	// Redundancy additionally keeps IsRedundant() accurate; needed by
	// GuidedTabuSearch and GuidedLocalSearch, which must know which
	// currently-selected subsets can be dropped without uncovering
	// anything.
	Redundancy
)

func (l ConsistencyLevel) String() string {
	switch l {
	case Inconsistent:
		return "Inconsistent"
	case CostAndCoverage:
		return "CostAndCoverage"
	case FreeAndUncovered:
		return "FreeAndUncovered"
	case Redundancy:
		return "Redundancy"
	default:
		return "ConsistencyLevel(?)"
	}
}
