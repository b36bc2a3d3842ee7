// Package model implements the sparse two-way matrix that backs a
// weighted set-cover instance: a column per subset (the elements it
// contains), and — once built — a row per element (the subsets containing
// it).
/*
Model — The Weighted Set-Cover Instance

Description:
  Owns the immutable (once consumed by an Invariant) instance data: the
  universe size, the subset costs, and the sparse columns/rows. Elements
  and subsets may only grow; nothing is ever mutated out from under a
  live Invariant.

Use cases:
  - Constructing an instance incrementally via AddEmptySubset/
    AddElementToLastSubset (the natural shape when streaming a text
    format in from a collaborator's reader).
  - Deriving the row view once all columns are known, for row-indexed
    algorithms (ElementDegree, the Lagrangian engine's per-row walks).

Algorithm outline (row-view construction):
 1. Require every column already strictly ascending (SortElementsInSubsets).
 2. First pass: count, for every element, how many columns contain it.
 3. Allocate each row to its final size.
 4. Second pass: append subset indices to rows in column order, which
    (because columns are enumerated in ascending SubsetIndex order and
    each is itself ascending) produces strictly-ascending rows for free.

Memory: O(|E| + |S| + nnz).
*/
package model

import (
	"math"
	"sort"

	"github.com/katalvlaran/setcover/intidx"
	"github.com/katalvlaran/setcover/scerr"
	"github.com/katalvlaran/setcover/sclog"
	"github.com/katalvlaran/setcover/varint"
	"go.uber.org/zap"
)

// Model owns a weighted set-cover instance: subset costs and the sparse
// columns (subset -> elements), plus a lazily-built row view (element ->
// subsets) and lazily-built compressed encodings of both.
type Model struct {
	logger *sclog.Config

	numElements intidx.BaseInt
	numNonzeros int64

	subsetCost []intidx.Cost
	columns    [][]intidx.ElementIndex
	rows       [][]intidx.SubsetIndex

	columnsSorted bool
	rowViewValid  bool

	compressedColumns [][]byte
	compressedRows    [][]byte
	compressedValid   bool

	// timestamp increases on every mutation; a live Invariant or engine
	// can compare it against the value it was built with to detect an
	// illegal concurrent model edit (documented precondition, not
	// lock-enforced — see SPEC_FULL.md §4.1).
	timestamp int64
}

// Option configures a Model at construction time.
type Option = sclog.Option

// WithLogger injects a logger used for non-fatal warnings (non-finite
// costs, empty subsets). Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option { return sclog.WithLogger(l) }

// New returns an empty Model.
func New(opts ...Option) *Model {
	return &Model{logger: sclog.NewConfig(opts...)}
}

// NumSubsets returns the number of subsets (columns) in the model.
func (m *Model) NumSubsets() intidx.BaseInt { return intidx.BaseInt(len(m.columns)) }

// NumElements returns the number of elements the model currently spans
// (the highest element index seen, plus one).
func (m *Model) NumElements() intidx.BaseInt { return m.numElements }

// NumNonzeros returns the total number of (subset, element) incidences.
func (m *Model) NumNonzeros() int64 { return m.numNonzeros }

// Timestamp returns the model's current mutation counter.
func (m *Model) Timestamp() int64 { return m.timestamp }

// SubsetCost returns the cost of subset j.
func (m *Model) SubsetCost(j intidx.SubsetIndex) intidx.Cost { return m.subsetCost[j] }

// Column returns the (possibly unsorted, if SortElementsInSubsets has not
// been called) element list of subset j. Callers must not mutate the
// returned slice.
func (m *Model) Column(j intidx.SubsetIndex) []intidx.ElementIndex { return m.columns[j] }

// Columns returns every column, indexed by SubsetIndex. Callers must not
// mutate the returned slices.
func (m *Model) Columns() [][]intidx.ElementIndex { return m.columns }

// Row returns the subset list covering element i. Panics if
// CreateSparseRowView has not been called since the last column edit.
func (m *Model) Row(i intidx.ElementIndex) []intidx.SubsetIndex {
	if !m.rowViewValid {
		scerr.Panic("Model.Row", "row view is not built; call CreateSparseRowView first")
	}
	return m.rows[i]
}

// RowViewValid reports whether the row view reflects the current columns.
func (m *Model) RowViewValid() bool { return m.rowViewValid }

// ColumnsSorted reports whether every column is known to be strictly
// ascending.
func (m *Model) ColumnsSorted() bool { return m.columnsSorted }

// AddEmptySubset appends a new subset with the given cost and returns its
// index. A non-finite cost is not fatal: it is logged and clamped to 0, so
// one malformed subset does not abort building the rest of the model.
func (m *Model) AddEmptySubset(cost intidx.Cost) intidx.SubsetIndex {
	if math.IsNaN(float64(cost)) || math.IsInf(float64(cost), 0) {
		m.logger.Logger.Warn("non-finite subset cost clamped to 0",
			zap.Float64("cost", float64(cost)),
			zap.Int("subset", len(m.columns)))
		cost = 0
	}
	idx := intidx.SubsetIndex(len(m.columns))
	m.columns = append(m.columns, nil)
	m.subsetCost = append(m.subsetCost, cost)
	m.invalidateRowView()
	m.bumpTimestamp()
	return idx
}

// AddElementToLastSubset appends e to the most recently added column.
func (m *Model) AddElementToLastSubset(e intidx.ElementIndex) {
	if len(m.columns) == 0 {
		scerr.Panic("Model.AddElementToLastSubset", "no subset has been added yet")
	}
	m.AddElementToSubset(e, intidx.SubsetIndex(len(m.columns)-1))
}

// AddElementToSubset appends e to column j, growing the model (both in
// number of subsets and number of elements) if necessary.
func (m *Model) AddElementToSubset(e intidx.ElementIndex, j intidx.SubsetIndex) {
	m.ResizeNumSubsets(intidx.BaseInt(j) + 1)
	if e+1 > m.numElements {
		m.numElements = e + 1
	}
	m.columns[j] = append(m.columns[j], e)
	m.numNonzeros++
	m.columnsSorted = false
	m.invalidateRowView()
	m.bumpTimestamp()
}

// SetSubsetCost updates the cost of subset j and bumps the model
// timestamp. The caller must not do this while an Invariant is live over
// the model.
func (m *Model) SetSubsetCost(j intidx.SubsetIndex, c intidx.Cost) {
	m.subsetCost[j] = c
	m.bumpTimestamp()
}

// ReserveNumSubsets hints the expected final subset count.
func (m *Model) ReserveNumSubsets(n int) {
	if cap(m.columns) < n {
		grown := make([][]intidx.ElementIndex, len(m.columns), n)
		copy(grown, m.columns)
		m.columns = grown
		costs := make([]intidx.Cost, len(m.subsetCost), n)
		copy(costs, m.subsetCost)
		m.subsetCost = costs
	}
}

// ReserveNumElementsInSubset hints the expected final size of column j.
func (m *Model) ReserveNumElementsInSubset(n int, j intidx.SubsetIndex) {
	m.ResizeNumSubsets(intidx.BaseInt(j) + 1)
	if cap(m.columns[j]) < n {
		grown := make([]intidx.ElementIndex, len(m.columns[j]), n)
		copy(grown, m.columns[j])
		m.columns[j] = grown
	}
}

// ResizeNumSubsets grows the model to have at least n subsets (new
// subsets have cost 0 and an empty column). Never shrinks.
func (m *Model) ResizeNumSubsets(n intidx.BaseInt) {
	for intidx.BaseInt(len(m.columns)) < n {
		m.columns = append(m.columns, nil)
		m.subsetCost = append(m.subsetCost, 0)
	}
}

// ResizeNumElements grows the element universe to at least n. Never
// shrinks.
func (m *Model) ResizeNumElements(n intidx.BaseInt) {
	if n > m.numElements {
		m.numElements = n
		m.invalidateRowView()
	}
}

// SortElementsInSubsets sorts every column ascending in place and marks
// the model as sorted. Uses a radix sort for large columns and
// sort.Slice for small ones, per the documented performance note in
// SPEC_FULL.md §9.
func (m *Model) SortElementsInSubsets() {
	for j := range m.columns {
		sortColumn(m.columns[j])
	}
	m.columnsSorted = true
	m.bumpTimestamp()
}

const radixThreshold = 64

func sortColumn(col []intidx.ElementIndex) {
	if len(col) < radixThreshold {
		sort.Slice(col, func(i, j int) bool { return col[i] < col[j] })
		return
	}
	radixSortLSB(col)
}

// radixSortLSB performs a stable, 4-pass byte-at-a-time LSB radix sort of
// 32-bit element indices (all non-negative, so no sign-bit flip is
// needed).
func radixSortLSB(col []intidx.ElementIndex) {
	n := len(col)
	buf := make([]intidx.ElementIndex, n)
	src, dst := col, buf
	var count [257]int
	for shift := uint(0); shift < 32; shift += 8 {
		for i := range count {
			count[i] = 0
		}
		for _, v := range src {
			b := (uint32(v) >> shift) & 0xFF
			count[b+1]++
		}
		for i := 1; i < len(count); i++ {
			count[i] += count[i-1]
		}
		for _, v := range src {
			b := (uint32(v) >> shift) & 0xFF
			dst[count[b]] = v
			count[b]++
		}
		src, dst = dst, src
	}
	// 4 passes (even count) means src already points at col's original
	// backing array, so this copy moves nothing; it is done unconditionally
	// rather than guarded by an identity check.
	copy(col, src)
}

// CreateSparseRowView builds the row view (element -> subsets) from the
// current columns. Requires every column to already be strictly ascending
// (call SortElementsInSubsets first); returns a MalformedModelError
// listing every column found to contain a repeated or out-of-order index.
func (m *Model) CreateSparseRowView() error {
	var findings []error
	for j, col := range m.columns {
		for k := 1; k < len(col); k++ {
			if col[k] <= col[k-1] {
				findings = append(findings, &repeatedIndexError{Subset: intidx.SubsetIndex(j), Element: col[k]})
			}
		}
	}
	if len(findings) > 0 {
		return scerr.NewMalformedModelError(findings...)
	}

	degree := make([]int64, m.numElements)
	for _, col := range m.columns {
		for _, e := range col {
			degree[e]++
		}
	}
	rows := make([][]intidx.SubsetIndex, m.numElements)
	for i, d := range degree {
		if d > 0 {
			rows[i] = make([]intidx.SubsetIndex, 0, d)
		}
	}
	for j, col := range m.columns {
		sj := intidx.SubsetIndex(j)
		for _, e := range col {
			rows[e] = append(rows[e], sj)
		}
	}
	m.rows = rows
	m.rowViewValid = true
	return nil
}

// CreateCompressedViews delta-varint-encodes every column and row. Both
// views must already be built (SortElementsInSubsets + CreateSparseRowView).
func (m *Model) CreateCompressedViews() error {
	if !m.columnsSorted || !m.rowViewValid {
		scerr.Panic("Model.CreateCompressedViews", "both the sorted column view and the row view must be built first")
	}
	m.compressedColumns = compressAll(m.columns)
	m.compressedRows = compressAll(m.rows)
	m.compressedValid = true
	return nil
}

// CompressedColumn returns the delta-varint encoding of column j.
func (m *Model) CompressedColumn(j intidx.SubsetIndex) []byte {
	if !m.compressedValid {
		scerr.Panic("Model.CompressedColumn", "CreateCompressedViews has not been called")
	}
	return m.compressedColumns[j]
}

// CompressedRow returns the delta-varint encoding of row i.
func (m *Model) CompressedRow(i intidx.ElementIndex) []byte {
	if !m.compressedValid {
		scerr.Panic("Model.CompressedRow", "CreateCompressedViews has not been called")
	}
	return m.compressedRows[i]
}

// ComputeFeasibility returns true iff every element appears in at least
// one subset, every cost is non-negative, and at least logs (but does not
// fail on) any empty subset.
func (m *Model) ComputeFeasibility() bool {
	for j, c := range m.subsetCost {
		if c < 0 {
			m.logger.Logger.Warn("negative subset cost makes the model infeasible to solve meaningfully",
				zap.Int("subset", j), zap.Float64("cost", float64(c)))
			return false
		}
		if len(m.columns[j]) == 0 {
			m.logger.Logger.Warn("empty subset", zap.Int("subset", j))
		}
	}
	covered := make([]bool, m.numElements)
	for _, col := range m.columns {
		for _, e := range col {
			covered[e] = true
		}
	}
	for _, ok := range covered {
		if !ok {
			return false
		}
	}
	return true
}

// FirstUncoveredElement returns the lowest-indexed element not covered by
// any subset, or -1 if every element is covered.
func (m *Model) FirstUncoveredElement() intidx.ElementIndex {
	covered := make([]bool, m.numElements)
	for _, col := range m.columns {
		for _, e := range col {
			covered[e] = true
		}
	}
	for i, ok := range covered {
		if !ok {
			return intidx.ElementIndex(i)
		}
	}
	return -1
}

func (m *Model) invalidateRowView() {
	m.rowViewValid = false
	m.compressedValid = false
}

func (m *Model) bumpTimestamp() { m.timestamp++ }

func compressAll[T ~int32](lists [][]T) [][]byte {
	out := make([][]byte, len(lists))
	for i, list := range lists {
		values := make([]int64, len(list))
		for k, v := range list {
			values[k] = int64(v)
		}
		out[i] = varint.EncodeList(values)
	}
	return out
}
