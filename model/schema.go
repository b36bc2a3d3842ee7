package model

import (
	"io"
	"sort"

	"github.com/katalvlaran/setcover/intidx"
)

/*
Schema — Canonical Model/Solution Persistence Shape

Description:
  The only persistence format this library implements directly (per
  SPEC_FULL.md §6.1): a plain Go struct pair mirroring the spec's
  "SetCover"/"SetCoverSolution" proto messages, with no wire-format
  concerns attached. Concrete serializers (JSON, protobuf, an ORLIB
  reader) are a caller's responsibility; this is only the canonical
  shape and the in-process round-trip through it.
*/

// SubsetSchema is one subset's canonical representation.
type SubsetSchema struct {
	Cost    float64
	Element []int64 // sorted ascending, unique
}

// SetCoverSchema is the canonical representation of an entire model. The
// order of Subset defines each subset's index once imported.
type SetCoverSchema struct {
	Subset []SubsetSchema
}

// SetCoverSolutionSchema is the canonical representation of a solution.
type SetCoverSolutionSchema struct {
	NumSubsets int64
	Cost       float64
	Subset     []int64 // selected subset indices; ExportSolution writes them in ascending index order, not in selection order
}

// ExportSchema produces the canonical representation of m. Requires
// SortElementsInSubsets to have been called so element lists are already
// sorted ascending (ExportSchema neither re-sorts nor checks the model's
// "sorted" flag; it copies each column as it is).
func (m *Model) ExportSchema() *SetCoverSchema {
	out := &SetCoverSchema{Subset: make([]SubsetSchema, len(m.columns))}
	for j, col := range m.columns {
		elems := make([]int64, len(col))
		for k, e := range col {
			elems[k] = int64(e)
		}
		out.Subset[j] = SubsetSchema{Cost: float64(m.subsetCost[j]), Element: elems}
	}
	return out
}

// ImportSchema builds a fresh Model from its canonical representation.
// Subsets are materialized in schema order, so ImportSchema(ExportSchema(m))
// is structurally equal to m whenever m's columns were sorted before
// exporting.
func ImportSchema(s *SetCoverSchema, opts ...Option) *Model {
	m := New(opts...)
	m.ReserveNumSubsets(len(s.Subset))
	for _, sub := range s.Subset {
		j := m.AddEmptySubset(intidx.Cost(sub.Cost))
		for _, e := range sub.Element {
			m.AddElementToSubset(intidx.ElementIndex(e), j)
		}
	}
	m.columnsSorted = allColumnsSorted(m.columns)
	return m
}

func allColumnsSorted(columns [][]intidx.ElementIndex) bool {
	for _, col := range columns {
		if !sort.SliceIsSorted(col, func(i, j int) bool { return col[i] < col[j] }) {
			return false
		}
	}
	return true
}

// ExportSolution produces the canonical solution representation for the
// given selection (true = selected), in ascending subset-index order.
func ExportSolution(isSelected []bool, cost float64) *SetCoverSolutionSchema {
	out := &SetCoverSolutionSchema{NumSubsets: int64(len(isSelected)), Cost: cost}
	for j, sel := range isSelected {
		if sel {
			out.Subset = append(out.Subset, int64(j))
		}
	}
	return out
}

// ImportSolution expands the canonical solution representation back into
// a per-subset selection bitmap.
func ImportSolution(s *SetCoverSolutionSchema) []bool {
	out := make([]bool, s.NumSubsets)
	for _, j := range s.Subset {
		out[j] = true
	}
	return out
}

// Reader parses some on-disk format (ORLIB, RAIL, FIMI .dat, ...) into a
// Model. No concrete implementation ships in this package; a collaborator
// wires one up against whichever format it needs to read.
type Reader interface {
	ReadModel(io.Reader) (*Model, error)
}

// Writer serializes a Model to some on-disk format. No concrete
// implementation ships in this package, for the same reason as Reader.
type Writer interface {
	WriteModel(*Model, io.Writer) error
}
