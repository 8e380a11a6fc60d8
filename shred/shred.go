// Package shred implements the level computer (C7) and array reconstructor
// (C8) described in spec.md §9 Design Notes: converting between a nested
// record representation and the (value, repetition level, definition level)
// column streams a column writer consumes, and back.
//
// The nested record input is the tagged-variant tree spec.md §9 calls for:
// a Row is either a present scalar Value, an explicit Null, a List of child
// Rows (for a REPEATED node), or a Group of named child Rows (for a group
// node with no repetition of its own). A Row{List: ...} may also stand for a
// group whose only child leads to the repeated node (the List and Map
// wrappers): Shredder threads it through such groups, and Reconstructor
// rebuilds that shorter form. Otherwise this mirrors the schema tree shape
// node-for-node, the way the teacher's struct-tag reflection layer would
// have walked a Go struct value against its mapped schema.Node tree — this
// module drops the reflection (out of scope) but keeps the same recursive
// walk-the-schema-alongside-the-data shape grounded on that layer's design.
package shred

import (
	"fmt"

	"github.com/parquet-go/parquet-core/schema"
)

// Row is one node of a nested record being shredded into (or reconstructed
// from) column streams.
type Row struct {
	Value  LeafValue
	IsNull bool
	List   []Row
	Group  map[string]Row
}

// LeafValue holds a leaf's scalar payload. It is deliberately untyped (shred
// never inspects it, only carries it through to the caller-supplied ToLeaf/
// FromLeaf conversion), so the root package's Value can be used as a
// LeafValue without shred importing it (which would cycle back through
// schema).
type LeafValue = any

// NullRow is the absent/null Row, usable wherever a field (scalar, list, or
// group) is missing.
var NullRow = Row{IsNull: true}

// Columns holds one slice of shredded values per schema leaf, indexed by
// schema.LeafColumn.ColumnIndex.
type Columns[V any] struct {
	Values          [][]V
	RepetitionLevels [][]int32
	DefinitionLevels [][]int32
}

// NewColumns allocates an empty Columns for the given schema.
func NewColumns[V any](s *schema.Schema) *Columns[V] {
	n := s.NumColumns()
	return &Columns[V]{
		Values:           make([][]V, n),
		RepetitionLevels: make([][]int32, n),
		DefinitionLevels: make([][]int32, n),
	}
}

// Shredder walks a schema tree alongside Row trees, appending each leaf
// scalar (or null marker) to the matching column in a Columns[V], tagged
// with the repetition and definition level spec.md §9 assigns it.
type Shredder[V any] struct {
	schema  *schema.Schema
	columns *Columns[V]
	// ToLeaf converts a Row's scalar payload to V; the caller supplies this
	// since V is the root package's parquet.Value and shred doesn't import
	// it to avoid a cycle.
	ToLeaf func(Row) V
}

// NewShredder constructs a Shredder writing into a freshly allocated Columns.
func NewShredder[V any](s *schema.Schema, toLeaf func(Row) V) *Shredder[V] {
	return &Shredder[V]{schema: s, columns: NewColumns[V](s), ToLeaf: toLeaf}
}

// Columns returns the accumulated column streams.
func (s *Shredder[V]) Columns() *Columns[V] { return s.columns }

// Shred appends one top-level record to the column streams.
func (s *Shredder[V]) Shred(record Row) error {
	return s.shredNode(s.schema.Root, record, 0, 0)
}

func (s *Shredder[V]) shredNode(node schema.Node, row Row, repLevel, defLevel int) error {
	switch {
	case node.Repeated():
		return s.shredRepeated(node, row, repLevel, defLevel)

	case node.NumChildren() == 0:
		return s.shredLeaf(node, row, repLevel, defLevel)

	default:
		return s.shredGroup(node, row, repLevel, defLevel)
	}
}

func (s *Shredder[V]) shredLeaf(node schema.Node, row Row, repLevel, defLevel int) error {
	col, ok := s.columnIndexOf(node)
	if !ok {
		return fmt.Errorf("shred: could not resolve leaf column index")
	}

	if node.Optional() {
		if row.IsNull {
			s.appendLevels(col, repLevel, defLevel)
			return nil
		}
		defLevel++
	} else if row.IsNull {
		return fmt.Errorf("shred: required leaf column %d received a null value", col)
	}

	s.columns.Values[col] = append(s.columns.Values[col], s.ToLeaf(row))
	s.appendLevels(col, repLevel, defLevel)
	return nil
}

func (s *Shredder[V]) shredRepeated(node schema.Node, row Row, repLevel, defLevel int) error {
	if row.IsNull || len(row.List) == 0 {
		// An absent or empty list still produces one record for every leaf
		// beneath it, but the two cases must land on different definition
		// levels (spec.md §4.7, §9) or the reconstructor can't tell them
		// apart: absent uses the leaf's precomputed NullListDefinitionLevel,
		// present-but-empty uses the level schema.NewSchema recorded for
		// this repeated ancestor.
		lc := s.leafColumn(node)
		level := defLevel
		if row.IsNull {
			level = lc.NullListDefinitionLevel
		} else if repLevel < len(lc.RepeatedAncestorDefinitionLevels) {
			level = lc.RepeatedAncestorDefinitionLevels[repLevel]
		} else {
			level = lc.MaxDefinitionLevel - 1
		}
		return s.shredEmptyDescendant(node, repLevel, level)
	}

	childRepLevel := repLevel + 1
	childDefLevel := defLevel + 1
	for i, elem := range row.List {
		r := repLevel
		if i > 0 {
			r = childRepLevel
		}
		// The element itself may be null within a present list.
		if err := s.shredElement(node, elem, r, childDefLevel); err != nil {
			return err
		}
	}
	return nil
}

// shredElement shreds one element of a repeated field. If the node wraps a
// group, the element's Row.Group supplies each child; if it wraps a leaf,
// the element's Row.Value supplies the scalar.
func (s *Shredder[V]) shredElement(node schema.Node, elem Row, repLevel, defLevel int) error {
	if node.NumChildren() == 0 {
		return s.shredLeafElement(node, elem, repLevel, defLevel)
	}
	return s.shredGroup(node, elem, repLevel, defLevel)
}

func (s *Shredder[V]) shredLeafElement(node schema.Node, row Row, repLevel, defLevel int) error {
	col, ok := s.columnIndexOf(node)
	if !ok {
		return fmt.Errorf("shred: could not resolve leaf column index")
	}
	if row.IsNull {
		s.appendLevels(col, repLevel, defLevel-1)
		return nil
	}
	s.columns.Values[col] = append(s.columns.Values[col], s.ToLeaf(row))
	s.appendLevels(col, repLevel, defLevel)
	return nil
}

func (s *Shredder[V]) shredGroup(node schema.Node, row Row, repLevel, defLevel int) error {
	for _, name := range node.ChildNames() {
		child := node.ChildByName(name)
		childRow := row
		switch {
		case row.IsNull:
			childRow = NullRow
		case row.Group != nil:
			childRow = row.Group[name]
		}
		if err := s.shredNode(child, childRow, repLevel, defLevel); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shredder[V]) shredEmptyDescendant(node schema.Node, repLevel, defLevel int) error {
	if node.NumChildren() == 0 {
		col, ok := s.columnIndexOf(node)
		if !ok {
			return fmt.Errorf("shred: could not resolve leaf column index")
		}
		s.appendLevels(col, repLevel, defLevel)
		return nil
	}
	for _, name := range node.ChildNames() {
		if err := s.shredEmptyDescendant(node.ChildByName(name), repLevel, defLevel); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shredder[V]) appendLevels(col, repLevel, defLevel int) {
	s.columns.RepetitionLevels[col] = append(s.columns.RepetitionLevels[col], int32(repLevel))
	s.columns.DefinitionLevels[col] = append(s.columns.DefinitionLevels[col], int32(defLevel))
}

// columnIndexOf resolves the flattened leaf index of node by identity
// against the precomputed schema.Columns. This relies on schema.Node
// constructors (Leaf, List, Map) returning the same pointer for a leaf on
// every ChildByName call along its path, which they do: only intermediate
// wrapper groups (e.g. the synthetic "list"/"key_value" group) are
// reallocated per call, never the leaf or repeated-element node itself.
func (s *Shredder[V]) columnIndexOf(node schema.Node) (int, bool) {
	for _, c := range s.schema.Columns {
		if c.Node == node {
			return c.ColumnIndex, true
		}
	}
	return 0, false
}

// firstLeaf descends into node's leftmost child chain to find a leaf column,
// mirroring Reconstructor.firstLeaf: any leaf beneath a repeated node shares
// the same RepeatedAncestorDefinitionLevels/NullListDefinitionLevel for that
// ancestor, so any one of them can drive the empty/absent level lookup.
func (s *Shredder[V]) firstLeaf(node schema.Node) schema.Node {
	for node.NumChildren() > 0 {
		node = node.ChildByName(node.ChildNames()[0])
	}
	return node
}

// leafColumn resolves the precomputed schema.LeafColumn for a leaf reachable
// beneath node, via firstLeaf.
func (s *Shredder[V]) leafColumn(node schema.Node) schema.LeafColumn {
	leaf := s.firstLeaf(node)
	if col, ok := s.columnIndexOf(leaf); ok {
		return s.schema.Columns[col]
	}
	return schema.LeafColumn{}
}
