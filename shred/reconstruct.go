package shred

import "github.com/parquet-go/parquet-core/schema"

// Reconstructor is the array reconstructor (C8): the inverse of Shredder,
// rebuilding one nested Row per top-level record from the decoded
// (value, repetition level, definition level) streams of every leaf column.
//
// It walks the schema tree the same way Shredder does, consuming each leaf
// column's streams through a private cursor, and uses
// schema.LeafColumn.MaxDefinitionLevel / RepeatedAncestorDefinitionLevels to
// tell an absent optional field, a present-but-empty list, and a
// present-with-null-element list apart (spec.md §9 Design Notes).
type Reconstructor[V any] struct {
	schema  *schema.Schema
	columns *Columns[V]
	cursors []cursor

	// FromLeaf builds a scalar Row from a decoded value.
	FromLeaf func(V) Row
}

type cursor struct {
	valuePos int
	levelPos int
}

// NewReconstructor constructs a Reconstructor walking the given shredded
// column streams.
func NewReconstructor[V any](s *schema.Schema, columns *Columns[V], fromLeaf func(V) Row) *Reconstructor[V] {
	return &Reconstructor[V]{
		schema:   s,
		columns:  columns,
		cursors:  make([]cursor, s.NumColumns()),
		FromLeaf: fromLeaf,
	}
}

// Done reports whether every leaf column's stream has been fully consumed.
func (r *Reconstructor[V]) Done() bool {
	for i, c := range r.columns.DefinitionLevels {
		if r.cursors[i].levelPos < len(c) {
			return false
		}
	}
	return true
}

// Next reconstructs the next top-level record. It returns false once every
// column's stream is exhausted.
func (r *Reconstructor[V]) Next() (Row, bool) {
	if r.Done() {
		return Row{}, false
	}
	row := r.reconstructNode(r.schema.Root)
	return row, true
}

func (r *Reconstructor[V]) reconstructNode(node schema.Node) Row {
	switch {
	case node.Repeated():
		return r.reconstructRepeated(node)
	case node.NumChildren() == 0:
		return r.reconstructLeaf(node)
	default:
		row := r.reconstructGroup(node)
		// A non-root group whose only child rebuilt as a list (the List/Map
		// wrapper shape) collapses to that list: the inverse of shredGroup
		// threading a Row{List: ...} through a group when Row.Group is nil.
		if node != r.schema.Root && len(row.Group) == 1 {
			for _, child := range row.Group {
				if child.List != nil {
					return child
				}
			}
		}
		return row
	}
}

func (r *Reconstructor[V]) reconstructLeaf(node schema.Node) Row {
	col, ok := r.columnIndexOf(node)
	if !ok {
		return NullRow
	}
	c := &r.cursors[col]
	defLevel := r.columns.DefinitionLevels[col][c.levelPos]
	maxDefLevel := r.leafColumn(col).MaxDefinitionLevel
	c.levelPos++

	if int(defLevel) < maxDefLevel {
		return NullRow
	}
	v := r.columns.Values[col][c.valuePos]
	c.valuePos++
	return r.FromLeaf(v)
}

func (r *Reconstructor[V]) reconstructGroup(node schema.Node) Row {
	group := make(map[string]Row, node.NumChildren())
	for _, name := range node.ChildNames() {
		group[name] = r.reconstructNode(node.ChildByName(name))
	}
	return Row{Group: group}
}

// reconstructRepeated rebuilds a list/map field: it peeks the driving leaf
// column beneath node to see whether the next record is absent, present but
// empty, or has one or more elements, then consumes exactly that many
// repeated-level entries across every descendant leaf.
func (r *Reconstructor[V]) reconstructRepeated(node schema.Node) Row {
	leaf := r.firstLeaf(node)
	col, ok := r.columnIndexOf(leaf)
	if !ok {
		return NullRow
	}
	lc := r.leafColumn(col)
	c := &r.cursors[col]

	if c.levelPos >= len(r.columns.DefinitionLevels[col]) {
		return NullRow
	}

	defLevel := int(r.columns.DefinitionLevels[col][c.levelPos])
	emptyLevel := lc.MaxDefinitionLevel - 1 // level recorded for an absent/empty list at this node
	if len(lc.RepeatedAncestorDefinitionLevels) > 0 {
		emptyLevel = lc.RepeatedAncestorDefinitionLevels[len(lc.RepeatedAncestorDefinitionLevels)-1]
	}
	if defLevel <= emptyLevel {
		r.consumeEmptyDescendant(node)
		if defLevel < emptyLevel {
			return NullRow // absent
		}
		return Row{List: []Row{}} // present, empty
	}

	var elems []Row
	for {
		elems = append(elems, r.reconstructElement(node))
		if c.levelPos >= len(r.columns.RepetitionLevels[col]) {
			break
		}
		if int(r.columns.RepetitionLevels[col][c.levelPos]) < lc.MaxRepetitionLevel {
			break // next entry starts a new record or a higher-level list
		}
	}
	return Row{List: elems}
}

func (r *Reconstructor[V]) reconstructElement(node schema.Node) Row {
	if node.NumChildren() == 0 {
		return r.reconstructLeaf(node)
	}
	return r.reconstructGroup(node)
}

func (r *Reconstructor[V]) consumeEmptyDescendant(node schema.Node) {
	if node.NumChildren() == 0 {
		col, ok := r.columnIndexOf(node)
		if ok {
			r.cursors[col].levelPos++
		}
		return
	}
	for _, name := range node.ChildNames() {
		r.consumeEmptyDescendant(node.ChildByName(name))
	}
}

// firstLeaf descends into node's leftmost child chain to find a leaf column
// to drive record-boundary detection for a repeated group.
func (r *Reconstructor[V]) firstLeaf(node schema.Node) schema.Node {
	for node.NumChildren() > 0 {
		node = node.ChildByName(node.ChildNames()[0])
	}
	return node
}

func (r *Reconstructor[V]) columnIndexOf(node schema.Node) (int, bool) {
	for _, c := range r.schema.Columns {
		if c.Node == node {
			return c.ColumnIndex, true
		}
	}
	return 0, false
}

func (r *Reconstructor[V]) leafColumn(columnIndex int) schema.LeafColumn {
	for _, c := range r.schema.Columns {
		if c.ColumnIndex == columnIndex {
			return c
		}
	}
	return schema.LeafColumn{}
}
