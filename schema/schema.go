package schema

import (
	"fmt"

	"github.com/parquet-go/parquet-core/format"
)

// LeafColumn is the precomputed information the page, column and shred
// packages need about one leaf of the schema tree: its position among the
// flattened columns, its dotted path, and the max repetition/definition
// levels a value at this leaf can carry (spec.md §9 Design Notes).
type LeafColumn struct {
	ColumnIndex int
	Path        []string
	Node        Node
	Type        NodeType

	MaxRepetitionLevel int
	MaxDefinitionLevel int

	// RepeatedAncestorDefinitionLevels holds, for each repeated ancestor of
	// this leaf (outermost first), the definition level at which that
	// ancestor's list/map itself is present but empty. Used by the array
	// reconstructor (spec.md §9, C8) to tell "present empty list" apart from
	// "absent list" and from "list with n present-but-null elements".
	RepeatedAncestorDefinitionLevels []int

	// NullListDefinitionLevel is the definition level recorded when the
	// innermost repeated ancestor's list is itself absent: one below that
	// ancestor's present-but-empty level. It is -1 if this leaf has no
	// repeated ancestor, and also when that empty level is 0.
	NullListDefinitionLevel int
}

// Schema is a named root node plus its precomputed, depth-first-ordered leaf
// columns.
type Schema struct {
	Name    string
	Root    Node
	Columns []LeafColumn
}

// NewSchema walks root depth-first and precomputes every leaf's path and max
// levels.
func NewSchema(name string, root Node) *Schema {
	s := &Schema{Name: name, Root: root}
	var walk func(node Node, path []string, repLevel, defLevel int, repeatedAncestors []int)
	walk = func(node Node, path []string, repLevel, defLevel int, repeatedAncestors []int) {
		if node.Repeated() {
			repLevel++
			repeatedAncestors = append(repeatedAncestors, defLevel)
		}
		if node.Optional() || node.Repeated() {
			defLevel++
		}

		if node.NumChildren() == 0 {
			nullListLevel := -1
			if len(repeatedAncestors) > 0 {
				nullListLevel = repeatedAncestors[len(repeatedAncestors)-1] - 1
			}
			s.Columns = append(s.Columns, LeafColumn{
				ColumnIndex:                      len(s.Columns),
				Path:                             append([]string(nil), path...),
				Node:                             node,
				Type:                             node.Type(),
				MaxRepetitionLevel:               repLevel,
				MaxDefinitionLevel:               defLevel,
				RepeatedAncestorDefinitionLevels: append([]int(nil), repeatedAncestors...),
				NullListDefinitionLevel:          nullListLevel,
			})
			return
		}

		for _, name := range node.ChildNames() {
			child := node.ChildByName(name)
			walk(child, append(path, name), repLevel, defLevel, repeatedAncestors)
		}
	}
	walk(root, nil, 0, 0, nil)
	return s
}

// NumColumns returns the number of leaf columns in the schema.
func (s *Schema) NumColumns() int { return len(s.Columns) }

// Lookup returns the leaf column at the given dotted path, or false if none
// matches.
func (s *Schema) Lookup(path ...string) (LeafColumn, bool) {
	for _, c := range s.Columns {
		if pathEqual(c.Path, path) {
			return c, true
		}
	}
	return LeafColumn{}, false
}

func pathEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Elements flattens the schema tree into the depth-first pre-order
// []format.SchemaElement list the Thrift footer carries (spec.md §3, §6):
// the root element first (with NumChildren set), then each subtree in
// declaration order.
func (s *Schema) Elements() []format.SchemaElement {
	var elements []format.SchemaElement
	var walk func(name string, node Node)
	walk = func(name string, node Node) {
		elem := format.SchemaElement{Name: name}
		switch {
		case node.Repeated():
			rt := format.Repeated
			elem.RepetitionType = &rt
		case node.Optional():
			rt := format.Optional
			elem.RepetitionType = &rt
		default:
			rt := format.Required
			elem.RepetitionType = &rt
		}

		if node.NumChildren() == 0 {
			typ := node.Type()
			physical := typ.PhysicalType()
			elem.Type = &physical
			if physical == format.FixedLenByteArray {
				length := int32(typ.Length())
				elem.TypeLength = &length
			}
			elem.LogicalType = typ.LogicalType()
			elem.ConvertedType = typ.ConvertedType()
		} else {
			n := int32(node.NumChildren())
			elem.NumChildren = &n
		}

		elements = append(elements, elem)
		if node.NumChildren() > 0 {
			for _, childName := range node.ChildNames() {
				walk(childName, node.ChildByName(childName))
			}
		}
	}

	// The root element itself has no repetition type in the canonical
	// encoding; overwrite what walk assigned it.
	walk(s.Name, s.Root)
	elements[0].RepetitionType = nil
	return elements
}

func (s *Schema) String() string {
	return fmt.Sprintf("schema %q with %d leaf columns", s.Name, len(s.Columns))
}
