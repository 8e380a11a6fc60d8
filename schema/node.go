// Package schema implements the schema tree (spec.md §3, §9): a tree of
// Node values describing a table's nested structure, plus the precomputed
// per-leaf path, repetition type, and max repetition/definition levels that
// the shred, page and column packages consume.
//
// Node and the Optional/Repeated/Required wrapper types are grounded on the
// teacher's node.go, which implements a parquet.Node interface the same way:
// a small core interface plus three decorator types that override the
// repetition methods. This module drops the teacher's Object/reflect.Value
// glue (the struct-tag reflection layer is out of scope) and adds the leaf
// bookkeeping (LeafColumn) spec.md §9's Design Notes calls for.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-core/format"
)

// Node is one element of a schema tree: either a leaf column (Type non-nil)
// or a group of children.
type Node interface {
	// Type returns the leaf's physical/logical type. It panics if called on
	// a group node.
	Type() NodeType

	// Optional, Repeated and Required report this node's FieldRepetitionType.
	// Exactly one is true.
	Optional() bool
	Repeated() bool
	Required() bool

	// NumChildren returns the number of immediate children, zero for a leaf.
	NumChildren() int

	// ChildNames returns the immediate children's names in the node's fixed
	// order: alphabetical for NewGroup, as given for GroupOrdered.
	ChildNames() []string

	// ChildByName returns the named immediate child. It panics if called on
	// a leaf node or with an unknown name.
	ChildByName(name string) Node
}

// NodeType is the subset of parquet.Type a schema leaf needs: enough to
// serialize a format.SchemaElement. The schema package does not depend on
// the root package to avoid an import cycle; parquet.Type satisfies this
// interface.
type NodeType interface {
	fmt.Stringer
	PhysicalType() format.Type
	Length() int
	LogicalType() *format.LogicalType
	ConvertedType() *format.ConvertedType
}

type leafNode struct{ typ NodeType }

// Leaf constructs a required leaf node of the given type. Wrap it with
// Optional or Repeated for other repetition types.
func Leaf(typ NodeType) Node { return &leafNode{typ: typ} }

func (n *leafNode) Type() NodeType    { return n.typ }
func (n *leafNode) Optional() bool    { return false }
func (n *leafNode) Repeated() bool    { return false }
func (n *leafNode) Required() bool    { return true }
func (n *leafNode) NumChildren() int  { return 0 }
func (n *leafNode) ChildNames() []string { return nil }
func (n *leafNode) ChildByName(name string) Node {
	panic(fmt.Sprintf("schema: cannot look up child %q of a leaf node", name))
}

// Group is a node with named children and no physical type of its own (a
// parquet "group", spec.md §3). LIST and MAP are groups with a conventional
// shape built with the List/Map helpers below.
type Group map[string]Node

type groupNode struct {
	names    []string
	children Group
}

// NewGroup constructs a required group node from the given named children.
func NewGroup(fields Group) Node {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return &groupNode{names: names, children: fields}
}

// GroupOrdered constructs a group node from fields, preserving names' given
// order instead of NewGroup's alphabetization. Used when rebuilding a schema
// tree from a file's footer, whose child order is the file's authoritative
// column order and must line up positionally with each row group's
// ColumnChunk list.
func GroupOrdered(names []string, fields Group) Node {
	return &groupNode{names: append([]string(nil), names...), children: fields}
}

func (n *groupNode) Type() NodeType {
	panic("schema: cannot call Type on a group node")
}
func (n *groupNode) Optional() bool       { return false }
func (n *groupNode) Repeated() bool       { return false }
func (n *groupNode) Required() bool       { return true }
func (n *groupNode) NumChildren() int     { return len(n.names) }
func (n *groupNode) ChildNames() []string { return n.names }
func (n *groupNode) ChildByName(name string) Node {
	child, ok := n.children[name]
	if !ok {
		panic(fmt.Sprintf("schema: group has no child named %q", name))
	}
	return child
}

// Optional wraps node so that it (and, if node is a group, the whole
// subtree's root) is optional, unless it already is.
func Optional(node Node) Node {
	if node.Optional() {
		return node
	}
	return &optional{node}
}

type optional struct{ Node }

func (n *optional) Optional() bool { return true }
func (n *optional) Repeated() bool { return false }
func (n *optional) Required() bool { return false }

// Repeated wraps node so that it is repeated, unless it already is.
func Repeated(node Node) Node {
	if node.Repeated() {
		return node
	}
	return &repeated{node}
}

type repeated struct{ Node }

func (n *repeated) Optional() bool { return false }
func (n *repeated) Repeated() bool { return true }
func (n *repeated) Required() bool { return false }

// Required wraps node so that it is required, unless it already is.
func Required(node Node) Node {
	if node.Required() {
		return node
	}
	return &required{node}
}

type required struct{ Node }

func (n *required) Optional() bool { return false }
func (n *required) Repeated() bool { return false }
func (n *required) Required() bool { return true }

// List builds a 3-level list group (spec.md §3). Repetition sits on the
// element, not on the "list" group, and no LIST annotation is attached:
//
//	<name> (required group)
//	  list (required group)
//	    element (the given element node, made REPEATED)
func List(element Node) Node {
	return &listNode{element: Repeated(element)}
}

type listNode struct{ element Node }

func (n *listNode) Type() NodeType { panic("schema: cannot call Type on a list node") }
func (n *listNode) Optional() bool { return false }
func (n *listNode) Repeated() bool { return false }
func (n *listNode) Required() bool { return true }
func (n *listNode) NumChildren() int     { return 1 }
func (n *listNode) ChildNames() []string { return []string{"list"} }
func (n *listNode) ChildByName(name string) Node {
	if name != "list" {
		panic(fmt.Sprintf("schema: list group has no child named %q", name))
	}
	return &groupNode{names: []string{"element"}, children: Group{"element": n.element}}
}

// Map builds the conventional 3-level MAP group (spec.md §3):
//
//	<name> (MAP)
//	  key_value (REPEATED GROUP)
//	    key (the given key node, always required)
//	    value (the given value node)
func Map(key, value Node) Node {
	return &mapNode{key: Required(key), value: value}
}

type mapNode struct{ key, value Node }

func (n *mapNode) Type() NodeType { panic("schema: cannot call Type on a map node") }
func (n *mapNode) Optional() bool { return false }
func (n *mapNode) Repeated() bool { return false }
func (n *mapNode) Required() bool { return true }
func (n *mapNode) NumChildren() int     { return 1 }
func (n *mapNode) ChildNames() []string { return []string{"key_value"} }
func (n *mapNode) ChildByName(name string) Node {
	if name != "key_value" {
		panic(fmt.Sprintf("schema: map group has no child named %q", name))
	}
	return Repeated(&groupNode{
		names:    []string{"key", "value"},
		children: Group{"key": n.key, "value": n.value},
	})
}

// PathString joins a leaf's path in dotted form, for error messages.
func PathString(path []string) string { return strings.Join(path, ".") }
