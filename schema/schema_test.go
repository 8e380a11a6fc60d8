package schema_test

import (
	"testing"

	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/schema"
)

type stubType struct {
	physical format.Type
	length   int
}

func (t stubType) String() string                      { return t.physical.String() }
func (t stubType) PhysicalType() format.Type            { return t.physical }
func (t stubType) Length() int                          { return t.length }
func (t stubType) LogicalType() *format.LogicalType     { return nil }
func (t stubType) ConvertedType() *format.ConvertedType { return nil }

func int32Leaf() schema.Node { return schema.Leaf(stubType{physical: format.Int32}) }
func byteArrayLeaf() schema.Node { return schema.Leaf(stubType{physical: format.ByteArray}) }

func TestFlatSchemaLevels(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"id":   int32Leaf(),
		"name": schema.Optional(byteArrayLeaf()),
	})
	s := schema.NewSchema("message", root)

	if s.NumColumns() != 2 {
		t.Fatalf("expected 2 columns, got %d", s.NumColumns())
	}

	id, ok := s.Lookup("id")
	if !ok {
		t.Fatal("expected to find column \"id\"")
	}
	if id.MaxDefinitionLevel != 0 || id.MaxRepetitionLevel != 0 {
		t.Fatalf("required leaf should have 0/0 levels, got %d/%d", id.MaxDefinitionLevel, id.MaxRepetitionLevel)
	}

	name, ok := s.Lookup("name")
	if !ok {
		t.Fatal("expected to find column \"name\"")
	}
	if name.MaxDefinitionLevel != 1 || name.MaxRepetitionLevel != 0 {
		t.Fatalf("optional leaf should have 1/0 levels, got %d/%d", name.MaxDefinitionLevel, name.MaxRepetitionLevel)
	}
}

func TestListLevels(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"tags": schema.List(byteArrayLeaf()),
	})
	s := schema.NewSchema("message", root)

	col, ok := s.Lookup("tags", "list", "element")
	if !ok {
		t.Fatalf("expected to find column \"tags.list.element\", columns: %+v", s.Columns)
	}
	if col.MaxRepetitionLevel != 1 {
		t.Fatalf("expected max repetition level 1, got %d", col.MaxRepetitionLevel)
	}
	if col.MaxDefinitionLevel != 1 {
		t.Fatalf("expected max definition level 1, got %d", col.MaxDefinitionLevel)
	}
	if len(col.RepeatedAncestorDefinitionLevels) != 1 {
		t.Fatalf("expected one repeated ancestor, got %v", col.RepeatedAncestorDefinitionLevels)
	}
}

func TestMapLevels(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"attrs": schema.Map(byteArrayLeaf(), schema.Optional(int32Leaf())),
	})
	s := schema.NewSchema("message", root)

	key, ok := s.Lookup("attrs", "key_value", "key")
	if !ok {
		t.Fatal("expected to find column \"attrs.key_value.key\"")
	}
	if key.MaxRepetitionLevel != 1 || key.MaxDefinitionLevel != 1 {
		t.Fatalf("key: want 1/1, got %d/%d", key.MaxRepetitionLevel, key.MaxDefinitionLevel)
	}

	value, ok := s.Lookup("attrs", "key_value", "value")
	if !ok {
		t.Fatal("expected to find column \"attrs.key_value.value\"")
	}
	if value.MaxRepetitionLevel != 1 || value.MaxDefinitionLevel != 2 {
		t.Fatalf("value: want 1/2, got %d/%d", value.MaxRepetitionLevel, value.MaxDefinitionLevel)
	}
}

func TestElementsRoundTripsShape(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"id": int32Leaf(),
	})
	s := schema.NewSchema("message", root)
	elements := s.Elements()

	if len(elements) != 2 {
		t.Fatalf("expected 2 schema elements (root + 1 leaf), got %d", len(elements))
	}
	if elements[0].Name != "message" || elements[0].NumChildren == nil || *elements[0].NumChildren != 1 {
		t.Fatalf("unexpected root element: %+v", elements[0])
	}
	if elements[1].Name != "id" || elements[1].Type == nil || *elements[1].Type != format.Int32 {
		t.Fatalf("unexpected leaf element: %+v", elements[1])
	}
}
