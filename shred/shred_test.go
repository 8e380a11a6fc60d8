package shred_test

import (
	"testing"

	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/schema"
	"github.com/parquet-go/parquet-core/shred"
)

// testValue is a minimal shred.LeafValue used only to exercise the shredder
// and reconstructor without depending on the root parquet package (which
// imports schema, and would cycle back here).
type testValue int32

func (v testValue) Kind() int8 { return 0 }

type stubType struct{ physical format.Type }

func (t stubType) String() string                      { return t.physical.String() }
func (t stubType) PhysicalType() format.Type            { return t.physical }
func (t stubType) Length() int                          { return 0 }
func (t stubType) LogicalType() *format.LogicalType     { return nil }
func (t stubType) ConvertedType() *format.ConvertedType { return nil }

func int32Leaf() schema.Node { return schema.Leaf(stubType{physical: format.Int32}) }

func toLeaf(r shred.Row) testValue { return r.Value.(testValue) }
func fromLeaf(v testValue) shred.Row {
	return shred.Row{Value: v}
}

func TestShredReconstructFlatSchema(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"id":   int32Leaf(),
		"name": schema.Optional(int32Leaf()),
	})
	s := schema.NewSchema("message", root)

	sh := shred.NewShredder[testValue](s, toLeaf)
	if err := sh.Shred(shred.Row{Group: map[string]shred.Row{
		"id":   fromLeaf(1),
		"name": fromLeaf(2),
	}}); err != nil {
		t.Fatal(err)
	}
	if err := sh.Shred(shred.Row{Group: map[string]shred.Row{
		"id":   fromLeaf(3),
		"name": shred.NullRow,
	}}); err != nil {
		t.Fatal(err)
	}

	cols := sh.Columns()
	idCol, _ := s.Lookup("id")
	nameCol, _ := s.Lookup("name")

	if got := cols.Values[idCol.ColumnIndex]; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("unexpected id values: %v", got)
	}
	if got := cols.Values[nameCol.ColumnIndex]; len(got) != 1 || got[0] != 2 {
		t.Fatalf("unexpected name values: %v", got)
	}
	if got := cols.DefinitionLevels[nameCol.ColumnIndex]; len(got) != 2 || got[0] != 1 || got[1] != 0 {
		t.Fatalf("unexpected name definition levels: %v", got)
	}

	rec := shred.NewReconstructor[testValue](s, cols, func(v testValue) shred.Row { return shred.Row{Value: v} })
	row1, ok := rec.Next()
	if !ok {
		t.Fatal("expected first record")
	}
	if row1.Group["id"].Value.(testValue) != 1 || row1.Group["name"].Value.(testValue) != 2 {
		t.Fatalf("unexpected first record: %+v", row1)
	}
	row2, ok := rec.Next()
	if !ok {
		t.Fatal("expected second record")
	}
	if row2.Group["id"].Value.(testValue) != 3 || !row2.Group["name"].IsNull {
		t.Fatalf("unexpected second record: %+v", row2)
	}
	if !rec.Done() {
		t.Fatal("expected reconstructor to be exhausted")
	}
}

func TestShredReconstructList(t *testing.T) {
	root := schema.NewGroup(schema.Group{
		"tags": schema.List(int32Leaf()),
	})
	s := schema.NewSchema("message", root)

	sh := shred.NewShredder[testValue](s, toLeaf)
	record := shred.Row{Group: map[string]shred.Row{
		"tags": {List: []shred.Row{fromLeaf(1), fromLeaf(2), fromLeaf(3)}},
	}}
	if err := sh.Shred(record); err != nil {
		t.Fatal(err)
	}
	empty := shred.Row{Group: map[string]shred.Row{
		"tags": {List: []shred.Row{}},
	}}
	if err := sh.Shred(empty); err != nil {
		t.Fatal(err)
	}

	cols := sh.Columns()
	leaf, ok := s.Lookup("tags", "list", "element")
	if !ok {
		t.Fatal("expected leaf column")
	}
	if got := cols.Values[leaf.ColumnIndex]; len(got) != 3 {
		t.Fatalf("expected 3 values, got %v", got)
	}
	if got := cols.RepetitionLevels[leaf.ColumnIndex]; len(got) != 4 {
		t.Fatalf("expected 4 repetition level entries (3 + 1 empty), got %v", got)
	}

	rec := shred.NewReconstructor[testValue](s, cols, func(v testValue) shred.Row { return shred.Row{Value: v} })
	row1, ok := rec.Next()
	if !ok {
		t.Fatal("expected first record")
	}
	tagsRow := row1.Group["tags"]
	if len(tagsRow.List) != 3 {
		t.Fatalf("expected 3 tags, got %+v", tagsRow)
	}

	row2, ok := rec.Next()
	if !ok {
		t.Fatal("expected second record")
	}
	if tagsRow2 := row2.Group["tags"]; tagsRow2.List == nil || len(tagsRow2.List) != 0 {
		t.Fatalf("expected present-empty list, got %+v", tagsRow2)
	}
}
