package parquet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parquet-go/parquet-core/format"
)

func int32Elem(name string) format.SchemaElement {
	typ := format.Int32
	rep := format.Required
	return format.SchemaElement{Type: &typ, Name: name, RepetitionType: &rep}
}

func utf8Elem(name string) format.SchemaElement {
	typ := format.ByteArray
	rep := format.Required
	ct := format.UTF8
	return format.SchemaElement{Type: &typ, Name: name, RepetitionType: &rep, ConvertedType: &ct}
}

// TestSchemaFromElementsPreservesDeclarationOrder is the reason
// schema.GroupOrdered exists instead of schema.NewGroup: a footer's children
// are not necessarily alphabetical, and must stay positionally aligned with
// each row group's ColumnChunk list.
func TestSchemaFromElementsPreservesDeclarationOrder(t *testing.T) {
	n := int32(2)
	root := format.SchemaElement{Name: "message", NumChildren: &n}
	elements := []format.SchemaElement{
		root,
		int32Elem("zeta"),
		utf8Elem("alpha"),
	}

	s, err := schemaFromElements(elements)
	require.NoError(t, err)
	require.Equal(t, "message", s.Name)
	require.Equal(t, []string{"zeta", "alpha"}, s.Root.ChildNames())

	require.Len(t, s.Columns, 2)
	require.Equal(t, []string{"zeta"}, s.Columns[0].Path)
	require.Equal(t, []string{"alpha"}, s.Columns[1].Path)

	alpha, ok := s.Lookup("alpha")
	require.True(t, ok)
	typ, ok := alpha.Type.(Type)
	require.True(t, ok)
	require.Equal(t, ByteArray, typ.Kind())
	ct := typ.ConvertedType()
	require.NotNil(t, ct)
	require.Equal(t, format.UTF8, *ct)
}

func TestSchemaFromElementsRejectsTruncatedList(t *testing.T) {
	n := int32(2)
	root := format.SchemaElement{Name: "message", NumChildren: &n}
	_, err := schemaFromElements([]format.SchemaElement{root, int32Elem("only_one")})
	require.Error(t, err)
}

func TestTypeFromSchemaElementLogicalTypePrecedence(t *testing.T) {
	// A DECIMAL logical type takes precedence over any stray ConvertedType,
	// and carries precision/scale through.
	physical := format.FixedLenByteArray
	length := int32(9)
	rep := format.Required
	e := format.SchemaElement{
		Type:       &physical,
		TypeLength: &length,
		Name:       "amount",
		RepetitionType: &rep,
		LogicalType: &format.LogicalType{Decimal: &format.DecimalType{Precision: 20, Scale: 2}},
	}
	typ, err := typeFromSchemaElement(e)
	require.NoError(t, err)
	require.Equal(t, FixedLenByteArray, typ.Kind())
	lt := typ.LogicalType()
	require.NotNil(t, lt)
	require.NotNil(t, lt.Decimal)
	require.Equal(t, int32(20), lt.Decimal.Precision)
	require.Equal(t, int32(2), lt.Decimal.Scale)
}
