package parquet

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parquet-go/parquet-core/internal/ioutil"
	"github.com/parquet-go/parquet-core/schema"
	"github.com/parquet-go/parquet-core/shred"
)

func testFileSchema() *schema.Schema {
	return schema.NewSchema("message", schema.NewGroup(schema.Group{
		"id":   schema.Leaf(Int32Type()),
		"name": schema.Optional(schema.Leaf(StringType())),
	}))
}

// TestWriterOpenFileRoundTrip writes a two-row-group file through Writer and
// reads it back through OpenFile, checking the PAR1 framing, the
// footer-reconstructed schema, and every value in every row group/column.
func TestWriterOpenFileRoundTrip(t *testing.T) {
	s := testFileSchema()
	var buf bytes.Buffer
	sink := ioutil.NewOutputSink(&buf)

	w, err := NewWriter(sink, s, WriterConfig{CreatedBy: "parquet-core test"})
	require.NoError(t, err)

	rowGroups := [][]shred.Row{
		{
			{Group: map[string]shred.Row{"id": {Value: Int32Value(1)}, "name": {Value: ByteArrayValue([]byte("alice"))}}},
			{Group: map[string]shred.Row{"id": {Value: Int32Value(2)}, "name": shred.NullRow}},
		},
		{
			{Group: map[string]shred.Row{"id": {Value: Int32Value(3)}, "name": {Value: ByteArrayValue([]byte("carol"))}}},
		},
	}

	for _, rows := range rowGroups {
		rg, err := w.WriteRowGroup()
		require.NoError(t, err)
		for _, row := range rows {
			require.NoError(t, rg.WriteRow(row))
		}
		_, err = rg.Close()
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	data := buf.Bytes()
	require.Equal(t, fileMagic, string(data[:4]))
	require.Equal(t, fileMagic, string(data[len(data)-4:]))

	f, err := OpenFile(ioutil.NewRandomAccessInput(bytes.NewReader(data), int64(len(data))))
	require.NoError(t, err)
	require.Equal(t, int64(3), f.NumRows())
	require.Equal(t, 2, f.NumRowGroups())
	require.Equal(t, "message", f.Schema().Name)
	require.Equal(t, 2, f.Schema().NumColumns())

	id, ok := f.Schema().Lookup("id")
	require.True(t, ok)
	require.Equal(t, Int32, id.Type.(Type).Kind())

	name, ok := f.Schema().Lookup("name")
	require.True(t, ok)
	require.Equal(t, ByteArray, name.Type.(Type).Kind())
	require.Equal(t, 1, name.MaxDefinitionLevel)

	wantIDs := [][]int32{{1, 2}, {3}}
	wantNames := [][]struct {
		null bool
		s    string
	}{
		{{false, "alice"}, {true, ""}},
		{{false, "carol"}},
	}

	for rgIdx := 0; rgIdx < f.NumRowGroups(); rgIdx++ {
		rg, err := f.RowGroup(rgIdx)
		require.NoError(t, err)
		require.Equal(t, int64(len(wantIDs[rgIdx])), rg.NumRows())

		idCol, err := rg.Column(id.ColumnIndex)
		require.NoError(t, err)
		for _, want := range wantIDs[rgIdx] {
			v, rep, def, err := idCol.ReadValue()
			require.NoError(t, err)
			require.Equal(t, 0, rep)
			require.Equal(t, 0, def)
			require.Equal(t, want, v.Int32())
		}
		_, _, _, err = idCol.ReadValue()
		require.Equal(t, io.EOF, err)

		nameCol, err := rg.Column(name.ColumnIndex)
		require.NoError(t, err)
		for _, want := range wantNames[rgIdx] {
			v, _, def, err := nameCol.ReadValue()
			require.NoError(t, err)
			require.Equal(t, want.null, v.IsNull())
			if !want.null {
				require.Equal(t, 1, def)
				require.Equal(t, want.s, string(v.ByteArray()))
			} else {
				require.Equal(t, 0, def)
			}
		}
		_, _, _, err = nameCol.ReadValue()
		require.Equal(t, io.EOF, err)
	}
}

func TestOpenFileRejectsBadMagic(t *testing.T) {
	data := []byte("NOT1garbage bytesNOT1")
	_, err := OpenFile(ioutil.NewRandomAccessInput(bytes.NewReader(data), int64(len(data))))
	require.Error(t, err)
}

func TestWriterRejectsOverlappingRowGroups(t *testing.T) {
	s := testFileSchema()
	var buf bytes.Buffer
	w, err := NewWriter(ioutil.NewOutputSink(&buf), s, WriterConfig{})
	require.NoError(t, err)

	_, err = w.WriteRowGroup()
	require.NoError(t, err)

	_, err = w.WriteRowGroup()
	require.Error(t, err, "expected an error opening a second row group before the first is closed")
}
