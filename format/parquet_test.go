package format_test

import (
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-core/format"
	"github.com/segmentio/encoding/thrift"
)

func TestMarshalUnmarshalFileMetaData(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	metadata := &format.FileMetaData{
		Version: 1,
		Schema: []format.SchemaElement{
			{Name: "hello"},
		},
		RowGroups: []format.RowGroup{},
	}

	b, err := thrift.Marshal(protocol, metadata)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.FileMetaData{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(metadata, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", metadata)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestMarshalUnmarshalColumnMetaData(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	value := "v1"
	dictOffset := int64(128)
	meta := &format.ColumnMetaData{
		Type:                  format.ByteArray,
		Encodings:             []format.Encoding{format.PlainEncoding, format.RLEDictionary},
		PathInSchema:          []string{"a", "b"},
		Codec:                 format.Snappy,
		NumValues:             10,
		TotalUncompressedSize: 100,
		TotalCompressedSize:   80,
		KeyValueMetadata:      []format.KeyValue{{Key: "k1", Value: &value}},
		DataPageOffset:        64,
		DictionaryPageOffset:  &dictOffset,
	}

	b, err := thrift.Marshal(protocol, meta)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.ColumnMetaData{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(meta, decoded) {
		t.Error("values mismatch:")
		t.Logf("expected:\n%#v", meta)
		t.Logf("found:\n%#v", decoded)
	}
}

func TestSortKeyValueMetadata(t *testing.T) {
	v1, v2 := "1", "2"
	kv := []format.KeyValue{
		{Key: "b", Value: &v2},
		{Key: "a", Value: &v2},
		{Key: "a", Value: &v1},
		{Key: "a", Value: nil},
	}
	format.SortKeyValueMetadata(kv)

	want := []string{"a", "a", "a", "b"}
	for i, k := range want {
		if kv[i].Key != k {
			t.Fatalf("index %d: expected key %q, got %q", i, k, kv[i].Key)
		}
	}
	if kv[0].Value != nil || *kv[1].Value != "1" || *kv[2].Value != "2" {
		t.Fatalf("unexpected value ordering: %+v", kv)
	}
}
