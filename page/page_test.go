package page_test

import (
	"bytes"
	"testing"

	"github.com/parquet-go/parquet-core/compress/uncompressed"
	"github.com/parquet-go/parquet-core/encoding/plain"
	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/internal/ioutil"
	"github.com/parquet-go/parquet-core/page"
)

func TestWriteReadDataPageV1(t *testing.T) {
	codec := &uncompressed.Codec{}
	values := []int32{1, 2, 3, 4}
	encodedValues, err := plain.Encoding{}.EncodeInt32(nil, values)
	if err != nil {
		t.Fatal(err)
	}
	defLevels := []int32{1, 1, 0, 1}

	var buf bytes.Buffer
	sink := ioutil.NewOutputSink(&buf)
	minValue, maxValue, err := encodeMinMax(values)
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = page.WriteDataPageV1(sink, codec, format.PlainEncoding, 0, 1, nil, defLevels, encodedValues, 4, 1, minValue, maxValue)
	if err != nil {
		t.Fatal(err)
	}

	r := bytes.NewReader(buf.Bytes())
	header, err := page.ReadHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	if header.Type != format.DataPage {
		t.Fatalf("expected DATA_PAGE, got %v", header.Type)
	}
	if header.DataPageHeader == nil || header.DataPageHeader.NumValues != 4 {
		t.Fatalf("unexpected data page header: %+v", header.DataPageHeader)
	}

	body, err := page.ReadBody(r, header)
	if err != nil {
		t.Fatal(err)
	}
	_, decodedDefLevels, decodedValueBytes, err := page.DecodeDataPageV1(codec, body, 0, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(decodedDefLevels) != 4 {
		t.Fatalf("expected 4 definition levels, got %v", decodedDefLevels)
	}
	decodedValues, err := plain.Encoding{}.DecodeInt32(nil, decodedValueBytes)
	if err != nil {
		t.Fatal(err)
	}
	if len(decodedValues) != 4 || decodedValues[3] != 4 {
		t.Fatalf("unexpected decoded values: %v", decodedValues)
	}
}

func TestWriteReadDictionaryPage(t *testing.T) {
	codec := &uncompressed.Codec{}
	dict := [][]byte{[]byte("a"), []byte("bb"), []byte("ccc")}
	var lengths []int32
	var flat []byte
	for _, v := range dict {
		lengths = append(lengths, int32(len(v)))
		flat = append(flat, v...)
	}
	encoded, err := plain.Encoding{}.EncodeByteArray(nil, flat, lengths)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	sink := ioutil.NewOutputSink(&buf)
	if _, _, err := page.WriteDictionaryPage(sink, codec, encoded, len(dict)); err != nil {
		t.Fatal(err)
	}

	r := bytes.NewReader(buf.Bytes())
	header, err := page.ReadHeader(r)
	if err != nil {
		t.Fatal(err)
	}
	if header.Type != format.DictionaryPage {
		t.Fatalf("expected DICTIONARY_PAGE, got %v", header.Type)
	}
	body, err := page.ReadBody(r, header)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := page.DecodeDictionaryPage(codec, body)
	if err != nil {
		t.Fatal(err)
	}
	gotBytes, gotLengths, err := plain.Encoding{}.DecodeByteArray(nil, decoded, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(gotLengths) != 3 || string(gotBytes[1:3]) != "bb" {
		t.Fatalf("unexpected decoded dictionary: %v %v", gotLengths, string(gotBytes))
	}
}

func encodeMinMax(values []int32) (min, max []byte, err error) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if min, err = (plain.Encoding{}).EncodeInt32(nil, []int32{lo}); err != nil {
		return nil, nil, err
	}
	if max, err = (plain.Encoding{}).EncodeInt32(nil, []int32{hi}); err != nil {
		return nil, nil, err
	}
	return min, max, nil
}
