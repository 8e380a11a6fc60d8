package levels_test

import (
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-core/encoding/levels"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := []int32{0, 1, 1, 1, 0, 2, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	maxLevel := 2

	buf, err := levels.Encode(nil, values, maxLevel)
	if err != nil {
		t.Fatal(err)
	}

	got, n, err := levels.Decode(nil, buf, maxLevel, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(buf) {
		t.Fatalf("expected to consume %d bytes, consumed %d", len(buf), n)
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("want=%v got=%v", values, got)
	}
}

func TestEncodeDecodeMaxLevelZero(t *testing.T) {
	values := []int32{0, 0, 0, 0}
	buf, err := levels.Encode(nil, values, 0)
	if err != nil {
		t.Fatal(err)
	}
	got, _, err := levels.Decode(nil, buf, 0, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("want=%v got=%v", values, got)
	}
}

func TestDecodeTrailingBytesIgnored(t *testing.T) {
	values := []int32{1, 1, 0, 1}
	buf, err := levels.Encode(nil, values, 1)
	if err != nil {
		t.Fatal(err)
	}
	buf = append(buf, 0xFF, 0xFF, 0xFF) // simulate a following level stream
	got, n, err := levels.Decode(nil, buf, 1, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if n >= len(buf) {
		t.Fatalf("expected Decode to stop before trailing bytes, consumed %d of %d", n, len(buf))
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("want=%v got=%v", values, got)
	}
}
