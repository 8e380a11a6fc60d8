package plain_test

import (
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-core/encoding/plain"
)

func TestInt32RoundTrip(t *testing.T) {
	e := plain.Encoding{}
	src := []int32{1, -2, 3, 0, 2147483647, -2147483648}

	buf, err := e.EncodeInt32(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 4*len(src) {
		t.Fatalf("expected %d bytes, got %d", 4*len(src), len(buf))
	}

	got, err := e.DecodeInt32(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, src) {
		t.Fatalf("want=%v got=%v", src, got)
	}
}

func TestByteArrayRoundTrip(t *testing.T) {
	e := plain.Encoding{}
	values := [][]byte{[]byte("hello"), []byte(""), []byte("parquet")}

	var data []byte
	var lengths []int32
	for _, v := range values {
		data = append(data, v...)
		lengths = append(lengths, int32(len(v)))
	}

	buf, err := e.EncodeByteArray(nil, data, lengths)
	if err != nil {
		t.Fatal(err)
	}

	decodedData, decodedLengths, err := e.DecodeByteArray(nil, buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(decodedLengths, lengths) {
		t.Fatalf("lengths mismatch: want=%v got=%v", lengths, decodedLengths)
	}
	pos := 0
	for i, n := range decodedLengths {
		got := decodedData[pos : pos+int(n)]
		if string(got) != string(values[i]) {
			t.Fatalf("value %d mismatch: want=%q got=%q", i, values[i], got)
		}
		pos += int(n)
	}
}

func TestDoubleRoundTrip(t *testing.T) {
	e := plain.Encoding{}
	src := []float64{0, 1.5, -2.25, 3.14159265}

	buf, err := e.EncodeDouble(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	got, err := e.DecodeDouble(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, src) {
		t.Fatalf("want=%v got=%v", src, got)
	}
}

func TestDecodeInt32InvalidLength(t *testing.T) {
	e := plain.Encoding{}
	if _, err := e.DecodeInt32(nil, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected error decoding truncated INT32 buffer")
	}
}
