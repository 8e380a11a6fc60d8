package rle_test

import (
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-core/encoding/rle"
)

func roundTrip(t *testing.T, values []int32, bitWidth int) {
	t.Helper()
	buf, err := rle.Encode(nil, values, bitWidth)
	if err != nil {
		t.Fatal(err)
	}
	got, err := rle.Decode(nil, buf, bitWidth, len(values))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("bitWidth=%d: want=%v got=%v", bitWidth, values, got)
	}
}

func TestEncodeDecodeAllRepeated(t *testing.T) {
	roundTrip(t, []int32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 1)
}

func TestEncodeDecodeAllDistinct(t *testing.T) {
	roundTrip(t, []int32{0, 1, 2, 3, 4, 5, 6, 7, 1, 2, 3, 4, 5}, 3)
}

func TestEncodeDecodeMixedRuns(t *testing.T) {
	values := []int32{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 1, 2, 3, 4, 5, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	roundTrip(t, values, 3)
}

func TestEncodeDecodeZeroBitWidth(t *testing.T) {
	roundTrip(t, []int32{0, 0, 0, 0, 0}, 0)
}

func TestEncodeDecodeEmpty(t *testing.T) {
	roundTrip(t, nil, 4)
}

func TestEncodeDecodeSingleValuePerGroupBoundary(t *testing.T) {
	values := make([]int32, 17)
	for i := range values {
		values[i] = int32(i % 5)
	}
	roundTrip(t, values, 3)
}

func TestDecodeRejectsBitWidthOver32(t *testing.T) {
	if _, err := rle.Decode(nil, []byte{0x02, 0x01}, 33, 1); err == nil {
		t.Fatal("expected an error for bitWidth > 32")
	}
}

func TestDecodeRejectsZeroCountRun(t *testing.T) {
	// header 0x00 is an RLE run (low bit 0) with count 0.
	src := []byte{0x00, 0x01}
	if _, err := rle.Decode(nil, src, 8, 1); err == nil {
		t.Fatal("expected an error for a zero-count RLE run")
	}
}

func TestDecodeRejectsUnconsumedData(t *testing.T) {
	buf, err := rle.Encode(nil, []int32{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	buf = append(buf, 0xff)
	if _, err := rle.Decode(nil, buf, 1, 10); err == nil {
		t.Fatal("expected an error for unconsumed trailing bytes")
	}
}
