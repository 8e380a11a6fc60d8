// Package bits implements small bit-twiddling helpers shared by the encoding,
// column and schema packages: byte-count rounding, bit-width computation, and
// min/max scans over typed slices (column statistics are computed with
// Type.Compare, not with these scans).
package bits

import (
	"bytes"
	"math/bits"
)

// ByteCount returns the number of bytes needed to hold count bits.
func ByteCount(count uint) int {
	return int((count + 7) / 8)
}

// BitWidth returns the number of bits needed to represent maxValue, i.e.
// ceil(log2(maxValue + 1)). Used to derive the RLE/bit-pack width of a
// definition or repetition level stream from its schema-declared max level,
// and the width of dictionary indices from the dictionary's cardinality.
func BitWidth(maxValue int) int {
	if maxValue <= 0 {
		return 0
	}
	return bits.Len(uint(maxValue))
}

// MaxLen32 returns the number of bits needed to represent the largest value
// in data, each value read as unsigned (so any negative value needs 32).
func MaxLen32(data []int32) int {
	max := 0
	for _, v := range data {
		if n := bits.Len32(uint32(v)); n > max {
			max = n
		}
	}
	return max
}

func MaxLen64(data []int64) int {
	max := 0
	for _, v := range data {
		if n := bits.Len64(uint64(v)); n > max {
			max = n
		}
	}
	return max
}

func MinMaxInt32(data []int32) (min, max int32) {
	if len(data) > 0 {
		min, max = data[0], data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func MinMaxInt64(data []int64) (min, max int64) {
	if len(data) > 0 {
		min, max = data[0], data[0]
		for _, v := range data[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}

func MinMaxFloat32(data []float32) (min, max float32, valid bool) {
	for i, v := range data {
		if v != v { // NaN is excluded from bounds but not from the count.
			continue
		}
		if !valid {
			min, max, valid = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		_ = i
	}
	return min, max, valid
}

func MinMaxFloat64(data []float64) (min, max float64, valid bool) {
	for _, v := range data {
		if v != v {
			continue
		}
		if !valid {
			min, max, valid = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, valid
}

func MinMaxByteArray(data [][]byte) (min, max []byte) {
	if len(data) > 0 {
		min, max = data[0], data[0]
		for _, v := range data[1:] {
			if bytes.Compare(v, min) < 0 {
				min = v
			}
			if bytes.Compare(v, max) > 0 {
				max = v
			}
		}
	}
	return min, max
}

// Fill writes repeated copies of v to b, similar to bytes.Repeat but without
// allocating, and returns the number of bytes written.
func Fill(b []byte, v []byte) int {
	n := copy(b, v)
	for i := n; i < len(b); {
		n += copy(b[i:], b[:i])
		i *= 2
	}
	return n
}
