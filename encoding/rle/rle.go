// Package rle implements the RLE/Bit-Packing Hybrid encoding (spec.md §4.4):
// a sequence of runs, each either a run-length-encoded repeated value or a
// group of bit-packed values, framed by a varint run header.
//
// This module's codec is grounded on the algorithm the teacher's
// encoding/rle package implements (run header in the low bit selecting
// RLE vs bit-packed, values packed in groups of 8), rewritten as plain Go
// operating on []int32 rather than the teacher's SIMD/unsafe vectorized
// byte-shuffling, since bit-packing and delta encodings beyond this are out
// of scope (spec.md Non-goals).
package rle

import (
	"encoding/binary"
	"fmt"

	"github.com/parquet-go/parquet-core/encoding"
)

// groupSize is the number of values packed together in one bit-packed group;
// run headers count bit-packed runs in units of groups of 8 values.
const groupSize = 8

// maxBitPackedGroupsPerRun caps a single bit-packed run, matching the
// teacher's default so encoders never need to backtrack to rewrite a
// varint run header after deciding how many groups it covers.
const maxBitPackedGroupsPerRun = 8

// Encode appends the RLE/bit-pack hybrid encoding of src to dst, using
// bitWidth bits per value. bitWidth must be at least large enough to
// represent every value in src (see internal/bits.BitWidth).
func Encode(dst []byte, src []int32, bitWidth int) ([]byte, error) {
	if bitWidth < 0 || bitWidth > 32 {
		return dst, encoding.Errorf(rleName{}, "invalid bit width %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}
	if bitWidth == 0 {
		return dst, nil
	}

	i := 0
	for i < len(src) {
		runLen := repeatLength(src, i)
		if runLen >= 8 {
			dst = appendRLERun(dst, src[i], runLen, bitWidth)
			i += runLen
			continue
		}

		// Accumulate a bit-packed run: consume non-repetitive values in
		// groups of 8 until a long repeat appears or the input ends.
		start := i
		for i < len(src) {
			remaining := len(src) - i
			if remaining >= groupSize && (i-start)%groupSize == 0 {
				if repeatLength(src, i) >= 8 {
					break
				}
			}
			i++
			if i-start >= maxBitPackedGroupsPerRun*groupSize {
				break
			}
		}
		dst = appendBitPackedRun(dst, src[start:i], bitWidth)
	}
	return dst, nil
}

// repeatLength returns the number of consecutive equal values starting at i.
func repeatLength(src []int32, i int) int {
	n := 1
	for i+n < len(src) && src[i+n] == src[i] {
		n++
	}
	return n
}

func appendRLERun(dst []byte, value int32, count int, bitWidth int) []byte {
	dst = appendUvarint(dst, uint64(count)<<1)
	width := (bitWidth + 7) / 8
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(value))
	return append(dst, buf[:width]...)
}

func appendBitPackedRun(dst []byte, values []int32, bitWidth int) []byte {
	// Pad to a multiple of groupSize with zero values; the decoder is told
	// the exact value count out of band (spec.md §4.4 delegates framing of
	// "how many values total" to the level/dictionary callers).
	numGroups := (len(values) + groupSize - 1) / groupSize
	dst = appendUvarint(dst, uint64(numGroups)<<1|1)

	padded := values
	if len(padded)%groupSize != 0 {
		padded = make([]int32, numGroups*groupSize)
		copy(padded, values)
	}

	bitBuf := make([]byte, numGroups*bitWidth)
	bitOffset := 0
	for _, v := range padded {
		writeBits(bitBuf, bitOffset, bitWidth, uint32(v))
		bitOffset += bitWidth
	}
	return append(dst, bitBuf...)
}

func writeBits(buf []byte, bitOffset, bitWidth int, value uint32) {
	for b := 0; b < bitWidth; b++ {
		if value&(1<<uint(b)) != 0 {
			pos := bitOffset + b
			buf[pos/8] |= 1 << uint(pos%8)
		}
	}
}

func readBits(buf []byte, bitOffset, bitWidth int) uint32 {
	var value uint32
	for b := 0; b < bitWidth; b++ {
		pos := bitOffset + b
		if pos/8 < len(buf) && buf[pos/8]&(1<<uint(pos%8)) != 0 {
			value |= 1 << uint(b)
		}
	}
	return value
}

func appendUvarint(dst []byte, v uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	return append(dst, buf[:n]...)
}

// Decode reads up to count values encoded with Encode at bitWidth, appending
// them to dst, and returns the grown slice.
func Decode(dst []int32, src []byte, bitWidth int, count int) ([]int32, error) {
	if bitWidth < 0 || bitWidth > 32 {
		return dst, encoding.Errorf(rleName{}, "invalid bit width %d: %w", bitWidth, encoding.ErrInvalidArgument)
	}
	if bitWidth == 0 {
		for n := 0; n < count; n++ {
			dst = append(dst, 0)
		}
		return dst, nil
	}

	pos := 0
	remaining := count
	for remaining > 0 {
		header, n := binary.Uvarint(src[pos:])
		if n <= 0 {
			return dst, encoding.Errorf(rleName{}, "truncated run header: %w", encoding.ErrCorrupted)
		}
		pos += n

		if header&1 == 0 {
			runLen := int(header >> 1)
			if runLen == 0 {
				return dst, encoding.Errorf(rleName{}, "zero-count RLE run: %w", encoding.ErrCorrupted)
			}
			width := (bitWidth + 7) / 8
			if pos+width > len(src) {
				return dst, encoding.Errorf(rleName{}, "truncated RLE run value: %w", encoding.ErrCorrupted)
			}
			var buf [4]byte
			copy(buf[:], src[pos:pos+width])
			value := int32(binary.LittleEndian.Uint32(buf[:]))
			pos += width

			if runLen > remaining {
				runLen = remaining
			}
			for i := 0; i < runLen; i++ {
				dst = append(dst, value)
			}
			remaining -= runLen
		} else {
			numGroups := int(header >> 1)
			byteLen := numGroups * bitWidth
			if pos+byteLen > len(src) {
				return dst, encoding.Errorf(rleName{}, "truncated bit-packed run: %w", encoding.ErrCorrupted)
			}
			groupValues := numGroups * groupSize
			take := groupValues
			if take > remaining {
				take = remaining
			}
			bitOffset := 0
			for i := 0; i < take; i++ {
				dst = append(dst, int32(readBits(src[pos:pos+byteLen], bitOffset, bitWidth)))
				bitOffset += bitWidth
			}
			pos += byteLen
			remaining -= take
		}
	}
	if pos != len(src) {
		return dst, encoding.Errorf(rleName{}, "unconsumed data: %d leftover bytes: %w", len(src)-pos, encoding.ErrCorrupted)
	}
	return dst, nil
}

type rleName struct{}

func (rleName) String() string { return "RLE" }

var _ fmt.Stringer = rleName{}
