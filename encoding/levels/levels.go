// Package levels implements the repetition/definition level codec used by
// v1 DATA_PAGE bodies (spec.md §4.5): the RLE/bit-pack hybrid stream from
// encoding/rle, prefixed with its own 4-byte little-endian length so that a
// reader can skip over the level streams without decoding them, a framing
// convention the format requires for the "levels embedded before values"
// layout of a v1 data page (spec.md §6).
package levels

import (
	"encoding/binary"

	"github.com/parquet-go/parquet-core/encoding"
	"github.com/parquet-go/parquet-core/encoding/rle"
	"github.com/parquet-go/parquet-core/internal/bits"
)

// Encode appends the length-prefixed RLE encoding of values to dst. maxLevel
// is the schema-declared maximum repetition or definition level for the
// column, which determines the bit width of the encoding.
func Encode(dst []byte, values []int32, maxLevel int) ([]byte, error) {
	bitWidth := bits.BitWidth(maxLevel)

	body, err := rle.Encode(nil, values, bitWidth)
	if err != nil {
		return dst, encoding.Errorf(levelsName{}, "encoding levels: %w", err)
	}

	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(body)))
	dst = append(dst, hdr[:]...)
	dst = append(dst, body...)
	return dst, nil
}

// Decode reads count length-prefixed RLE-encoded levels from the front of
// src, appending them to dst, and returns the grown slice along with the
// number of bytes consumed from src (the 4-byte header plus the body).
func Decode(dst []int32, src []byte, maxLevel int, count int) ([]int32, int, error) {
	if len(src) < 4 {
		return dst, 0, encoding.Errorf(levelsName{}, "truncated level stream header: %w", encoding.ErrCorrupted)
	}
	bodyLen := int(binary.LittleEndian.Uint32(src))
	if 4+bodyLen > len(src) {
		return dst, 0, encoding.Errorf(levelsName{}, "level stream body length %d exceeds input: %w", bodyLen, encoding.ErrCorrupted)
	}

	bitWidth := bits.BitWidth(maxLevel)
	dst, err := rle.Decode(dst, src[4:4+bodyLen], bitWidth, count)
	if err != nil {
		return dst, 0, encoding.Errorf(levelsName{}, "decoding levels: %w", err)
	}
	return dst, 4 + bodyLen, nil
}

type levelsName struct{}

func (levelsName) String() string { return "LEVELS" }
