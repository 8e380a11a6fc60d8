// Package plain implements the PLAIN encoding (spec.md §4.3): the
// byte-for-byte identity encoding with a fixed little-endian in-memory
// layout per physical type, and a 4-byte length prefix for each BYTE_ARRAY
// value. It is grounded on the teacher's encoding/plain package, adapted to
// the byte-buffer append contract declared by encoding.Encoding.
package plain

import (
	"encoding/binary"
	"math"

	"github.com/parquet-go/parquet-core/deprecated"
	"github.com/parquet-go/parquet-core/encoding"
	"github.com/parquet-go/parquet-core/format"
)

// Encoding implements the PLAIN codec.
type Encoding struct{}

func (Encoding) String() string { return "PLAIN" }

func (Encoding) Encoding() format.Encoding { return format.PlainEncoding }

func (Encoding) CanEncode(format.Type) bool { return true }

// EncodeBoolean packs one bit per value, LSB first within each byte, padding
// the final byte with zero bits.
func (Encoding) EncodeBoolean(dst []byte, src []byte) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, (len(src)+7)/8)...)
	for i, v := range src {
		if v != 0 {
			dst[off+i/8] |= 1 << uint(i%8)
		}
	}
	return dst, nil
}

func (Encoding) EncodeInt32(dst []byte, src []int32) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[off+4*i:], uint32(v))
	}
	return dst, nil
}

func (Encoding) EncodeInt64(dst []byte, src []int64) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[off+8*i:], uint64(v))
	}
	return dst, nil
}

func (Encoding) EncodeInt96(dst []byte, src []deprecated.Int96) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, 12*len(src))...)
	for i, v := range src {
		deprecated.PutInt96(dst[off+12*i:], v)
	}
	return dst, nil
}

func (Encoding) EncodeFloat(dst []byte, src []float32) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, 4*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[off+4*i:], math.Float32bits(v))
	}
	return dst, nil
}

func (Encoding) EncodeDouble(dst []byte, src []float64) ([]byte, error) {
	off := len(dst)
	dst = append(dst, make([]byte, 8*len(src))...)
	for i, v := range src {
		binary.LittleEndian.PutUint64(dst[off+8*i:], math.Float64bits(v))
	}
	return dst, nil
}

// EncodeByteArray writes each value as a 4-byte little-endian length
// followed by its bytes, per lengths.
func (Encoding) EncodeByteArray(dst []byte, src []byte, lengths []int32) ([]byte, error) {
	pos := 0
	for _, n := range lengths {
		var hdr [4]byte
		binary.LittleEndian.PutUint32(hdr[:], uint32(n))
		dst = append(dst, hdr[:]...)
		dst = append(dst, src[pos:pos+int(n)]...)
		pos += int(n)
	}
	return dst, nil
}

func (Encoding) EncodeFixedLenByteArray(dst []byte, src []byte, size int) ([]byte, error) {
	return append(dst, src...), nil
}

// DecodeBoolean unpacks one byte (0 or 1) per bit, LSB first, including the
// padding bits of the final byte.
func (Encoding) DecodeBoolean(dst []byte, src []byte) ([]byte, error) {
	for _, b := range src {
		for i := 0; i < 8; i++ {
			dst = append(dst, (b>>uint(i))&1)
		}
	}
	return dst, nil
}

func (Encoding) DecodeInt32(dst []int32, src []byte) ([]int32, error) {
	if len(src)%4 != 0 {
		return dst, encoding.Errorf(Encoding{}, "invalid INT32 input length %d: %w", len(src), encoding.ErrCorrupted)
	}
	for i := 0; i+4 <= len(src); i += 4 {
		dst = append(dst, int32(binary.LittleEndian.Uint32(src[i:])))
	}
	return dst, nil
}

func (Encoding) DecodeInt64(dst []int64, src []byte) ([]int64, error) {
	if len(src)%8 != 0 {
		return dst, encoding.Errorf(Encoding{}, "invalid INT64 input length %d: %w", len(src), encoding.ErrCorrupted)
	}
	for i := 0; i+8 <= len(src); i += 8 {
		dst = append(dst, int64(binary.LittleEndian.Uint64(src[i:])))
	}
	return dst, nil
}

func (Encoding) DecodeInt96(dst []deprecated.Int96, src []byte) ([]deprecated.Int96, error) {
	if len(src)%12 != 0 {
		return dst, encoding.Errorf(Encoding{}, "invalid INT96 input length %d: %w", len(src), encoding.ErrCorrupted)
	}
	for i := 0; i+12 <= len(src); i += 12 {
		dst = append(dst, deprecated.GetInt96(src[i:]))
	}
	return dst, nil
}

func (Encoding) DecodeFloat(dst []float32, src []byte) ([]float32, error) {
	if len(src)%4 != 0 {
		return dst, encoding.Errorf(Encoding{}, "invalid FLOAT input length %d: %w", len(src), encoding.ErrCorrupted)
	}
	for i := 0; i+4 <= len(src); i += 4 {
		dst = append(dst, math.Float32frombits(binary.LittleEndian.Uint32(src[i:])))
	}
	return dst, nil
}

func (Encoding) DecodeDouble(dst []float64, src []byte) ([]float64, error) {
	if len(src)%8 != 0 {
		return dst, encoding.Errorf(Encoding{}, "invalid DOUBLE input length %d: %w", len(src), encoding.ErrCorrupted)
	}
	for i := 0; i+8 <= len(src); i += 8 {
		dst = append(dst, math.Float64frombits(binary.LittleEndian.Uint64(src[i:])))
	}
	return dst, nil
}

func (Encoding) DecodeByteArray(dst []byte, src []byte, lengths []int32) ([]byte, []int32, error) {
	pos := 0
	for pos < len(src) {
		if pos+4 > len(src) {
			return dst, lengths, encoding.Errorf(Encoding{}, "truncated BYTE_ARRAY length prefix: %w", encoding.ErrCorrupted)
		}
		n := int(binary.LittleEndian.Uint32(src[pos:]))
		pos += 4
		if n < 0 || pos+n > len(src) {
			return dst, lengths, encoding.Errorf(Encoding{}, "BYTE_ARRAY value length %d exceeds remaining input: %w", n, encoding.ErrCorrupted)
		}
		dst = append(dst, src[pos:pos+n]...)
		lengths = append(lengths, int32(n))
		pos += n
	}
	return dst, lengths, nil
}

func (Encoding) DecodeFixedLenByteArray(dst []byte, src []byte, size int) ([]byte, error) {
	if size > 0 && len(src)%size != 0 {
		return dst, encoding.Errorf(Encoding{}, "FIXED_LEN_BYTE_ARRAY input length %d not a multiple of size %d: %w", len(src), size, encoding.ErrCorrupted)
	}
	return append(dst, src...), nil
}

var _ encoding.Encoding = Encoding{}
