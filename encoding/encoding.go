// Package encoding defines the generic Encoding interface (implemented by the
// plain sub-package), plus the sentinel errors and Error/Errorf helpers that
// the plain, rle, levels and dict sub-packages report through.
//
// Every encoding operates on byte-buffer append functions rather than
// io.Reader/io.Writer streams: EncodeXxx(dst, src) appends the encoded form
// of src to dst and returns the grown slice, and DecodeXxx(dst, src) does the
// reverse. This keeps column buffering allocation-free across page
// boundaries, since a writer can reuse its dst buffer between flushes.
package encoding

import (
	"errors"
	"fmt"

	"github.com/parquet-go/parquet-core/deprecated"
	"github.com/parquet-go/parquet-core/format"
)

var (
	// ErrNotSupported is returned when an encoding is asked to encode or
	// decode a physical type it fundamentally cannot represent (e.g. asking
	// the RLE/bit-pack codec to encode a BYTE_ARRAY column).
	ErrNotSupported = errors.New("encoding does not support this value type")

	// ErrInvalidArgument is returned when the arguments passed to an encode
	// or decode call are inconsistent, e.g. a src buffer whose length is not
	// a multiple of the declared fixed element size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorrupted is returned when a decoder reaches a sequence of bytes
	// that cannot be a validly encoded value stream (a run header pointing
	// past the end of the buffer, a length prefix larger than the remaining
	// input, ...).
	ErrCorrupted = errors.New("corrupted input")
)

// Error wraps err with the name of the encoding e that produced it.
func Error(e fmt.Stringer, err error) error {
	return fmt.Errorf("%s: %w", e, err)
}

// Errorf is like Error but builds the wrapped error from a format string.
func Errorf(e fmt.Stringer, msg string, args ...interface{}) error {
	return Error(e, fmt.Errorf(msg, args...))
}

// Encoding is implemented by the PLAIN codec; the RLE/bit-pack hybrid, level
// and dictionary index codecs expose package-level functions instead.
// Implementations must be safe for concurrent use: a single
// Encoding value is shared by every column writer/reader that selects it.
type Encoding interface {
	fmt.Stringer

	// Encoding returns the format.Encoding code identifying this codec in a
	// page header.
	Encoding() format.Encoding

	// CanEncode reports whether this codec is capable of encoding values of
	// the given physical type.
	CanEncode(format.Type) bool

	EncodeBoolean(dst []byte, src []byte) ([]byte, error)
	EncodeInt32(dst []byte, src []int32) ([]byte, error)
	EncodeInt64(dst []byte, src []int64) ([]byte, error)
	EncodeInt96(dst []byte, src []deprecated.Int96) ([]byte, error)
	EncodeFloat(dst []byte, src []float32) ([]byte, error)
	EncodeDouble(dst []byte, src []float64) ([]byte, error)
	// EncodeByteArray encodes a sequence of variable-length values; lengths
	// gives each value's length in src, in order.
	EncodeByteArray(dst []byte, src []byte, lengths []int32) ([]byte, error)
	EncodeFixedLenByteArray(dst []byte, src []byte, size int) ([]byte, error)

	DecodeBoolean(dst []byte, src []byte) ([]byte, error)
	DecodeInt32(dst []int32, src []byte) ([]int32, error)
	DecodeInt64(dst []int64, src []byte) ([]int64, error)
	DecodeInt96(dst []deprecated.Int96, src []byte) ([]deprecated.Int96, error)
	DecodeFloat(dst []float32, src []byte) ([]float32, error)
	DecodeDouble(dst []float64, src []byte) ([]float64, error)
	// DecodeByteArray decodes into dst, returning the grown slice and the
	// lengths of each decoded value appended to lengths.
	DecodeByteArray(dst []byte, src []byte, lengths []int32) ([]byte, []int32, error)
	DecodeFixedLenByteArray(dst []byte, src []byte, size int) ([]byte, error)
}

// NotSupported is embeddable by encodings that only implement a subset of
// the Encoding interface (e.g. RLE never encodes BYTE_ARRAY); its methods all
// report ErrNotSupported.
type NotSupported struct{}

func (NotSupported) EncodeBoolean(dst, _ []byte) ([]byte, error) { return dst, errUnsupported("BOOLEAN") }
func (NotSupported) EncodeInt32(dst []byte, _ []int32) ([]byte, error) {
	return dst, errUnsupported("INT32")
}
func (NotSupported) EncodeInt64(dst []byte, _ []int64) ([]byte, error) {
	return dst, errUnsupported("INT64")
}
func (NotSupported) EncodeInt96(dst []byte, _ []deprecated.Int96) ([]byte, error) {
	return dst, errUnsupported("INT96")
}
func (NotSupported) EncodeFloat(dst []byte, _ []float32) ([]byte, error) {
	return dst, errUnsupported("FLOAT")
}
func (NotSupported) EncodeDouble(dst []byte, _ []float64) ([]byte, error) {
	return dst, errUnsupported("DOUBLE")
}
func (NotSupported) EncodeByteArray(dst, _ []byte, _ []int32) ([]byte, error) {
	return dst, errUnsupported("BYTE_ARRAY")
}
func (NotSupported) EncodeFixedLenByteArray(dst, _ []byte, _ int) ([]byte, error) {
	return dst, errUnsupported("FIXED_LEN_BYTE_ARRAY")
}

func (NotSupported) DecodeBoolean(dst, _ []byte) ([]byte, error) { return dst, errUnsupported("BOOLEAN") }
func (NotSupported) DecodeInt32(dst []int32, _ []byte) ([]int32, error) {
	return dst, errUnsupported("INT32")
}
func (NotSupported) DecodeInt64(dst []int64, _ []byte) ([]int64, error) {
	return dst, errUnsupported("INT64")
}
func (NotSupported) DecodeInt96(dst []deprecated.Int96, _ []byte) ([]deprecated.Int96, error) {
	return dst, errUnsupported("INT96")
}
func (NotSupported) DecodeFloat(dst []float32, _ []byte) ([]float32, error) {
	return dst, errUnsupported("FLOAT")
}
func (NotSupported) DecodeDouble(dst []float64, _ []byte) ([]float64, error) {
	return dst, errUnsupported("DOUBLE")
}
func (NotSupported) DecodeByteArray(dst, _ []byte, lengths []int32) ([]byte, []int32, error) {
	return dst, lengths, errUnsupported("BYTE_ARRAY")
}
func (NotSupported) DecodeFixedLenByteArray(dst, _ []byte, _ int) ([]byte, error) {
	return dst, errUnsupported("FIXED_LEN_BYTE_ARRAY")
}

func errUnsupported(typ string) error {
	return fmt.Errorf("%w: %s", ErrNotSupported, typ)
}
