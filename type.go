// Package parquet implements a native reader and writer for the Apache
// Parquet columnar file format: PLAIN/RLE-bit-pack/dictionary value
// encoding, repetition/definition level shredding, page framing, and
// row-group/file assembly.
//
// The package is organized the way the teacher this module is grounded on
// organizes a columnar format library: a small root package holding the
// type system, schema tree, and file/row-group/column public API, with the
// codec internals split into focused sub-packages (encoding/..., compress/...,
// format, schema, shred, page, column).
package parquet

import (
	"fmt"

	"github.com/parquet-go/parquet-core/format"
)

// Kind identifies the physical, on-disk representation of a leaf column's
// values.
type Kind int8

const (
	Boolean           Kind = Kind(format.Boolean)
	Int32             Kind = Kind(format.Int32)
	Int64             Kind = Kind(format.Int64)
	Int96             Kind = Kind(format.Int96)
	Float             Kind = Kind(format.Float)
	Double            Kind = Kind(format.Double)
	ByteArray         Kind = Kind(format.ByteArray)
	FixedLenByteArray Kind = Kind(format.FixedLenByteArray)
)

func (k Kind) String() string { return format.Type(k).String() }

// Type is implemented by every leaf physical type description surfaced on a
// schema.Node. It pairs a physical Kind with the optional logical-type
// annotation and legacy converted-type mapping spec.md §3 assigns each leaf.
type Type interface {
	fmt.Stringer

	// Kind returns the physical representation of values of this type.
	Kind() Kind

	// Length returns the fixed byte length for FIXED_LEN_BYTE_ARRAY types,
	// or the bit width for a sized IntType logical annotation; zero
	// otherwise.
	Length() int

	// LogicalType returns the logical-type annotation carried in the
	// schema, or nil if the leaf has none.
	LogicalType() *format.LogicalType

	// ConvertedType returns the legacy converted-type mapping for this
	// type's logical annotation, or nil if there is none.
	ConvertedType() *format.ConvertedType

	// PhysicalType returns the on-disk physical type code.
	PhysicalType() format.Type

	// Compare returns a negative value if a < b, a positive value if
	// a > b, or zero if a == b, using this type's natural ordering
	// (spec.md §9: signed comparison for integers, IEEE 754 total order
	// excluding NaN for floats, unsigned lexicographic for byte arrays).
	Compare(a, b Value) int
}

type primitiveType struct {
	kind    Kind
	length  int
	logical *format.LogicalType
}

func (t *primitiveType) String() string          { return t.kind.String() }
func (t *primitiveType) Kind() Kind               { return t.kind }
func (t *primitiveType) Length() int              { return t.length }
func (t *primitiveType) LogicalType() *format.LogicalType { return t.logical }
func (t *primitiveType) PhysicalType() format.Type { return format.Type(t.kind) }

func (t *primitiveType) ConvertedType() *format.ConvertedType {
	ct, ok := convertedTypeOf(t.logical)
	if !ok {
		return nil
	}
	return &ct
}

func (t *primitiveType) Compare(a, b Value) int {
	switch t.kind {
	case Boolean:
		return compareBool(a.boolean(), b.boolean())
	case Int32:
		return compareInt32(a.int32(), b.int32())
	case Int64:
		return compareInt64(a.int64(), b.int64())
	case Int96:
		i, j := a.int96(), b.int96()
		switch {
		case i.Less(j):
			return -1
		case j.Less(i):
			return +1
		default:
			return 0
		}
	case Float:
		return compareFloat32(a.float32(), b.float32())
	case Double:
		return compareFloat64(a.float64(), b.float64())
	case ByteArray, FixedLenByteArray:
		return compareBytes(a.byteArray(), b.byteArray())
	default:
		panic("comparing values of unknown kind")
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return +1
	default:
		return -1
	}
}

func compareInt32(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func compareFloat32(a, b float32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return +1
	default:
		return 0
	}
}

func compareBytes(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return +1
		}
	}
	return compareInt32(int32(len(a)), int32(len(b)))
}

// BooleanType is the physical BOOLEAN type.
func BooleanType() Type { return &primitiveType{kind: Boolean} }

// Int32Type is the physical INT32 type with no logical annotation.
func Int32Type() Type { return &primitiveType{kind: Int32} }

// Int64Type is the physical INT64 type with no logical annotation.
func Int64Type() Type { return &primitiveType{kind: Int64} }

// Int96Type is the deprecated, read-only-legacy physical INT96 type (spec.md
// Open Questions: values round-trip opaquely, no arithmetic is implemented).
func Int96Type() Type { return &primitiveType{kind: Int96} }

// FloatType is the physical FLOAT type.
func FloatType() Type { return &primitiveType{kind: Float} }

// DoubleType is the physical DOUBLE type.
func DoubleType() Type { return &primitiveType{kind: Double} }

// ByteArrayType is the physical BYTE_ARRAY type with no logical annotation.
func ByteArrayType() Type { return &primitiveType{kind: ByteArray} }

// FixedLenByteArrayType is the physical FIXED_LEN_BYTE_ARRAY type of the
// given element size in bytes.
func FixedLenByteArrayType(size int) Type { return &primitiveType{kind: FixedLenByteArray, length: size} }

// StringType is BYTE_ARRAY annotated as UTF-8 text.
func StringType() Type {
	return &primitiveType{kind: ByteArray, logical: &format.LogicalType{String: &format.StringType{}}}
}

// UUIDType is FIXED_LEN_BYTE_ARRAY(16) annotated as a UUID.
func UUIDType() Type {
	return &primitiveType{kind: FixedLenByteArray, length: 16, logical: &format.LogicalType{UUID: &format.UUIDType{}}}
}

// JSONType is BYTE_ARRAY annotated as JSON text.
func JSONType() Type {
	return &primitiveType{kind: ByteArray, logical: &format.LogicalType{Json: &format.JsonType{}}}
}

// BSONType is BYTE_ARRAY annotated as BSON.
func BSONType() Type {
	return &primitiveType{kind: ByteArray, logical: &format.LogicalType{Bson: &format.BsonType{}}}
}

// EnumType is BYTE_ARRAY annotated as an enumeration of string values.
func EnumType() Type {
	return &primitiveType{kind: ByteArray, logical: &format.LogicalType{Enum: &format.EnumType{}}}
}

// DateType is INT32 annotated as a date (days since the Unix epoch).
func DateType() Type {
	return &primitiveType{kind: Int32, logical: &format.LogicalType{Date: &format.DateType{}}}
}

// Float16Type is FIXED_LEN_BYTE_ARRAY(2) annotated as an IEEE 754
// half-precision float.
func Float16Type() Type {
	return &primitiveType{kind: FixedLenByteArray, length: 2, logical: &format.LogicalType{Float16: &format.Float16Type{}}}
}

// DecimalType is a fixed-point decimal(precision, scale) backed by the
// smallest physical type (INT32, INT64, or FIXED_LEN_BYTE_ARRAY) able to
// hold the given precision, per spec.md §3.
func DecimalType(precision, scale int) Type {
	logical := &format.LogicalType{Decimal: &format.DecimalType{Precision: int32(precision), Scale: int32(scale)}}
	switch {
	case precision <= 9:
		return &primitiveType{kind: Int32, logical: logical}
	case precision <= 18:
		return &primitiveType{kind: Int64, logical: logical}
	default:
		return &primitiveType{kind: FixedLenByteArray, length: decimalFixedLength(precision), logical: logical}
	}
}

// decimalFixedLength returns the minimum FIXED_LEN_BYTE_ARRAY byte width able
// to hold a two's complement integer representing `precision` decimal
// digits: ceil(precision * log2(10) / 8).
func decimalFixedLength(precision int) int {
	const log2_10x1000 = 3322 // log2(10) * 1000, truncated
	bits := (precision*log2_10x1000 + 999) / 1000
	return (bits + 7) / 8
}

// IntType is a sized, optionally-unsigned integer annotation over INT32 (8,
// 16, or 32 bit widths) or INT64 (64 bit width).
func IntType(bitWidth int, signed bool) Type {
	logical := &format.LogicalType{Integer: &format.IntType{BitWidth: int8(bitWidth), IsSigned: signed}}
	if bitWidth == 64 {
		return &primitiveType{kind: Int64, length: bitWidth, logical: logical}
	}
	return &primitiveType{kind: Int32, length: bitWidth, logical: logical}
}

// TimeUnit selects the granularity of a TIME or TIMESTAMP logical type.
type TimeUnit int8

const (
	Millisecond TimeUnit = iota
	Microsecond
	Nanosecond
)

func (u TimeUnit) format() format.TimeUnit {
	switch u {
	case Microsecond:
		return format.TimeUnit{Micros: &format.MicroSeconds{}}
	case Nanosecond:
		return format.TimeUnit{Nanos: &format.NanoSeconds{}}
	default:
		return format.TimeUnit{Millis: &format.MilliSeconds{}}
	}
}

// TimeType is TIME(unit, isAdjustedToUTC): INT32 for millisecond precision,
// INT64 for microsecond or nanosecond precision.
func TimeType(unit TimeUnit, isAdjustedToUTC bool) Type {
	logical := &format.LogicalType{Time: &format.TimeType{IsAdjustedToUTC: isAdjustedToUTC, Unit: unit.format()}}
	if unit == Millisecond {
		return &primitiveType{kind: Int32, logical: logical}
	}
	return &primitiveType{kind: Int64, logical: logical}
}

// TimestampType is TIMESTAMP(unit, isAdjustedToUTC), always backed by INT64.
func TimestampType(unit TimeUnit, isAdjustedToUTC bool) Type {
	logical := &format.LogicalType{Timestamp: &format.TimestampType{IsAdjustedToUTC: isAdjustedToUTC, Unit: unit.format()}}
	return &primitiveType{kind: Int64, logical: logical}
}

// convertedTypeOf maps a LogicalType annotation to its legacy ConvertedType
// equivalent, for backward compatibility with readers that predate
// LogicalType (spec.md §3).
func convertedTypeOf(lt *format.LogicalType) (format.ConvertedType, bool) {
	if lt == nil {
		return 0, false
	}
	switch {
	case lt.String != nil:
		return format.UTF8, true
	case lt.Enum != nil:
		return format.Enum, true
	case lt.Date != nil:
		return format.Date, true
	case lt.Json != nil:
		return format.Json, true
	case lt.Bson != nil:
		return format.Bson, true
	case lt.Decimal != nil:
		return format.Decimal, true
	case lt.Time != nil:
		if lt.Time.Unit.Millis != nil {
			return format.TimeMillis, true
		}
		if lt.Time.Unit.Micros != nil {
			return format.TimeMicros, true
		}
		return 0, false // nanosecond TIME has no converted-type equivalent
	case lt.Timestamp != nil:
		if lt.Timestamp.Unit.Millis != nil {
			return format.TimestampMillis, true
		}
		if lt.Timestamp.Unit.Micros != nil {
			return format.TimestampMicros, true
		}
		return 0, false
	case lt.Integer != nil:
		return convertedIntType(lt.Integer), true
	case lt.List != nil:
		return format.List, true
	case lt.Map != nil:
		return format.Map, true
	default:
		return 0, false
	}
}

func convertedIntType(i *format.IntType) format.ConvertedType {
	switch {
	case i.IsSigned && i.BitWidth == 8:
		return format.Int8
	case i.IsSigned && i.BitWidth == 16:
		return format.Int16
	case i.IsSigned && i.BitWidth == 32:
		return format.Int32Converted
	case i.IsSigned && i.BitWidth == 64:
		return format.Int64Converted
	case !i.IsSigned && i.BitWidth == 8:
		return format.Uint8
	case !i.IsSigned && i.BitWidth == 16:
		return format.Uint16
	case !i.IsSigned && i.BitWidth == 32:
		return format.Uint32
	default:
		return format.Uint64
	}
}
