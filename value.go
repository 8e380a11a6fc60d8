package parquet

import (
	"fmt"
	"math"

	"github.com/parquet-go/parquet-core/deprecated"
)

// Value holds one column value, tagged with its physical Kind, plus the
// repetition and definition levels it carries when shredded out of a nested
// record (spec.md §3, §9). A Value with DefinitionLevel less than its
// column's max definition level represents a null or an absent list/map
// entry rather than a present scalar.
type Value struct {
	kind             Kind
	isNull           bool
	repetitionLevel  byte
	definitionLevel  byte
	boolValue        bool
	numValue         uint64 // holds INT32/INT64/FLOAT/DOUBLE bit patterns
	int96Value       deprecated.Int96
	bytesValue       []byte
}

// Kind returns the value's physical type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value represents a SQL NULL.
func (v Value) IsNull() bool { return v.isNull }

// RepetitionLevel returns the value's repetition level.
func (v Value) RepetitionLevel() int { return int(v.repetitionLevel) }

// DefinitionLevel returns the value's definition level.
func (v Value) DefinitionLevel() int { return int(v.definitionLevel) }

func (v Value) boolean() bool { return v.boolValue }
func (v Value) int32() int32  { return int32(v.numValue) }
func (v Value) int64() int64  { return int64(v.numValue) }
func (v Value) int96() deprecated.Int96 { return v.int96Value }
func (v Value) float32() float32 { return math.Float32frombits(uint32(v.numValue)) }
func (v Value) float64() float64 { return math.Float64frombits(v.numValue) }
func (v Value) byteArray() []byte { return v.bytesValue }

// Boolean returns the value as a bool. It panics if the value's kind is not
// Boolean.
func (v Value) Boolean() bool { v.mustBe(Boolean); return v.boolValue }

// Int32 returns the value as an int32. It panics if the value's kind is not
// Int32.
func (v Value) Int32() int32 { v.mustBe(Int32); return int32(v.numValue) }

// Int64 returns the value as an int64. It panics if the value's kind is not
// Int64.
func (v Value) Int64() int64 { v.mustBe(Int64); return int64(v.numValue) }

// Int96 returns the value as a deprecated.Int96. It panics if the value's
// kind is not Int96.
func (v Value) Int96() deprecated.Int96 { v.mustBe(Int96); return v.int96Value }

// Float returns the value as a float32. It panics if the value's kind is not
// Float.
func (v Value) Float() float32 { v.mustBe(Float); return math.Float32frombits(uint32(v.numValue)) }

// Double returns the value as a float64. It panics if the value's kind is
// not Double.
func (v Value) Double() float64 { v.mustBe(Double); return math.Float64frombits(v.numValue) }

// ByteArray returns the value as a byte slice. It panics if the value's kind
// is neither ByteArray nor FixedLenByteArray.
func (v Value) ByteArray() []byte {
	if v.kind != ByteArray && v.kind != FixedLenByteArray {
		panic(fmt.Sprintf("value of kind %s is not a byte array", v.kind))
	}
	return v.bytesValue
}

func (v Value) mustBe(kind Kind) {
	if v.kind != kind {
		panic(fmt.Sprintf("value of kind %s is not %s", v.kind, kind))
	}
}

// Level attaches repetition and definition levels to v, returning the
// updated value. Used while shredding a nested record into its column
// streams (spec.md §9).
func (v Value) Level(repetitionLevel, definitionLevel int) Value {
	v.repetitionLevel = byte(repetitionLevel)
	v.definitionLevel = byte(definitionLevel)
	return v
}

// NullValue constructs a null value at the given definition level (which
// must be less than the column's max definition level).
func NullValue(definitionLevel int) Value {
	return Value{isNull: true, definitionLevel: byte(definitionLevel)}
}

func BooleanValue(v bool) Value { return Value{kind: Boolean, boolValue: v} }

func Int32Value(v int32) Value { return Value{kind: Int32, numValue: uint64(uint32(v))} }

func Int64Value(v int64) Value { return Value{kind: Int64, numValue: uint64(v)} }

func Int96Value(v deprecated.Int96) Value { return Value{kind: Int96, int96Value: v} }

func FloatValue(v float32) Value { return Value{kind: Float, numValue: uint64(math.Float32bits(v))} }

func DoubleValue(v float64) Value { return Value{kind: Double, numValue: math.Float64bits(v)} }

func ByteArrayValue(v []byte) Value { return Value{kind: ByteArray, bytesValue: v} }

func FixedLenByteArrayValue(v []byte) Value { return Value{kind: FixedLenByteArray, bytesValue: v} }
