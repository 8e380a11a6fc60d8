package parquet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parquet-go/parquet-core/format"
)

func TestPrimitiveTypeConstructors(t *testing.T) {
	require.Equal(t, Boolean, BooleanType().Kind())
	require.Equal(t, Int32, Int32Type().Kind())
	require.Equal(t, Int64, Int64Type().Kind())
	require.Equal(t, Int96, Int96Type().Kind())
	require.Equal(t, Float, FloatType().Kind())
	require.Equal(t, Double, DoubleType().Kind())
	require.Equal(t, ByteArray, ByteArrayType().Kind())

	fixed := FixedLenByteArrayType(12)
	require.Equal(t, FixedLenByteArray, fixed.Kind())
	require.Equal(t, 12, fixed.Length())
}

func TestLogicalTypeConvertedTypeMapping(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want format.ConvertedType
	}{
		{"string", StringType(), format.UTF8},
		{"json", JSONType(), format.Json},
		{"bson", BSONType(), format.Bson},
		{"enum", EnumType(), format.Enum},
		{"date", DateType(), format.Date},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := tt.typ.ConvertedType()
			require.NotNil(t, ct)
			require.Equal(t, tt.want, *ct)
		})
	}
}

func TestUUIDAndFloat16HaveNoConvertedType(t *testing.T) {
	// UUID and FLOAT16 postdate the converted_type enum: they carry a
	// LogicalType annotation but no legacy mapping.
	require.Nil(t, UUIDType().ConvertedType())
	require.Equal(t, 16, UUIDType().Length())
	require.Nil(t, Float16Type().ConvertedType())
	require.Equal(t, 2, Float16Type().Length())
}

func TestDecimalTypeChoosesSmallestPhysicalType(t *testing.T) {
	require.Equal(t, Int32, DecimalType(5, 2).Kind())
	require.Equal(t, Int64, DecimalType(15, 2).Kind())
	require.Equal(t, FixedLenByteArray, DecimalType(30, 5).Kind())
	require.Equal(t, format.Decimal, *DecimalType(5, 2).ConvertedType())
}

func TestIntTypeBitWidthSelectsPhysicalType(t *testing.T) {
	require.Equal(t, Int32, IntType(8, true).Kind())
	require.Equal(t, Int32, IntType(32, false).Kind())
	require.Equal(t, Int64, IntType(64, true).Kind())

	require.Equal(t, format.Int8, *IntType(8, true).ConvertedType())
	require.Equal(t, format.Uint16, *IntType(16, false).ConvertedType())
	require.Equal(t, format.Int64Converted, *IntType(64, true).ConvertedType())
	require.Equal(t, format.Uint64, *IntType(64, false).ConvertedType())
}

func TestTimeTypePrecisionSelectsPhysicalType(t *testing.T) {
	require.Equal(t, Int32, TimeType(Millisecond, true).Kind())
	require.Equal(t, Int64, TimeType(Microsecond, true).Kind())
	require.Equal(t, Int64, TimeType(Nanosecond, false).Kind())
	require.Equal(t, Int64, TimestampType(Nanosecond, true).Kind())

	require.Equal(t, format.TimeMillis, *TimeType(Millisecond, true).ConvertedType())
	require.Equal(t, format.TimeMicros, *TimeType(Microsecond, true).ConvertedType())
	// Nanosecond TIME/TIMESTAMP predates converted_type: no legacy mapping.
	require.Nil(t, TimeType(Nanosecond, true).ConvertedType())
	require.Nil(t, TimestampType(Nanosecond, true).ConvertedType())
	require.Equal(t, format.TimestampMillis, *TimestampType(Millisecond, true).ConvertedType())
}

func TestCompareIntegers(t *testing.T) {
	typ := Int32Type()
	require.Negative(t, typ.Compare(Int32Value(1), Int32Value(2)))
	require.Positive(t, typ.Compare(Int32Value(2), Int32Value(1)))
	require.Zero(t, typ.Compare(Int32Value(1), Int32Value(1)))

	i64 := Int64Type()
	require.Negative(t, i64.Compare(Int64Value(-5), Int64Value(5)))
}

func TestCompareFloatsOrdersNormally(t *testing.T) {
	typ := DoubleType()
	require.Negative(t, typ.Compare(DoubleValue(1.5), DoubleValue(2.5)))
	require.Positive(t, typ.Compare(DoubleValue(2.5), DoubleValue(1.5)))
	require.Zero(t, typ.Compare(DoubleValue(3.0), DoubleValue(3.0)))
}

func TestCompareFloatNaNIsUnordered(t *testing.T) {
	// A NaN operand never compares less-than or greater-than any value,
	// including itself: Compare falls through to the equal case. Callers
	// that build min/max statistics must exclude NaN values themselves
	// before folding them through Compare.
	typ := DoubleType()
	nan := DoubleValue(math.NaN())
	require.Zero(t, typ.Compare(nan, DoubleValue(1.0)))
	require.Zero(t, typ.Compare(DoubleValue(1.0), nan))
}

func TestCompareByteArraysLexicographic(t *testing.T) {
	typ := ByteArrayType()
	require.Negative(t, typ.Compare(ByteArrayValue([]byte("abc")), ByteArrayValue([]byte("abd"))))
	require.Negative(t, typ.Compare(ByteArrayValue([]byte("ab")), ByteArrayValue([]byte("abc"))))
	require.Zero(t, typ.Compare(ByteArrayValue([]byte("xyz")), ByteArrayValue([]byte("xyz"))))
}

func TestConvertedIntTypeAllWidths(t *testing.T) {
	require.Equal(t, format.Int8, convertedIntType(&format.IntType{BitWidth: 8, IsSigned: true}))
	require.Equal(t, format.Int16, convertedIntType(&format.IntType{BitWidth: 16, IsSigned: true}))
	require.Equal(t, format.Int32Converted, convertedIntType(&format.IntType{BitWidth: 32, IsSigned: true}))
	require.Equal(t, format.Int64Converted, convertedIntType(&format.IntType{BitWidth: 64, IsSigned: true}))
	require.Equal(t, format.Uint8, convertedIntType(&format.IntType{BitWidth: 8, IsSigned: false}))
	require.Equal(t, format.Uint16, convertedIntType(&format.IntType{BitWidth: 16, IsSigned: false}))
	require.Equal(t, format.Uint32, convertedIntType(&format.IntType{BitWidth: 32, IsSigned: false}))
	require.Equal(t, format.Uint64, convertedIntType(&format.IntType{BitWidth: 64, IsSigned: false}))
}
