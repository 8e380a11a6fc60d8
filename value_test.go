package parquet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parquet-go/parquet-core/deprecated"
)

func TestValueConstructorsRoundTrip(t *testing.T) {
	require.Equal(t, true, BooleanValue(true).Boolean())
	require.Equal(t, int32(42), Int32Value(42).Int32())
	require.Equal(t, int64(-7), Int64Value(-7).Int64())
	require.Equal(t, float32(1.5), FloatValue(1.5).Float())
	require.Equal(t, 2.5, DoubleValue(2.5).Double())
	require.Equal(t, []byte("hello"), ByteArrayValue([]byte("hello")).ByteArray())
	require.Equal(t, []byte{1, 2, 3, 4}, FixedLenByteArrayValue([]byte{1, 2, 3, 4}).ByteArray())

	i96 := deprecated.Int96{1, 2, 3}
	require.Equal(t, i96, Int96Value(i96).Int96())
}

func TestValueNegativeInt32RoundTrips(t *testing.T) {
	// numValue stores the bit pattern as uint64; a negative int32 must come
	// back unchanged rather than sign-extended incorrectly.
	require.Equal(t, int32(-1), Int32Value(-1).Int32())
	require.Equal(t, int32(math.MinInt32), Int32Value(math.MinInt32).Int32())
}

func TestValueKindMismatchPanics(t *testing.T) {
	v := Int32Value(1)
	require.Panics(t, func() { v.Boolean() })
	require.Panics(t, func() { v.Int64() })

	require.Panics(t, func() { Int32Value(1).ByteArray() })
	require.NotPanics(t, func() { ByteArrayValue(nil).ByteArray() })
	require.NotPanics(t, func() { FixedLenByteArrayValue(nil).ByteArray() })
}

func TestNullValueCarriesDefinitionLevel(t *testing.T) {
	v := NullValue(2)
	require.True(t, v.IsNull())
	require.Equal(t, 2, v.DefinitionLevel())
	require.Equal(t, 0, v.RepetitionLevel())
}

func TestValueLevelAttachesRepAndDef(t *testing.T) {
	v := Int32Value(9).Level(1, 3)
	require.Equal(t, 1, v.RepetitionLevel())
	require.Equal(t, 3, v.DefinitionLevel())
	require.Equal(t, int32(9), v.Int32())

	// Level returns an updated copy; it must not mutate a value shared
	// elsewhere.
	base := Int32Value(9)
	leveled := base.Level(1, 1)
	require.Equal(t, 0, base.RepetitionLevel())
	require.Equal(t, 1, leveled.RepetitionLevel())
}
