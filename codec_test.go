package parquet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parquet-go/parquet-core/format"
)

func TestLookupCodecKnown(t *testing.T) {
	for _, code := range []format.CompressionCodec{
		format.Uncompressed, format.Snappy, format.Gzip, format.Brotli, format.Zstd, format.Lz4Raw,
	} {
		c, err := LookupCodec(code)
		require.NoError(t, err, "code %v", code)
		require.NotNil(t, c)
		require.Equal(t, code, c.CompressionCodec())
	}
}

func TestLookupCodecUnknown(t *testing.T) {
	_, err := LookupCodec(format.Lzo)
	require.ErrorIs(t, err, ErrUnsupportedCodec)
}
