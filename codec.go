package parquet

import (
	"github.com/parquet-go/parquet-core/compress"
	"github.com/parquet-go/parquet-core/compress/brotli"
	"github.com/parquet-go/parquet-core/compress/gzip"
	"github.com/parquet-go/parquet-core/compress/lz4"
	"github.com/parquet-go/parquet-core/compress/snappy"
	"github.com/parquet-go/parquet-core/compress/uncompressed"
	"github.com/parquet-go/parquet-core/compress/zstd"
	"github.com/parquet-go/parquet-core/format"
)

// Default codec instances, one per supported compression, used by
// LookupCodec and available directly for writer configuration.
var (
	Uncompressed uncompressed.Codec
	Snappy       snappy.Codec
	Gzip         = gzip.Codec{Level: gzip.DefaultCompression}
	Brotli       = brotli.Codec{Quality: brotli.DefaultQuality, LGWin: brotli.DefaultLGWin}
	Zstd         zstd.Codec
	Lz4Raw       = lz4.Codec{Level: lz4.DefaultLevel}
)

// codecsByCode indexes the default codec instances by their parquet-format
// compression code, the same table shape the teacher's compress.go keeps
// (codecsByCode[format.CompressionCodec] -> compress.Codec), trimmed to the
// codecs this module actually wires (LZO and BrotliRaw have no ecosystem
// library in the retrieved pack, so they are absent rather than stubbed).
var codecsByCode = map[format.CompressionCodec]compress.Codec{
	format.Uncompressed: &Uncompressed,
	format.Snappy:       &Snappy,
	format.Gzip:         &Gzip,
	format.Brotli:       &Brotli,
	format.Zstd:         &Zstd,
	format.Lz4Raw:       &Lz4Raw,
}

// LookupCodec returns the compress.Codec registered for code, or
// ErrUnsupportedCodec if none is registered. The column reader uses this to
// resolve a chunk's advertised compression codec without the caller having
// to thread one through explicitly.
func LookupCodec(code format.CompressionCodec) (compress.Codec, error) {
	if c, ok := codecsByCode[code]; ok {
		return c, nil
	}
	return nil, ErrUnsupportedCodec
}
