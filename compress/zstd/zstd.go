// Package zstd implements the ZSTD parquet compression codec.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/parquet-go/parquet-core/compress"
	"github.com/parquet-go/parquet-core/format"
)

type Codec struct {
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec { return format.Zstd }

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := zstd.NewReader(nonNilReader(r), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	z, err := zstd.NewWriter(nonNilWriter(w),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithZeroFrames(true),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		return nil, err
	}
	return writer{z}, nil
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error { r.Decoder.Close(); return nil }

func (r reader) Reset(rr io.Reader) error { return r.Decoder.Reset(nonNilReader(rr)) }

type writer struct{ *zstd.Encoder }

func (w writer) Close() error             { w.Encoder.Close(); return nil }
func (w writer) Reset(ww io.Writer) error { w.Encoder.Reset(nonNilWriter(ww)); return nil }

func nonNilWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	return w
}

func nonNilReader(r io.Reader) io.Reader {
	if r == nil {
		r = bytesEmptyReader{}
	}
	return r
}

type bytesEmptyReader struct{}

func (bytesEmptyReader) Read([]byte) (int, error) { return 0, io.EOF }
