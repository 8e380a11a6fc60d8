// Package compress provides the generic APIs implemented by parquet compression
// codecs.
//
// https://github.com/apache/parquet-format/blob/master/Compression.md
package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/parquet-go/parquet-core/format"
)

// The Codec interface represents parquet compression codecs implemented by the
// compress sub-packages.
//
// Codec instances must be safe to use concurrently from multiple goroutines.
type Codec interface {
	// Returns a human-readable name for the codec.
	String() string

	// Returns the code of the compression codec in the parquet format.
	CompressionCodec() format.CompressionCodec

	// NewReader constructs a streaming decompressor reading compressed bytes
	// from r. r may be nil, in which case the Reader's Reset method must be
	// called with a non-nil io.Reader before use.
	NewReader(r io.Reader) (Reader, error)

	// NewWriter constructs a streaming compressor writing compressed bytes
	// to w. w may be nil, in which case the Writer's Reset method must be
	// called with a non-nil io.Writer before use.
	NewWriter(w io.Writer) (Writer, error)
}

// Encode writes the compressed version of src to dst using codec,
// reallocating dst if its capacity is too small, and returns the result.
func Encode(codec Codec, dst, src []byte) ([]byte, error) {
	var c Compressor
	return c.Encode(dst, src, codec.NewWriter)
}

// Decode writes the uncompressed version of src to dst using codec,
// reallocating dst if its capacity is too small, and returns the result.
func Decode(codec Codec, dst, src []byte) ([]byte, error) {
	var d Decompressor
	return d.Decode(dst, src, codec.NewReader)
}

type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

type Writer interface {
	io.WriteCloser
	Reset(io.Writer) error
}

type Compressor struct {
	writers sync.Pool
}

func (c *Compressor) Encode(dst, src []byte, newWriter func(io.Writer) (Writer, error)) ([]byte, error) {
	output := bytes.NewBuffer(dst[:0])

	w, _ := c.writers.Get().(Writer)
	if w != nil {
		w.Reset(output)
	} else {
		var err error
		if w, err = newWriter(output); err != nil {
			return dst, err
		}
	}
	defer c.writers.Put(w)
	defer w.Reset(io.Discard)

	if _, err := w.Write(src); err != nil {
		return output.Bytes(), err
	}
	if err := w.Close(); err != nil {
		return output.Bytes(), err
	}
	return output.Bytes(), nil
}

type Decompressor struct {
	readers sync.Pool
}

func (d *Decompressor) Decode(dst, src []byte, newReader func(io.Reader) (Reader, error)) ([]byte, error) {
	input := bytes.NewReader(src)

	r, _ := d.readers.Get().(Reader)
	if r != nil {
		if err := r.Reset(input); err != nil {
			return dst, err
		}
	} else {
		var err error
		if r, err = newReader(input); err != nil {
			return dst, err
		}
	}

	defer func() {
		if err := r.Reset(nil); err == nil {
			d.readers.Put(r)
		}
	}()

	output := bytes.NewBuffer(dst[:0])
	_, err := output.ReadFrom(r)
	return output.Bytes(), err
}
