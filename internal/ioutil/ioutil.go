// Package ioutil adapts the stdlib io.Writer/io.ReaderAt interfaces to the
// narrower OutputSink and RandomAccessInput capabilities that the rest of
// this module is written against, so the file/row-group/page/column layers
// never depend on concrete file handles.
package ioutil

import "io"

// OutputSink is the sequential write capability consumed by the file,
// row-group, column and page writers. It is implemented here by wrapping
// any io.Writer (an *os.File, a bytes.Buffer, ...) and tracking the current
// offset, since the page and file assemblers need to record byte offsets
// (dictionary-page offset, data-page offset, footer offset) as they write.
type OutputSink interface {
	io.Writer
	// Tell returns the number of bytes written so far.
	Tell() int64
	// Flush flushes any buffering below the sink, if the wrapped writer
	// supports it.
	Flush() error
	// Close releases the sink. Implementations must make Close idempotent.
	Close() error
}

// RandomAccessInput is the capability consumed by the file and column
// readers to read a slice of bytes at an arbitrary offset, e.g. to locate
// the footer from the end of the file or to read a specific column chunk.
type RandomAccessInput interface {
	// ReadAt reads len(p) bytes starting at off, same contract as
	// io.ReaderAt.
	ReadAt(p []byte, off int64) (int, error)
	// Size returns the total size of the input in bytes.
	Size() int64
}

type flusher interface{ Flush() error }

// NewOutputSink wraps w as an OutputSink. If w implements io.Closer or a
// Flush() error method those are used, otherwise Close and Flush are no-ops.
func NewOutputSink(w io.Writer) OutputSink {
	return &countingWriter{writer: w}
}

type countingWriter struct {
	writer io.Writer
	offset int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.writer.Write(p)
	w.offset += int64(n)
	return n, err
}

func (w *countingWriter) Tell() int64 { return w.offset }

func (w *countingWriter) Flush() error {
	if f, ok := w.writer.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (w *countingWriter) Close() error {
	if c, ok := w.writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewRandomAccessInput wraps r (and its known total size) as a
// RandomAccessInput.
func NewRandomAccessInput(r io.ReaderAt, size int64) RandomAccessInput {
	return &sectionInput{reader: r, size: size}
}

type sectionInput struct {
	reader io.ReaderAt
	size   int64
}

func (r *sectionInput) ReadAt(p []byte, off int64) (int, error) {
	return r.reader.ReadAt(p, off)
}

func (r *sectionInput) Size() int64 { return r.size }
