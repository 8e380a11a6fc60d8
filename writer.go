package parquet

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentio/encoding/thrift"

	"github.com/parquet-go/parquet-core/compress"
	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/internal/ioutil"
	"github.com/parquet-go/parquet-core/schema"
	"github.com/parquet-go/parquet-core/shred"
)

// fileMagic is the 4-byte frame opening and closing every parquet file
// (spec.md §6).
const fileMagic = "PAR1"

// WriterConfig configures a Writer and the RowGroupWriters/ColumnWriters it
// creates (spec.md §4.10/§4.12).
type WriterConfig struct {
	// Codec compresses every page this writer produces. Defaults to
	// Uncompressed.
	Codec compress.Codec
	// DataPageSize is the buffered-byte threshold at which a column writer
	// flushes a data page. Defaults to DefaultDataPageSize.
	DataPageSize int
	// UseDictionary enables dictionary encoding, with fallback to PLAIN per
	// the caps in encoding/dict, for every column in row groups this writer
	// creates.
	UseDictionary bool
	// CreatedBy populates the footer's optional created_by field.
	CreatedBy string
}

func (c WriterConfig) withDefaults() WriterConfig {
	if c.Codec == nil {
		c.Codec = &Uncompressed
	}
	if c.DataPageSize <= 0 {
		c.DataPageSize = DefaultDataPageSize
	}
	return c
}

// Writer assembles row groups into a complete parquet file (spec.md §4.12,
// C12): the PAR1 magic frame, sequential row-group writes, and the
// Thrift-encoded FileMetaData footer.
//
// Grounded on the teacher's file.go read-side magic/footer framing
// (OpenFile), mirrored here for the write side: the retrieved teacher tree
// carries no working write-side footer logic of its own (see the top-of-file
// note in DESIGN.md about the incomplete snapshot), so this is written fresh
// in the same style, using thrift.Marshal the way page.go and
// column_writer.go already do for PageHeader/ColumnMetaData-shaped structs.
type Writer struct {
	sink   ioutil.OutputSink
	schema *schema.Schema
	config WriterConfig

	rowGroups []format.RowGroup
	numRows   int64
	current   *RowGroupWriter
	closed    bool
}

// NewWriter constructs a Writer over sink for the given schema, writing the
// leading PAR1 magic immediately.
func NewWriter(sink ioutil.OutputSink, s *schema.Schema, config WriterConfig) (*Writer, error) {
	if _, err := sink.Write([]byte(fileMagic)); err != nil {
		return nil, fmt.Errorf("parquet: writing file header: %w", err)
	}
	return &Writer{sink: sink, schema: s, config: config.withDefaults()}, nil
}

// WriteRowGroup opens a new row group. Any previously opened row group must
// already have been closed (spec.md §4.12: row groups are written one at a
// time to the shared sink).
func (w *Writer) WriteRowGroup() (*RowGroupWriter, error) {
	if w.closed {
		return nil, fmt.Errorf("parquet: row group requested on closed file: %w", ErrInvalidState)
	}
	if w.current != nil && !w.current.closed {
		return nil, fmt.Errorf("parquet: previous row group not closed: %w", ErrInvalidState)
	}
	rg := newRowGroupWriter(w, w.schema, w.sink, w.config)
	w.current = rg
	return rg, nil
}

// Close flushes any row group still open, then writes the Thrift-encoded
// FileMetaData footer, its 4-byte little-endian length, and the terminating
// PAR1 magic (spec.md §6, §164).
func (w *Writer) Close() error {
	if w.closed {
		return fmt.Errorf("parquet: file closed twice: %w", ErrInvalidState)
	}
	w.closed = true

	if w.current != nil && !w.current.closed {
		if _, err := w.current.Close(); err != nil {
			return err
		}
	}

	var createdBy *string
	if w.config.CreatedBy != "" {
		createdBy = &w.config.CreatedBy
	}
	metadata := &format.FileMetaData{
		Version:   1,
		Schema:    w.schema.Elements(),
		NumRows:   w.numRows,
		RowGroups: w.rowGroups,
		CreatedBy: createdBy,
	}

	protocol := thrift.CompactProtocol{}
	footer, err := thrift.Marshal(&protocol, metadata)
	if err != nil {
		return fmt.Errorf("parquet: marshaling file metadata: %w", err)
	}
	if _, err := w.sink.Write(footer); err != nil {
		return fmt.Errorf("parquet: writing footer: %w", err)
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(footer)))
	if _, err := w.sink.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("parquet: writing footer length: %w", err)
	}
	if _, err := w.sink.Write([]byte(fileMagic)); err != nil {
		return fmt.Errorf("parquet: writing trailing magic: %w", err)
	}
	return w.sink.Flush()
}

// RowGroupWriter buffers one row group's records by shredding them into
// column streams, then writes each leaf column exactly once, in schema
// order, at Close. This matches spec.md §1's stated lifecycle: "column
// writers created lazily on first access per row group, consumed once at
// row-group finalization."
type RowGroupWriter struct {
	writer   *Writer
	schema   *schema.Schema
	sink     ioutil.OutputSink
	config   WriterConfig
	shredder *shred.Shredder[Value]
	numRows  int64
	closed   bool
}

func newRowGroupWriter(w *Writer, s *schema.Schema, sink ioutil.OutputSink, config WriterConfig) *RowGroupWriter {
	return &RowGroupWriter{
		writer:   w,
		schema:   s,
		sink:     sink,
		config:   config,
		shredder: shred.NewShredder[Value](s, func(r shred.Row) Value { return r.Value.(Value) }),
	}
}

// WriteRow shreds one top-level record into the row group's column streams.
func (rg *RowGroupWriter) WriteRow(row shred.Row) error {
	if rg.closed {
		return fmt.Errorf("parquet: write to closed row group: %w", ErrInvalidState)
	}
	if err := rg.shredder.Shred(row); err != nil {
		return err
	}
	rg.numRows++
	return nil
}

// Close writes every leaf column's buffered data, one at a time in schema
// order, verifies they all agree on the row group's row count, registers the
// resulting metadata with the parent Writer, and returns it (spec.md §164).
// Close must run before a sibling row group is opened or the file is closed:
// RowGroupWriter has no other way to reach the footer.
func (rg *RowGroupWriter) Close() (format.RowGroup, error) {
	if rg.closed {
		return format.RowGroup{}, fmt.Errorf("parquet: row group closed twice: %w", ErrInvalidState)
	}
	rg.closed = true

	cols := rg.shredder.Columns()
	chunks := make([]format.ColumnChunk, len(rg.schema.Columns))
	var totalByteSize int64

	for i, leaf := range rg.schema.Columns {
		typ, ok := leaf.Type.(Type)
		if !ok {
			return format.RowGroup{}, fmt.Errorf("parquet: column %v: schema node type does not implement parquet.Type: %w", leaf.Path, ErrSchemaMismatch)
		}

		cw := NewColumnWriter(leaf, typ, rg.sink, rg.config.Codec, rg.config.DataPageSize, rg.config.UseDictionary)
		if err := cw.WriteLeveled(cols.Values[i], cols.RepetitionLevels[i], cols.DefinitionLevels[i]); err != nil {
			return format.RowGroup{}, fmt.Errorf("parquet: writing column %v: %w", leaf.Path, err)
		}
		meta, err := cw.Close()
		if err != nil {
			return format.RowGroup{}, fmt.Errorf("parquet: closing column %v: %w", leaf.Path, err)
		}

		if rows := countRecordStarts(cols.RepetitionLevels[i]); rows != rg.numRows {
			return format.RowGroup{}, fmt.Errorf("parquet: column %v reports %d rows, row group has %d: %w", leaf.Path, rows, rg.numRows, ErrInvalidState)
		}

		chunks[i] = columnChunkToFormat(meta)
		totalByteSize += meta.TotalUncompressedSize
	}

	result := format.RowGroup{
		Columns:       chunks,
		TotalByteSize: totalByteSize,
		NumRows:       rg.numRows,
	}
	rg.writer.rowGroups = append(rg.writer.rowGroups, result)
	rg.writer.numRows += rg.numRows
	return result, nil
}

// countRecordStarts counts level entries at repetition level 0: one per
// top-level row, regardless of how many elements a repeated field
// contributes within that row.
func countRecordStarts(repetitionLevels []int32) int64 {
	var n int64
	for _, r := range repetitionLevels {
		if r == 0 {
			n++
		}
	}
	return n
}

func columnChunkToFormat(m ColumnChunkMetadata) format.ColumnChunk {
	return format.ColumnChunk{
		FileOffset: 0,
		MetaData: &format.ColumnMetaData{
			Type:                  m.PhysicalType,
			Encodings:             m.Encodings,
			PathInSchema:          m.Path,
			Codec:                 m.Codec,
			NumValues:             m.NumValues,
			TotalUncompressedSize: m.TotalUncompressedSize,
			TotalCompressedSize:   m.TotalCompressedSize,
			DataPageOffset:        m.DataPageOffset,
			DictionaryPageOffset:  m.DictionaryPageOffset,
			Statistics:            m.Statistics,
		},
	}
}
