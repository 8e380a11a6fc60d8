package parquet

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentio/encoding/thrift"

	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/internal/ioutil"
	"github.com/parquet-go/parquet-core/schema"
)

// File is an opened parquet file: its footer has been read and decoded, and
// its schema tree rebuilt, but no column chunk bytes have been touched yet
// (spec.md §166). Grounded on the teacher's file.go OpenFile magic/footer
// parsing, trimmed of the column/page-index and bloom-filter reads that are
// explicit spec Non-goals (see DESIGN.md's deleted-subsystems list).
type File struct {
	input    ioutil.RandomAccessInput
	metadata format.FileMetaData
	schema   *schema.Schema
}

// OpenFile reads the magic frames and Thrift-encoded footer from input and
// rebuilds the schema tree. Column chunk bytes are read lazily, only when a
// RowGroup's Column is opened.
func OpenFile(input ioutil.RandomAccessInput) (*File, error) {
	size := input.Size()
	if size < int64(len(fileMagic)*2+4) {
		return nil, fmt.Errorf("parquet: file too small to hold magic frames and footer length: %w", ErrInvalidFile)
	}

	var head [4]byte
	if _, err := input.ReadAt(head[:], 0); err != nil {
		return nil, fmt.Errorf("parquet: reading file header: %w", err)
	}
	if string(head[:]) != fileMagic {
		return nil, fmt.Errorf("parquet: invalid file header %q: %w", head[:], ErrInvalidFile)
	}

	var tail [8]byte
	if _, err := input.ReadAt(tail[:], size-8); err != nil {
		return nil, fmt.Errorf("parquet: reading file trailer: %w", err)
	}
	if string(tail[4:8]) != fileMagic {
		return nil, fmt.Errorf("parquet: invalid file trailer %q: %w", tail[4:8], ErrInvalidFile)
	}

	footerSize := int64(binary.LittleEndian.Uint32(tail[:4]))
	if footerSize < 0 || footerSize+8 > size {
		return nil, fmt.Errorf("parquet: footer length %d exceeds file size: %w", footerSize, ErrInvalidFile)
	}
	footerBuf := make([]byte, footerSize)
	if _, err := input.ReadAt(footerBuf, size-8-footerSize); err != nil {
		return nil, fmt.Errorf("parquet: reading footer: %w", err)
	}

	protocol := thrift.CompactProtocol{}
	var metadata format.FileMetaData
	if err := thrift.Unmarshal(&protocol, footerBuf, &metadata); err != nil {
		return nil, fmt.Errorf("parquet: decoding file metadata: %w", err)
	}
	if len(metadata.Schema) == 0 {
		return nil, fmt.Errorf("parquet: footer has no schema: %w", ErrInvalidFile)
	}

	s, err := schemaFromElements(metadata.Schema)
	if err != nil {
		return nil, err
	}

	return &File{input: input, metadata: metadata, schema: s}, nil
}

// Schema returns the file's rebuilt schema tree.
func (f *File) Schema() *schema.Schema { return f.schema }

// NumRows returns the total row count across all row groups.
func (f *File) NumRows() int64 { return f.metadata.NumRows }

// NumRowGroups returns the number of row groups in the file.
func (f *File) NumRowGroups() int { return len(f.metadata.RowGroups) }

// RowGroup opens the row group at the given ordinal (spec.md §166: "open
// any row group by ordinal").
func (f *File) RowGroup(i int) (*FileRowGroup, error) {
	if i < 0 || i >= len(f.metadata.RowGroups) {
		return nil, fmt.Errorf("parquet: row group index %d out of range [0,%d): %w", i, len(f.metadata.RowGroups), ErrSchemaMismatch)
	}
	return &FileRowGroup{file: f, rowGroup: &f.metadata.RowGroups[i]}, nil
}

// FileRowGroup is one row group of an opened File.
type FileRowGroup struct {
	file     *File
	rowGroup *format.RowGroup
}

// NumRows returns the row group's row count.
func (g *FileRowGroup) NumRows() int64 { return g.rowGroup.NumRows }

// NumColumns returns the number of column chunks in the row group.
func (g *FileRowGroup) NumColumns() int { return len(g.rowGroup.Columns) }

// ColumnMetaData returns the footer-recorded metadata for the column chunk
// at the given index, without opening it for reading. Used by callers that
// only need the chunk's statistics (row/byte counts, codec, encodings).
func (g *FileRowGroup) ColumnMetaData(i int) (*format.ColumnMetaData, error) {
	if i < 0 || i >= len(g.rowGroup.Columns) {
		return nil, fmt.Errorf("parquet: column index %d out of range [0,%d): %w", i, len(g.rowGroup.Columns), ErrSchemaMismatch)
	}
	chunk := g.rowGroup.Columns[i]
	if chunk.MetaData == nil {
		return nil, fmt.Errorf("parquet: column %d missing chunk metadata: %w", i, ErrInvalidFile)
	}
	return chunk.MetaData, nil
}

// Column opens a ColumnReader for the column chunk at the given index
// (spec.md §166: "any column by index within that row group"). The column
// chunk's byte span is computed from its recorded offsets and total
// compressed size: this module's own writer always lays out a chunk's pages
// (dictionary page, if any, then data pages) contiguously, with
// TotalCompressedSize covering exactly that span including every page
// header, so no separate end-offset needs to be stored.
func (g *FileRowGroup) Column(i int) (*ColumnReader, error) {
	if i < 0 || i >= len(g.rowGroup.Columns) {
		return nil, fmt.Errorf("parquet: column index %d out of range [0,%d): %w", i, len(g.rowGroup.Columns), ErrSchemaMismatch)
	}
	if i >= len(g.file.schema.Columns) {
		return nil, fmt.Errorf("parquet: column index %d has no matching schema leaf: %w", i, ErrSchemaMismatch)
	}
	chunk := g.rowGroup.Columns[i]
	if chunk.MetaData == nil {
		return nil, fmt.Errorf("parquet: column %d missing chunk metadata: %w", i, ErrInvalidFile)
	}
	leaf := g.file.schema.Columns[i]
	typ, ok := leaf.Type.(Type)
	if !ok {
		return nil, fmt.Errorf("parquet: column %v: schema node type does not implement parquet.Type: %w", leaf.Path, ErrSchemaMismatch)
	}

	codec, err := LookupCodec(chunk.MetaData.Codec)
	if err != nil {
		return nil, fmt.Errorf("parquet: column %v: %w", leaf.Path, err)
	}

	startOffset := chunk.MetaData.DataPageOffset
	if chunk.MetaData.DictionaryPageOffset != nil {
		startOffset = *chunk.MetaData.DictionaryPageOffset
	}
	r, err := newChunkSectionReader(g.file.input, startOffset, chunk.MetaData.TotalCompressedSize)
	if err != nil {
		return nil, fmt.Errorf("parquet: column %v: %w", leaf.Path, err)
	}

	return NewColumnReader(leaf, typ, r, codec, chunk.MetaData.NumValues), nil
}
