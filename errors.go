package parquet

import "errors"

// Error kinds surfaced by the column, row-group and file assembly layers
// (spec.md §7). Codec-level errors (RLE framing, PLAIN truncation, level
// framing, dictionary index decoding) are instead the sentinel values of
// package encoding (ErrCorrupted, ErrInvalidArgument, ErrNotSupported),
// which every encoding sub-package wraps.
var (
	// ErrInvalidFile is returned when a file's magic bytes don't match, the
	// file is too short to hold both magic frames and a footer length, or
	// the footer is missing a required field.
	ErrInvalidFile = errors.New("parquet: invalid file")

	// ErrUnsupportedEncoding is returned when a page advertises an encoding
	// this module does not implement (e.g. a delta encoding).
	ErrUnsupportedEncoding = errors.New("parquet: unsupported encoding")

	// ErrUnsupportedCodec is returned when a column chunk advertises a
	// compression codec this module does not implement.
	ErrUnsupportedCodec = errors.New("parquet: unsupported compression codec")

	// ErrSchemaMismatch is returned when a requested column path or type
	// does not match the file's schema, or a column index is out of range.
	ErrSchemaMismatch = errors.New("parquet: schema mismatch")

	// ErrInvalidState is returned when an operation is attempted outside
	// its state machine: writing to a closed row group, opening a row
	// group after the file is closed, mixing nullable and required write
	// methods on the same column, or writing columns out of schema order.
	ErrInvalidState = errors.New("parquet: invalid state")
)
