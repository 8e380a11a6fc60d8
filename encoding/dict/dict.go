// Package dict implements dictionary encoding (spec.md §4.6): values are
// deduplicated into a dictionary page, and the column's data pages carry
// only RLE-encoded indices into that dictionary.
//
// Builder tracks cardinality and accumulated byte size against configurable
// caps and sets a sticky "fallen back" flag once either is exceeded, mirroring
// the teacher's dictionary fallback policy (once a column falls back to
// PLAIN, every later page writes PLAIN too, rather than flip-flopping
// encodings within a single column chunk).
package dict

import (
	"github.com/parquet-go/parquet-core/encoding"
	"github.com/parquet-go/parquet-core/encoding/rle"
	"github.com/parquet-go/parquet-core/internal/bits"
)

// DefaultMaxCardinality is the default cap on distinct values a dictionary
// may hold before falling back to PLAIN encoding.
const DefaultMaxCardinality = 1 << 20

// DefaultMaxByteSize is the default cap, in bytes, on the dictionary's
// encoded value data before falling back to PLAIN encoding.
const DefaultMaxByteSize = 1 << 20

// Builder accumulates distinct values for one column chunk's dictionary.
// It is not safe for concurrent use.
type Builder struct {
	maxCardinality int
	maxByteSize    int

	values       [][]byte
	valueToIndex map[string]int32
	byteSize     int64

	pageIndices     []int32
	totalValueCount int64
	fallenBack      bool
}

// NewBuilder constructs a Builder with the given cardinality and byte-size
// caps. A cap of 0 uses the corresponding Default constant.
func NewBuilder(maxCardinality, maxByteSize int) *Builder {
	if maxCardinality <= 0 {
		maxCardinality = DefaultMaxCardinality
	}
	if maxByteSize <= 0 {
		maxByteSize = DefaultMaxByteSize
	}
	return &Builder{
		maxCardinality: maxCardinality,
		maxByteSize:    maxByteSize,
		valueToIndex:   make(map[string]int32),
	}
}

// FellBack reports whether the dictionary has permanently fallen back to
// PLAIN encoding for the remainder of the column chunk.
func (b *Builder) FellBack() bool { return b.fallenBack }

// Len returns the number of distinct values currently in the dictionary.
func (b *Builder) Len() int { return len(b.values) }

// TotalValueCount returns the number of values appended across the column
// chunk's lifetime, including repeats.
func (b *Builder) TotalValueCount() int64 { return b.totalValueCount }

// Append records one occurrence of value (its PLAIN byte representation)
// and returns its dictionary index. Once the builder has fallen back, it
// stops growing the dictionary and returns ok=false; callers must then
// write value directly with PLAIN encoding instead.
func (b *Builder) Append(value []byte) (index int32, ok bool) {
	b.totalValueCount++
	if b.fallenBack {
		return 0, false
	}

	if idx, found := b.valueToIndex[string(value)]; found {
		b.pageIndices = append(b.pageIndices, idx)
		return idx, true
	}

	if len(b.values) >= b.maxCardinality || b.byteSize+int64(len(value)) > int64(b.maxByteSize) {
		b.fallenBack = true
		return 0, false
	}

	idx := int32(len(b.values))
	owned := append([]byte(nil), value...)
	b.values = append(b.values, owned)
	b.valueToIndex[string(owned)] = idx
	b.byteSize += int64(len(owned))
	b.pageIndices = append(b.pageIndices, idx)
	return idx, true
}

// ShouldUseDictionary reports whether the current page should be written
// with dictionary indices rather than PLAIN values.
func (b *Builder) ShouldUseDictionary() bool { return !b.fallenBack }

// Seal permanently stops the dictionary from growing, without otherwise
// altering the accumulated values. A column writer calls this right after
// emitting the dictionary page: spec.md §3 states a dictionary is "never
// mutated after the dictionary page is emitted", but a page-at-a-time flush
// schedule could otherwise keep discovering new distinct values in later
// pages, which would reference dictionary indices never covered by the
// already-written page. Sealing folds that case into the same sticky
// fallback every other over-cap case already uses.
func (b *Builder) Seal() { b.fallenBack = true }

// DictionaryValues returns the distinct values in insertion (index) order,
// concatenated with per-value lengths — the form encoding/plain.EncodeByteArray
// consumes to produce the DICTIONARY_PAGE body.
func (b *Builder) DictionaryValues() (data []byte, lengths []int32) {
	for _, v := range b.values {
		data = append(data, v...)
		lengths = append(lengths, int32(len(v)))
	}
	return data, lengths
}

// PageIndices returns the dictionary indices recorded for the current page
// (since the last ClearPageIndices call).
func (b *Builder) PageIndices() []int32 { return b.pageIndices }

// ClearPageIndices discards the page-local index buffer after a page has
// been flushed, while leaving the dictionary's accumulated values and
// fallback state untouched for the remainder of the column chunk.
func (b *Builder) ClearPageIndices() { b.pageIndices = b.pageIndices[:0] }

// EncodeIndices RLE-encodes indices at the bit width implied by the current
// dictionary size, prefixed with the single bit-width byte the data-page
// dictionary-index framing requires (spec.md §4.4/§4.6), and appends the
// result to dst.
func (b *Builder) EncodeIndices(dst []byte, indices []int32) ([]byte, error) {
	bitWidth := indexBitWidth(len(b.values))
	dst = append(dst, byte(bitWidth))
	out, err := rle.Encode(dst, indices, bitWidth)
	if err != nil {
		return dst, encoding.Errorf(dictName{}, "encoding dictionary indices: %w", err)
	}
	return out, nil
}

// DecodeIndices reads the bit-width byte and count RLE-encoded dictionary
// indices from the front of src, appending the decoded indices to dst.
func DecodeIndices(dst []int32, src []byte, dictionarySize int, count int) ([]int32, error) {
	if len(src) < 1 {
		return dst, encoding.Errorf(dictName{}, "truncated dictionary index stream: %w", encoding.ErrCorrupted)
	}
	bitWidth := int(src[0])
	out, err := rle.Decode(dst, src[1:], bitWidth, count)
	if err != nil {
		return dst, encoding.Errorf(dictName{}, "decoding dictionary indices: %w", err)
	}
	return out, nil
}

// indexBitWidth returns ceil(log2(dictCount)), 0 if dictCount <= 1, per
// spec.md §4.6's "indices_data()" rule.
func indexBitWidth(dictCount int) int {
	if dictCount <= 1 {
		return 0
	}
	return bits.BitWidth(dictCount - 1)
}

// Reset clears the builder entirely, including its dictionary values and
// fallback state, for reuse on a new column chunk.
func (b *Builder) Reset() {
	b.values = b.values[:0]
	for k := range b.valueToIndex {
		delete(b.valueToIndex, k)
	}
	b.byteSize = 0
	b.pageIndices = b.pageIndices[:0]
	b.totalValueCount = 0
	b.fallenBack = false
}

type dictName struct{}

func (dictName) String() string { return "RLE_DICTIONARY" }
