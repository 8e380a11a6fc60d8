package parquet

import (
	"bytes"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-core/compress"
	"github.com/parquet-go/parquet-core/encoding/dict"
	"github.com/parquet-go/parquet-core/encoding/plain"
	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/internal/ioutil"
	"github.com/parquet-go/parquet-core/page"
	"github.com/parquet-go/parquet-core/schema"
)

// ColumnReader reads one leaf column's pages back into (value, repetition
// level, definition level) triples, the inverse of ColumnWriter (spec.md
// §4.11). It reads pages lazily, one at a time, off an io.Reader
// positioned at the chunk's DictionaryPageOffset/DataPageOffset.
//
// Grounded on the teacher's column_pages.go streaming decode loop: a single
// page-header-then-body read off a shared chunk stream, generalized from the
// teacher's type-parameterized decode path to this module's Value/Kind pair.
type ColumnReader struct {
	leaf  schema.LeafColumn
	typ   Type
	r     io.Reader
	codec compress.Codec

	dictionary    [][]byte // decoded dictionary values, PLAIN bytes per entry; nil if no dictionary page
	pendingValues []Value
	pendingRep    []int32
	pendingDef    []int32
	pos           int
	numRows       int64 // values (level triples) remaining to be read, per ColumnMetaData.NumValues
	err           error
}

// NewColumnReader constructs a ColumnReader for one column chunk. r must
// yield exactly the chunk's bytes, starting at its first page (the
// dictionary page if one is present, per DictionaryPageOffset, otherwise the
// first data page).
func NewColumnReader(leaf schema.LeafColumn, typ Type, r io.Reader, codec compress.Codec, numValues int64) *ColumnReader {
	return &ColumnReader{leaf: leaf, typ: typ, r: r, codec: codec, numRows: numValues}
}

// ReadValue reads the next (value, repetition level, definition level)
// triple. It returns io.EOF once the chunk's NumValues triples have all been
// returned.
func (cr *ColumnReader) ReadValue() (Value, int, int, error) {
	for cr.pos >= len(cr.pendingValues) {
		if cr.numRows <= 0 {
			return Value{}, 0, 0, io.EOF
		}
		if err := cr.fill(); err != nil {
			return Value{}, 0, 0, err
		}
	}
	v := cr.pendingValues[cr.pos]
	rep := int(cr.pendingRep[cr.pos])
	def := int(cr.pendingDef[cr.pos])
	cr.pos++
	cr.numRows--
	return v, rep, def, nil
}

// fill reads and decodes the next page, which may be a DICTIONARY_PAGE
// (consumed transparently, recursing to read the following data page) or a
// DATA_PAGE/DATA_PAGE_V2.
func (cr *ColumnReader) fill() error {
	if cr.err != nil {
		return cr.err
	}

	header, err := page.ReadHeader(cr.r)
	if err != nil {
		cr.err = err
		return err
	}

	for header.Type == format.IndexPage {
		if _, err := io.CopyN(io.Discard, cr.r, int64(header.CompressedPageSize)); err != nil {
			cr.err = fmt.Errorf("parquet: skipping index page for column %v: %w", cr.leaf.Path, err)
			return cr.err
		}
		if header, err = page.ReadHeader(cr.r); err != nil {
			cr.err = err
			return err
		}
	}

	body, err := page.ReadBody(cr.r, header)
	if err != nil {
		cr.err = err
		return err
	}

	switch header.Type {
	case format.DictionaryPage:
		if err := cr.loadDictionary(header, body); err != nil {
			cr.err = err
			return err
		}
		return cr.fill() // the dictionary page carries no rows; read the next page

	case format.DataPage:
		return cr.fillDataPageV1(header, body)

	case format.DataPageV2:
		return cr.fillDataPageV2(header, body)

	default:
		cr.err = fmt.Errorf("parquet: column %v: unexpected page type %v: %w", cr.leaf.Path, header.Type, ErrInvalidFile)
		return cr.err
	}
}

func (cr *ColumnReader) loadDictionary(header *format.PageHeader, body []byte) error {
	if header.DictionaryPageHeader == nil {
		return fmt.Errorf("parquet: column %v: dictionary page missing header: %w", cr.leaf.Path, ErrInvalidFile)
	}
	if header.DictionaryPageHeader.Encoding != format.PlainEncoding {
		return fmt.Errorf("parquet: column %v: dictionary page encoding %v: %w", cr.leaf.Path, header.DictionaryPageHeader.Encoding, ErrUnsupportedEncoding)
	}
	decoded, err := page.DecodeDictionaryPage(cr.codec, body)
	if err != nil {
		return err
	}
	data, lengths, err := decodeDictionaryValues(cr.typ.Kind(), cr.typ.Length(), decoded, int(header.DictionaryPageHeader.NumValues))
	if err != nil {
		return fmt.Errorf("parquet: column %v: decoding dictionary page: %w", cr.leaf.Path, err)
	}
	cr.dictionary = splitDictionaryValues(data, lengths)
	return nil
}

func (cr *ColumnReader) fillDataPageV1(header *format.PageHeader, body []byte) error {
	h := header.DataPageHeader
	if h == nil {
		return fmt.Errorf("parquet: column %v: data page missing header: %w", cr.leaf.Path, ErrInvalidFile)
	}
	numValues := int(h.NumValues)
	repLevels, defLevels, valueBytes, err := page.DecodeDataPageV1(cr.codec, body, cr.leaf.MaxRepetitionLevel, cr.leaf.MaxDefinitionLevel, numValues)
	if err != nil {
		return fmt.Errorf("parquet: column %v: decoding data page: %w", cr.leaf.Path, err)
	}
	return cr.setPending(h.Encoding, numValues, repLevels, defLevels, valueBytes)
}

func (cr *ColumnReader) fillDataPageV2(header *format.PageHeader, body []byte) error {
	h := header.DataPageHeaderV2
	if h == nil {
		return fmt.Errorf("parquet: column %v: data page v2 missing header: %w", cr.leaf.Path, ErrInvalidFile)
	}
	numValues := int(h.NumValues)
	repLevels, defLevels, valueBytes, err := page.DecodeDataPageV2(cr.codec, body, h, cr.leaf.MaxRepetitionLevel, cr.leaf.MaxDefinitionLevel)
	if err != nil {
		return fmt.Errorf("parquet: column %v: decoding data page v2: %w", cr.leaf.Path, err)
	}
	return cr.setPending(h.Encoding, numValues, repLevels, defLevels, valueBytes)
}

// setPending decodes valueBytes (PLAIN or RLE_DICTIONARY indices, per enc)
// into present-slot values, then reassembles full-length rep/def level
// slices and the parallel present-or-null Value slice ReadValue walks.
func (cr *ColumnReader) setPending(enc format.Encoding, numValues int, repLevels, defLevels []int32, valueBytes []byte) error {
	if cr.leaf.MaxRepetitionLevel == 0 {
		repLevels = make([]int32, numValues)
	}
	if cr.leaf.MaxDefinitionLevel == 0 {
		defLevels = make([]int32, numValues)
	}

	numPresent := 0
	for _, d := range defLevels {
		if int(d) >= cr.leaf.MaxDefinitionLevel {
			numPresent++
		}
	}

	present, err := cr.decodeValues(enc, valueBytes, numPresent)
	if err != nil {
		return err
	}
	if len(present) != numPresent {
		return fmt.Errorf("parquet: column %v: page declares %d values but decoded %d: %w", cr.leaf.Path, numPresent, len(present), ErrInvalidFile)
	}

	values := make([]Value, numValues)
	idx := 0
	for i, d := range defLevels {
		if int(d) >= cr.leaf.MaxDefinitionLevel {
			values[i] = present[idx]
			idx++
		} else {
			values[i] = NullValue(int(d))
		}
	}

	cr.pendingValues = values
	cr.pendingRep = repLevels
	cr.pendingDef = defLevels
	cr.pos = 0
	return nil
}

func (cr *ColumnReader) decodeValues(enc format.Encoding, valueBytes []byte, numPresent int) ([]Value, error) {
	switch enc {
	case format.PlainEncoding:
		return decodeValuesPlain(cr.typ.Kind(), cr.typ.Length(), valueBytes, numPresent)

	case format.RLEDictionary, format.PlainDictionary:
		if cr.dictionary == nil {
			return nil, fmt.Errorf("parquet: column %v: dictionary-encoded page with no preceding dictionary page: %w", cr.leaf.Path, ErrInvalidFile)
		}
		indices, err := dict.DecodeIndices(nil, valueBytes, len(cr.dictionary), numPresent)
		if err != nil {
			return nil, err
		}
		values := make([]Value, len(indices))
		for i, idx := range indices {
			if idx < 0 || int(idx) >= len(cr.dictionary) {
				return nil, fmt.Errorf("parquet: column %v: dictionary index %d out of range [0,%d): %w", cr.leaf.Path, idx, len(cr.dictionary), ErrInvalidFile)
			}
			v, err := decodeOneValuePlain(cr.typ.Kind(), cr.typ.Length(), cr.dictionary[idx])
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil

	default:
		return nil, fmt.Errorf("parquet: column %v: %w: %v", cr.leaf.Path, ErrUnsupportedEncoding, enc)
	}
}

// decodeDictionaryValues decodes a DICTIONARY_PAGE's PLAIN-encoded body,
// returning the flattened bytes and per-value lengths the way
// encoding/plain.DecodeByteArray reports them for variable-length kinds;
// fixed-size kinds get a synthetic uniform-length slice so the rest of the
// pipeline can treat every kind alike.
func decodeDictionaryValues(kind Kind, length int, body []byte, numValues int) ([]byte, []int32, error) {
	enc := plain.Encoding{}
	switch kind {
	case ByteArray:
		return enc.DecodeByteArray(nil, body, nil)
	case FixedLenByteArray:
		lengths := make([]int32, numValues)
		for i := range lengths {
			lengths[i] = int32(length)
		}
		return body, lengths, nil
	default:
		size := fixedValueSize(kind)
		lengths := make([]int32, numValues)
		for i := range lengths {
			lengths[i] = int32(size)
		}
		return body, lengths, nil
	}
}

func splitDictionaryValues(data []byte, lengths []int32) [][]byte {
	out := make([][]byte, len(lengths))
	pos := 0
	for i, n := range lengths {
		out[i] = data[pos : pos+int(n)]
		pos += int(n)
	}
	return out
}

func fixedValueSize(kind Kind) int {
	switch kind {
	case Boolean:
		return 1
	case Int32, Float:
		return 4
	case Int64, Double:
		return 8
	case Int96:
		return 12
	default:
		return 0
	}
}

// decodeOneValuePlain decodes a single PLAIN-encoded value, the inverse of
// encodeValuePlain, used to resolve a dictionary index to its Value.
func decodeOneValuePlain(kind Kind, length int, raw []byte) (Value, error) {
	values, err := decodeValuesPlain(kind, length, raw, 1)
	if err != nil {
		return Value{}, err
	}
	return values[0], nil
}

// decodeValuesPlain PLAIN-decodes count values of the given physical kind
// from raw, the inverse of encodeValuesPlain.
func decodeValuesPlain(kind Kind, length int, raw []byte, count int) ([]Value, error) {
	enc := plain.Encoding{}
	switch kind {
	case Boolean:
		bits, err := enc.DecodeBoolean(nil, raw)
		if err != nil {
			return nil, err
		}
		values := make([]Value, count)
		for i := 0; i < count; i++ {
			values[i] = BooleanValue(bits[i] != 0)
		}
		return values, nil

	case Int32:
		ints, err := enc.DecodeInt32(nil, raw)
		if err != nil {
			return nil, err
		}
		return mapValues(ints, Int32Value), nil

	case Int64:
		ints, err := enc.DecodeInt64(nil, raw)
		if err != nil {
			return nil, err
		}
		return mapValues(ints, Int64Value), nil

	case Int96:
		ints, err := enc.DecodeInt96(nil, raw)
		if err != nil {
			return nil, err
		}
		return mapValues(ints, Int96Value), nil

	case Float:
		floats, err := enc.DecodeFloat(nil, raw)
		if err != nil {
			return nil, err
		}
		return mapValues(floats, FloatValue), nil

	case Double:
		floats, err := enc.DecodeDouble(nil, raw)
		if err != nil {
			return nil, err
		}
		return mapValues(floats, DoubleValue), nil

	case ByteArray:
		data, lengths, err := enc.DecodeByteArray(nil, raw, nil)
		if err != nil {
			return nil, err
		}
		values := make([]Value, len(lengths))
		pos := 0
		for i, n := range lengths {
			values[i] = ByteArrayValue(data[pos : pos+int(n)])
			pos += int(n)
		}
		return values, nil

	case FixedLenByteArray:
		data, err := enc.DecodeFixedLenByteArray(nil, raw, length)
		if err != nil {
			return nil, err
		}
		if length <= 0 {
			return nil, fmt.Errorf("parquet: invalid FIXED_LEN_BYTE_ARRAY length %d", length)
		}
		values := make([]Value, len(data)/length)
		for i := range values {
			values[i] = FixedLenByteArrayValue(data[i*length : (i+1)*length])
		}
		return values, nil

	default:
		return nil, fmt.Errorf("parquet: cannot PLAIN-decode values of kind %s", kind)
	}
}

func mapValues[T any](src []T, ctor func(T) Value) []Value {
	values := make([]Value, len(src))
	for i, v := range src {
		values[i] = ctor(v)
	}
	return values
}

// newChunkSectionReader opens a bounded, buffered reader over one column
// chunk's byte range within a random-access file, starting at startOffset
// (the dictionary page offset when present, otherwise the data page offset)
// and reading exactly size bytes. Used by the row-group reader (C12) to hand
// ColumnReader a plain io.Reader without exposing the whole file.
func newChunkSectionReader(input ioutil.RandomAccessInput, startOffset, size int64) (io.Reader, error) {
	if startOffset < 0 || size < 0 || startOffset+size > input.Size() {
		return nil, fmt.Errorf("parquet: invalid column chunk byte range [%d,%d): %w", startOffset, startOffset+size, ErrInvalidFile)
	}
	buf := make([]byte, size)
	if _, err := input.ReadAt(buf, startOffset); err != nil {
		return nil, fmt.Errorf("parquet: reading column chunk: %w", err)
	}
	return bytes.NewReader(buf), nil
}
