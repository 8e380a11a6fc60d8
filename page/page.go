// Package page implements page assembly and parsing (spec.md §6, C9): the
// Thrift-framed PageHeader, the v1/v2 body layouts, and the
// compress.Codec-driven compression boundary each layout draws.
//
// Writing uses thrift.Marshal directly, the way format/parquet_test.go
// round-trips a FileMetaData: a PageHeader is small and fully built before
// it is written, so there is no need to stream it out. Reading instead uses
// the streaming thrift.Decoder the teacher's column_pages.go drives
// (protocol.NewReader(r) + decoder.Decode(header)), since a page header is
// read off the middle of a shared column chunk stream and Compact Protocol's
// self-delimiting encoding is what lets the decoder stop exactly where the
// header ends without the caller knowing its length up front.
package page

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/parquet-go/parquet-core/compress"
	"github.com/parquet-go/parquet-core/encoding/levels"
	"github.com/parquet-go/parquet-core/encoding/rle"
	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/internal/bits"
	"github.com/parquet-go/parquet-core/internal/ioutil"
)

var protocol = thrift.CompactProtocol{}

// WriteDataPageV1 frames and writes a v1 DATA_PAGE: both level streams and
// the value stream are concatenated and compressed together, each level
// stream individually prefixed with its own 4-byte length (encoding/levels),
// matching the v1 layout spec.md §6 describes.
func WriteDataPageV1(w ioutil.OutputSink, codec compress.Codec, enc format.Encoding, maxRepetitionLevel, maxDefinitionLevel int, repetitionLevels, definitionLevels []int32, encodedValues []byte, numValues, nullCount int, minValue, maxValue []byte) (uncompressedSize, compressedSize int64, err error) {
	var body []byte

	if maxRepetitionLevel > 0 {
		if body, err = levels.Encode(body, repetitionLevels, maxRepetitionLevel); err != nil {
			return 0, 0, fmt.Errorf("page: encoding repetition levels: %w", err)
		}
	}
	if maxDefinitionLevel > 0 {
		if body, err = levels.Encode(body, definitionLevels, maxDefinitionLevel); err != nil {
			return 0, 0, fmt.Errorf("page: encoding definition levels: %w", err)
		}
	}
	uncompressedBodySize := len(body) + len(encodedValues)
	body = append(body, encodedValues...)

	compressed, err := compress.Encode(codec, nil, body)
	if err != nil {
		return 0, 0, fmt.Errorf("page: compressing data page: %w", err)
	}

	nc := int64(nullCount)
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: int32(uncompressedBodySize),
		CompressedPageSize:   int32(len(compressed)),
		DataPageHeader: &format.DataPageHeader{
			NumValues:               int32(numValues),
			Encoding:                enc,
			DefinitionLevelEncoding: format.RLE,
			RepetitionLevelEncoding: format.RLE,
			Statistics: &format.Statistics{
				NullCount: &nc,
				MinValue:  minValue,
				MaxValue:  maxValue,
			},
		},
	}
	headerLen, err := writeHeaderAndBody(w, header, compressed)
	if err != nil {
		return 0, 0, err
	}
	return int64(headerLen) + int64(uncompressedBodySize), int64(headerLen) + int64(len(compressed)), nil
}

// WriteDataPageV2 frames and writes a v2 DATA_PAGE_V2: the level streams are
// written uncompressed, as plain RLE (no 4-byte length prefix — the header
// carries their exact byte lengths instead), and only the value stream is
// compressed (spec.md §6).
func WriteDataPageV2(w ioutil.OutputSink, codec compress.Codec, enc format.Encoding, maxRepetitionLevel, maxDefinitionLevel int, repetitionLevels, definitionLevels []int32, encodedValues []byte, numValues, numNulls, numRows int, minValue, maxValue []byte) (uncompressedSize, compressedSize int64, err error) {
	var repBytes, defBytes []byte

	if maxRepetitionLevel > 0 {
		if repBytes, err = rle.Encode(nil, repetitionLevels, bits.BitWidth(maxRepetitionLevel)); err != nil {
			return 0, 0, fmt.Errorf("page: encoding repetition levels: %w", err)
		}
	}
	if maxDefinitionLevel > 0 {
		if defBytes, err = rle.Encode(nil, definitionLevels, bits.BitWidth(maxDefinitionLevel)); err != nil {
			return 0, 0, fmt.Errorf("page: encoding definition levels: %w", err)
		}
	}

	compressedValues, err := compress.Encode(codec, nil, encodedValues)
	if err != nil {
		return 0, 0, fmt.Errorf("page: compressing data page values: %w", err)
	}

	body := make([]byte, 0, len(repBytes)+len(defBytes)+len(compressedValues))
	body = append(body, repBytes...)
	body = append(body, defBytes...)
	body = append(body, compressedValues...)

	nc := int64(numNulls)
	header := &format.PageHeader{
		Type:                 format.DataPageV2,
		UncompressedPageSize: int32(len(repBytes) + len(defBytes) + len(encodedValues)),
		CompressedPageSize:   int32(len(body)),
		DataPageHeaderV2: &format.DataPageHeaderV2{
			NumValues:                  int32(numValues),
			NumNulls:                   int32(numNulls),
			NumRows:                    int32(numRows),
			Encoding:                   enc,
			DefinitionLevelsByteLength: int32(len(defBytes)),
			RepetitionLevelsByteLength: int32(len(repBytes)),
			IsCompressed:               true,
			Statistics: &format.Statistics{
				NullCount: &nc,
				MinValue:  minValue,
				MaxValue:  maxValue,
			},
		},
	}
	headerLen, err := writeHeaderAndBody(w, header, body)
	if err != nil {
		return 0, 0, err
	}
	uncompressedBodySize := len(repBytes) + len(defBytes) + len(encodedValues)
	return int64(headerLen) + int64(uncompressedBodySize), int64(headerLen) + int64(len(body)), nil
}

// WriteDictionaryPage frames and writes a DICTIONARY_PAGE: the PLAIN-encoded
// distinct values, compressed as a single block (spec.md §6).
func WriteDictionaryPage(w ioutil.OutputSink, codec compress.Codec, encodedValues []byte, numValues int) (uncompressedSize, compressedSize int64, err error) {
	compressed, err := compress.Encode(codec, nil, encodedValues)
	if err != nil {
		return 0, 0, fmt.Errorf("page: compressing dictionary page: %w", err)
	}
	header := &format.PageHeader{
		Type:                 format.DictionaryPage,
		UncompressedPageSize: int32(len(encodedValues)),
		CompressedPageSize:   int32(len(compressed)),
		DictionaryPageHeader: &format.DictionaryPageHeader{
			NumValues: int32(numValues),
			Encoding:  format.PlainEncoding,
		},
	}
	headerLen, err := writeHeaderAndBody(w, header, compressed)
	if err != nil {
		return 0, 0, err
	}
	return int64(headerLen) + int64(len(encodedValues)), int64(headerLen) + int64(len(compressed)), nil
}

func writeHeaderAndBody(w ioutil.OutputSink, header *format.PageHeader, body []byte) (headerLen int, err error) {
	headerBytes, err := thrift.Marshal(&protocol, header)
	if err != nil {
		return 0, fmt.Errorf("page: marshaling page header: %w", err)
	}
	if _, err := w.Write(headerBytes); err != nil {
		return 0, fmt.Errorf("page: writing page header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return 0, fmt.Errorf("page: writing page body: %w", err)
	}
	return len(headerBytes), nil
}

// ReadHeader decodes the next PageHeader from r. It consumes exactly the
// header's bytes, leaving r positioned at the start of the page body.
//
// If the header's Type is INDEX_PAGE, callers should skip CompressedPageSize
// bytes and call ReadHeader again: column/page-index pages are never
// produced by this module and are always skipped on read (spec.md §4.9).
func ReadHeader(r io.Reader) (*format.PageHeader, error) {
	var decoder thrift.Decoder
	decoder.Reset(protocol.NewReader(r))
	header := &format.PageHeader{}
	if err := decoder.Decode(header); err != nil {
		return nil, fmt.Errorf("page: decoding page header: %w", err)
	}
	return header, nil
}

// ReadBody reads the CompressedPageSize bytes of the page body following
// header from r.
func ReadBody(r io.Reader, header *format.PageHeader) ([]byte, error) {
	body := make([]byte, header.CompressedPageSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("page: reading page body: %w", err)
	}
	return body, nil
}

// DecodeDataPageV1 decompresses a v1 DATA_PAGE body and splits it back into
// its repetition levels, definition levels and value bytes.
func DecodeDataPageV1(codec compress.Codec, compressedBody []byte, maxRepetitionLevel, maxDefinitionLevel, numValues int) (repetitionLevels, definitionLevels []int32, values []byte, err error) {
	body, err := compress.Decode(codec, nil, compressedBody)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("page: decompressing data page: %w", err)
	}

	pos := 0
	if maxRepetitionLevel > 0 {
		var n int
		repetitionLevels, n, err = levels.Decode(nil, body[pos:], maxRepetitionLevel, numValues)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding repetition levels: %w", err)
		}
		pos += n
	}
	if maxDefinitionLevel > 0 {
		var n int
		definitionLevels, n, err = levels.Decode(nil, body[pos:], maxDefinitionLevel, numValues)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding definition levels: %w", err)
		}
		pos += n
	}
	return repetitionLevels, definitionLevels, body[pos:], nil
}

// DecodeDataPageV2 splits a v2 DATA_PAGE_V2 body (levels uncompressed,
// values compressed) back into its repetition levels, definition levels and
// value bytes.
func DecodeDataPageV2(codec compress.Codec, body []byte, header *format.DataPageHeaderV2, maxRepetitionLevel, maxDefinitionLevel int) (repetitionLevels, definitionLevels []int32, values []byte, err error) {
	repLen := int(header.RepetitionLevelsByteLength)
	defLen := int(header.DefinitionLevelsByteLength)
	if repLen+defLen > len(body) {
		return nil, nil, nil, fmt.Errorf("page: v2 level byte lengths exceed page body size")
	}

	numValues := int(header.NumValues)
	if maxRepetitionLevel > 0 {
		if repetitionLevels, err = rle.Decode(nil, body[:repLen], bits.BitWidth(maxRepetitionLevel), numValues); err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding v2 repetition levels: %w", err)
		}
	}
	if maxDefinitionLevel > 0 {
		if definitionLevels, err = rle.Decode(nil, body[repLen:repLen+defLen], bits.BitWidth(maxDefinitionLevel), numValues); err != nil {
			return nil, nil, nil, fmt.Errorf("page: decoding v2 definition levels: %w", err)
		}
	}

	values, err = compress.Decode(codec, nil, body[repLen+defLen:])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("page: decompressing v2 data page values: %w", err)
	}
	return repetitionLevels, definitionLevels, values, nil
}

// DecodeDictionaryPage decompresses a DICTIONARY_PAGE body, returning its
// PLAIN-encoded values.
func DecodeDictionaryPage(codec compress.Codec, compressedBody []byte) ([]byte, error) {
	values, err := compress.Decode(codec, nil, compressedBody)
	if err != nil {
		return nil, fmt.Errorf("page: decompressing dictionary page: %w", err)
	}
	return values, nil
}

