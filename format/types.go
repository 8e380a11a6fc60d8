// Types mirroring the subset of parquet.thrift this module's core needs:
// the metadata structures exchanged between the column/page/row-group
// writers and readers and the on-disk footer. These are plain Go structs
// carrying `thrift:"id,option"` struct tags; (de)serialization is delegated
// entirely to github.com/segmentio/encoding/thrift's reflection-driven
// CompactProtocol marshaler — this package hand-writes no varint, zigzag,
// or field-header bytes, matching the narrow "external collaborator"
// contract spec.md §1 draws around the Thrift wire layer.
//
// Field numbering follows the upstream parquet-format IDL so that files
// produced here are byte-compatible with other Parquet implementations.
// Structures that only exist to support page/column indexes, bloom filters
// or encryption are omitted: those subsystems are explicit Non-goals.
package format

// Type is the physical, on-disk representation of a leaf column's values.
type Type int32

const (
	Boolean           Type = 0
	Int32             Type = 1
	Int64             Type = 2
	Int96             Type = 3 // deprecated, read-only legacy type
	Float             Type = 4
	Double            Type = 5
	ByteArray         Type = 6
	FixedLenByteArray Type = 7
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

// FieldRepetitionType is the per-node repetition of a schema element.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = 0
	Optional FieldRepetitionType = 1
	Repeated FieldRepetitionType = 2
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "UNKNOWN"
	}
}

// ConvertedType is the legacy, pre-LogicalType annotation carried alongside
// LogicalType for backward compatibility.
type ConvertedType int32

const (
	UTF8            ConvertedType = 0
	Map             ConvertedType = 1
	MapKeyValue     ConvertedType = 2
	List            ConvertedType = 3
	Enum            ConvertedType = 4
	Decimal         ConvertedType = 5
	Date            ConvertedType = 6
	TimeMillis      ConvertedType = 7
	TimeMicros      ConvertedType = 8
	TimestampMillis ConvertedType = 9
	TimestampMicros ConvertedType = 10
	Uint8           ConvertedType = 11
	Uint16          ConvertedType = 12
	Uint32          ConvertedType = 13
	Uint64          ConvertedType = 14
	Int8            ConvertedType = 15
	Int16           ConvertedType = 16
	Int32Converted  ConvertedType = 17
	Int64Converted  ConvertedType = 18
	Json            ConvertedType = 19
	Bson            ConvertedType = 20
	Interval        ConvertedType = 21
)

// Encoding identifies a column or level encoding.
type Encoding int32

const (
	PlainEncoding      Encoding = 0
	PlainDictionary    Encoding = 2 // deprecated, dictionary page values
	RLE                Encoding = 3
	BitPacked          Encoding = 4 // deprecated
	DeltaBinaryPacked  Encoding = 5 // Non-goal: not produced or consumed
	DeltaLengthByteArr Encoding = 6 // Non-goal
	DeltaByteArray     Encoding = 7 // Non-goal
	RLEDictionary      Encoding = 8
	ByteStreamSplitEnc Encoding = 9 // Non-goal
)

func (e Encoding) String() string {
	switch e {
	case PlainEncoding:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	default:
		return "UNKNOWN"
	}
}

// CompressionCodec identifies the compression codec applied to a column
// chunk's pages.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Lzo          CompressionCodec = 3 // Non-goal: not implemented
	Brotli       CompressionCodec = 4
	Lz4          CompressionCodec = 5 // deprecated framed variant, not implemented
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Brotli:
		return "BROTLI"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return "UNKNOWN"
	}
}

// PageType identifies the kind of a page within a column chunk.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1 // skipped on read, spec.md §4.9
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

func (t PageType) String() string {
	switch t {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return "UNKNOWN"
	}
}

// Statistics carries the column chunk or page-level min/max/null-count
// bounds. The deprecated Min/Max fields and the modern MinValue/MaxValue
// fields are populated identically, per spec.md §9 Design Notes (following
// modern producers rather than the ambiguous original behavior).
type Statistics struct {
	Max           []byte `thrift:"1,optional"`
	Min           []byte `thrift:"2,optional"`
	NullCount     *int64 `thrift:"3,optional"`
	DistinctCount *int64 `thrift:"4,optional"`
	MaxValue      []byte `thrift:"5,optional"`
	MinValue      []byte `thrift:"6,optional"`
}

// StringType annotates a BYTE_ARRAY column as a UTF-8 string.
type StringType struct{}

// UUIDType annotates a FIXED_LEN_BYTE_ARRAY(16) column as a UUID.
type UUIDType struct{}

// MapType annotates a group as a map (repeated key_value group of key/value).
type MapType struct{}

// ListType annotates a group as a list (repeated group wrapping the element).
type ListType struct{}

// EnumType annotates a BYTE_ARRAY column as an enum of string values.
type EnumType struct{}

// DateType annotates an INT32 column as a date (days since the Unix epoch).
type DateType struct{}

// NullType annotates a column that only ever holds the SQL NULL value.
type NullType struct{}

// JsonType annotates a BYTE_ARRAY column as JSON text.
type JsonType struct{}

// BsonType annotates a BYTE_ARRAY column as BSON.
type BsonType struct{}

// Float16Type annotates a FIXED_LEN_BYTE_ARRAY(2) column as an IEEE 754
// half-precision float.
type Float16Type struct{}

// DecimalType annotates a column as a fixed-point decimal(precision,scale).
type DecimalType struct {
	Scale     int32 `thrift:"1,required"`
	Precision int32 `thrift:"2,required"`
}

type MilliSeconds struct{}
type MicroSeconds struct{}
type NanoSeconds struct{}

// TimeUnit is a union selecting the granularity of a TIME or TIMESTAMP
// logical type.
type TimeUnit struct {
	Millis *MilliSeconds `thrift:"1,optional"`
	Micros *MicroSeconds `thrift:"2,optional"`
	Nanos  *NanoSeconds  `thrift:"3,optional"`
}

// TimeType annotates an INT32 (millis) or INT64 (micros/nanos) column as a
// time-of-day value, optionally UTC-adjusted.
type TimeType struct {
	IsAdjustedToUTC bool     `thrift:"1,required"`
	Unit            TimeUnit `thrift:"2,required"`
}

// TimestampType annotates an INT64 column as a timestamp, optionally
// UTC-adjusted.
type TimestampType struct {
	IsAdjustedToUTC bool     `thrift:"1,required"`
	Unit            TimeUnit `thrift:"2,required"`
}

// IntType annotates an INT32/INT64 column as a sized, optionally unsigned
// integer.
type IntType struct {
	BitWidth int8 `thrift:"1,required"`
	IsSigned bool `thrift:"2,required"`
}

// LogicalType is the union of all supported logical-type annotations. Only
// one field is ever populated; segmentio/encoding/thrift serializes whichever
// field is non-nil as the corresponding thrift union field.
type LogicalType struct {
	String    *StringType    `thrift:"1,optional"`
	Map       *MapType       `thrift:"2,optional"`
	List      *ListType      `thrift:"3,optional"`
	Enum      *EnumType      `thrift:"4,optional"`
	Decimal   *DecimalType   `thrift:"5,optional"`
	Date      *DateType      `thrift:"6,optional"`
	Time      *TimeType      `thrift:"7,optional"`
	Timestamp *TimestampType `thrift:"8,optional"`
	Integer   *IntType       `thrift:"10,optional"`
	Unknown   *NullType      `thrift:"11,optional"`
	Json      *JsonType      `thrift:"12,optional"`
	Bson      *BsonType      `thrift:"13,optional"`
	UUID      *UUIDType      `thrift:"14,optional"`
	Float16   *Float16Type   `thrift:"15,optional"`
}

// SchemaElement is one node of the depth-first pre-order serialized schema
// tree (spec.md §3).
type SchemaElement struct {
	Type           *Type                `thrift:"1,optional"`
	TypeLength     *int32               `thrift:"2,optional"`
	RepetitionType *FieldRepetitionType `thrift:"3,optional"`
	Name           string               `thrift:"4,required"`
	NumChildren    *int32               `thrift:"5,optional"`
	ConvertedType  *ConvertedType       `thrift:"6,optional"`
	Scale          *int32               `thrift:"7,optional"`
	Precision      *int32               `thrift:"8,optional"`
	FieldID        *int32               `thrift:"9,optional"`
	LogicalType    *LogicalType         `thrift:"10,optional"`
}

// KeyValue is a free-form string/string entry attached to the file footer
// or a column chunk.
type KeyValue struct {
	Key   string  `thrift:"1,required"`
	Value *string `thrift:"2,optional"`
}

// SortingColumn records that a row group's rows are sorted on a column.
type SortingColumn struct {
	ColumnIdx  int32 `thrift:"1,required"`
	Descending bool  `thrift:"2,required"`
	NullsFirst bool  `thrift:"3,required"`
}

// DataPageHeader is the sub-header of a v1 DATA_PAGE.
type DataPageHeader struct {
	NumValues               int32       `thrift:"1,required"`
	Encoding                Encoding    `thrift:"2,required"`
	DefinitionLevelEncoding Encoding    `thrift:"3,required"`
	RepetitionLevelEncoding Encoding    `thrift:"4,required"`
	Statistics              *Statistics `thrift:"5,optional"`
}

// IndexPageHeader is empty: INDEX_PAGE pages are skipped on read
// (spec.md §4.9) and never written.
type IndexPageHeader struct{}

// DictionaryPageHeader is the sub-header of a DICTIONARY_PAGE.
type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1,required"`
	Encoding  Encoding `thrift:"2,required"`
	IsSorted  *bool    `thrift:"3,optional"`
}

// DataPageHeaderV2 is the sub-header of a v2 DATA_PAGE_V2.
type DataPageHeaderV2 struct {
	NumValues                  int32       `thrift:"1,required"`
	NumNulls                   int32       `thrift:"2,required"`
	NumRows                    int32       `thrift:"3,required"`
	Encoding                   Encoding    `thrift:"4,required"`
	DefinitionLevelsByteLength int32       `thrift:"5,required"`
	RepetitionLevelsByteLength int32       `thrift:"6,required"`
	IsCompressed               bool        `thrift:"7,optional"`
	Statistics                 *Statistics `thrift:"8,optional"`
}

// PageHeader frames every page in a column chunk (spec.md §6).
type PageHeader struct {
	Type                 PageType              `thrift:"1,required"`
	UncompressedPageSize int32                 `thrift:"2,required"`
	CompressedPageSize   int32                 `thrift:"3,required"`
	Crc                  *int32                `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	IndexPageHeader      *IndexPageHeader      `thrift:"6,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}

// ColumnMetaData describes one column chunk (spec.md §3).
type ColumnMetaData struct {
	Type                  Type             `thrift:"1,required"`
	Encodings             []Encoding       `thrift:"2,required"`
	PathInSchema          []string         `thrift:"3,required"`
	Codec                 CompressionCodec `thrift:"4,required"`
	NumValues             int64            `thrift:"5,required"`
	TotalUncompressedSize int64            `thrift:"6,required"`
	TotalCompressedSize   int64            `thrift:"7,required"`
	KeyValueMetadata      []KeyValue       `thrift:"8,optional"`
	DataPageOffset        int64            `thrift:"9,required"`
	DictionaryPageOffset  *int64           `thrift:"11,optional"`
	Statistics            *Statistics      `thrift:"12,optional"`
}

// ColumnChunk locates one column chunk's metadata. FileOffset is always 0
// in files this module produces: metadata lives entirely in the footer
// (spec.md §4.10).
type ColumnChunk struct {
	FilePath   string          `thrift:"1,optional"`
	FileOffset int64           `thrift:"2,required"`
	MetaData   *ColumnMetaData `thrift:"3,optional"`
}

// RowGroup is a horizontal partition of the table (spec.md §3).
type RowGroup struct {
	Columns        []ColumnChunk   `thrift:"1,required"`
	TotalByteSize  int64           `thrift:"2,required"`
	NumRows        int64           `thrift:"3,required"`
	SortingColumns []SortingColumn `thrift:"4,optional"`
	Ordinal        *int16          `thrift:"7,optional"`
}

// TypeDefinedOrder signals that a column's sort order follows the default
// ordering rules for its logical/physical type.
type TypeDefinedOrder struct{}

// ColumnOrder is a union describing how a column's values are ordered.
type ColumnOrder struct {
	TypeOrder *TypeDefinedOrder `thrift:"1,optional"`
}

// FileMetaData is the Thrift-encoded footer (spec.md §6).
type FileMetaData struct {
	Version          int32           `thrift:"1,required"`
	Schema           []SchemaElement `thrift:"2,required"`
	NumRows          int64           `thrift:"3,required"`
	RowGroups        []RowGroup      `thrift:"4,required"`
	KeyValueMetadata []KeyValue      `thrift:"5,optional"`
	CreatedBy        *string         `thrift:"6,optional"`
	ColumnOrders     []ColumnOrder   `thrift:"7,optional"`
}
