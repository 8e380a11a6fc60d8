package parquet

import (
	"fmt"

	"github.com/parquet-go/parquet-core/format"
	"github.com/parquet-go/parquet-core/schema"
)

// schemaFromElements rebuilds a *schema.Schema from a footer's flattened
// []format.SchemaElement list (spec.md §166: "build the schema tree").
// It is the inverse of schema.Schema.Elements, consuming the same
// depth-first pre-order the writer produced.
//
// Groups are rebuilt with schema.GroupOrdered rather than schema.NewGroup:
// the footer's child order is the file's authoritative column order (it
// must line up positionally with each row group's ColumnChunk list), and
// must not be re-alphabetized the way a fresh NewGroup call would.
func schemaFromElements(elements []format.SchemaElement) (*schema.Schema, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("parquet: footer schema has no elements: %w", ErrInvalidFile)
	}
	pos := 0
	var build func() (schema.Node, string, error)
	build = func() (schema.Node, string, error) {
		if pos >= len(elements) {
			return nil, "", fmt.Errorf("parquet: footer schema truncated: %w", ErrInvalidFile)
		}
		e := elements[pos]
		pos++

		var node schema.Node
		if e.NumChildren != nil {
			n := int(*e.NumChildren)
			names := make([]string, 0, n)
			fields := make(schema.Group, n)
			for i := 0; i < n; i++ {
				child, childName, err := build()
				if err != nil {
					return nil, "", err
				}
				names = append(names, childName)
				fields[childName] = child
			}
			node = schema.GroupOrdered(names, fields)
		} else {
			typ, err := typeFromSchemaElement(e)
			if err != nil {
				return nil, "", fmt.Errorf("parquet: column %q: %w", e.Name, err)
			}
			node = schema.Leaf(typ)
		}

		if e.RepetitionType != nil {
			switch *e.RepetitionType {
			case format.Optional:
				node = schema.Optional(node)
			case format.Repeated:
				node = schema.Repeated(node)
			}
		}
		return node, e.Name, nil
	}

	root, name, err := build()
	if err != nil {
		return nil, err
	}
	if pos != len(elements) {
		return nil, fmt.Errorf("parquet: footer schema has %d trailing elements: %w", len(elements)-pos, ErrInvalidFile)
	}
	return schema.NewSchema(name, root), nil
}

// typeFromSchemaElement reconstructs the Type a leaf's SchemaElement
// describes, preferring the modern LogicalType annotation and falling back
// to the legacy ConvertedType for files written by older implementations
// that never populated LogicalType (spec.md §3).
func typeFromSchemaElement(e format.SchemaElement) (Type, error) {
	if e.Type == nil {
		return nil, fmt.Errorf("parquet: leaf column missing physical type: %w", ErrInvalidFile)
	}
	kind := Kind(*e.Type)
	length := 0
	if e.TypeLength != nil {
		length = int(*e.TypeLength)
	}

	if lt := e.LogicalType; lt != nil {
		switch {
		case lt.String != nil:
			return StringType(), nil
		case lt.UUID != nil:
			return UUIDType(), nil
		case lt.Json != nil:
			return JSONType(), nil
		case lt.Bson != nil:
			return BSONType(), nil
		case lt.Enum != nil:
			return EnumType(), nil
		case lt.Date != nil:
			return DateType(), nil
		case lt.Float16 != nil:
			return Float16Type(), nil
		case lt.Decimal != nil:
			return DecimalType(int(lt.Decimal.Precision), int(lt.Decimal.Scale)), nil
		case lt.Integer != nil:
			return IntType(int(lt.Integer.BitWidth), lt.Integer.IsSigned), nil
		case lt.Time != nil:
			return TimeType(timeUnitFromFormat(lt.Time.Unit), lt.Time.IsAdjustedToUTC), nil
		case lt.Timestamp != nil:
			return TimestampType(timeUnitFromFormat(lt.Timestamp.Unit), lt.Timestamp.IsAdjustedToUTC), nil
		}
	}

	if ct := e.ConvertedType; ct != nil {
		switch *ct {
		case format.UTF8:
			return StringType(), nil
		case format.Enum:
			return EnumType(), nil
		case format.Date:
			return DateType(), nil
		case format.Json:
			return JSONType(), nil
		case format.Bson:
			return BSONType(), nil
		case format.Decimal:
			precision, scale := 0, 0
			if e.Precision != nil {
				precision = int(*e.Precision)
			}
			if e.Scale != nil {
				scale = int(*e.Scale)
			}
			return DecimalType(precision, scale), nil
		case format.TimeMillis:
			return TimeType(Millisecond, true), nil
		case format.TimeMicros:
			return TimeType(Microsecond, true), nil
		case format.TimestampMillis:
			return TimestampType(Millisecond, true), nil
		case format.TimestampMicros:
			return TimestampType(Microsecond, true), nil
		case format.Int8:
			return IntType(8, true), nil
		case format.Int16:
			return IntType(16, true), nil
		case format.Int32Converted:
			return IntType(32, true), nil
		case format.Int64Converted:
			return IntType(64, true), nil
		case format.Uint8:
			return IntType(8, false), nil
		case format.Uint16:
			return IntType(16, false), nil
		case format.Uint32:
			return IntType(32, false), nil
		case format.Uint64:
			return IntType(64, false), nil
		}
	}

	// No annotation: the bare physical type, with its FIXED_LEN_BYTE_ARRAY
	// size when applicable.
	switch kind {
	case Boolean:
		return BooleanType(), nil
	case Int32:
		return Int32Type(), nil
	case Int64:
		return Int64Type(), nil
	case Int96:
		return Int96Type(), nil
	case Float:
		return FloatType(), nil
	case Double:
		return DoubleType(), nil
	case ByteArray:
		return ByteArrayType(), nil
	case FixedLenByteArray:
		return FixedLenByteArrayType(length), nil
	default:
		return nil, fmt.Errorf("parquet: unknown physical type %v", kind)
	}
}

func timeUnitFromFormat(u format.TimeUnit) TimeUnit {
	switch {
	case u.Micros != nil:
		return Microsecond
	case u.Nanos != nil:
		return Nanosecond
	default:
		return Millisecond
	}
}
