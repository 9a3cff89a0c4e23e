package section

import (
	"fmt"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/internal/hash"
	"github.com/trailsense/trackfile/internal/varint"
)

// Field describes one column of a section.
type Field struct {
	Name string
	Type format.FieldType
	// Scale is the decimal scale of an F64 column; zero for every other type.
	Scale uint8
	// Size is the encoded byte length of the column, trailing checksum
	// included. It lets readers skip columns they do not want without
	// decoding them.
	Size uint64
}

// Schema is the ordered field list of a section.
//
// A schema is immutable once built; the field-name index is computed at
// construction so Index lookups are O(1) regardless of width.
type Schema struct {
	fields []Field
	byID   map[uint64]int
}

// NewSchema builds a schema from an ordered field list.
func NewSchema(fields []Field) Schema {
	byID := make(map[uint64]int, len(fields))
	for i, f := range fields {
		id := hash.FieldID(f.Name)
		if _, exists := byID[id]; !exists {
			byID[id] = i
		}
	}

	return Schema{fields: fields, byID: byID}
}

// Fields returns the ordered field list. The caller must not modify it.
func (s Schema) Fields() []Field {
	return s.fields
}

// FieldCount returns the number of fields.
func (s Schema) FieldCount() int {
	return len(s.fields)
}

// Index returns the schema position of the named field.
//
// The lookup goes through the xxhash field-name index; on the (rare) hash
// collision it falls back to comparing names, so a collision can never
// return the wrong column.
func (s Schema) Index(name string) (int, bool) {
	if i, ok := s.byID[hash.FieldID(name)]; ok {
		if s.fields[i].Name == name {
			return i, true
		}

		for j, f := range s.fields {
			if f.Name == name {
				return j, true
			}
		}
	}

	return 0, false
}

// ParseSchema parses a schema at offset and returns it along with the
// offset of the first byte after it.
//
// Layout: version u8 (must be 0), field count u8, then per field: type u8,
// scale u8 (F64 only), name length u8 + name bytes, encoded column size
// uvarint. The schema carries no checksum of its own; the enclosing data
// table checksum covers it.
func ParseSchema(data []byte, offset int) (Schema, int, error) {
	if len(data)-offset < 2 {
		return Schema{}, 0, &errs.BoundsError{Offset: offset, Need: 2, Have: len(data) - offset}
	}

	if data[offset] != SchemaVersion {
		return Schema{}, 0, fmt.Errorf("%w: %d", errs.ErrUnsupportedSchemaVersion, data[offset])
	}

	fieldCount := int(data[offset+1])
	pos := offset + 2

	fields := make([]Field, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		if pos >= len(data) {
			return Schema{}, 0, &errs.BoundsError{Offset: pos, Need: 1, Have: 0}
		}

		f := Field{Type: format.FieldType(data[pos])}
		pos++

		switch f.Type {
		case format.FieldTypeI64, format.FieldTypeU64, format.FieldTypeBool,
			format.FieldTypeString, format.FieldTypeByteArray:
		case format.FieldTypeF64:
			if pos >= len(data) {
				return Schema{}, 0, &errs.BoundsError{Offset: pos, Need: 1, Have: 0}
			}
			f.Scale = data[pos]
			pos++
		default:
			return Schema{}, 0, fmt.Errorf("%w: 0x%02X", errs.ErrUnsupportedFieldType, uint8(f.Type))
		}

		if pos >= len(data) {
			return Schema{}, 0, &errs.BoundsError{Offset: pos, Need: 1, Have: 0}
		}
		nameLen := int(data[pos])
		pos++

		if len(data)-pos < nameLen {
			return Schema{}, 0, &errs.BoundsError{Offset: pos, Need: nameLen, Have: len(data) - pos}
		}
		f.Name = string(data[pos : pos+nameLen])
		pos += nameLen

		size, next, err := varint.Uvarint(data, pos)
		if err != nil {
			return Schema{}, 0, err
		}
		f.Size = size
		pos = next

		fields = append(fields, f)
	}

	return NewSchema(fields), pos, nil
}

// AppendTo appends the serialized schema to buf and returns the extended
// slice. Field sizes must already hold the true encoded column lengths.
func (s Schema) AppendTo(buf []byte) ([]byte, error) {
	if len(s.fields) > MaxFields {
		return nil, fmt.Errorf("schema has %d fields, maximum is %d", len(s.fields), MaxFields)
	}

	buf = append(buf, SchemaVersion, byte(len(s.fields)))
	for _, f := range s.fields {
		if len(f.Name) > 0xFF {
			return nil, fmt.Errorf("field name %q is %d bytes, maximum is 255", f.Name[:16], len(f.Name))
		}

		buf = append(buf, byte(f.Type))
		if f.Type == format.FieldTypeF64 {
			buf = append(buf, f.Scale)
		}
		buf = append(buf, byte(len(f.Name)))
		buf = append(buf, f.Name...)
		buf = varint.AppendUvarint(buf, f.Size)
	}

	return buf, nil
}
