package track

import (
	"fmt"

	"github.com/trailsense/trackfile/encoding"
	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/section"
)

// Column is one decoded (or to-be-encoded) field of a section.
//
// It is a discriminated union keyed by the field type: exactly one of the
// typed value slices is populated, and the typed accessors only answer for
// the matching type. Absent points keep Present == false in the value
// slice; the zero value never stands in for absence.
type Column struct {
	field section.Field

	i64s  []encoding.Value[int64]
	f64s  []encoding.Value[float64]
	u64s  []encoding.Value[uint64]
	bools []encoding.Value[bool]
	strs  []encoding.Value[string]
	blobs []encoding.Value[[]byte]
}

// I64Column builds an I64 column from one value per point.
func I64Column(name string, values []encoding.Value[int64]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeI64},
		i64s:  values,
	}
}

// F64Column builds an F64 column with the given decimal scale from one
// value per point.
func F64Column(name string, scale uint8, values []encoding.Value[float64]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeF64, Scale: scale},
		f64s:  values,
	}
}

// U64Column builds a U64 column from one value per point.
func U64Column(name string, values []encoding.Value[uint64]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeU64},
		u64s:  values,
	}
}

// BoolColumn builds a Bool column from one value per point.
func BoolColumn(name string, values []encoding.Value[bool]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeBool},
		bools: values,
	}
}

// StringColumn builds a String column from one value per point.
func StringColumn(name string, values []encoding.Value[string]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeString},
		strs:  values,
	}
}

// ByteArrayColumn builds a ByteArray column from one value per point.
func ByteArrayColumn(name string, values []encoding.Value[[]byte]) *Column {
	return &Column{
		field: section.Field{Name: name, Type: format.FieldTypeByteArray},
		blobs: values,
	}
}

// Name returns the field name.
func (c *Column) Name() string {
	return c.field.Name
}

// Type returns the field type.
func (c *Column) Type() format.FieldType {
	return c.field.Type
}

// Scale returns the decimal scale of an F64 column, zero otherwise.
func (c *Column) Scale() uint8 {
	return c.field.Scale
}

// Len returns the number of points the column covers, absent ones
// included.
func (c *Column) Len() int {
	switch c.field.Type {
	case format.FieldTypeI64:
		return len(c.i64s)
	case format.FieldTypeF64:
		return len(c.f64s)
	case format.FieldTypeU64:
		return len(c.u64s)
	case format.FieldTypeBool:
		return len(c.bools)
	case format.FieldTypeString:
		return len(c.strs)
	case format.FieldTypeByteArray:
		return len(c.blobs)
	default:
		return 0
	}
}

// I64At returns the value at point. The second return is false when the
// point is absent, out of range, or the column is not an I64 column.
func (c *Column) I64At(point int) (int64, bool) {
	if point < 0 || point >= len(c.i64s) {
		return 0, false
	}

	return c.i64s[point].Val, c.i64s[point].Present
}

// F64At returns the value at point; false for absent, out of range or
// wrong column type.
func (c *Column) F64At(point int) (float64, bool) {
	if point < 0 || point >= len(c.f64s) {
		return 0, false
	}

	return c.f64s[point].Val, c.f64s[point].Present
}

// U64At returns the value at point; false for absent, out of range or
// wrong column type.
func (c *Column) U64At(point int) (uint64, bool) {
	if point < 0 || point >= len(c.u64s) {
		return 0, false
	}

	return c.u64s[point].Val, c.u64s[point].Present
}

// BoolAt returns the value at point; false for absent, out of range or
// wrong column type.
func (c *Column) BoolAt(point int) (bool, bool) {
	if point < 0 || point >= len(c.bools) {
		return false, false
	}

	return c.bools[point].Val, c.bools[point].Present
}

// StringAt returns the value at point; false for absent, out of range or
// wrong column type.
func (c *Column) StringAt(point int) (string, bool) {
	if point < 0 || point >= len(c.strs) {
		return "", false
	}

	return c.strs[point].Val, c.strs[point].Present
}

// ByteArrayAt returns the value at point; false for absent, out of range
// or wrong column type. The returned slice is read-only.
func (c *Column) ByteArrayAt(point int) ([]byte, bool) {
	if point < 0 || point >= len(c.blobs) {
		return nil, false
	}

	return c.blobs[point].Val, c.blobs[point].Present
}

// I64Values returns the full value slice of an I64 column, nil otherwise.
// The caller must not modify it.
func (c *Column) I64Values() []encoding.Value[int64] {
	return c.i64s
}

// F64Values returns the full value slice of an F64 column, nil otherwise.
func (c *Column) F64Values() []encoding.Value[float64] {
	return c.f64s
}

// U64Values returns the full value slice of a U64 column, nil otherwise.
func (c *Column) U64Values() []encoding.Value[uint64] {
	return c.u64s
}

// BoolValues returns the full value slice of a Bool column, nil otherwise.
func (c *Column) BoolValues() []encoding.Value[bool] {
	return c.bools
}

// StringValues returns the full value slice of a String column, nil
// otherwise.
func (c *Column) StringValues() []encoding.Value[string] {
	return c.strs
}

// ByteArrayValues returns the full value slice of a ByteArray column, nil
// otherwise.
func (c *Column) ByteArrayValues() []encoding.Value[[]byte] {
	return c.blobs
}

// presentAt reports whether the column has a value at point.
func (c *Column) presentAt(point int) bool {
	switch c.field.Type {
	case format.FieldTypeI64:
		return c.i64s[point].Present
	case format.FieldTypeF64:
		return c.f64s[point].Present
	case format.FieldTypeU64:
		return c.u64s[point].Present
	case format.FieldTypeBool:
		return c.bools[point].Present
	case format.FieldTypeString:
		return c.strs[point].Present
	case format.FieldTypeByteArray:
		return c.blobs[point].Present
	default:
		return false
	}
}

// encodeBody encodes the column's present values into its physical layout
// and returns the body bytes, checksum not yet applied.
func (c *Column) encodeBody() []byte {
	switch c.field.Type {
	case format.FieldTypeI64:
		return encodeColumn(encoding.NewI64Encoder(), c.i64s)
	case format.FieldTypeF64:
		return encodeColumn(encoding.NewF64Encoder(c.field.Scale), c.f64s)
	case format.FieldTypeU64:
		return encodeColumn(encoding.NewU64Encoder(), c.u64s)
	case format.FieldTypeBool:
		return encodeColumn(encoding.NewBoolEncoder(), c.bools)
	case format.FieldTypeString:
		return encodeColumn(encoding.NewStringEncoder(), c.strs)
	case format.FieldTypeByteArray:
		return encodeColumn(encoding.NewByteArrayEncoder(), c.blobs)
	default:
		return nil
	}
}

func encodeColumn[T any](enc encoding.ColumnEncoder[T], values []encoding.Value[T]) []byte {
	defer enc.Finish()

	for _, v := range values {
		if v.Present {
			enc.Write(v.Val)
		}
	}

	out := make([]byte, enc.Size())
	copy(out, enc.Bytes())

	return out
}

// decodeColumn decodes a verified column body into a Column according to
// the field's type.
func decodeColumn(field section.Field, body []byte, presence encoding.PresenceView) (*Column, error) {
	c := &Column{field: field}

	var err error
	switch field.Type {
	case format.FieldTypeI64:
		c.i64s, err = encoding.NewI64Decoder().Decode(body, presence)
	case format.FieldTypeF64:
		c.f64s, err = encoding.NewF64Decoder(field.Scale).Decode(body, presence)
	case format.FieldTypeU64:
		c.u64s, err = encoding.NewU64Decoder().Decode(body, presence)
	case format.FieldTypeBool:
		c.bools, err = encoding.NewBoolDecoder().Decode(body, presence)
	case format.FieldTypeString:
		c.strs, err = encoding.NewStringDecoder().Decode(body, presence)
	case format.FieldTypeByteArray:
		c.blobs, err = encoding.NewByteArrayDecoder().Decode(body, presence)
	default:
		// ParseSchema rejects unknown field types before decode starts.
		err = fmt.Errorf("field %q has undecodable type 0x%02X", field.Name, uint8(field.Type))
	}
	if err != nil {
		return nil, err
	}

	return c, nil
}
