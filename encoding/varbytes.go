package encoding

import (
	"fmt"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/internal/pool"
	"github.com/trailsense/trackfile/internal/varint"
)

// varBytesEncoder is the shared core of the length-prefixed column
// encoders: each present value is a uvarint byte length followed by that
// many raw bytes.
type varBytesEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

func newVarBytesEncoder() varBytesEncoder {
	return varBytesEncoder{buf: pool.GetTrackBuffer()}
}

func (e *varBytesEncoder) writeBytes(b []byte) {
	e.buf.Grow(varint.MaxLen + len(b))
	e.buf.B = varint.AppendUvarint(e.buf.B, uint64(len(b)))
	e.buf.MustWrite(b)
	e.count++
}

// Bytes returns the encoded column body accumulated so far.
func (e *varBytesEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *varBytesEncoder) Len() int {
	return e.count
}

// Size returns the encoded body size in bytes.
func (e *varBytesEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool. The encoder is not
// usable afterwards.
func (e *varBytesEncoder) Finish() {
	pool.PutTrackBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// decodeVarBytes walks one presence view over a length-prefixed column
// body, yielding each present run as a sub-slice of data.
func decodeVarBytes(data []byte, presence PresenceView, emit func(point int, b []byte)) error {
	offset := 0

	for p := 0; p < presence.PointCount(); p++ {
		if !presence.At(p) {
			continue
		}

		length, next, err := varint.Uvarint(data, offset)
		if err != nil {
			return err
		}

		if length > uint64(len(data)-next) {
			return &errs.BoundsError{Offset: next, Need: int(length), Have: len(data) - next} //nolint:gosec
		}

		emit(p, data[next:next+int(length)])
		offset = next + int(length)
	}

	if offset != len(data) {
		return fmt.Errorf("%w: column body has %d undecoded trailing bytes", errs.ErrBounds, len(data)-offset)
	}

	return nil
}

// StringEncoder encodes a UTF-8 string column: a uvarint length followed
// by the string bytes per present point, nothing for absent points.
type StringEncoder struct {
	varBytesEncoder
}

var _ ColumnEncoder[string] = (*StringEncoder)(nil)

// NewStringEncoder creates an encoder for a String column.
func NewStringEncoder() *StringEncoder {
	return &StringEncoder{varBytesEncoder: newVarBytesEncoder()}
}

// Write encodes a single present value.
func (e *StringEncoder) Write(v string) {
	e.writeBytes([]byte(v))
}

// StringDecoder decodes length-prefixed string columns.
type StringDecoder struct{}

var _ ColumnDecoder[string] = StringDecoder{}

// NewStringDecoder creates a String column decoder.
func NewStringDecoder() StringDecoder {
	return StringDecoder{}
}

// Decode reconstructs one Value per point from the column body.
func (StringDecoder) Decode(data []byte, presence PresenceView) ([]Value[string], error) {
	values := make([]Value[string], presence.PointCount())
	err := decodeVarBytes(data, presence, func(p int, b []byte) {
		values[p] = Some(string(b))
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// ByteArrayEncoder encodes a raw byte column with the same length-prefixed
// layout as String.
type ByteArrayEncoder struct {
	varBytesEncoder
}

var _ ColumnEncoder[[]byte] = (*ByteArrayEncoder)(nil)

// NewByteArrayEncoder creates an encoder for a ByteArray column.
func NewByteArrayEncoder() *ByteArrayEncoder {
	return &ByteArrayEncoder{varBytesEncoder: newVarBytesEncoder()}
}

// Write encodes a single present value.
func (e *ByteArrayEncoder) Write(v []byte) {
	e.writeBytes(v)
}

// ByteArrayDecoder decodes length-prefixed raw byte columns.
type ByteArrayDecoder struct{}

var _ ColumnDecoder[[]byte] = ByteArrayDecoder{}

// NewByteArrayDecoder creates a ByteArray column decoder.
func NewByteArrayDecoder() ByteArrayDecoder {
	return ByteArrayDecoder{}
}

// Decode reconstructs one Value per point from the column body.
//
// Decoded values alias the input buffer; callers must treat them as
// read-only.
func (ByteArrayDecoder) Decode(data []byte, presence PresenceView) ([]Value[[]byte], error) {
	values := make([]Value[[]byte], presence.PointCount())
	err := decodeVarBytes(data, presence, func(p int, b []byte) {
		values[p] = Some(b)
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}
