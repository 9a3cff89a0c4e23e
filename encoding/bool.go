package encoding

import (
	"fmt"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/internal/pool"
)

// BoolEncoder encodes a boolean column: one byte (0 or 1) per present
// point, nothing for absent points.
type BoolEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnEncoder[bool] = (*BoolEncoder)(nil)

// NewBoolEncoder creates an encoder for a Bool column.
func NewBoolEncoder() *BoolEncoder {
	return &BoolEncoder{buf: pool.GetTrackBuffer()}
}

// Write encodes a single present value.
func (e *BoolEncoder) Write(v bool) {
	e.buf.Grow(1)
	if v {
		e.buf.MustWriteByte(1)
	} else {
		e.buf.MustWriteByte(0)
	}
	e.count++
}

// Bytes returns the encoded column body accumulated so far.
func (e *BoolEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *BoolEncoder) Len() int {
	return e.count
}

// Size returns the encoded body size in bytes.
func (e *BoolEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool. The encoder is not
// usable afterwards.
func (e *BoolEncoder) Finish() {
	pool.PutTrackBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// BoolDecoder decodes boolean columns. Stateless and safe to share.
type BoolDecoder struct{}

var _ ColumnDecoder[bool] = BoolDecoder{}

// NewBoolDecoder creates a Bool column decoder.
func NewBoolDecoder() BoolDecoder {
	return BoolDecoder{}
}

// Decode reconstructs one Value per point from the column body.
//
// Any nonzero byte decodes as true; the writer only ever emits 0 or 1.
func (BoolDecoder) Decode(data []byte, presence PresenceView) ([]Value[bool], error) {
	values := make([]Value[bool], presence.PointCount())
	offset := 0

	for p := 0; p < presence.PointCount(); p++ {
		if !presence.At(p) {
			continue
		}

		if offset >= len(data) {
			return nil, &errs.BoundsError{Offset: offset, Need: 1, Have: len(data) - offset}
		}

		values[p] = Some(data[offset] != 0)
		offset++
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: column body has %d undecoded trailing bytes", errs.ErrBounds, len(data)-offset)
	}

	return values, nil
}
