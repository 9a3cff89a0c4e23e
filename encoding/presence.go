package encoding

import (
	"fmt"

	"github.com/trailsense/trackfile/internal/pool"
)

// PresenceRowBytes returns the byte width of one presence row for a schema
// with fieldCount fields.
func PresenceRowBytes(fieldCount int) int {
	return (fieldCount + 7) / 8
}

// PresenceEncoder packs per-point field presence into the bitmap layout of
// the presence column: one row of ceil(fieldCount/8) bytes per point, bit i
// of byte i/8 set when schema field i has a value at that point. Bits above
// fieldCount stay zero.
type PresenceEncoder struct {
	buf        *pool.ByteBuffer
	fieldCount int
	rowBytes   int
	count      int
}

// NewPresenceEncoder creates a presence encoder for a schema with
// fieldCount fields.
func NewPresenceEncoder(fieldCount int) *PresenceEncoder {
	return &PresenceEncoder{
		buf:        pool.GetTrackBuffer(),
		fieldCount: fieldCount,
		rowBytes:   PresenceRowBytes(fieldCount),
	}
}

// WriteRow appends one point's presence row. present must hold exactly one
// flag per schema field, in schema order.
func (e *PresenceEncoder) WriteRow(present []bool) error {
	if len(present) != e.fieldCount {
		return fmt.Errorf("presence row has %d flags, schema has %d fields", len(present), e.fieldCount)
	}

	e.buf.Grow(e.rowBytes)
	row := make([]byte, e.rowBytes)
	for i, p := range present {
		if p {
			row[i/8] |= 1 << (i % 8)
		}
	}
	e.buf.MustWrite(row)
	e.count++

	return nil
}

// Bytes returns the packed bitmap accumulated so far.
func (e *PresenceEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of rows written.
func (e *PresenceEncoder) Len() int {
	return e.count
}

// Size returns the bitmap size in bytes.
func (e *PresenceEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool. The encoder is not
// usable afterwards.
func (e *PresenceEncoder) Finish() {
	pool.PutTrackBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// PresenceColumn is an immutable view over a decoded presence bitmap.
//
// The underlying bytes are the checksum-stripped bitmap body; the column
// never copies them.
type PresenceColumn struct {
	data       []byte
	fieldCount int
	rowBytes   int
	pointCount int
}

// NewPresenceColumn wraps a verified presence bitmap body. data must be
// exactly ceil(fieldCount/8)*pointCount bytes.
func NewPresenceColumn(data []byte, fieldCount, pointCount int) (PresenceColumn, error) {
	rowBytes := PresenceRowBytes(fieldCount)
	if len(data) != rowBytes*pointCount {
		return PresenceColumn{}, fmt.Errorf("presence bitmap is %d bytes, want %d (%d fields, %d points)",
			len(data), rowBytes*pointCount, fieldCount, pointCount)
	}

	return PresenceColumn{
		data:       data,
		fieldCount: fieldCount,
		rowBytes:   rowBytes,
		pointCount: pointCount,
	}, nil
}

// PointCount returns the number of rows in the bitmap.
func (c PresenceColumn) PointCount() int {
	return c.pointCount
}

// At reports whether field is present at point. Out-of-range indices
// report false.
func (c PresenceColumn) At(point, field int) bool {
	if point < 0 || point >= c.pointCount || field < 0 || field >= c.fieldCount {
		return false
	}

	b := c.data[point*c.rowBytes+field/8]

	return b&(1<<(field%8)) != 0
}

// View returns a single-field view over the bitmap, used by column
// decoders to walk one field's presence in point order.
func (c PresenceColumn) View(field int) PresenceView {
	return PresenceView{col: c, field: field}
}

// PresenceView exposes one field's presence flags across all points.
type PresenceView struct {
	col   PresenceColumn
	field int
}

// PointCount returns the number of points covered by the view.
func (v PresenceView) PointCount() int {
	return v.col.pointCount
}

// At reports whether the view's field is present at point.
func (v PresenceView) At(point int) bool {
	return v.col.At(point, v.field)
}
