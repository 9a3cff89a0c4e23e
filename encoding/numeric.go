package encoding

import (
	"fmt"
	"math"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/internal/pool"
	"github.com/trailsense/trackfile/internal/varint"
)

// deltaEncoder is the shared core of the numeric column encoders.
//
// It keeps a "last present value" cursor: the first present value is
// written as a zigzag varint absolute, every later one as a zigzag varint
// delta against the cursor. Absent points never reach the encoder, so the
// cursor only ever moves on present values and gaps encode as the exact
// difference across them.
type deltaEncoder struct {
	buf    *pool.ByteBuffer
	prev   int64
	primed bool
	count  int
}

func newDeltaEncoder() deltaEncoder {
	return deltaEncoder{buf: pool.GetTrackBuffer()}
}

func (e *deltaEncoder) write(v int64) {
	e.buf.Grow(varint.MaxLen)

	if !e.primed {
		e.buf.B = varint.AppendVarint(e.buf.B, v)
		e.primed = true
	} else {
		e.buf.B = varint.AppendVarint(e.buf.B, v-e.prev)
	}

	e.prev = v
	e.count++
}

// Bytes returns the encoded column body accumulated so far.
func (e *deltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *deltaEncoder) Len() int {
	return e.count
}

// Size returns the encoded body size in bytes.
func (e *deltaEncoder) Size() int {
	return e.buf.Len()
}

// Finish returns the internal buffer to the pool. The encoder is not
// usable afterwards.
func (e *deltaEncoder) Finish() {
	pool.PutTrackBuffer(e.buf)
	e.buf = nil
	e.prev = 0
	e.primed = false
	e.count = 0
}

// deltaDecode walks one presence view and rebuilds the cursor chain,
// yielding the reconstructed absolute value for each present point.
func deltaDecode(data []byte, presence PresenceView, emit func(point int, v int64, present bool)) error {
	var cursor int64
	primed := false
	offset := 0

	for p := 0; p < presence.PointCount(); p++ {
		if !presence.At(p) {
			emit(p, 0, false)
			continue
		}

		v, next, err := varint.Varint(data, offset)
		if err != nil {
			return err
		}
		offset = next

		if !primed {
			cursor = v
			primed = true
		} else {
			cursor += v
		}

		emit(p, cursor, true)
	}

	if offset != len(data) {
		return fmt.Errorf("%w: column body has %d undecoded trailing bytes", errs.ErrBounds, len(data)-offset)
	}

	return nil
}

// I64Encoder encodes a signed integer column with delta compression.
type I64Encoder struct {
	deltaEncoder
}

var _ ColumnEncoder[int64] = (*I64Encoder)(nil)

// NewI64Encoder creates a delta-compressing encoder for an I64 column.
func NewI64Encoder() *I64Encoder {
	return &I64Encoder{deltaEncoder: newDeltaEncoder()}
}

// Write encodes a single present value.
func (e *I64Encoder) Write(v int64) {
	e.write(v)
}

// I64Decoder decodes delta-compressed signed integer columns.
//
// The decoder is stateless and safe to share.
type I64Decoder struct{}

var _ ColumnDecoder[int64] = I64Decoder{}

// NewI64Decoder creates an I64 column decoder.
func NewI64Decoder() I64Decoder {
	return I64Decoder{}
}

// Decode reconstructs one Value per point from the column body.
func (I64Decoder) Decode(data []byte, presence PresenceView) ([]Value[int64], error) {
	values := make([]Value[int64], presence.PointCount())
	err := deltaDecode(data, presence, func(p int, v int64, present bool) {
		if present {
			values[p] = Some(v)
		}
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// U64Encoder encodes an unsigned integer column. Values travel the same
// delta path as I64 on their two's-complement bit pattern, so counters
// that wrap or drift still encode as small deltas.
type U64Encoder struct {
	deltaEncoder
}

var _ ColumnEncoder[uint64] = (*U64Encoder)(nil)

// NewU64Encoder creates a delta-compressing encoder for a U64 column.
func NewU64Encoder() *U64Encoder {
	return &U64Encoder{deltaEncoder: newDeltaEncoder()}
}

// Write encodes a single present value.
func (e *U64Encoder) Write(v uint64) {
	e.write(int64(v)) //nolint:gosec
}

// U64Decoder decodes delta-compressed unsigned integer columns.
type U64Decoder struct{}

var _ ColumnDecoder[uint64] = U64Decoder{}

// NewU64Decoder creates a U64 column decoder.
func NewU64Decoder() U64Decoder {
	return U64Decoder{}
}

// Decode reconstructs one Value per point from the column body.
func (U64Decoder) Decode(data []byte, presence PresenceView) ([]Value[uint64], error) {
	values := make([]Value[uint64], presence.PointCount())
	err := deltaDecode(data, presence, func(p int, v int64, present bool) {
		if present {
			values[p] = Some(uint64(v)) //nolint:gosec
		}
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// F64Encoder encodes a float column at a fixed decimal scale.
//
// Each value is multiplied by 10^scale, rounded to the nearest integer and
// sent down the I64 delta path. The scale is part of the schema, so reader
// and writer always agree on the factor.
type F64Encoder struct {
	deltaEncoder
	factor float64
}

var _ ColumnEncoder[float64] = (*F64Encoder)(nil)

// NewF64Encoder creates a delta-compressing encoder for an F64 column with
// the given decimal scale.
func NewF64Encoder(scale uint8) *F64Encoder {
	return &F64Encoder{
		deltaEncoder: newDeltaEncoder(),
		factor:       math.Pow(10, float64(scale)),
	}
}

// Write encodes a single present value.
func (e *F64Encoder) Write(v float64) {
	e.write(int64(math.Round(v * e.factor)))
}

// F64Decoder decodes scaled float columns at a fixed decimal scale.
type F64Decoder struct {
	factor float64
}

var _ ColumnDecoder[float64] = F64Decoder{}

// NewF64Decoder creates an F64 column decoder for the given decimal scale.
func NewF64Decoder(scale uint8) F64Decoder {
	return F64Decoder{factor: math.Pow(10, float64(scale))}
}

// Decode reconstructs one Value per point from the column body.
func (d F64Decoder) Decode(data []byte, presence PresenceView) ([]Value[float64], error) {
	values := make([]Value[float64], presence.PointCount())
	err := deltaDecode(data, presence, func(p int, v int64, present bool) {
		if present {
			values[p] = Some(float64(v) / d.factor)
		}
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}
