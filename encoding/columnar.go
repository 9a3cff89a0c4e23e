package encoding

// Value is one decoded point of a data column.
//
// Present distinguishes a real value from an absent point; when Present is
// false, Val holds the type's zero value and carries no meaning.
type Value[T any] struct {
	Val     T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{Val: v, Present: true}
}

// None returns an absent value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// ColumnEncoder is the common surface of all data column encoders.
//
// Write is called once per present point, in point order. Absent points
// are recorded only in the presence column and must not be written here.
type ColumnEncoder[T any] interface {
	// Write encodes a single present value.
	Write(value T)

	// Bytes returns the encoded column body accumulated so far.
	// The returned slice is valid until the next Write or Finish and must
	// not be modified by the caller.
	Bytes() []byte

	// Len returns the number of values written.
	Len() int

	// Size returns the encoded body size in bytes.
	Size() int

	// Finish returns the internal buffer to the pool. The encoder is not
	// usable afterwards.
	Finish()
}

// ColumnDecoder is the common surface of all data column decoders.
//
// Decoders are stateless; every call operates independently on the
// provided column body.
type ColumnDecoder[T any] interface {
	// Decode reconstructs one Value per point from the column body,
	// consulting presence to know which points carry data. It fails if the
	// body ends before every present point is decoded or if trailing bytes
	// remain after the last one.
	Decode(data []byte, presence PresenceView) ([]Value[T], error)
}
