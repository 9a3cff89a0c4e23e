package pool

import "sync"

const (
	// TrackBufferDefaultSize is the initial capacity of a pooled buffer,
	// sized for a typical single-section track.
	TrackBufferDefaultSize = 4 * 1024
	// TrackBufferMaxThreshold is the largest buffer the pool retains;
	// anything bigger is released to the garbage collector.
	TrackBufferMaxThreshold = 256 * 1024
)

// ByteBuffer is a reusable byte slice wrapper handed out by the pool.
//
// Encoders append to it through MustWrite and pre-size it through Grow,
// amortizing allocations across columns of the same track.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset resets the buffer to be empty, retaining the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

// Grow ensures the buffer can hold requiredBytes more bytes without
// reallocating. Small buffers grow by TrackBufferDefaultSize to minimize
// reallocations; larger ones grow by 25% of current capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := TrackBufferDefaultSize
	if cap(bb.B) > 4*TrackBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

var trackBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(TrackBufferDefaultSize)
	},
}

// GetTrackBuffer obtains a reset ByteBuffer from the pool.
func GetTrackBuffer() *ByteBuffer {
	bb := trackBufferPool.Get().(*ByteBuffer) //nolint:errcheck
	bb.Reset()

	return bb
}

// PutTrackBuffer returns a ByteBuffer to the pool for reuse.
//
// Oversized buffers are dropped instead of pooled so a single huge track
// does not pin memory for the lifetime of the process.
func PutTrackBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > TrackBufferMaxThreshold {
		return
	}

	trackBufferPool.Put(bb)
}
