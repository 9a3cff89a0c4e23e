// Package varint implements the bounds-checked LEB128 integer codec used
// for every variable-length count and size in the trackfile format.
//
// The encoding is the standard little-endian base-128 scheme: seven value
// bits per byte, high bit set while more bytes follow. Signed values go
// through zigzag mapping first so small negative deltas stay small on the
// wire.
//
// Unlike binary.Uvarint, the decoder here never silently tolerates bad
// input: a varint that fails to terminate within MaxLen bytes and a buffer
// that ends mid-sequence both produce distinct, typed errors. Size fields
// in a track originate from untrusted bytes, so every read is checked.
package varint

import "github.com/trailsense/trackfile/errs"

// MaxLen is the maximum encoded length of a 64-bit varint.
const MaxLen = 10

// Uvarint decodes an unsigned varint from data starting at offset.
//
// Returns the decoded value and the offset of the first byte after the
// varint. Fails with *errs.BoundsError if the buffer ends before the
// continuation bit clears, or *errs.MalformedVarintError if the varint
// does not terminate within MaxLen bytes.
func Uvarint(data []byte, offset int) (uint64, int, error) {
	var value uint64
	var shift uint

	for i := 0; i < MaxLen; i++ {
		pos := offset + i
		if pos >= len(data) {
			return 0, 0, &errs.BoundsError{Offset: pos, Need: 1, Have: 0}
		}

		b := data[pos]
		if b < 0x80 {
			if i == MaxLen-1 && b > 1 {
				// 10th byte may only contribute the final value bit.
				return 0, 0, &errs.MalformedVarintError{Offset: offset}
			}

			return value | uint64(b)<<shift, pos + 1, nil
		}

		value |= uint64(b&0x7f) << shift
		shift += 7
	}

	return 0, 0, &errs.MalformedVarintError{Offset: offset}
}

// Varint decodes a zigzag-encoded signed varint from data starting at
// offset. Error behavior matches Uvarint.
func Varint(data []byte, offset int) (int64, int, error) {
	u, next, err := Uvarint(data, offset)
	if err != nil {
		return 0, 0, err
	}

	return Unzigzag(u), next, nil
}

// AppendUvarint appends the varint encoding of value to buf and returns
// the extended slice.
func AppendUvarint(buf []byte, value uint64) []byte {
	for value >= 0x80 {
		buf = append(buf, byte(value)|0x80)
		value >>= 7
	}

	return append(buf, byte(value))
}

// AppendVarint appends the zigzag varint encoding of value to buf and
// returns the extended slice.
func AppendVarint(buf []byte, value int64) []byte {
	return AppendUvarint(buf, Zigzag(value))
}

// Zigzag maps a signed value to an unsigned one so small magnitudes of
// either sign encode to few bytes: 0→0, -1→1, 1→2, -2→3, …
func Zigzag(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

// Unzigzag is the inverse of Zigzag.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}
