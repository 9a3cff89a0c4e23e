package varint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailsense/trackfile/errs"
)

func TestUvarint_RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16383, 16384, 1<<32 - 1, 1<<63 - 1, 1<<64 - 1}

	for _, v := range values {
		buf := AppendUvarint(nil, v)
		got, next, err := Uvarint(buf, 0)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), next)
	}
}

func TestUvarint_Offset(t *testing.T) {
	buf := []byte{0xFF, 0xFF} // junk prefix
	buf = AppendUvarint(buf, 300)

	got, next, err := Uvarint(buf, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(300), got)
	require.Equal(t, len(buf), next)
}

func TestUvarint_Truncated(t *testing.T) {
	buf := AppendUvarint(nil, 1<<40)

	for cut := 0; cut < len(buf); cut++ {
		_, _, err := Uvarint(buf[:cut], 0)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrBounds)
	}
}

func TestUvarint_ContinuationNeverClears(t *testing.T) {
	buf := make([]byte, MaxLen+2)
	for i := range buf {
		buf[i] = 0x80
	}

	_, _, err := Uvarint(buf, 0)
	require.ErrorIs(t, err, errs.ErrMalformedVarint)

	var malformed *errs.MalformedVarintError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 0, malformed.Offset)
}

func TestUvarint_TenthByteOverflow(t *testing.T) {
	// Ten bytes, but the final byte carries more than the single bit a
	// 64-bit value has room for.
	buf := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x02}

	_, _, err := Uvarint(buf, 0)
	require.ErrorIs(t, err, errs.ErrMalformedVarint)
}

func TestVarint_RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 2, -2, 63, -64, 64, 300, -300, 1<<62 - 1, -(1 << 62)}

	for _, v := range values {
		buf := AppendVarint(nil, v)
		got, next, err := Varint(buf, 0)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), next)
	}
}

func TestZigzag_Mapping(t *testing.T) {
	require.Equal(t, uint64(0), Zigzag(0))
	require.Equal(t, uint64(1), Zigzag(-1))
	require.Equal(t, uint64(2), Zigzag(1))
	require.Equal(t, uint64(3), Zigzag(-2))
	require.Equal(t, uint64(4), Zigzag(2))

	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		require.Equal(t, v, Unzigzag(Zigzag(v)))
	}
}

func TestAppendUvarint_SmallValuesAreOneByte(t *testing.T) {
	for v := uint64(0); v < 128; v++ {
		require.Len(t, AppendUvarint(nil, v), 1)
	}
	require.Len(t, AppendUvarint(nil, 128), 2)
}
