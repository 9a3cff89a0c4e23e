package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailsense/trackfile/errs"
)

// fixtureBuffer returns a buffer whose header declares both tables at the
// first byte after the header. The table bytes themselves are padding;
// header tests never look at them.
func fixtureBuffer(t *testing.T, h Header) []byte {
	t.Helper()

	buf := h.Bytes()

	return append(buf, make([]byte, 16)...)
}

func TestHeader_RoundTrip(t *testing.T) {
	h := Header{
		FileVersion:    FileVersion,
		CreatorVersion: 3,
		MetadataOffset: HeaderSize,
		DataOffset:     HeaderSize + 8,
	}

	buf := fixtureBuffer(t, h)
	require.Len(t, h.Bytes(), HeaderSize)

	parsed, err := ParseHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestHeader_Magic(t *testing.T) {
	buf := fixtureBuffer(t, Header{FileVersion: FileVersion, MetadataOffset: HeaderSize, DataOffset: HeaderSize})
	require.Equal(t, []byte{0x89, 'R', 'W', 'T', 'F', 0x0A, 0x1A, 0x0A}, buf[:MagicSize])
}

func TestHeader_InvalidMagic(t *testing.T) {
	buf := fixtureBuffer(t, Header{FileVersion: FileVersion, MetadataOffset: HeaderSize, DataOffset: HeaderSize})

	for i := 0; i < MagicSize; i++ {
		corrupted := append([]byte(nil), buf...)
		corrupted[i] ^= 0x01

		_, err := ParseHeader(corrupted)
		require.ErrorIs(t, err, errs.ErrInvalidMagic, "magic byte %d", i)
	}
}

func TestHeader_ChecksumCoversEveryByte(t *testing.T) {
	buf := fixtureBuffer(t, Header{FileVersion: FileVersion, MetadataOffset: HeaderSize, DataOffset: HeaderSize})

	// Flipping any non-magic header byte must fail the checksum (or, for
	// the checksum bytes themselves, the comparison).
	for i := MagicSize; i < HeaderSize; i++ {
		corrupted := append([]byte(nil), buf...)
		corrupted[i] ^= 0x01

		_, err := ParseHeader(corrupted)
		require.ErrorIs(t, err, errs.ErrIntegrity, "header byte %d", i)

		var integrity *errs.IntegrityError
		require.ErrorAs(t, err, &integrity)
		require.Equal(t, errs.LocHeader, integrity.Loc)
	}
}

func TestHeader_ShortGarbageIsNamedGarbage(t *testing.T) {
	// Anything long enough to carry the magic but too short to be a
	// header fails on the magic first, not on the length.
	_, err := ParseHeader([]byte("definitely not a track"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	// Below the magic width there is nothing to compare against.
	_, err = ParseHeader([]byte{0x89, 'R', 'W'})
	require.ErrorIs(t, err, errs.ErrBounds)
}

func TestHeader_Truncated(t *testing.T) {
	buf := fixtureBuffer(t, Header{FileVersion: FileVersion, MetadataOffset: HeaderSize, DataOffset: HeaderSize})

	for cut := 0; cut < HeaderSize; cut++ {
		_, err := ParseHeader(buf[:cut])
		require.ErrorIs(t, err, errs.ErrBounds, "cut at %d", cut)
	}
}

func TestHeader_UnsupportedVersion(t *testing.T) {
	h := Header{FileVersion: FileVersion + 1, MetadataOffset: HeaderSize, DataOffset: HeaderSize}

	_, err := ParseHeader(fixtureBuffer(t, h))
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestHeader_OffsetPastBufferEnd(t *testing.T) {
	h := Header{FileVersion: FileVersion, MetadataOffset: HeaderSize, DataOffset: 4096}

	_, err := ParseHeader(fixtureBuffer(t, h))
	require.ErrorIs(t, err, errs.ErrBounds)
}

func TestHeader_OffsetInsideHeader(t *testing.T) {
	h := Header{FileVersion: FileVersion, MetadataOffset: 4, DataOffset: HeaderSize}

	_, err := ParseHeader(fixtureBuffer(t, h))
	require.ErrorIs(t, err, errs.ErrBounds)
}
