package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
)

func TestMetadata_RoundTrip(t *testing.T) {
	entries := []MetadataEntry{
		TrackTypeEntry{Type: format.TrackTypeSegment, ID: 5},
		CreatedAtEntry{CreatedAt: time.Unix(1700000000, 0).UTC()},
	}

	buf, err := AppendMetadata(nil, entries)
	require.NoError(t, err)

	decoded, next, err := ParseMetadata(buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(buf), next)
	require.Equal(t, entries, decoded)
}

func TestMetadata_EmptyTable(t *testing.T) {
	buf, err := AppendMetadata(nil, nil)
	require.NoError(t, err)
	require.Len(t, buf, 3) // count byte + CRC-16

	decoded, next, err := ParseMetadata(buf, 0)
	require.NoError(t, err)
	require.Empty(t, decoded)
	require.Equal(t, 3, next)
}

func TestMetadata_TrackTypeWire(t *testing.T) {
	buf, err := AppendMetadata(nil, []MetadataEntry{TrackTypeEntry{Type: format.TrackTypeSegment, ID: 5}})
	require.NoError(t, err)

	// count, type, size lo, size hi, track type code, id (u32 LE), crc.
	require.Equal(t, byte(1), buf[0])
	require.Equal(t, byte(format.MetadataTrackType), buf[1])
	require.Equal(t, []byte{0x05, 0x00}, buf[2:4])
	require.Equal(t, byte(format.TrackTypeSegment), buf[4])
	require.Equal(t, []byte{0x05, 0x00, 0x00, 0x00}, buf[5:9])
}

func TestMetadata_UnknownEntryPreservedOpaque(t *testing.T) {
	unknown := OpaqueEntry{Type: 0x7F, Payload: []byte{0xDE, 0xAD, 0xBE}}

	buf, err := AppendMetadata(nil, []MetadataEntry{unknown, TrackTypeEntry{Type: format.TrackTypeTrip, ID: 9}})
	require.NoError(t, err)

	decoded, _, err := ParseMetadata(buf, 0)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	// The unknown entry survives byte-for-byte and round-trips.
	require.Equal(t, unknown, decoded[0])

	rewritten, err := AppendMetadata(nil, decoded)
	require.NoError(t, err)
	require.Equal(t, buf, rewritten)
}

func TestMetadata_ChecksumFailure(t *testing.T) {
	buf, err := AppendMetadata(nil, []MetadataEntry{TrackTypeEntry{Type: format.TrackTypeSegment, ID: 1}})
	require.NoError(t, err)

	// Flip a payload byte.
	corrupted := append([]byte(nil), buf...)
	corrupted[5] ^= 0x01

	_, _, err = ParseMetadata(corrupted, 0)
	require.ErrorIs(t, err, errs.ErrIntegrity)

	var integrity *errs.IntegrityError
	require.ErrorAs(t, err, &integrity)
	require.Equal(t, errs.LocMetadataTable, integrity.Loc)
}

func TestMetadata_Truncated(t *testing.T) {
	buf, err := AppendMetadata(nil, []MetadataEntry{
		TrackTypeEntry{Type: format.TrackTypeSegment, ID: 5},
		CreatedAtEntry{CreatedAt: time.Unix(1700000000, 0).UTC()},
	})
	require.NoError(t, err)

	for cut := 0; cut < len(buf); cut++ {
		_, _, parseErr := ParseMetadata(buf[:cut], 0)
		require.ErrorIs(t, parseErr, errs.ErrBounds, "cut at %d", cut)
	}
}

func TestMetadata_DeclaredSizePastEnd(t *testing.T) {
	// One entry claiming a 100-byte payload with only a handful present.
	buf := []byte{0x01, 0x00, 100, 0x00, 0x01, 0x02, 0x03}

	_, _, err := ParseMetadata(buf, 0)
	require.ErrorIs(t, err, errs.ErrBounds)
}

func TestMetadata_AtOffset(t *testing.T) {
	prefix := make([]byte, 7)
	buf, err := AppendMetadata(prefix, []MetadataEntry{TrackTypeEntry{Type: format.TrackTypeRoute, ID: 2}})
	require.NoError(t, err)

	decoded, next, err := ParseMetadata(buf, len(prefix))
	require.NoError(t, err)
	require.Equal(t, len(buf), next)
	require.Equal(t, TrackTypeEntry{Type: format.TrackTypeRoute, ID: 2}, decoded[0])
}
