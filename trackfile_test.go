package trackfile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trailsense/trackfile/encoding"
	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/section"
	"github.com/trailsense/trackfile/track"
)

// TestEncodeDecode verifies the facade round trip end to end.
func TestEncodeDecode(t *testing.T) {
	sec, err := track.NewSection(
		track.I64Column("elevation", []encoding.Value[int64]{
			encoding.Some[int64](812),
			encoding.Some[int64](815),
			encoding.None[int64](),
			encoding.Some[int64](820),
		}),
		track.BoolColumn("moving", []encoding.Value[bool]{
			encoding.Some(true),
			encoding.Some(true),
			encoding.Some(false),
			encoding.Some(true),
		}),
	)
	require.NoError(t, err)

	original := New([]section.MetadataEntry{
		section.TrackTypeEntry{Type: format.TrackTypeSegment, ID: 5},
	}, sec)

	data, err := original.Bytes()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Equal(t, uint8(1), decoded.FileVersion())
	require.Equal(t, uint8(0), decoded.CreatorVersion())

	tt, ok := decoded.TrackType()
	require.True(t, ok)
	require.Equal(t, format.TrackTypeSegment, tt.Type)
	require.Equal(t, uint32(5), tt.ID)

	got := decoded.SectionAt(0)
	elev, ok := got.Column("elevation")
	require.True(t, ok)

	v, present := elev.I64At(1)
	require.True(t, present)
	require.Equal(t, int64(815), v)

	_, present = elev.I64At(2)
	require.False(t, present)

	reencoded, err := decoded.Bytes()
	require.NoError(t, err)
	require.Equal(t, data, reencoded)
}

// TestDecodeRejectsGarbage verifies the facade surfaces codec errors
// unchanged.
func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not a track"))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	_, err = Decode(nil)
	require.ErrorIs(t, err, errs.ErrBounds)
}

// TestDecodeConcurrent verifies independent parses share no state and a
// decoded track is safe for concurrent reads.
func TestDecodeConcurrent(t *testing.T) {
	sec, err := track.NewSection(track.I64Column("m", []encoding.Value[int64]{
		encoding.Some[int64](1), encoding.Some[int64](2), encoding.Some[int64](4),
	}))
	require.NoError(t, err)

	data, err := New(nil, sec).Bytes()
	require.NoError(t, err)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			decoded, decodeErr := Decode(data)
			if decodeErr != nil {
				done <- decodeErr
				return
			}

			m, _ := decoded.SectionAt(0).Column("m")
			if v, ok := m.I64At(2); !ok || v != 4 {
				done <- fmt.Errorf("unexpected value %d (present %v)", v, ok)
				return
			}
			done <- nil
		}()
	}

	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
