package section

import (
	"bytes"

	"github.com/trailsense/trackfile/endian"
	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/internal/crc"
)

// Header is the fixed 24-byte block opening every track.
//
// MetadataOffset and DataOffset are absolute byte offsets from the start
// of the buffer to the metadata table and the data table.
type Header struct {
	FileVersion    uint8
	CreatorVersion uint8
	MetadataOffset uint16
	DataOffset     uint16
}

// ParseHeader validates and parses the header at the start of data.
//
// data must be the whole track buffer: the table offsets are validated
// against its length so later stages can slice without re-checking.
//
// Failure modes, in validation order:
//   - errs.ErrInvalidMagic: magic mismatch, checked as soon as the magic
//     bytes are in range so garbage input is named as garbage
//   - *errs.BoundsError: fewer than 24 bytes
//   - *errs.IntegrityError: header checksum mismatch
//   - errs.ErrUnsupportedVersion: file version this codec cannot read
//   - *errs.BoundsError: a table offset pointing before the header end or
//     past the buffer end
func ParseHeader(data []byte) (Header, error) {
	if len(data) >= MagicSize && !bytes.Equal(data[:MagicSize], Magic[:]) {
		return Header{}, errs.ErrInvalidMagic
	}

	if len(data) < HeaderSize {
		return Header{}, &errs.BoundsError{Offset: 0, Need: HeaderSize, Have: len(data)}
	}

	engine := endian.GetLittleEndianEngine()

	expected := engine.Uint16(data[offHeaderCRC:HeaderSize])
	if err := crc.Verify16(data[:offHeaderCRC], expected, errs.LocHeader); err != nil {
		return Header{}, err
	}

	h := Header{
		FileVersion:    data[offFileVersion],
		CreatorVersion: data[offCreatorVersion],
		MetadataOffset: engine.Uint16(data[offMetadataOffset:]),
		DataOffset:     engine.Uint16(data[offDataOffset:]),
	}

	if h.FileVersion != FileVersion {
		return Header{}, errs.ErrUnsupportedVersion
	}

	for _, off := range []uint16{h.MetadataOffset, h.DataOffset} {
		if int(off) < HeaderSize || int(off) > len(data) {
			return Header{}, &errs.BoundsError{Offset: int(off), Need: 1, Have: len(data) - int(off)}
		}
	}

	return h, nil
}

// Bytes serializes the header, reserved bytes zeroed and checksum last.
func (h Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, HeaderSize)
	copy(b, Magic[:])
	b[offFileVersion] = h.FileVersion
	b[offCreatorVersion] = h.CreatorVersion
	engine.PutUint16(b[offMetadataOffset:], h.MetadataOffset)
	engine.PutUint16(b[offDataOffset:], h.DataOffset)
	engine.PutUint16(b[offHeaderCRC:], crc.Sum16(b[:offHeaderCRC]))

	return b
}
