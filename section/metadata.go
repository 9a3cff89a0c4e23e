package section

import (
	"fmt"
	"time"

	"github.com/trailsense/trackfile/endian"
	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/internal/crc"
)

// MetadataEntry is one typed entry of the metadata table.
//
// The concrete types form a discriminated union keyed by the entry's wire
// code: TrackTypeEntry and CreatedAtEntry for the codes this codec
// understands, OpaqueEntry for everything else. Unknown codes are never an
// error; their payload rides along untouched so older readers tolerate
// newer writers.
type MetadataEntry interface {
	EntryType() format.MetadataEntryType

	// payload returns the entry's wire payload.
	payload() []byte
}

// TrackTypeEntry identifies what kind of track this is and which database
// object it belongs to.
type TrackTypeEntry struct {
	Type format.TrackType
	ID   uint32
}

// EntryType returns format.MetadataTrackType.
func (e TrackTypeEntry) EntryType() format.MetadataEntryType {
	return format.MetadataTrackType
}

func (e TrackTypeEntry) payload() []byte {
	b := make([]byte, 5)
	b[0] = byte(e.Type)
	endian.GetLittleEndianEngine().PutUint32(b[1:], e.ID)

	return b
}

// CreatedAtEntry records when the track was created, at second precision.
type CreatedAtEntry struct {
	CreatedAt time.Time
}

// EntryType returns format.MetadataCreatedAt.
func (e CreatedAtEntry) EntryType() format.MetadataEntryType {
	return format.MetadataCreatedAt
}

func (e CreatedAtEntry) payload() []byte {
	b := make([]byte, 8)
	endian.GetLittleEndianEngine().PutUint64(b, uint64(e.CreatedAt.Unix())) //nolint:gosec

	return b
}

// OpaqueEntry preserves an entry whose type code this codec does not
// recognize. Payload is retained byte-for-byte so the entry survives a
// round trip.
type OpaqueEntry struct {
	Type    format.MetadataEntryType
	Payload []byte
}

// EntryType returns the entry's wire code.
func (e OpaqueEntry) EntryType() format.MetadataEntryType {
	return e.Type
}

func (e OpaqueEntry) payload() []byte {
	return e.Payload
}

// ParseMetadata parses the metadata table at offset and returns the
// decoded entries and the offset of the first byte after the table.
//
// Layout: count u8, then per entry type u8 + payload size u16 + payload,
// then a CRC-16 over the count byte and all entry bytes.
func ParseMetadata(data []byte, offset int) ([]MetadataEntry, int, error) {
	engine := endian.GetLittleEndianEngine()

	if offset >= len(data) {
		return nil, 0, &errs.BoundsError{Offset: offset, Need: 1, Have: 0}
	}

	count := int(data[offset])
	pos := offset + 1

	entries := make([]MetadataEntry, 0, count)
	for i := 0; i < count; i++ {
		if len(data)-pos < 3 {
			return nil, 0, &errs.BoundsError{Offset: pos, Need: 3, Have: len(data) - pos}
		}

		entryType := format.MetadataEntryType(data[pos])
		entrySize := int(engine.Uint16(data[pos+1:]))
		pos += 3

		if len(data)-pos < entrySize {
			return nil, 0, &errs.BoundsError{Offset: pos, Need: entrySize, Have: len(data) - pos}
		}

		entry, err := decodeEntry(entryType, data[pos:pos+entrySize])
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
		pos += entrySize
	}

	if len(data)-pos < crc.Size16 {
		return nil, 0, &errs.BoundsError{Offset: pos, Need: crc.Size16, Have: len(data) - pos}
	}

	expected := engine.Uint16(data[pos:])
	if err := crc.Verify16(data[offset:pos], expected, errs.LocMetadataTable); err != nil {
		return nil, 0, err
	}

	return entries, pos + crc.Size16, nil
}

func decodeEntry(entryType format.MetadataEntryType, payload []byte) (MetadataEntry, error) {
	engine := endian.GetLittleEndianEngine()

	switch entryType {
	case format.MetadataTrackType:
		if len(payload) != 5 {
			return nil, fmt.Errorf("track_type metadata entry has %d-byte payload, want 5", len(payload))
		}

		return TrackTypeEntry{
			Type: format.TrackType(payload[0]),
			ID:   engine.Uint32(payload[1:]),
		}, nil

	case format.MetadataCreatedAt:
		if len(payload) != 8 {
			return nil, fmt.Errorf("created_at metadata entry has %d-byte payload, want 8", len(payload))
		}

		return CreatedAtEntry{
			CreatedAt: time.Unix(int64(engine.Uint64(payload)), 0).UTC(), //nolint:gosec
		}, nil

	default:
		// Unknown entry types are preserved opaque, never rejected.
		retained := make([]byte, len(payload))
		copy(retained, payload)

		return OpaqueEntry{Type: entryType, Payload: retained}, nil
	}
}

// AppendMetadata appends the serialized metadata table to buf and returns
// the extended slice.
func AppendMetadata(buf []byte, entries []MetadataEntry) ([]byte, error) {
	if len(entries) > MaxMetadataEntries {
		return nil, fmt.Errorf("metadata table has %d entries, maximum is %d", len(entries), MaxMetadataEntries)
	}

	engine := endian.GetLittleEndianEngine()
	start := len(buf)

	buf = append(buf, byte(len(entries)))
	for _, entry := range entries {
		payload := entry.payload()
		if len(payload) > 0xFFFF {
			return nil, fmt.Errorf("metadata entry payload is %d bytes, maximum is %d", len(payload), 0xFFFF)
		}

		buf = append(buf, byte(entry.EntryType()))
		buf = engine.AppendUint16(buf, uint16(len(payload))) //nolint:gosec
		buf = append(buf, payload...)
	}

	return engine.AppendUint16(buf, crc.Sum16(buf[start:])), nil
}
