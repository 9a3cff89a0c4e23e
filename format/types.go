package format

type (
	FieldType         uint8
	SectionEncoding   uint8
	MetadataEntryType uint8
	TrackType         uint8
)

const (
	FieldTypeI64       FieldType = 0x00 // FieldTypeI64 represents a signed 64-bit integer column, delta encoded.
	FieldTypeF64       FieldType = 0x01 // FieldTypeF64 represents a scaled float column, delta encoded as integers.
	FieldTypeU64       FieldType = 0x02 // FieldTypeU64 represents an unsigned 64-bit integer column, delta encoded.
	FieldTypeString    FieldType = 0x04 // FieldTypeString represents a UTF-8 string column, length-prefixed.
	FieldTypeBool      FieldType = 0x05 // FieldTypeBool represents a boolean column, one byte per present point.
	FieldTypeByteArray FieldType = 0x08 // FieldTypeByteArray represents a raw byte column, length-prefixed.

	EncodingStandard SectionEncoding = 0x00 // EncodingStandard is the only section encoding defined so far.

	MetadataTrackType MetadataEntryType = 0x00 // MetadataTrackType carries the track type and its numeric id.
	MetadataCreatedAt MetadataEntryType = 0x01 // MetadataCreatedAt carries a creation timestamp in epoch seconds.

	TrackTypeTrip    TrackType = 0x00 // TrackTypeTrip identifies a recorded trip.
	TrackTypeRoute   TrackType = 0x01 // TrackTypeRoute identifies a planned route.
	TrackTypeSegment TrackType = 0x02 // TrackTypeSegment identifies a segment.
)

func (t FieldType) String() string {
	switch t {
	case FieldTypeI64:
		return "I64"
	case FieldTypeF64:
		return "F64"
	case FieldTypeU64:
		return "U64"
	case FieldTypeString:
		return "String"
	case FieldTypeBool:
		return "Bool"
	case FieldTypeByteArray:
		return "ByteArray"
	default:
		return "Unknown"
	}
}

func (e SectionEncoding) String() string {
	switch e {
	case EncodingStandard:
		return "Standard"
	default:
		return "Unknown"
	}
}

func (m MetadataEntryType) String() string {
	switch m {
	case MetadataTrackType:
		return "TrackType"
	case MetadataCreatedAt:
		return "CreatedAt"
	default:
		return "Unknown"
	}
}

func (t TrackType) String() string {
	switch t {
	case TrackTypeTrip:
		return "Trip"
	case TrackTypeRoute:
		return "Route"
	case TrackTypeSegment:
		return "Segment"
	default:
		return "Unknown"
	}
}
