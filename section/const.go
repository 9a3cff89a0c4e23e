package section

// Wire-level constants of the trackfile container.
const (
	// MagicSize is the byte width of the leading magic.
	MagicSize = 8
	// HeaderSize is the fixed size of the file header, checksum included.
	HeaderSize = 24

	// SchemaVersion is the only schema version this codec understands.
	SchemaVersion = 0

	// FileVersion is the container version written and accepted by this codec.
	FileVersion = 1

	// MaxMetadataEntries bounds the metadata table (count is a single byte).
	MaxMetadataEntries = 255
	// MaxFields bounds a schema (field count is a single byte).
	MaxFields = 255
	// MaxSections bounds the data table (section count is a single byte).
	MaxSections = 255
)

// Magic is the 8-byte constant opening every track. The leading high bit
// and the embedded CR/LF and SUB bytes catch corruption by text-mode and
// line-ending translation, the same trick as the PNG signature.
var Magic = [MagicSize]byte{0x89, 'R', 'W', 'T', 'F', 0x0A, 0x1A, 0x0A}

// Fixed header field offsets.
const (
	offFileVersion    = 8
	offCreatorVersion = 12
	offMetadataOffset = 16
	offDataOffset     = 18
	offHeaderCRC      = 22
)
