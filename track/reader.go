package track

import (
	"fmt"
	"math"

	"github.com/trailsense/trackfile/encoding"
	"github.com/trailsense/trackfile/endian"
	"github.com/trailsense/trackfile/errs"
	"github.com/trailsense/trackfile/format"
	"github.com/trailsense/trackfile/internal/crc"
	"github.com/trailsense/trackfile/internal/varint"
	"github.com/trailsense/trackfile/section"
)

// Decode constructs a Track from a fully buffered byte slice.
//
// It runs header, metadata table and data table codecs in sequence and
// short-circuits on the first failure; errors surface verbatim from the
// failing codec with their location context intact.
func Decode(data []byte) (*Track, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	metadata, _, err := section.ParseMetadata(data, int(header.MetadataOffset))
	if err != nil {
		return nil, err
	}

	sections, err := parseDataTable(data, int(header.DataOffset))
	if err != nil {
		return nil, err
	}

	return &Track{
		fileVersion:    header.FileVersion,
		creatorVersion: header.CreatorVersion,
		metadata:       metadata,
		sections:       sections,
	}, nil
}

// sectionHeader is the structural part of a section: everything laid out
// before the bodies begin.
type sectionHeader struct {
	encoding   format.SectionEncoding
	pointCount uint64
	dataSize   uint64
	schema     section.Schema
}

// parseDataTable decodes the data table in two phases: first all section
// headers and schemas under the table-level checksum, then each section
// body. Structural corruption is therefore detected before any bulk data
// is touched. The last body must end exactly at the end of the buffer;
// a track never tolerates trailing bytes.
func parseDataTable(data []byte, offset int) ([]*Section, error) {
	if offset >= len(data) {
		return nil, &errs.BoundsError{Offset: offset, Need: 1, Have: 0}
	}

	sectionCount := int(data[offset])
	pos := offset + 1

	headers := make([]sectionHeader, 0, sectionCount)
	for i := 0; i < sectionCount; i++ {
		if pos >= len(data) {
			return nil, &errs.BoundsError{Offset: pos, Need: 1, Have: 0}
		}

		var h sectionHeader
		h.encoding = format.SectionEncoding(data[pos])
		if h.encoding != format.EncodingStandard {
			return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnsupportedEncoding, uint8(h.encoding))
		}
		pos++

		var err error
		h.pointCount, pos, err = varint.Uvarint(data, pos)
		if err != nil {
			return nil, err
		}
		if h.pointCount > math.MaxInt32 {
			return nil, fmt.Errorf("%w: section %d declares %d points", errs.ErrBounds, i, h.pointCount)
		}

		h.dataSize, pos, err = varint.Uvarint(data, pos)
		if err != nil {
			return nil, err
		}

		h.schema, pos, err = section.ParseSchema(data, pos)
		if err != nil {
			return nil, err
		}

		headers = append(headers, h)
	}

	// The table checksum covers everything from the section count through
	// the last schema byte; bodies are verified individually below.
	if len(data)-pos < crc.Size32 {
		return nil, &errs.BoundsError{Offset: pos, Need: crc.Size32, Have: len(data) - pos}
	}
	expected := endian.GetLittleEndianEngine().Uint32(data[pos:])
	if err := crc.Verify32(data[offset:pos], expected, errs.LocDataTable); err != nil {
		return nil, err
	}
	pos += crc.Size32

	sections := make([]*Section, 0, sectionCount)
	for i, h := range headers {
		if h.dataSize > uint64(len(data)-pos) {
			return nil, &errs.BoundsError{Offset: pos, Need: int(h.dataSize), Have: len(data) - pos} //nolint:gosec
		}

		body := data[pos : pos+int(h.dataSize)]
		sec, err := parseSectionBody(i, h, body)
		if err != nil {
			return nil, err
		}

		sections = append(sections, sec)
		pos += int(h.dataSize)
	}

	if pos != len(data) {
		return nil, fmt.Errorf("%w: data table has %d trailing bytes", errs.ErrBounds, len(data)-pos)
	}

	return sections, nil
}

// parseSectionBody decodes one section body: presence column first, then
// every data column in schema order, each bounded by its declared size and
// verified against its own checksum.
func parseSectionBody(idx int, h sectionHeader, body []byte) (*Section, error) {
	pointCount := int(h.pointCount)
	fieldCount := h.schema.FieldCount()

	presSize := encoding.PresenceRowBytes(fieldCount) * pointCount
	if presSize+crc.Size32 > len(body) {
		return nil, &errs.BoundsError{Offset: 0, Need: presSize + crc.Size32, Have: len(body)}
	}

	presBody := body[:presSize]
	expected := endian.GetLittleEndianEngine().Uint32(body[presSize:])
	if computed := crc.Sum32(presBody); computed != expected {
		return nil, &errs.IntegrityError{
			Loc:      errs.LocPresence,
			Section:  idx,
			Expected: expected,
			Computed: computed,
		}
	}

	presence, err := encoding.NewPresenceColumn(presBody, fieldCount, pointCount)
	if err != nil {
		return nil, err
	}

	cursor := presSize + crc.Size32
	columns := make([]*Column, 0, fieldCount)
	for fi, field := range h.schema.Fields() {
		if field.Size < crc.Size32 || field.Size > uint64(len(body)-cursor) {
			return nil, &errs.BoundsError{Offset: cursor, Need: int(field.Size), Have: len(body) - cursor} //nolint:gosec
		}

		colEnd := cursor + int(field.Size)
		colBody := body[cursor : colEnd-crc.Size32]
		expected := endian.GetLittleEndianEngine().Uint32(body[colEnd-crc.Size32:])
		if computed := crc.Sum32(colBody); computed != expected {
			return nil, &errs.IntegrityError{
				Loc:      errs.LocColumn,
				Section:  idx,
				Field:    field.Name,
				Expected: expected,
				Computed: computed,
			}
		}

		col, err := decodeColumn(field, colBody, presence.View(fi))
		if err != nil {
			return nil, err
		}

		columns = append(columns, col)
		cursor = colEnd
	}

	if cursor != len(body) {
		return nil, fmt.Errorf("%w: section %d body has %d trailing bytes", errs.ErrBounds, idx, len(body)-cursor)
	}

	return &Section{
		encoding:   h.encoding,
		pointCount: pointCount,
		schema:     h.schema,
		columns:    columns,
	}, nil
}
