package track

import (
	"fmt"
	"math"

	"github.com/trailsense/trackfile/encoding"
	"github.com/trailsense/trackfile/endian"
	"github.com/trailsense/trackfile/internal/crc"
	"github.com/trailsense/trackfile/internal/varint"
	"github.com/trailsense/trackfile/section"
)

// Bytes serializes the track: header, metadata table, data table.
//
// The writer is an exact structural mirror of the reader. Section bodies
// are encoded first so every data_size and column size field carries the
// true encoded byte length of its region, never an estimate; a decoded
// track re-serializes to the original bytes.
func (t *Track) Bytes() ([]byte, error) {
	metaTable, err := section.AppendMetadata(nil, t.metadata)
	if err != nil {
		return nil, err
	}

	dataOffset := section.HeaderSize + len(metaTable)
	if dataOffset > math.MaxUint16 {
		return nil, fmt.Errorf("metadata table ends at offset %d, beyond the 16-bit offset limit", dataOffset)
	}

	header := section.Header{
		FileVersion:    t.fileVersion,
		CreatorVersion: t.creatorVersion,
		MetadataOffset: section.HeaderSize,
		DataOffset:     uint16(dataOffset),
	}

	out := make([]byte, 0, dataOffset+1024)
	out = append(out, header.Bytes()...)
	out = append(out, metaTable...)

	return appendDataTable(out, t.sections)
}

// appendDataTable appends the two-phase data table: all section headers
// and schemas, the table checksum, then all section bodies.
func appendDataTable(out []byte, sections []*Section) ([]byte, error) {
	if len(sections) > section.MaxSections {
		return nil, fmt.Errorf("track has %d sections, maximum is %d", len(sections), section.MaxSections)
	}

	engine := endian.GetLittleEndianEngine()

	// Phase 1: encode every body so the headers can carry exact sizes.
	bodies := make([][]byte, len(sections))
	fields := make([][]section.Field, len(sections))
	for i, sec := range sections {
		var err error
		bodies[i], fields[i], err = encodeSectionBody(sec)
		if err != nil {
			return nil, err
		}
	}

	start := len(out)
	out = append(out, byte(len(sections)))
	for i, sec := range sections {
		out = append(out, byte(sec.encoding))
		out = varint.AppendUvarint(out, uint64(sec.pointCount)) //nolint:gosec
		out = varint.AppendUvarint(out, uint64(len(bodies[i])))

		var err error
		out, err = section.NewSchema(fields[i]).AppendTo(out)
		if err != nil {
			return nil, err
		}
	}
	out = engine.AppendUint32(out, crc.Sum32(out[start:]))

	for _, body := range bodies {
		out = append(out, body...)
	}

	return out, nil
}

// encodeSectionBody encodes one section body (presence column, then every
// data column, each with its trailing checksum) and returns it together
// with the schema fields carrying the final column sizes.
func encodeSectionBody(sec *Section) ([]byte, []section.Field, error) {
	engine := endian.GetLittleEndianEngine()

	pres := encoding.NewPresenceEncoder(len(sec.columns))
	defer pres.Finish()

	row := make([]bool, len(sec.columns))
	for p := 0; p < sec.pointCount; p++ {
		for i, c := range sec.columns {
			row[i] = c.presentAt(p)
		}
		if err := pres.WriteRow(row); err != nil {
			return nil, nil, err
		}
	}

	body := make([]byte, 0, pres.Size()+crc.Size32)
	body = append(body, pres.Bytes()...)
	body = engine.AppendUint32(body, crc.Sum32(pres.Bytes()))

	fields := make([]section.Field, len(sec.columns))
	for i, c := range sec.columns {
		colBody := c.encodeBody()

		fields[i] = c.field
		fields[i].Size = uint64(len(colBody) + crc.Size32)

		body = append(body, colBody...)
		body = engine.AppendUint32(body, crc.Sum32(colBody))
	}

	return body, fields, nil
}
