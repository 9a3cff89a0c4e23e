// Package trackfile provides a compact, self-describing binary format for
// archiving point-sequence data such as GPS and sensor logs.
//
// A track stores its points as schema-typed columnar sections. Every
// structural block carries its own checksum, sizes are explicit at every
// level so readers can skip unwanted sections and columns without decoding
// them, and absence of a value is a first-class state kept in a per-point
// presence bitmap, never conflated with zero, empty or false.
//
// # Core Features
//
//   - Fixed 24-byte header with magic and checksum
//   - Forward-compatible metadata table: unknown entry types are preserved
//     opaque instead of rejected
//   - Independently checksummed sections, presence bitmaps and columns,
//     so corruption is localized to the offending block
//   - Delta compression for integer columns, length-prefixed runs for
//     variable-size values
//   - Exact round trip: serializing a decoded track reproduces the
//     original bytes
//
// # Basic Usage
//
// Decoding a track from a buffered byte slice:
//
//	import "github.com/trailsense/trackfile"
//
//	t, err := trackfile.Decode(data)
//	if err != nil {
//	    return err
//	}
//	sec := t.SectionAt(0)
//	elev, _ := sec.Column("elevation")
//	for p := 0; p < sec.PointCount(); p++ {
//	    if v, ok := elev.I64At(p); ok {
//	        fmt.Println(v)
//	    }
//	}
//
// Building and encoding a track:
//
//	sec, _ := track.NewSection(
//	    track.I64Column("elevation", elevations),
//	    track.BoolColumn("moving", moving),
//	)
//	t := trackfile.New([]section.MetadataEntry{
//	    section.TrackTypeEntry{Type: format.TrackTypeSegment, ID: 5},
//	}, sec)
//	data, err := t.Bytes()
//
// # Package Structure
//
// This package is a thin facade over the track package, which implements
// the container codec. The section package holds the header, metadata and
// schema codecs, the encoding package the physical column codecs, and the
// errs package the error taxonomy shared by all of them.
package trackfile

import (
	"github.com/trailsense/trackfile/section"
	"github.com/trailsense/trackfile/track"
)

// Decode constructs a Track from a fully buffered byte slice.
//
// The header, metadata table and data table are validated in sequence;
// the first failure short-circuits decoding and propagates verbatim, so
// callers can match the error taxonomy in the errs package with errors.Is
// and inspect the structured types for location context.
//
// The returned Track is immutable and safe for concurrent reads.
func Decode(data []byte) (*track.Track, error) {
	return track.Decode(data)
}

// New builds a Track from metadata entries and sections.
//
// Serialize it with its Bytes method. A decoded Track can be passed
// through New and Bytes unchanged to produce the original byte sequence.
func New(metadata []section.MetadataEntry, sections ...*track.Section) *track.Track {
	return track.New(metadata, sections...)
}
