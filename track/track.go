// Package track implements the trackfile container codec: the reader that
// reconstructs a Track from a fully buffered byte slice and the writer
// that serializes a Track back, byte for byte.
//
// A track is laid out as header, metadata table, data table. The data
// table uses a two-phase layout: every section's header and schema come
// before any section body, guarded by a table-level checksum, so a reader
// can verify the structural skeleton before touching bulk data and can
// skip whole sections or single columns by their declared sizes.
//
// Decoding is a single pass over immutable input; the resulting Track is
// immutable and safe for concurrent reads. Independent parses share no
// state.
package track

import (
	"time"

	"github.com/trailsense/trackfile/section"
)

// CreatorVersion is the version stamp this library writes into the
// creator_version header field.
const CreatorVersion = 0

// Track is one decoded or to-be-encoded file of the trackfile format.
type Track struct {
	fileVersion    uint8
	creatorVersion uint8
	metadata       []section.MetadataEntry
	sections       []*Section
}

// New builds a Track from metadata entries and sections, stamped with the
// current file and creator versions. Serialize it with Bytes.
func New(metadata []section.MetadataEntry, sections ...*Section) *Track {
	return &Track{
		fileVersion:    section.FileVersion,
		creatorVersion: CreatorVersion,
		metadata:       metadata,
		sections:       sections,
	}
}

// FileVersion returns the container format version of the track.
func (t *Track) FileVersion() uint8 {
	return t.fileVersion
}

// CreatorVersion returns the version of the library that wrote the track.
func (t *Track) CreatorVersion() uint8 {
	return t.creatorVersion
}

// Metadata returns the track's metadata entries in table order. The
// caller must not modify the returned slice.
func (t *Track) Metadata() []section.MetadataEntry {
	return t.metadata
}

// TrackType returns the first track_type metadata entry, if any.
func (t *Track) TrackType() (section.TrackTypeEntry, bool) {
	for _, e := range t.metadata {
		if tt, ok := e.(section.TrackTypeEntry); ok {
			return tt, true
		}
	}

	return section.TrackTypeEntry{}, false
}

// CreatedAt returns the first created_at metadata entry, if any.
func (t *Track) CreatedAt() (time.Time, bool) {
	for _, e := range t.metadata {
		if ca, ok := e.(section.CreatedAtEntry); ok {
			return ca.CreatedAt, true
		}
	}

	return time.Time{}, false
}

// Sections returns the track's sections in file order. The caller must
// not modify the returned slice.
func (t *Track) Sections() []*Section {
	return t.sections
}

// SectionAt returns the section at index i, nil when out of range.
func (t *Track) SectionAt(i int) *Section {
	if i < 0 || i >= len(t.sections) {
		return nil
	}

	return t.sections[i]
}

// SectionCount returns the number of sections.
func (t *Track) SectionCount() int {
	return len(t.sections)
}
