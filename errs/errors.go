// Package errs defines the error taxonomy shared by every trackfile codec
// layer.
//
// Each failure class has a sentinel value so callers can branch with
// errors.Is. Failures that carry location context (checksum mismatches,
// out-of-range reads, malformed varints) additionally surface as structured
// types that wrap their sentinel, so both errors.Is matching and field
// inspection work on the same value.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic indicates the buffer does not start with the RWTF magic bytes.
	ErrInvalidMagic = errors.New("invalid magic bytes")
	// ErrUnsupportedVersion indicates a file version this reader does not understand.
	ErrUnsupportedVersion = errors.New("unsupported file version")
	// ErrUnsupportedSchemaVersion indicates a schema version other than 0.
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
	// ErrUnsupportedEncoding indicates an unknown section encoding code.
	ErrUnsupportedEncoding = errors.New("unsupported section encoding")
	// ErrUnsupportedFieldType indicates an unknown schema field type code.
	ErrUnsupportedFieldType = errors.New("unsupported field type")
	// ErrIntegrity indicates a checksum mismatch in one of the checksummed blocks.
	ErrIntegrity = errors.New("checksum mismatch")
	// ErrMalformedVarint indicates a varint whose continuation bit never clears.
	ErrMalformedVarint = errors.New("malformed varint")
	// ErrBounds indicates a declared size or offset that points past the end of the buffer.
	ErrBounds = errors.New("read past end of buffer")
)

// Location identifies the checksummed block an IntegrityError refers to.
type Location string

const (
	LocHeader        Location = "header"
	LocMetadataTable Location = "metadata table"
	LocDataTable     Location = "data table"
	LocPresence      Location = "presence column"
	LocColumn        Location = "data column"
)

// IntegrityError reports a checksum mismatch scoped to a single block.
//
// Section is the zero-based section index for presence and column blocks
// and -1 for track-level blocks. Field names the offending column when
// Loc == LocColumn.
type IntegrityError struct {
	Loc      Location
	Section  int
	Field    string
	Expected uint32
	Computed uint32
}

func (e *IntegrityError) Error() string {
	switch e.Loc {
	case LocPresence:
		return fmt.Sprintf("checksum mismatch in %s of section %d: expected 0x%X, computed 0x%X",
			e.Loc, e.Section, e.Expected, e.Computed)
	case LocColumn:
		return fmt.Sprintf("checksum mismatch in column %q of section %d: expected 0x%X, computed 0x%X",
			e.Field, e.Section, e.Expected, e.Computed)
	default:
		return fmt.Sprintf("checksum mismatch in %s: expected 0x%X, computed 0x%X",
			e.Loc, e.Expected, e.Computed)
	}
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// BoundsError reports a read that a declared size or offset would place
// past the end of the input buffer.
type BoundsError struct {
	Offset int
	Need   int
	Have   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("read past end of buffer: need %d bytes at offset %d, %d available",
		e.Need, e.Offset, e.Have)
}

func (e *BoundsError) Unwrap() error {
	return ErrBounds
}

// MalformedVarintError reports a varint that did not terminate within the
// maximum byte count for a 64-bit value.
type MalformedVarintError struct {
	Offset int
}

func (e *MalformedVarintError) Error() string {
	return fmt.Sprintf("malformed varint at offset %d", e.Offset)
}

func (e *MalformedVarintError) Unwrap() error {
	return ErrMalformedVarint
}
