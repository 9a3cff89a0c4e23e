// Package crc computes and verifies the cyclic redundancy checks guarding
// trackfile blocks.
//
// Two widths are in use: track-level blocks (header, metadata table) carry
// a 2-byte CRC-16/CCITT-FALSE, bulk-data blocks (data table, presence and
// data columns) carry a 4-byte CRC-32 IEEE. Writer and reader share these
// functions, so the two sides can never disagree on the algorithm.
package crc

import (
	"hash/crc32"

	"github.com/howeyc/crc16"

	"github.com/trailsense/trackfile/errs"
)

const (
	// Size16 is the byte width of a CRC-16 trailer.
	Size16 = 2
	// Size32 is the byte width of a CRC-32 trailer.
	Size32 = 4
)

// Sum16 computes the CRC-16/CCITT-FALSE checksum of data.
func Sum16(data []byte) uint16 {
	return crc16.ChecksumCCITTFalse(data)
}

// Sum32 computes the CRC-32 IEEE checksum of data.
func Sum32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Verify16 recomputes the CRC-16 of data and compares it against expected.
//
// On mismatch it returns an *errs.IntegrityError scoped to loc; otherwise
// nil.
func Verify16(data []byte, expected uint16, loc errs.Location) error {
	computed := Sum16(data)
	if computed != expected {
		return &errs.IntegrityError{
			Loc:      loc,
			Section:  -1,
			Expected: uint32(expected),
			Computed: uint32(computed),
		}
	}

	return nil
}

// Verify32 recomputes the CRC-32 of data and compares it against expected.
//
// On mismatch it returns an *errs.IntegrityError scoped to loc; otherwise
// nil. Section- and column-scoped callers that need richer context build
// the IntegrityError themselves from Sum32.
func Verify32(data []byte, expected uint32, loc errs.Location) error {
	computed := Sum32(data)
	if computed != expected {
		return &errs.IntegrityError{
			Loc:      loc,
			Section:  -1,
			Expected: expected,
			Computed: computed,
		}
	}

	return nil
}
