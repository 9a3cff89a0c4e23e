// Package section defines the low-level binary structures of the
// trackfile container: the fixed 24-byte header, the forward-compatible
// metadata table and the per-section schema.
//
// Each structure comes as a Parse/serialize pair that mirror each other
// byte for byte, so a decoded track re-serializes to its original bytes.
//
// # Container Structure
//
// A track consists of three regions, located by the header's table
// offsets:
//
//	┌────────────────────────────────────────────────────────┐
//	│ Header (24 bytes, fixed)                               │
//	│  - Magic (8 bytes)                                     │
//	│  - File version + reserved (4 bytes)                   │
//	│  - Creator version + reserved (4 bytes)                │
//	│  - Metadata table offset (2 bytes)                     │
//	│  - Data table offset (2 bytes)                         │
//	│  - Reserved (2 bytes)                                  │
//	│  - CRC-16 (2 bytes)                                    │
//	├────────────────────────────────────────────────────────┤
//	│ Metadata Table (variable)                              │
//	│  - Entry count (1 byte)                                │
//	│  - Entries: type, size, payload                        │
//	│  - CRC-16 (2 bytes)                                    │
//	├────────────────────────────────────────────────────────┤
//	│ Data Table (variable)                                  │
//	│  - Section count, section headers and schemas          │
//	│  - CRC-32 (4 bytes)                                    │
//	│  - Section bodies: presence column + data columns,     │
//	│    each with its own CRC-32                            │
//	└────────────────────────────────────────────────────────┘
//
// Every size field is validated against the remaining buffer before use;
// sizes originate from untrusted input and are never trusted blindly.
package section
