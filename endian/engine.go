// Package endian provides byte order utilities for binary encoding and decoding.
//
// The package combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, so codecs can both
// read fixed-width integers in place and append them to growing buffers
// through one value.
//
// The trackfile wire format is little-endian throughout, so most callers
// only ever need GetLittleEndianEngine:
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint16(buf[16:], metadataOffset)
//
// All returned engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so the engine
// interoperates with any existing code built on the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// This is the byte order of the trackfile format; every multi-byte integer
// in the header, metadata table and data table is little-endian.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
