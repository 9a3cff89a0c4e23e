package hash

import "github.com/cespare/xxhash/v2"

// FieldID computes the xxHash64 of a schema field name.
//
// Sections index their columns by this ID so lookups by name stay O(1)
// even for wide schemas.
func FieldID(name string) uint64 {
	return xxhash.Sum64String(name)
}
