// Package encoding implements the physical columnar codecs of the
// trackfile format: the per-point presence bitmap and the typed data
// column encodings (delta-compressed integers, scaled floats, raw
// booleans, length-prefixed byte runs).
//
// Encoders accumulate present values into pooled buffers; absent points
// never reach an encoder and contribute zero bytes to its output. Decoders
// walk a presence view and reconstruct one Value per point, so absence
// survives as an explicit third state rather than collapsing to a zero
// value.
//
// Checksums are not this package's concern: the track layer frames each
// column with its trailing CRC and hands decoders the verified body.
package encoding
