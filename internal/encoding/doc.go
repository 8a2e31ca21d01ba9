// Package encoding implements the payload encodings of panel snapshots.
//
// Every encoder appends to a caller-supplied byte slice and every decoder
// takes the element count from the snapshot header and reports how many
// bytes it consumed, so payloads can be packed back to back:
//
//   - Uvarints: group sizes as unsigned varints
//   - Strings: uvarint length followed by the UTF-8 bytes
//   - DeltaOfDelta: int64 time values as zigzag varint delta-of-deltas
//   - Floats: raw IEEE 754 bits in the byte order of an endian engine
//   - Gorilla: XOR compressed float64 values
//
// Truncated or corrupt input fails with errs.ErrMalformedPayload.
package encoding
