// Package endian selects the byte order of snapshot headers and raw payloads.
//
// An EndianEngine bundles binary.ByteOrder with binary.AppendByteOrder so
// encoders can append fixed-width values without a scratch buffer:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint64(buf, math.Float64bits(v))
//
// Snapshots default to little endian; the byte order is recorded in the
// header flags so readers never need to guess.
package endian

import "encoding/binary"

// EndianEngine reads, writes and appends fixed-width integers in one byte order.
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes little-endian bytes.
func IsLittleEndian(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 1
}
