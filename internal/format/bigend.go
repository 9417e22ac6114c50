package format

import (
	"encoding/binary"
	"math"
)

// ReadU16/ReadU32 decode the database/page headers' fixed-width unsigned
// big-endian fields.
func ReadU16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }
func ReadU32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// ReadI8/ReadI16/ReadI32/ReadI64 decode signed big-endian record column
// content of widths 1/2/4/8 bytes (serial types 1, 2, 4, 6), sign-extending
// from the top byte per two's-complement convention.
func ReadI8(b []byte) int64  { return int64(int8(b[0])) }
func ReadI16(b []byte) int64 { return int64(int16(binary.BigEndian.Uint16(b))) }
func ReadI32(b []byte) int64 { return int64(int32(binary.BigEndian.Uint32(b))) }
func ReadI64(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

// ReadI24 decodes serial type 3's 3-byte big-endian column content.
//
// This widens without sign extension: the 3 bytes are treated as an
// unsigned magnitude shifted into a wider signed accumulator, rather than
// sign-extending the would-be-negative top bit.
func ReadI24(b []byte) int64 {
	return int64(b[0])<<16 | int64(b[1])<<8 | int64(b[2])
}

// ReadI48 decodes serial type 5's 6-byte big-endian column content under
// the same unsigned-widening rule as ReadI24.
func ReadI48(b []byte) int64 {
	return int64(b[0])<<40 | int64(b[1])<<32 | int64(b[2])<<24 |
		int64(b[3])<<16 | int64(b[4])<<8 | int64(b[5])
}

// float64FromBits reinterprets an 8-byte big-endian IEEE-754 bit pattern
// (already decoded as int64 by ReadI64) as a float64, for serial type 7.
func float64FromBits(bits int64) float64 {
	return math.Float64frombits(uint64(bits))
}
